// This file is part of openMSX.
//
// openMSX is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// openMSX is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with openMSX.  If not, see <https://www.gnu.org/licenses/>.

// Package savestate is the persistent serialization layer. A save state file
// is a yaml document with a header and a body:
//
//	header:
//	  format: openmsx-savestate
//	  kind: setup
//	  version: 3
//	body:
//	  ...
//
// The kind identifies what the body contains. The version is the version of
// the body type and is returned to the reader so it can decide which fields
// can be expected.
package savestate

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/taupter/openMSX/curated"
	"gopkg.in/yaml.v3"
)

// Format is the value of the format field in the header of every save state.
const Format = "openmsx-savestate"

// Sentinal error patterns.
const (
	FileError     = "savestate: %v"
	NotFound      = "savestate: file not found: %s"
	NotSaveState  = "savestate: not a save state file: %s"
	KindMismatch  = "savestate: %s contains a %s and not a %s"
	DecodingError = "savestate: decoding %s: %v"
)

// Header of a save state file.
type Header struct {
	Format  string `yaml:"format"`
	Kind    string `yaml:"kind"`
	Version int    `yaml:"version"`
}

type document struct {
	Header Header    `yaml:"header"`
	Body   yaml.Node `yaml:"body"`
}

// Write v to the file at path with the kind and version in the header. The
// file is written in full or not at all.
func Write(path string, kind string, version int, v any) error {
	doc := document{
		Header: Header{
			Format:  Format,
			Kind:    kind,
			Version: version,
		},
	}

	if err := doc.Body.Encode(v); err != nil {
		return curated.Errorf(FileError, err)
	}

	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return curated.Errorf(FileError, err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf(FileError, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return curated.Errorf(FileError, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b.Bytes(), 0o644); err != nil {
		return curated.Errorf(FileError, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return curated.Errorf(FileError, err)
	}

	return nil
}

// ReadHeader returns the header of the save state at path.
func ReadHeader(path string) (Header, error) {
	doc, err := read(path)
	if err != nil {
		return Header{}, err
	}
	return doc.Header, nil
}

// Read the body of the save state at path into v. The kind of the file must
// match. Returns the version of the body.
func Read(path string, kind string, v any) (int, error) {
	doc, err := read(path)
	if err != nil {
		return 0, err
	}

	if doc.Header.Kind != kind {
		return 0, curated.Errorf(KindMismatch, path, doc.Header.Kind, kind)
	}

	if err := doc.Body.Decode(v); err != nil {
		return 0, curated.Errorf(DecodingError, path, err)
	}

	return doc.Header.Version, nil
}

func read(path string) (*document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, curated.Errorf(NotFound, path)
		}
		return nil, curated.Errorf(FileError, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, curated.Errorf(DecodingError, path, err)
	}

	if doc.Header.Format != Format {
		return nil, curated.Errorf(NotSaveState, path)
	}

	return &doc, nil
}
