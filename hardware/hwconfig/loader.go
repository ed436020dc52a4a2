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

package hwconfig

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware/device"
	"gopkg.in/yaml.v3"
)

// Loader finds and parses hardware descriptions by name. For the ROM kind the
// name is the path to a ROM image.
type Loader interface {
	Load(kind Kind, name string) (*Description, error)
}

// Lister is implemented by loaders that can list the descriptions available.
type Lister interface {
	List(kind Kind) ([]string, error)
}

// Decode a hardware description. Unknown fields are an error.
func Decode(r io.Reader, name string) (*Description, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Description
	if err := dec.Decode(&d); err != nil {
		return nil, curated.Errorf(ParseError, name, err)
	}
	return &d, nil
}

// romDescription synthesizes the description for a ROM image.
func romDescription(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, curated.Errorf(NotFound, ROM, path)
		}
		return nil, curated.Errorf(ParseError, path, err)
	}

	base := filepath.Base(path)
	return &Description{
		Info: Info{
			Type:        "rom",
			Description: base,
		},
		Devices: []device.Spec{
			{
				Type: "ROM",
				Name: strings.TrimSuffix(base, filepath.Ext(base)),
				Params: map[string]string{
					"filename": path,
					"sha1":     fmt.Sprintf("%x", sha1.Sum(data)),
				},
			},
		},
	}, nil
}

func kindDir(kind Kind) string {
	switch kind {
	case Machine:
		return "machines"
	case Extension:
		return "extensions"
	}
	return ""
}

// DirLoader loads descriptions from a list of root directories. Machines are
// found in <root>/machines/<name>.yaml and extensions in
// <root>/extensions/<name>.yaml. Earlier roots take precedence.
type DirLoader struct {
	Roots []string
}

// Load implements the Loader interface.
func (l DirLoader) Load(kind Kind, name string) (*Description, error) {
	if kind == ROM {
		return romDescription(name)
	}

	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, curated.Errorf(NotFound, kind, name)
	}

	for _, root := range l.Roots {
		fn := filepath.Join(root, kindDir(kind), name+".yaml")
		f, err := os.Open(fn)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, curated.Errorf(ParseError, name, err)
		}
		d, err := Decode(f, name)
		f.Close()
		return d, err
	}

	return nil, curated.Errorf(NotFound, kind, name)
}

// List implements the Lister interface.
func (l DirLoader) List(kind Kind) ([]string, error) {
	if kind == ROM {
		return nil, nil
	}

	seen := make(map[string]bool)
	for _, root := range l.Roots {
		entries, err := os.ReadDir(filepath.Join(root, kindDir(kind)))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
				continue
			}
			seen[strings.TrimSuffix(e.Name(), ".yaml")] = true
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// MemoryLoader keeps descriptions in memory. Useful for tests and for
// machines defined by a script.
type MemoryLoader struct {
	crit  sync.Mutex
	descs map[Kind]map[string][]byte
}

// NewMemoryLoader is the preferred method of initialisation for the
// MemoryLoader type.
func NewMemoryLoader() *MemoryLoader {
	return &MemoryLoader{
		descs: make(map[Kind]map[string][]byte),
	}
}

// Add a description in yaml form. The description is parsed every time it is
// loaded. The yaml is not checked when it is added.
func (l *MemoryLoader) Add(kind Kind, name string, desc string) {
	l.crit.Lock()
	defer l.crit.Unlock()
	if l.descs[kind] == nil {
		l.descs[kind] = make(map[string][]byte)
	}
	l.descs[kind][name] = []byte(desc)
}

// Load implements the Loader interface. ROM images are loaded from the
// filesystem.
func (l *MemoryLoader) Load(kind Kind, name string) (*Description, error) {
	if kind == ROM {
		return romDescription(name)
	}

	l.crit.Lock()
	b, ok := l.descs[kind][name]
	l.crit.Unlock()

	if !ok {
		return nil, curated.Errorf(NotFound, kind, name)
	}
	return Decode(bytes.NewReader(b), name)
}

// List implements the Lister interface.
func (l *MemoryLoader) List(kind Kind) ([]string, error) {
	l.crit.Lock()
	defer l.crit.Unlock()
	names := make([]string, 0, len(l.descs[kind]))
	for n := range l.descs[kind] {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}
