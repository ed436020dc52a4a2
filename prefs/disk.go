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

package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/taupter/openMSX/curated"
	"gopkg.in/yaml.v3"
)

// Sentinal error patterns.
const (
	DuplicateKey = "prefs: duplicate key: %s"
	UnknownKey   = "prefs: unknown key: %s"
	DiskError    = "prefs: %v"
)

// Disk represents preference values that are persisted to the filesystem.
// Values keep their own type and the file stores them as a yaml mapping of
// key to string. Values in the file that have not been added to the Disk are
// kept when the file is saved.
type Disk struct {
	crit    sync.Mutex
	path    string
	entries map[string]Pref
	order   []string
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) *Disk {
	return &Disk{
		path:    path,
		entries: make(map[string]Pref),
	}
}

// Add a preference value to the disk. The key must be unique.
func (dsk *Disk) Add(key string, p Pref) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	dsk.entries[key] = p
	dsk.order = append(dsk.order, key)
	return nil
}

// Get returns the preference value for key.
func (dsk *Disk) Get(key string) (Pref, bool) {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()
	p, ok := dsk.entries[key]
	return p, ok
}

// Set the preference value for key from a string.
func (dsk *Disk) Set(key string, value string) error {
	p, ok := dsk.Get(key)
	if !ok {
		return curated.Errorf(UnknownKey, key)
	}
	return p.Set(value)
}

// Keys returns the keys of every added preference in the order they were
// added.
func (dsk *Disk) Keys() []string {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()
	k := make([]string, len(dsk.order))
	copy(k, dsk.order)
	return k
}

func (dsk *Disk) read() (map[string]string, error) {
	data := make(map[string]string)
	if dsk.path == "" {
		return data, nil
	}

	b, err := os.ReadFile(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return data, nil
		}
		return nil, curated.Errorf(DiskError, err)
	}

	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, curated.Errorf(DiskError, err)
	}
	if data == nil {
		data = make(map[string]string)
	}
	return data, nil
}

// Save current preference values to disk.
func (dsk *Disk) Save() error {
	data, err := dsk.read()
	if err != nil {
		return err
	}

	dsk.crit.Lock()
	for k, p := range dsk.entries {
		data[k] = p.String()
	}
	dsk.crit.Unlock()

	// values are always quoted so that strings like "on" survive a round trip
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var doc yaml.Node
	doc.Kind = yaml.MappingNode
	for _, k := range keys {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Value: data[k], Style: yaml.DoubleQuotedStyle},
		)
	}

	b, err := yaml.Marshal(&doc)
	if err != nil {
		return curated.Errorf(DiskError, err)
	}

	if err := os.MkdirAll(filepath.Dir(dsk.path), 0o700); err != nil {
		return curated.Errorf(DiskError, err)
	}
	if err := os.WriteFile(dsk.path, b, 0o600); err != nil {
		return curated.Errorf(DiskError, err)
	}

	return nil
}

// Load preference values from disk. Keys in the file that have not been
// added to the Disk are ignored. A missing file is not an error.
func (dsk *Disk) Load() error {
	data, err := dsk.read()
	if err != nil {
		return err
	}

	for k, v := range data {
		if p, ok := dsk.Get(k); ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf(DiskError, fmt.Errorf("%s: %w", k, err))
			}
		}
	}

	return nil
}
