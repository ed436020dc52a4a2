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

package device

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware/scheduler"
	"github.com/taupter/openMSX/logger"
)

func parseSize(spec Spec, def string) (int, error) {
	v := spec.Param("size", def)
	n, err := strconv.ParseUint(v, 0, 32)
	if err != nil {
		return 0, curated.Errorf(InvalidParameter, spec.Type, "size", err)
	}
	if n == 0 || n > 0x10000 {
		return 0, curated.Errorf(InvalidParameter, spec.Type, "size", fmt.Sprintf("%d out of range", n))
	}
	return int(n), nil
}

// RAM is read/write memory. Contents are cleared on power up.
type RAM struct {
	name string
	data []uint8
}

func newRAM(_ Context, name string, spec Spec) (Device, error) {
	n, err := parseSize(spec, "0x10000")
	if err != nil {
		return nil, err
	}
	return &RAM{name: name, data: make([]uint8, n)}, nil
}

// Name implements the Device interface.
func (r *RAM) Name() string { return r.name }

// Reset implements the Device interface. Memory contents survive a reset.
func (r *RAM) Reset(_ scheduler.Time) {}

// PowerUp implements the Device interface.
func (r *RAM) PowerUp(_ scheduler.Time) {
	clear(r.data)
}

// PowerDown implements the Device interface.
func (r *RAM) PowerDown(_ scheduler.Time) {}

// Read implements the Device interface.
func (r *RAM) Read(address uint16, _ scheduler.Time) uint8 {
	return r.data[int(address)%len(r.data)]
}

// Write implements the Device interface.
func (r *RAM) Write(address uint16, data uint8, _ scheduler.Time) {
	r.data[int(address)%len(r.data)] = data
}

// Info implements the Informer interface.
func (r *RAM) Info() string {
	return fmt.Sprintf("RAM %dKB", len(r.data)/1024)
}

// State implements the Stater interface.
func (r *RAM) State() map[string]string {
	return map[string]string{"data": hex.EncodeToString(r.data)}
}

// SetState implements the Stater interface.
func (r *RAM) SetState(st map[string]string) error {
	d, err := hex.DecodeString(st["data"])
	if err != nil {
		return curated.Errorf(InvalidState, r.name, err)
	}
	if len(d) != len(r.data) {
		return curated.Errorf(InvalidState, r.name, fmt.Sprintf("%d bytes, expected %d", len(d), len(r.data)))
	}
	copy(r.data, d)
	return nil
}

// ROM is read only memory. The contents are loaded from a file when the
// filename parameter is present, otherwise the ROM is filled with 0xff.
type ROM struct {
	name     string
	filename string
	hash     string
	data     []uint8
}

func newROM(ctx Context, name string, spec Spec) (Device, error) {
	r := &ROM{name: name}

	r.filename = spec.Param("filename", "")
	if r.filename != "" {
		d, err := os.ReadFile(r.filename)
		if err != nil {
			return nil, err
		}
		if len(d) == 0 {
			return nil, curated.Errorf(EmptyImage, name, r.filename)
		}
		r.data = d
	} else {
		n, err := parseSize(spec, "0x4000")
		if err != nil {
			return nil, err
		}
		r.data = bytes.Repeat([]uint8{0xff}, n)
	}

	r.hash = fmt.Sprintf("%x", sha1.Sum(r.data))
	if want := spec.Param("sha1", ""); want != "" && want != r.hash {
		logger.Logf(ctx.logPerm(), "rom", "%s: sha1 mismatch (expected %s, got %s)", name, want, r.hash)
	}

	return r, nil
}

// Name implements the Device interface.
func (r *ROM) Name() string { return r.name }

// Reset implements the Device interface.
func (r *ROM) Reset(_ scheduler.Time) {}

// PowerUp implements the Device interface.
func (r *ROM) PowerUp(_ scheduler.Time) {}

// PowerDown implements the Device interface.
func (r *ROM) PowerDown(_ scheduler.Time) {}

// Read implements the Device interface.
func (r *ROM) Read(address uint16, _ scheduler.Time) uint8 {
	return r.data[int(address)%len(r.data)]
}

// Write implements the Device interface. Writes to ROM are ignored.
func (r *ROM) Write(_ uint16, _ uint8, _ scheduler.Time) {}

// Info implements the Informer interface.
func (r *ROM) Info() string {
	if r.filename == "" {
		return fmt.Sprintf("ROM %dKB sha1:%s", len(r.data)/1024, r.hash)
	}
	return fmt.Sprintf("ROM %s sha1:%s", filepath.Base(r.filename), r.hash)
}

// Hash returns the sha1 of the ROM contents.
func (r *ROM) Hash() string {
	return r.hash
}
