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
	"fmt"

	"github.com/taupter/openMSX/curated"
)

// Sentinal error patterns.
const (
	DuplicateDevice = "device: duplicate device name: %s"
)

// Registry is the list of devices installed on a board, in the order they
// were added.
type Registry struct {
	devices []Device
}

// NewRegistry is the preferred method of initialisation for the Registry type.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add a device to the registry. Device names are unique.
func (r *Registry) Add(d Device) error {
	if _, ok := r.Find(d.Name()); ok {
		return curated.Errorf(DuplicateDevice, d.Name())
	}
	r.devices = append(r.devices, d)
	return nil
}

// Remove a device from the registry. Removing a device that is not in the
// registry is a programming error and will cause a panic.
func (r *Registry) Remove(d Device) {
	for i, e := range r.devices {
		if e == d {
			r.devices = append(r.devices[:i], r.devices[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("device: removing unknown device: %s", d.Name()))
}

// Find returns the device with name.
func (r *Registry) Find(name string) (Device, bool) {
	for _, d := range r.devices {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}

// All returns every device in registration order.
func (r *Registry) All() []Device {
	l := make([]Device, len(r.devices))
	copy(l, r.devices)
	return l
}

// Len returns the number of devices in the registry.
func (r *Registry) Len() int {
	return len(r.devices)
}

// UniqueName returns name if no device of that name is in the registry.
// Otherwise a suffix is added: "name (2)", "name (3)", etc.
func (r *Registry) UniqueName(name string) string {
	if _, ok := r.Find(name); !ok {
		return name
	}
	for n := 2; ; n++ {
		s := fmt.Sprintf("%s (%d)", name, n)
		if _, ok := r.Find(s); !ok {
			return s
		}
	}
}
