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
	"sort"
	"strings"

	"github.com/taupter/openMSX/curated"
)

// Sentinal error patterns.
const (
	UnknownDeviceType = "device: unknown device type: %s"
	InvalidParameter  = "device: %s: invalid parameter %s: %v"
	CreationFailed    = "device: %s: %v"
)

// Constructor creates a device. The name has already been made unique for the
// board.
type Constructor func(ctx Context, name string, spec Spec) (Device, error)

// Factory is a dispatch table of device type to constructor.
type Factory struct {
	constructors map[string]Constructor
}

// NewFactory is the preferred method of initialisation for the Factory type.
// The new factory knows about all builtin device types.
func NewFactory() *Factory {
	f := &Factory{
		constructors: make(map[string]Constructor),
	}
	f.Register("RAM", newRAM)
	f.Register("ROM", newROM)
	f.Register("Timer", newTimer)
	f.Register("DiskDrive", newDiskDrive)
	f.Register("CassettePlayer", newCassettePlayer)
	f.Register("JoystickPort", newJoystickPort)
	return f
}

// Register a constructor for a device type. A previous constructor for the
// same type is replaced.
func (f *Factory) Register(typ string, c Constructor) {
	f.constructors[typ] = c
}

// Types returns every device type known to the factory, sorted alphabetically.
func (f *Factory) Types() []string {
	t := make([]string, 0, len(f.constructors))
	for k := range f.constructors {
		t = append(t, k)
	}
	sort.Strings(t)
	return t
}

// Known returns true if the device type is known to the factory.
func (f *Factory) Known(typ string) bool {
	_, ok := f.constructors[typ]
	return ok
}

// Create a device from the spec. The device is not added to the registry in
// the context.
func (f *Factory) Create(ctx Context, spec Spec) (Device, error) {
	c, ok := f.constructors[spec.Type]
	if !ok {
		return nil, curated.Errorf(UnknownDeviceType, spec.Type)
	}

	name := spec.Name
	if name == "" {
		name = strings.ToLower(spec.Type)
	}
	if ctx.Devices != nil {
		name = ctx.Devices.UniqueName(name)
	}

	d, err := c(ctx, name, spec)
	if err != nil {
		return nil, curated.Errorf(CreationFailed, name, err)
	}
	return d, nil
}
