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
	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware/device"
	"github.com/taupter/openMSX/hardware/slots"
)

// ID identifies a Config on a board.
type ID = slots.ID

// Config is a description installed, or about to be installed, on a board. It
// owns the devices created from the description.
type Config struct {
	id         ID
	kind       Kind
	configName string
	name       string
	slotSpec   string
	desc       *Description

	// devices in creation order
	devices []device.Device
}

// NewConfig is the preferred method of initialisation for the Config type.
// The instance name starts as the configuration name.
func NewConfig(id ID, kind Kind, configName string, slotSpec string, desc *Description) *Config {
	return &Config{
		id:         id,
		kind:       kind,
		configName: configName,
		name:       configName,
		slotSpec:   slotSpec,
		desc:       desc,
	}
}

// ID returns the identifier of the configuration on the board.
func (c *Config) ID() ID { return c.id }

// Kind returns the kind of the configuration.
func (c *Config) Kind() Kind { return c.kind }

// ConfigName returns the name of the description. For ROM configurations this
// is the path of the image.
func (c *Config) ConfigName() string { return c.configName }

// Name returns the instance name of the configuration.
func (c *Config) Name() string { return c.name }

// SetName changes the instance name of the configuration.
func (c *Config) SetName(name string) { c.name = name }

// SlotSpec returns the slot requested for the configuration.
func (c *Config) SlotSpec() string { return c.slotSpec }

// Description returns the hardware description.
func (c *Config) Description() *Description { return c.desc }

// Devices returns the devices created by the configuration in creation order.
func (c *Config) Devices() []device.Device {
	l := make([]device.Device, len(c.devices))
	copy(l, c.devices)
	return l
}

// AddDevice adds to the list of devices owned by the configuration.
func (c *Config) AddDevice(d device.Device) {
	c.devices = append(c.devices, d)
}

// ClearDevices forgets every device owned by the configuration. The devices
// must already have been destroyed.
func (c *Config) ClearDevices() {
	c.devices = c.devices[:0]
}

// Validate the description for the kind of the configuration.
func (c *Config) Validate(known func(typ string) bool) error {
	return c.desc.Validate(c.kind, c.configName, known)
}

// TestRemove checks whether the configuration can be removed. It can not be
// removed if another installed configuration requires it or if any of its
// devices vetoes the removal.
func (c *Config) TestRemove(installed []*Config) error {
	for _, o := range installed {
		if o == c {
			continue
		}
		for _, r := range o.desc.Requires {
			if r == c.configName {
				return curated.Errorf(InUse, c.name, o.name)
			}
		}
	}

	for _, d := range c.devices {
		if r, ok := d.(device.Remover); ok {
			if err := r.TestRemove(); err != nil {
				return curated.Errorf(NotRemovable, c.name, err)
			}
		}
	}

	return nil
}
