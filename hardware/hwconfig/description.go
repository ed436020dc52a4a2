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

// Package hwconfig contains the hardware descriptions of machines and
// extensions, the loaders that find and parse them, and the Config type which
// is an instance of a description installed on a board.
//
// Descriptions are yaml documents. For example, a disk interface extension:
//
//	info:
//	  type: extension
//	  manufacturer: Panasonic
//	  code: FS-FD1A
//	  description: 3.5" floppy disk interface
//	devices:
//	  - type: ROM
//	    name: diskrom
//	    params:
//	      size: "0x4000"
//	  - type: DiskDrive
//	    name: diska
//
// And a machine. The slots field is the number of cartridge slots:
//
//	info:
//	  type: MSX2
//	  manufacturer: Philips
//	  code: NMS 8250
//	slots: 2
//	devices:
//	  - type: RAM
//	  - type: JoystickPort
//	    name: joyporta
package hwconfig

import (
	"fmt"
	"strings"

	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware/device"
	"github.com/taupter/openMSX/hardware/slots"
)

// Sentinal error patterns.
const (
	NotFound           = "hwconfig: %s not found: %s"
	ParseError         = "hwconfig: parse error: %s: %v"
	InvalidDescription = "hwconfig: invalid description: %s: %s"
	InUse              = "hwconfig: %s is required by %s"
	NotRemovable       = "hwconfig: %s cannot be removed: %v"
)

// Kind of a hardware description.
type Kind int

// List of valid Kind values.
const (
	Machine Kind = iota
	Extension
	ROM
)

func (k Kind) String() string {
	switch k {
	case Machine:
		return "machine"
	case Extension:
		return "extension"
	case ROM:
		return "rom"
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String().
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "machine":
		return Machine, nil
	case "extension":
		return Extension, nil
	case "rom":
		return ROM, nil
	}
	return 0, fmt.Errorf("hwconfig: unknown kind: %s", s)
}

// Info is the descriptive part of a hardware description.
type Info struct {
	Type         string `yaml:"type"`
	Manufacturer string `yaml:"manufacturer,omitempty"`
	Code         string `yaml:"code,omitempty"`
	Description  string `yaml:"description,omitempty"`
}

// Description of a machine or an extension.
type Description struct {
	Info Info `yaml:"info"`

	// number of cartridge slots. machines only
	Slots int `yaml:"slots,omitempty"`

	// extensions that do not occupy a cartridge slot
	NoSlot bool `yaml:"noslot,omitempty"`

	Devices []device.Spec `yaml:"devices"`

	// names of extensions that must be installed before this one
	Requires []string `yaml:"requires,omitempty"`
}

// Validate checks the description for the kind of configuration. The known
// function reports whether a device type can be created. It can be nil.
func (d *Description) Validate(kind Kind, name string, known func(typ string) bool) error {
	switch kind {
	case Machine:
		if d.Slots < 0 || d.Slots > slots.MaxSlots {
			return curated.Errorf(InvalidDescription, name, fmt.Sprintf("%d slots", d.Slots))
		}
		if d.NoSlot {
			return curated.Errorf(InvalidDescription, name, "noslot is not valid for a machine")
		}
		if len(d.Requires) > 0 {
			return curated.Errorf(InvalidDescription, name, "requires is not valid for a machine")
		}
	default:
		if d.Slots != 0 {
			return curated.Errorf(InvalidDescription, name, "slots is only valid for a machine")
		}
	}

	if len(d.Devices) == 0 {
		return curated.Errorf(InvalidDescription, name, "no devices")
	}

	for i, s := range d.Devices {
		if s.Type == "" {
			return curated.Errorf(InvalidDescription, name, fmt.Sprintf("device %d has no type", i))
		}
		if known != nil && !known(s.Type) {
			return curated.Errorf(InvalidDescription, name, fmt.Sprintf("unknown device type %s", s.Type))
		}
	}

	return nil
}

// NeedsSlot returns true if a configuration of the description occupies a
// cartridge slot.
func (d *Description) NeedsSlot(kind Kind) bool {
	switch kind {
	case Machine:
		return false
	case ROM:
		return true
	}
	return !d.NoSlot
}
