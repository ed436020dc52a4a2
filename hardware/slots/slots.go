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

// Package slots is the cartridge slot manager of a board. A board has a fixed
// number of cartridge slots, named "a" to "p". Each slot is either free or
// occupied by exactly one configuration.
//
// Configurations are referred to by ID and not by pointer. The board keeps
// the configurations themselves.
package slots

import (
	"fmt"
	"strings"

	"github.com/taupter/openMSX/curated"
)

// MaxSlots is the maximum number of cartridge slots on a board.
const MaxSlots = 16

// Sentinal error patterns.
const (
	MalformedSpec = "slots: malformed slot specification: %s"
	OutOfRange    = "slots: slot %s but only %d slots"
	NoFreeSlot    = "slots: no free slot"
	SlotOccupied  = "slots: slot %s is already in use"
)

// Any is the slot specification for "the first free slot".
const Any = "any"

// ID identifies the configuration occupying a slot.
type ID int

// None indicates that no configuration occupies a slot.
const None ID = -1

// Manager maps slots to the configurations occupying them.
type Manager struct {
	slots []ID

	// the currently selected slot. used by the address decoder
	selected int
}

// NewManager is the preferred method of initialisation for the Manager type.
// The number of slots is clamped to the range 0 to MaxSlots.
func NewManager(count int) *Manager {
	if count < 0 {
		count = 0
	}
	if count > MaxSlots {
		count = MaxSlots
	}
	m := &Manager{slots: make([]ID, count)}
	for i := range m.slots {
		m.slots[i] = None
	}
	return m
}

// Count returns the number of slots.
func (m *Manager) Count() int {
	return len(m.slots)
}

// SlotName returns the letter of the slot at index.
func SlotName(index int) string {
	return string(rune('a' + index))
}

// SlotName returns the letter of the slot at index.
func (m *Manager) SlotName(index int) string {
	return SlotName(index)
}

// parse returns the index of a single letter slot specification, or -1 for
// "any" or the empty string.
func parse(spec string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" || s == Any {
		return -1, nil
	}
	if len(s) != 1 || s[0] < 'a' || s[0] >= 'a'+MaxSlots {
		return 0, curated.Errorf(MalformedSpec, spec)
	}
	return int(s[0] - 'a'), nil
}

// ParseSlotSpec checks the syntax of a slot specification. The number of
// slots and their occupancy are not considered.
func ParseSlotSpec(spec string) error {
	_, err := parse(spec)
	return err
}

// Resolve turns a slot specification into a slot index. The specification can
// be the empty string or "any" for the first free slot, or a letter from "a"
// to "p". Resolving an explicit slot does not check whether the slot is free.
func (m *Manager) Resolve(spec string) (int, error) {
	idx, err := parse(spec)
	if err != nil {
		return 0, err
	}

	if idx == -1 {
		for i, id := range m.slots {
			if id == None {
				return i, nil
			}
		}
		return 0, curated.Errorf(NoFreeSlot)
	}

	if idx >= len(m.slots) {
		return 0, curated.Errorf(OutOfRange, SlotName(idx), len(m.slots))
	}

	return idx, nil
}

// Allocate the slot at index to the configuration.
func (m *Manager) Allocate(index int, id ID) error {
	if index < 0 || index >= len(m.slots) {
		return curated.Errorf(OutOfRange, SlotName(index), len(m.slots))
	}
	if m.slots[index] != None {
		return curated.Errorf(SlotOccupied, SlotName(index))
	}
	m.slots[index] = id
	return nil
}

// Free every slot occupied by the configuration.
func (m *Manager) Free(id ID) {
	for i := range m.slots {
		if m.slots[i] == id {
			m.slots[i] = None
		}
	}
}

// FindSlotWith returns the index of the slot occupied by the configuration.
func (m *Manager) FindSlotWith(id ID) (int, bool) {
	for i, s := range m.slots {
		if s == id {
			return i, true
		}
	}
	return 0, false
}

// ConfigForSlot returns the ID of the configuration occupying the slot.
func (m *Manager) ConfigForSlot(index int) (ID, bool) {
	if index < 0 || index >= len(m.slots) || m.slots[index] == None {
		return None, false
	}
	return m.slots[index], true
}

// Select the slot used by the address decoder.
func (m *Manager) Select(index int) error {
	if index < 0 || index >= len(m.slots) {
		return curated.Errorf(OutOfRange, SlotName(index), len(m.slots))
	}
	m.selected = index
	return nil
}

// Selected returns the slot used by the address decoder.
func (m *Manager) Selected() int {
	return m.selected
}

// Reset the address decoder to the first slot.
func (m *Manager) Reset() {
	m.selected = 0
}

func (m *Manager) String() string {
	s := strings.Builder{}
	for i, id := range m.slots {
		if i > 0 {
			s.WriteString(" ")
		}
		if id == None {
			s.WriteString(fmt.Sprintf("%s:-", SlotName(i)))
		} else {
			s.WriteString(fmt.Sprintf("%s:%d", SlotName(i), id))
		}
	}
	return s.String()
}
