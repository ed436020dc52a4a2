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

package slots_test

import (
	"testing"

	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware/slots"
	"github.com/taupter/openMSX/test"
)

func TestResolve(t *testing.T) {
	m := slots.NewManager(2)

	idx, err := m.Resolve("any")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, idx, 0)

	idx, err = m.Resolve("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, idx, 0)

	idx, err = m.Resolve("B")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, idx, 1)

	_, err = m.Resolve("c")
	test.ExpectSuccess(t, curated.Is(err, slots.OutOfRange))
	test.ExpectEquality(t, err.Error(), "slots: slot c but only 2 slots")

	_, err = m.Resolve("zz")
	test.ExpectSuccess(t, curated.Is(err, slots.MalformedSpec))

	_, err = m.Resolve("q")
	test.ExpectSuccess(t, curated.Is(err, slots.MalformedSpec))

	// slots are named by letter only
	_, err = m.Resolve("1")
	test.ExpectSuccess(t, curated.Is(err, slots.MalformedSpec))

	test.ExpectSuccess(t, slots.ParseSlotSpec("p"))
	test.ExpectFailure(t, slots.ParseSlotSpec("1"))
}

func TestAllocate(t *testing.T) {
	m := slots.NewManager(2)

	test.DemandSuccess(t, m.Allocate(0, 7))
	idx, err := m.Resolve("any")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, idx, 1)

	err = m.Allocate(0, 8)
	test.ExpectSuccess(t, curated.Is(err, slots.SlotOccupied))

	test.DemandSuccess(t, m.Allocate(1, 8))
	_, err = m.Resolve("any")
	test.ExpectSuccess(t, curated.Is(err, slots.NoFreeSlot))

	idx, ok := m.FindSlotWith(8)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, idx, 1)

	id, ok := m.ConfigForSlot(0)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, id, slots.ID(7))
	test.ExpectEquality(t, m.String(), "a:7 b:8")

	m.Free(7)
	_, ok = m.ConfigForSlot(0)
	test.ExpectFailure(t, ok)
	_, ok = m.FindSlotWith(7)
	test.ExpectFailure(t, ok)
}

func TestSelect(t *testing.T) {
	m := slots.NewManager(3)
	test.ExpectSuccess(t, m.Select(2))
	test.ExpectEquality(t, m.Selected(), 2)
	test.ExpectFailure(t, m.Select(3))
	m.Reset()
	test.ExpectEquality(t, m.Selected(), 0)

	test.ExpectEquality(t, slots.NewManager(99).Count(), slots.MaxSlots)
}
