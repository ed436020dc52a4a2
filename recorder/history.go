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

// Package recorder keeps the replay history of a board. Every change made to
// the state of a board by the user, a reset or the insertion of an extension
// for example, is recorded together with the virtual time at which it
// happened.
//
// The history is saved as part of a complete save state and can be written
// to and parsed from a transcript file.
package recorder

import (
	"github.com/taupter/openMSX/hardware/scheduler"
)

// Kind of a recorded event.
type Kind string

// List of valid Kind values.
const (
	KindReset           Kind = "reset"
	KindPowerUp         Kind = "power_up"
	KindPowerDown       Kind = "power_down"
	KindInsertExtension Kind = "insert_extension"
	KindRemoveExtension Kind = "remove_extension"
	KindPlug            Kind = "plug"
	KindUnplug          Kind = "unplug"
	KindMedia           Kind = "media"
)

// Entry is a single event in the history.
type Entry struct {
	Time scheduler.Time `yaml:"time"`
	Kind Kind           `yaml:"kind"`
	Args []string       `yaml:"args,omitempty"`
}

// History is the ordered list of recorded events. The zero value is usable.
type History struct {
	entries []Entry
}

// Record an event.
func (h *History) Record(t scheduler.Time, kind Kind, args ...string) {
	e := Entry{Time: t, Kind: kind}
	if len(args) > 0 {
		e.Args = append([]string{}, args...)
	}
	h.entries = append(h.entries, e)
}

// Entries returns a copy of the recorded events.
func (h *History) Entries() []Entry {
	l := make([]Entry, len(h.entries))
	copy(l, h.entries)
	return l
}

// SetEntries replaces the history.
func (h *History) SetEntries(entries []Entry) {
	h.entries = append(h.entries[:0], entries...)
}

// Clear the history.
func (h *History) Clear() {
	h.entries = h.entries[:0]
}

// Len returns the number of recorded events.
func (h *History) Len() int {
	return len(h.entries)
}
