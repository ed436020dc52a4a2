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

// Package mixer keeps the mute state of an audio output. Mute requests are
// counted so that independent reasons for muting (paused, fast-forwarding,
// powered down) can overlap.
package mixer

import "sync"

// Mixer is a reference counted mute switch. The zero value is an unmuted
// mixer.
type Mixer struct {
	crit  sync.Mutex
	count int

	// optional parent. a muted parent mutes the child
	parent *Mixer
}

// NewMixer is the preferred method of initialisation for the Mixer type. The
// parent can be nil.
func NewMixer(parent *Mixer) *Mixer {
	return &Mixer{parent: parent}
}

// Mute increases the mute count.
func (m *Mixer) Mute() {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.count++
}

// Unmute decreases the mute count. Unmuting an unmuted mixer is a programming
// error and will cause a panic.
func (m *Mixer) Unmute() {
	m.crit.Lock()
	defer m.crit.Unlock()
	if m.count == 0 {
		panic("mixer: unmute without matching mute")
	}
	m.count--
}

// Muted returns true if the mixer or its parent is muted.
func (m *Mixer) Muted() bool {
	m.crit.Lock()
	muted := m.count > 0
	m.crit.Unlock()
	if muted {
		return true
	}
	if m.parent != nil {
		return m.parent.Muted()
	}
	return false
}

// Count returns the number of outstanding mute requests of this mixer, not
// including the parent.
func (m *Mixer) Count() int {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.count
}
