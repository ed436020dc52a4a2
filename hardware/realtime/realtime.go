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

// Package realtime paces virtual time against the wall clock. After a slice
// of execution the board calls Sync() and if virtual time has run ahead of
// the wall clock the pacer sleeps until the wall clock catches up.
//
// Pacing can be disabled, which is what fast-forward does. After any period
// where virtual time was not paced (disabled, paused, inactive board) the
// pacer must be resynchronised with Resync().
package realtime

import (
	"time"

	"github.com/taupter/openMSX/hardware/scheduler"
)

// maxLag is how far the wall clock can run ahead of virtual time before the
// pacer gives up on catching up and resynchronises.
const maxLag = 250 * time.Millisecond

// Pacer relates virtual time to the wall clock.
type Pacer struct {
	enabled bool

	// reference points. virtual time refVirtual happened at refWall
	refWall    time.Time
	refVirtual scheduler.Time

	// replaceable for testing
	now   func() time.Time
	sleep func(time.Duration)
}

// NewPacer is the preferred method of initialisation for the Pacer type.
func NewPacer() *Pacer {
	p := &Pacer{
		enabled: true,
		now:     time.Now,
		sleep:   time.Sleep,
	}
	p.refWall = p.now()
	return p
}

// SetClock replaces the wall clock and sleep functions.
func (p *Pacer) SetClock(now func() time.Time, sleep func(time.Duration)) {
	p.now = now
	p.sleep = sleep
	p.refWall = p.now()
}

// SetEnabled turns pacing on or off. Returns the previous value.
func (p *Pacer) SetEnabled(enabled bool) bool {
	prev := p.enabled
	p.enabled = enabled
	return prev
}

// Enabled returns true if pacing is enabled.
func (p *Pacer) Enabled() bool {
	return p.enabled
}

// Resync makes virtual time t correspond to the current wall clock time.
func (p *Pacer) Resync(t scheduler.Time) {
	p.refWall = p.now()
	p.refVirtual = t
}

// Sync sleeps until the wall clock has caught up with virtual time t. Returns
// the duration slept.
func (p *Pacer) Sync(t scheduler.Time) time.Duration {
	if !p.enabled {
		return 0
	}

	if t < p.refVirtual {
		p.Resync(t)
		return 0
	}

	due := p.refWall.Add((t - p.refVirtual).Duration())
	wait := due.Sub(p.now())

	if wait > 0 {
		p.sleep(wait)
		return wait
	}

	// the emulation is too slow to keep up. forget about the lost time
	if -wait > maxLag {
		p.Resync(t)
	}

	return 0
}
