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

package hardware

import (
	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware/scheduler"
	"github.com/taupter/openMSX/notifications"
	"github.com/taupter/openMSX/recorder"
)

// PowerUp the board. Does nothing if the board is already powered or if no
// machine has been loaded.
//
// The powered flag is set before the devices are powered up. Devices can rely
// on Powered() returning true during their PowerUp() function.
func (b *Board) PowerUp() {
	if b.powered || b.machine == nil {
		return
	}
	b.powered = true

	now := b.sched.CurrentTime()
	for _, d := range b.devices.All() {
		d.PowerUp(now)
	}
	b.cpu.Reset(now)

	b.mixer.Unmute()
	b.pacer.Resync(now)

	b.history.Record(now, recorder.KindPowerUp)
	b.publish(notifications.NotifyBoot, "")
}

// PowerDown the board. The configuration of the board is unchanged.
func (b *Board) PowerDown() {
	if !b.powered {
		return
	}
	b.powered = false

	b.mixer.Mute()

	now := b.sched.CurrentTime()
	for _, d := range b.devices.All() {
		d.PowerDown(now)
	}

	b.history.Record(now, recorder.KindPowerDown)
}

// Reset the board. Does nothing if the board is not powered.
func (b *Board) Reset() {
	if !b.powered {
		return
	}

	// the address decoder
	b.slots.Reset()

	now := b.sched.CurrentTime()
	for _, d := range b.devices.All() {
		d.Reset(now)
	}
	b.cpu.Reset(now)

	b.history.Record(now, recorder.KindReset)
	b.publish(notifications.NotifyBoot, "")
}

// Powered returns true if the board is powered.
func (b *Board) Powered() bool {
	return b.powered
}

// fastForwardEnd is the sync point that ends a fast-forward.
type fastForwardEnd struct {
	b *Board
}

// ExecuteUntil implements the scheduler.Schedulable interface.
func (f *fastForwardEnd) ExecuteUntil(_ scheduler.Time) {
	f.b.cpu.ExitLoopSync()
}

// FastForward runs the board as fast as possible until virtual time reaches
// target. Real-time pacing is disabled and the board is muted for the
// duration. A paused board stays paused but still advances. Virtual time
// overshoots the target by less than one CPU quantum.
func (b *Board) FastForward(target scheduler.Time) error {
	if !b.powered {
		return curated.Errorf(NotPowered)
	}

	if target <= b.sched.CurrentTime() {
		return nil
	}

	pacing := b.pacer.SetEnabled(false)
	b.mixer.Mute()
	defer func() {
		b.pacer.SetEnabled(pacing)
		b.pacer.Resync(b.sched.CurrentTime())
		b.mixer.Unmute()
	}()

	end := &fastForwardEnd{b: b}
	b.sched.Register(end, target)
	defer b.sched.CancelAll(end)

	// a pending async exit stops one Execute() with no progress. a second
	// call without progress means the board is stuck
	stalled := false
	for b.sched.CurrentTime() < target {
		if b.cpu.Execute(true) {
			stalled = false
			continue
		}
		if stalled {
			return curated.Errorf(FastForwardStalled, b.sched.CurrentTime())
		}
		stalled = true
	}

	return nil
}
