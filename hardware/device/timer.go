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
	"strconv"

	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware/scheduler"
)

// Timer counts periods of virtual time while the board is powered. It is the
// simplest device that owns sync points.
type Timer struct {
	name   string
	sched  *scheduler.Scheduler
	period scheduler.Time

	handle scheduler.Handle
	next   scheduler.Time
	count  uint64
}

func newTimer(ctx Context, name string, spec Spec) (Device, error) {
	if ctx.Scheduler == nil {
		return nil, curated.Errorf(MissingService, name, "scheduler")
	}
	p, err := strconv.ParseUint(spec.Param("period", "59659"), 0, 64)
	if err != nil {
		return nil, curated.Errorf(InvalidParameter, spec.Type, "period", err)
	}
	if p == 0 {
		return nil, curated.Errorf(InvalidParameter, spec.Type, "period", "zero")
	}
	return &Timer{
		name:   name,
		sched:  ctx.Scheduler,
		period: scheduler.Time(p),
	}, nil
}

// Name implements the Device interface.
func (tm *Timer) Name() string { return tm.name }

func (tm *Timer) schedule(t scheduler.Time) {
	tm.sched.Cancel(tm.handle)
	tm.next = t
	tm.handle = tm.sched.Register(tm, t)
}

func (tm *Timer) stop() {
	tm.sched.Cancel(tm.handle)
	tm.handle = 0
	tm.next = 0
}

// ExecuteUntil implements the scheduler.Schedulable interface.
func (tm *Timer) ExecuteUntil(t scheduler.Time) {
	tm.count++
	tm.handle = 0
	tm.schedule(t + tm.period)
}

// Reset implements the Device interface.
func (tm *Timer) Reset(t scheduler.Time) {
	tm.count = 0
	tm.schedule(t + tm.period)
}

// PowerUp implements the Device interface.
func (tm *Timer) PowerUp(t scheduler.Time) {
	tm.count = 0
	tm.schedule(t + tm.period)
}

// PowerDown implements the Device interface.
func (tm *Timer) PowerDown(_ scheduler.Time) {
	tm.stop()
}

// Read implements the Device interface. The low byte of the count.
func (tm *Timer) Read(_ uint16, _ scheduler.Time) uint8 {
	return uint8(tm.count)
}

// Write implements the Device interface. Any write resets the count.
func (tm *Timer) Write(_ uint16, _ uint8, _ scheduler.Time) {
	tm.count = 0
}

// Destroy implements the Destroyer interface.
func (tm *Timer) Destroy() {
	tm.stop()
}

// Count returns the number of periods counted since power up.
func (tm *Timer) Count() uint64 {
	return tm.count
}

// Info implements the Informer interface.
func (tm *Timer) Info() string {
	return fmt.Sprintf("timer period %d ticks", tm.period)
}

// State implements the Stater interface.
func (tm *Timer) State() map[string]string {
	st := map[string]string{
		"count": strconv.FormatUint(tm.count, 10),
	}
	if tm.sched.Pending(tm.handle) {
		st["next"] = strconv.FormatUint(uint64(tm.next), 10)
	}
	return st
}

// SetState implements the Stater interface.
func (tm *Timer) SetState(st map[string]string) error {
	c, err := strconv.ParseUint(st["count"], 10, 64)
	if err != nil {
		return curated.Errorf(InvalidState, tm.name, err)
	}
	tm.count = c

	v, ok := st["next"]
	if !ok {
		tm.stop()
		return nil
	}

	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return curated.Errorf(InvalidState, tm.name, err)
	}
	if scheduler.Time(n) < tm.sched.CurrentTime() {
		return curated.Errorf(InvalidState, tm.name, fmt.Sprintf("next sync point %d is in the past", n))
	}
	tm.schedule(scheduler.Time(n))

	return nil
}
