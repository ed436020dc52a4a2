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

package cpu_test

import (
	"sync"
	"testing"
	"time"

	"github.com/taupter/openMSX/hardware/cpu"
	"github.com/taupter/openMSX/hardware/scheduler"
	"github.com/taupter/openMSX/test"
)

// overshootCore always runs a few ticks past the requested time, as an
// interpreter does when the last instruction straddles the limit
type overshootCore struct {
	resets int
}

func (c *overshootCore) Run(from, until scheduler.Time) scheduler.Time {
	return until + 7
}

func (c *overshootCore) Reset(_ scheduler.Time) {
	c.resets++
}

type exitAt struct {
	c *cpu.CPU
}

func (e exitAt) ExecuteUntil(_ scheduler.Time) {
	e.c.ExitLoopSync()
}

func TestSlice(t *testing.T) {
	sched := scheduler.NewScheduler()
	c := cpu.NewCPU(sched, nil)

	test.ExpectSuccess(t, c.Execute(false))
	test.ExpectEquality(t, sched.CurrentTime(), cpu.Quantum*cpu.SliceQuanta)
}

func TestPaused(t *testing.T) {
	sched := scheduler.NewScheduler()
	c := cpu.NewCPU(sched, nil)
	c.SetPaused(true)
	test.ExpectFailure(t, c.Execute(false))
	test.ExpectEquality(t, sched.CurrentTime(), scheduler.Time(0))
	c.SetPaused(false)
	test.ExpectSuccess(t, c.Execute(false))
}

func TestPausedFastForward(t *testing.T) {
	sched := scheduler.NewScheduler()
	c := cpu.NewCPU(sched, nil)
	c.SetPaused(true)

	sched.Register(exitAt{c: c}, cpu.Quantum*2)
	test.ExpectSuccess(t, c.Execute(true))
	test.ExpectEquality(t, sched.CurrentTime(), cpu.Quantum*2)
	test.ExpectSuccess(t, c.Paused())
}

func TestExitLoopSync(t *testing.T) {
	sched := scheduler.NewScheduler()
	core := &overshootCore{}
	c := cpu.NewCPU(sched, core)

	target := cpu.Quantum*3 + 100
	sched.Register(exitAt{c: c}, target)

	test.ExpectSuccess(t, c.Execute(true))

	// the quantum is clamped to the sync point so the overshoot is the
	// overshoot of the core and is less than one quantum
	now := sched.CurrentTime()
	test.ExpectSuccess(t, now >= target)
	test.ExpectSuccess(t, now-target < cpu.Quantum)

	c.Reset(now)
	test.ExpectEquality(t, core.resets, 1)
}

func TestExitLoopAsync(t *testing.T) {
	sched := scheduler.NewScheduler()
	c := cpu.NewCPU(sched, nil)

	// an exit requested before Execute() is honoured immediately
	c.ExitLoopAsync()
	c.ExitLoopAsync()
	test.ExpectFailure(t, c.Execute(true))

	// request exit from another goroutine while fast-forwarding
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		time.Sleep(10 * time.Millisecond)
		c.ExitLoopAsync()
	}()

	test.ExpectSuccess(t, c.Execute(true))
	wg.Wait()
	test.ExpectSuccess(t, sched.CurrentTime() > 0)
}
