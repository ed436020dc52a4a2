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

// Package cpu is the driving loop of a board. The instruction interpreter
// itself is an opaque Core. The loop runs the core in quanta of virtual time
// and runs the scheduler at the end of every quantum.
//
// The loop is cancelled cooperatively. An exit request is only noticed between
// quanta and so virtual time and device state are always consistent when
// Execute() returns. ExitLoopAsync() can be called from any goroutine.
// ExitLoopSync() is for the foreground goroutine, normally from a sync point
// callback.
package cpu

import (
	"sync/atomic"

	"github.com/taupter/openMSX/hardware/scheduler"
)

// Quantum is the largest amount of virtual time the core is asked to run
// before the scheduler is run and the exit flags are checked.
const Quantum = scheduler.TicksPerSecond / 1000

// SliceQuanta is the number of quanta in one slice of normal execution.
const SliceQuanta = 20

// Core is the instruction interpreter. Run() executes instructions from the
// from time until the until time and returns the time actually reached. The
// time reached may be later than until by the length of one instruction but
// never by more than one Quantum.
type Core interface {
	Run(from, until scheduler.Time) scheduler.Time
	Reset(t scheduler.Time)
}

// idle is a Core that executes nothing. Time passes.
type idle struct{}

func (idle) Run(_, until scheduler.Time) scheduler.Time { return until }
func (idle) Reset(_ scheduler.Time)                     {}

// CPU drives a Core and the Scheduler.
type CPU struct {
	sched *scheduler.Scheduler
	core  Core

	// exit requested by another goroutine
	exitAsync atomic.Bool

	// exit requested by the foreground goroutine
	exitSync bool

	paused bool
}

// NewCPU is the preferred method of initialisation for the CPU type. If core
// is nil an idle core is used.
func NewCPU(sched *scheduler.Scheduler, core Core) *CPU {
	if core == nil {
		core = idle{}
	}
	return &CPU{
		sched: sched,
		core:  core,
	}
}

// Execute runs quanta until an exit is requested. In normal mode at most one
// slice of SliceQuanta quanta is run. In fast-forward mode execution continues
// until an exit is requested.
//
// A paused CPU only runs in fast-forward mode. Returns false if no virtual
// time elapsed.
func (c *CPU) Execute(fastForward bool) bool {
	start := c.sched.CurrentTime()
	c.exitSync = false

	// fast-forward runs a paused CPU
	if c.paused && !fastForward {
		return false
	}

	for q := 0; fastForward || q < SliceQuanta; q++ {
		if c.exitAsync.Swap(false) || c.exitSync {
			break
		}

		now := c.sched.CurrentTime()
		until := now + Quantum

		// never run past the next sync point
		if next, ok := c.sched.Next(); ok && next < until {
			until = next
		}

		reached := c.core.Run(now, until)
		if reached < until {
			reached = until
		}
		if reached > until+Quantum {
			reached = until + Quantum
		}

		c.sched.RunUntil(reached)
	}

	return c.sched.CurrentTime() > start
}

// ExitLoopSync requests that Execute() returns at the end of the current
// quantum. Must only be called from the foreground goroutine.
func (c *CPU) ExitLoopSync() {
	c.exitSync = true
}

// ExitLoopAsync requests that Execute() returns at the end of the current
// quantum. Safe to call from any goroutine, any number of times.
func (c *CPU) ExitLoopAsync() {
	c.exitAsync.Store(true)
}

// SetPaused stops Execute() from running the core.
func (c *CPU) SetPaused(paused bool) {
	c.paused = paused
}

// Paused returns true if the CPU is paused.
func (c *CPU) Paused() bool {
	return c.paused
}

// Reset the core.
func (c *CPU) Reset(t scheduler.Time) {
	c.core.Reset(t)
}
