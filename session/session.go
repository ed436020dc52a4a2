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

// Package session is the top level of the emulation. A session owns a set of
// boards, at most one of which is the active board, and drives the active
// board from its run loop.
//
// The goroutine that creates the session is the foreground goroutine. All
// methods must be called from the foreground goroutine except for
// RequestExit(), Post() and Quit(), which can be called from any goroutine.
// Work that needs to be done by the foreground goroutine on behalf of another
// goroutine should be posted as an Event.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/taupter/openMSX/assert"
	"github.com/taupter/openMSX/environment"
	"github.com/taupter/openMSX/hardware"
	"github.com/taupter/openMSX/logger"
)

// Sentinal error patterns.
const (
	UnknownBoard  = "session: unknown board: %s"
	NotMember     = "session: %s is not a board of this session"
	NoActiveBoard = "session: no active board"
	SettingFailed = "session: setting %s: %v"
)

// idleSleep is how long the run loop sleeps when it has nothing to do.
const idleSleep = 20 * time.Millisecond

// Event is work posted to the foreground goroutine.
type Event interface {
	Handle(s *Session) error
}

// EventFunc allows a function to be used as an Event.
type EventFunc func(s *Session) error

// Handle implements the Event interface.
func (f EventFunc) Handle(s *Session) error {
	return f(s)
}

// Session is the set of boards and the run loop.
type Session struct {
	env *environment.Environment

	boards []*hardware.Board

	// the active board is written by the foreground goroutine under lock and
	// read by the foreground goroutine without it. other goroutines must
	// take the lock
	activeCrit sync.Mutex
	active     *hardware.Board

	// number of outstanding Block() calls
	blocked int

	paused bool

	postCrit sync.Mutex
	posted   []Event

	quit atomic.Bool

	foreground uint64

	// replaceable for testing
	sleep func(time.Duration)
}

// NewSession is the preferred method of initialisation for the Session type.
// The calling goroutine becomes the foreground goroutine.
func NewSession(env *environment.Environment) *Session {
	s := &Session{
		env:        env,
		foreground: assert.GetGoRoutineID(),
		sleep:      time.Sleep,
	}
	s.installSettingHooks()
	return s
}

// SetSleep replaces the function used by the run loop to sleep.
func (s *Session) SetSleep(sleep func(time.Duration)) {
	s.sleep = sleep
}

// Environment returns the environment shared by every board of the session.
func (s *Session) Environment() *environment.Environment {
	return s.env
}

func (s *Session) isForeground() bool {
	return assert.GetGoRoutineID() == s.foreground
}

// RequestExit asks the active board to end its current slice of execution.
// Safe to call from any goroutine.
func (s *Session) RequestExit() {
	if s.isForeground() {
		if s.active != nil {
			s.active.ExitLoopSync()
		}
		return
	}

	s.activeCrit.Lock()
	b := s.active
	s.activeCrit.Unlock()

	if b != nil {
		b.ExitLoopAsync()
	}
}

// Post an event to be handled by the foreground goroutine. Events are handled
// in the order they are posted at the start of the next tick. Safe to call
// from any goroutine.
func (s *Session) Post(ev Event) {
	s.postCrit.Lock()
	s.posted = append(s.posted, ev)
	s.postCrit.Unlock()
	s.RequestExit()
}

// Quit ends the run loop at the start of the next tick. Safe to call from any
// goroutine.
func (s *Session) Quit() {
	s.quit.Store(true)
	s.RequestExit()
}

// drain handles every posted event.
func (s *Session) drain() {
	s.postCrit.Lock()
	posted := s.posted
	s.posted = nil
	s.postCrit.Unlock()

	for _, ev := range posted {
		if err := ev.Handle(s); err != nil {
			logger.Log(logger.Allow, "session", err)
		}
	}
}

// Tick is a single iteration of the run loop. Posted events are handled and
// if the session is not blocked the active board runs for one slice. If
// there was nothing to do the tick sleeps. Returns false if the session has
// been asked to quit.
func (s *Session) Tick() bool {
	assert.Foreground()

	s.drain()

	if s.quit.Load() {
		return false
	}

	if s.blocked == 0 && s.active != nil {
		if s.active.Execute() {
			return true
		}
	}

	s.sleep(idleSleep)

	return true
}

// Run ticks until Quit() is called or the context is cancelled. The setup is
// saved if the save setup at exit settings ask for it.
func (s *Session) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, s.Quit)
	defer stop()

	for s.Tick() {
	}

	if err := s.saveSetupAtExit(); err != nil {
		logger.Log(logger.Allow, "session", err)
	}

	return ctx.Err()
}

// Block stops the run loop from running the active board. Calls to Block()
// are counted and the loop only resumes after the same number of calls to
// Unblock(). The global mixer is muted while blocked.
func (s *Session) Block() {
	s.blocked++
	if s.blocked == 1 {
		s.env.Mixer.Mute()
	}
	s.RequestExit()
}

// Unblock reverses a call to Block().
func (s *Session) Unblock() {
	if s.blocked == 0 {
		return
	}
	s.blocked--
	if s.blocked == 0 {
		s.env.Mixer.Unmute()
	}
}

// Blocked returns true if the run loop is blocked.
func (s *Session) Blocked() bool {
	return s.blocked > 0
}

// Pause the active board. Equivalent to setting the pause setting.
func (s *Session) Pause() error {
	return s.env.Settings.Pause.Set(true)
}

// Unpause the active board. Equivalent to clearing the pause setting.
func (s *Session) Unpause() error {
	return s.env.Settings.Pause.Set(false)
}

// Paused returns true if the session is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// PowerOn the active board. Equivalent to setting the power setting.
func (s *Session) PowerOn() error {
	return s.env.Settings.Power.Set(true)
}
