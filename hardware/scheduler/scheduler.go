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

// Package scheduler maintains the virtual time of a board and the set of
// pending sync points. A sync point is a one-shot callback that fires when
// virtual time reaches it.
//
// Sync points are ordered by time and then by the order in which they were
// registered. This ordering is what makes replay deterministic: two sync
// points registered for the same time will always fire in the same order.
//
// Sync points registered by a firing callback are supported. If the new sync
// point is due before the end of the current RunUntil() it will fire during
// that call.
package scheduler

import (
	"container/heap"
	"fmt"
	"time"

	"github.com/taupter/openMSX/curated"
)

// Sentinal error patterns.
const (
	PendingSyncPoints = "scheduler: cannot set state with %d pending sync points"
)

// Time is virtual time measured in ticks of the master clock.
type Time uint64

// TicksPerSecond is the number of ticks in one second of virtual time.
const TicksPerSecond Time = 3579545 * 8

// FromDuration converts a wall clock duration to an amount of virtual time.
func FromDuration(d time.Duration) Time {
	if d <= 0 {
		return 0
	}
	return Time(d.Seconds() * float64(TicksPerSecond))
}

// Duration converts virtual time to the equivalent wall clock duration.
func (t Time) Duration() time.Duration {
	return time.Duration(float64(t) / float64(TicksPerSecond) * float64(time.Second))
}

func (t Time) String() string {
	return fmt.Sprintf("%.6fs", float64(t)/float64(TicksPerSecond))
}

// Schedulable is implemented by anything that can own a sync point.
type Schedulable interface {
	ExecuteUntil(t Time)
}

// Handle identifies a registered sync point. The zero value is never returned
// by Register() and so can be used to indicate no sync point.
type Handle uint64

type syncPoint struct {
	time   Time
	seq    uint64
	owner  Schedulable
	handle Handle

	// position in the heap. maintained by the queue methods
	index int
}

// queue implements heap.Interface and orders sync points by time and then by
// registration sequence.
type queue []*syncPoint

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].time == q[j].time {
		return q[i].seq < q[j].seq
	}
	return q[i].time < q[j].time
}

func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *queue) Push(x any) {
	sp := x.(*syncPoint)
	sp.index = len(*q)
	*q = append(*q, sp)
}

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	sp := old[n-1]
	old[n-1] = nil
	sp.index = -1
	*q = old[:n-1]
	return sp
}

// Scheduler is the virtual clock and sync point queue of a single board. It is
// not safe for concurrent use. All methods must be called from the foreground
// goroutine.
type Scheduler struct {
	now Time

	queue   queue
	handles map[Handle]*syncPoint

	// registration sequence. also used to generate handles
	seq uint64

	// RunUntil() is not re-entrant
	running bool
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler() *Scheduler {
	return &Scheduler{
		handles: make(map[Handle]*syncPoint),
	}
}

// CurrentTime returns the current virtual time.
func (s *Scheduler) CurrentTime() Time {
	return s.now
}

// Register a sync point for the owner at time t. Registering a sync point in
// the past is a programming error and will cause a panic.
func (s *Scheduler) Register(owner Schedulable, t Time) Handle {
	if t < s.now {
		panic(fmt.Sprintf("scheduler: sync point registered in the past (%d < %d)", t, s.now))
	}
	if owner == nil {
		panic("scheduler: sync point registered without an owner")
	}

	s.seq++
	sp := &syncPoint{
		time:   t,
		seq:    s.seq,
		owner:  owner,
		handle: Handle(s.seq),
	}
	heap.Push(&s.queue, sp)
	s.handles[sp.handle] = sp

	return sp.handle
}

// Cancel a sync point before it fires. Returns false if the sync point has
// already fired or been cancelled.
func (s *Scheduler) Cancel(h Handle) bool {
	sp, ok := s.handles[h]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, sp.index)
	delete(s.handles, h)
	return true
}

// CancelAll cancels every pending sync point belonging to owner. Returns the
// number of sync points cancelled.
//
// Must be called whenever an owner is destroyed. A sync point must never fire
// for an owner that no longer exists.
func (s *Scheduler) CancelAll(owner Schedulable) int {
	var n int
	for h, sp := range s.handles {
		if sp.owner == owner {
			heap.Remove(&s.queue, sp.index)
			delete(s.handles, h)
			n++
		}
	}
	return n
}

// Pending returns true if the sync point has not yet fired or been cancelled.
func (s *Scheduler) Pending(h Handle) bool {
	_, ok := s.handles[h]
	return ok
}

// Next returns the time of the next sync point. The second return value is
// false if there are no pending sync points.
func (s *Scheduler) Next() (Time, bool) {
	if len(s.queue) == 0 {
		return 0, false
	}
	return s.queue[0].time, true
}

// Len returns the number of pending sync points.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// RunUntil fires every sync point due at or before t. Sync points fire in
// time order with ties broken by registration order. Virtual time is set to
// the time of each sync point as it fires and to t once all due sync points
// have fired.
//
// Sync points registered by a firing callback are included if they are due.
// Calling RunUntil() from a callback is a programming error and will cause a
// panic.
func (s *Scheduler) RunUntil(t Time) {
	if s.running {
		panic("scheduler: RunUntil() is not re-entrant")
	}
	s.running = true
	defer func() {
		s.running = false
	}()

	for len(s.queue) > 0 && s.queue[0].time <= t {
		sp := heap.Pop(&s.queue).(*syncPoint)
		delete(s.handles, sp.handle)
		if sp.time > s.now {
			s.now = sp.time
		}
		sp.owner.ExecuteUntil(sp.time)
	}

	if t > s.now {
		s.now = t
	}
}

// State is the part of the scheduler that is stored in a save state.
type State struct {
	Time Time `yaml:"time"`
}

// State returns the current state of the scheduler. Pending sync points are
// not part of the state. Owners re-register them when they are restored.
func (s *Scheduler) State() State {
	return State{Time: s.now}
}

// SetState restores the scheduler time. Only valid while there are no pending
// sync points.
func (s *Scheduler) SetState(st State) error {
	if len(s.queue) > 0 {
		return curated.Errorf(PendingSyncPoints, len(s.queue))
	}
	s.now = st.Time
	return nil
}
