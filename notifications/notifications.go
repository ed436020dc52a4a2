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

package notifications

import "sync"

// Notice describes lifecycle events of boards and sessions.
type Notice string

// List of defined notifications.
const (
	// a board has been created or destroyed
	NotifyHardwareAdd    Notice = "NotifyHardwareAdd"
	NotifyHardwareRemove Notice = "NotifyHardwareRemove"

	// a board has become the active board
	NotifyHardwareSelect Notice = "NotifyHardwareSelect"

	// the active board has been replaced. sent before NotifyHardwareSelect
	NotifyMachineLoaded Notice = "NotifyMachineLoaded"

	// a board has been activated or deactivated by the session
	NotifyMachineActivated   Notice = "NotifyMachineActivated"
	NotifyMachineDeactivated Notice = "NotifyMachineDeactivated"

	// an extension has been inserted or removed
	NotifyExtensionAdd    Notice = "NotifyExtensionAdd"
	NotifyExtensionRemove Notice = "NotifyExtensionRemove"

	// a board has been reset or powered up
	NotifyBoot Notice = "NotifyBoot"

	// media has been inserted or ejected
	NotifyMediaChange Notice = "NotifyMediaChange"

	// a pluggable has been plugged or unplugged
	NotifyConnectorChange Notice = "NotifyConnectorChange"

	// the session has paused or resumed
	NotifyPause   Notice = "NotifyPause"
	NotifyUnpause Notice = "NotifyUnpause"
)

// Event is a published Notice. Source identifies the board (or the empty
// string for the session) and Detail is specific to the Notice. For extension
// notices it is the instance name of the extension.
type Event struct {
	Notice Notice
	Source string
	Detail string
}

// Notify is implemented by anything that wants to receive notifications.
type Notify interface {
	Notify(ev Event) error
}

// NotifyFunc allows a function to be used as a Notify implementation.
type NotifyFunc func(ev Event) error

// Notify implements the Notify interface.
func (f NotifyFunc) Notify(ev Event) error {
	return f(ev)
}

// Bus distributes events to subscribers. The zero value is ready to use.
type Bus struct {
	crit        sync.Mutex
	subscribers []subscription
	nextID      int
}

type subscription struct {
	id     int
	notify Notify
}

// Subscribe adds a subscriber to the bus. The returned function removes the
// subscription.
func (b *Bus) Subscribe(n Notify) (unsubscribe func()) {
	b.crit.Lock()
	defer b.crit.Unlock()

	b.nextID++
	id := b.nextID
	b.subscribers = append(b.subscribers, subscription{id: id, notify: n})

	return func() {
		b.crit.Lock()
		defer b.crit.Unlock()
		for i, s := range b.subscribers {
			if s.id == id {
				b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Publish sends the event to every subscriber in subscription order. Errors
// returned by subscribers are collected and returned but do not stop
// delivery. A nil Bus discards every event.
func (b *Bus) Publish(ev Event) []error {
	if b == nil {
		return nil
	}

	b.crit.Lock()
	subs := make([]subscription, len(b.subscribers))
	copy(subs, b.subscribers)
	b.crit.Unlock()

	var errs []error
	for _, s := range subs {
		if err := s.notify.Notify(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
