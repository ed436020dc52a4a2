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
	"github.com/taupter/openMSX/hardware/media"
	"github.com/taupter/openMSX/notifications"
	"github.com/taupter/openMSX/recorder"
)

// RegisterMediaProvider adds a media provider to the board. Registering the
// same name twice will cause a panic.
func (b *Board) RegisterMediaProvider(name string, p media.Provider) {
	b.media.Register(name, p)
}

// UnregisterMediaProvider removes a media provider from the board.
func (b *Board) UnregisterMediaProvider(p media.Provider) {
	b.media.Unregister(p)
}

// FindMediaProvider returns the media provider registered with name.
func (b *Board) FindMediaProvider(name string) (media.Provider, bool) {
	return b.media.Find(name)
}

// MediaProviders returns the names of every registered media provider.
func (b *Board) MediaProviders() []string {
	return b.media.Names()
}

// InsertMedia inserts the image into the named media provider.
func (b *Board) InsertMedia(target string, image string) error {
	p, ok := b.media.Find(target)
	if !ok {
		return curated.Errorf(MediaNotFound, target)
	}
	if err := p.InsertMedia(image); err != nil {
		return curated.Errorf(MediaError, target, err)
	}

	b.history.Record(b.sched.CurrentTime(), recorder.KindMedia, target, image)
	b.publish(notifications.NotifyMediaChange, target)

	return nil
}

// EjectMedia ejects the media from the named media provider.
func (b *Board) EjectMedia(target string) error {
	p, ok := b.media.Find(target)
	if !ok {
		return curated.Errorf(MediaNotFound, target)
	}
	p.EjectMedia()

	b.history.Record(b.sched.CurrentTime(), recorder.KindMedia, target, "")
	b.publish(notifications.NotifyMediaChange, target)

	return nil
}

// Plug a pluggable into a connector.
func (b *Board) Plug(connector string, pluggable string) error {
	if err := b.plugging.Plug(connector, pluggable); err != nil {
		return curated.Errorf(ConnectorError, err)
	}

	b.history.Record(b.sched.CurrentTime(), recorder.KindPlug, connector, pluggable)
	b.publish(notifications.NotifyConnectorChange, connector)

	return nil
}

// Unplug whatever is plugged into the connector.
func (b *Board) Unplug(connector string) error {
	if err := b.plugging.Unplug(connector); err != nil {
		return curated.Errorf(ConnectorError, err)
	}

	b.history.Record(b.sched.CurrentTime(), recorder.KindUnplug, connector)
	b.publish(notifications.NotifyConnectorChange, connector)

	return nil
}
