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

// Package environment contains the globally scoped services shared by every
// board in a session. The hardware description loader, the device factory,
// the notification bus, the global mixer and the session settings.
package environment

import (
	"fmt"
	"sync/atomic"

	"github.com/taupter/openMSX/hardware/device"
	"github.com/taupter/openMSX/hardware/hwconfig"
	"github.com/taupter/openMSX/hardware/mixer"
	"github.com/taupter/openMSX/hardware/plugging"
	"github.com/taupter/openMSX/notifications"
	"github.com/taupter/openMSX/prefs"
)

// Environment is used to provide context for a board. Every board created
// with the same Environment shares its services.
type Environment struct {
	// hardware descriptions
	Loader hwconfig.Loader

	// constructors for every device type a description can name
	Factory *device.Factory

	Notifications *notifications.Bus

	// the global mixer. every board mixer is a child of this mixer
	Mixer *mixer.Mixer

	Settings *Settings

	// the pluggables that can be plugged into a connector of any board
	Pluggables []plugging.Pluggable

	// the settings file. nil if settings are not persisted
	Disk *prefs.Disk

	boardID atomic.Uint64
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
func NewEnvironment(loader hwconfig.Loader) *Environment {
	return &Environment{
		Loader:        loader,
		Factory:       device.NewFactory(),
		Notifications: &notifications.Bus{},
		Mixer:         mixer.NewMixer(nil),
		Settings:      NewSettings(),
		Pluggables:    plugging.DefaultPluggables,
	}
}

// NextBoardID returns a new board identifier. Identifiers are of the form
// "machineN" and are never reused.
func (env *Environment) NextBoardID() string {
	return fmt.Sprintf("machine%d", env.boardID.Add(1))
}

// Publish a notification on the environment's bus.
func (env *Environment) Publish(notice notifications.Notice, source string, detail string) {
	env.Notifications.Publish(notifications.Event{
		Notice: notice,
		Source: source,
		Detail: detail,
	})
}

// LoadSettings adds the settings to a prefs.Disk at path and loads any values
// already in the file.
func (env *Environment) LoadSettings(path string) error {
	dsk := prefs.NewDisk(path)
	if err := env.Settings.AddToDisk(dsk); err != nil {
		return err
	}
	if err := dsk.Load(); err != nil {
		return err
	}
	env.Disk = dsk
	return nil
}

// SaveSettings saves the settings if they were loaded with LoadSettings().
func (env *Environment) SaveSettings() error {
	if env.Disk == nil {
		return nil
	}
	return env.Disk.Save()
}
