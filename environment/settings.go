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

package environment

import (
	"github.com/taupter/openMSX/prefs"
)

// Setting keys.
const (
	KeyPower                = "power"
	KeyPause                = "pause"
	KeyThrottle             = "throttle"
	KeyDefaultMachine       = "default_machine"
	KeySaveSetupAtExitName  = "save_setup_at_exit_name"
	KeySaveSetupAtExitDepth = "save_setup_at_exit_depth"
)

// DefaultMachine is the machine loaded when no other machine is requested.
const DefaultMachine = "C-BIOS_MSX2+"

// Settings of the session. The hooks for Power and Pause are installed by the
// session.
type Settings struct {
	// power state of the active board
	Power prefs.Bool

	// emulation of the active board is paused
	Pause prefs.Bool

	// pace virtual time against the wall clock
	Throttle prefs.Bool

	DefaultMachine prefs.String

	// setup to store when the session quits. an empty name means no setup is
	// stored. the depth is parsed by the setup package
	SaveSetupAtExitName  prefs.String
	SaveSetupAtExitDepth prefs.String
}

// NewSettings returns settings with their default values.
func NewSettings() *Settings {
	s := &Settings{}
	s.SetDefaults()
	return s
}

// SetDefaults reverts every setting to its default value. Hooks are called.
func (s *Settings) SetDefaults() {
	_ = s.Power.Set(true)
	_ = s.Pause.Set(false)
	_ = s.Throttle.Set(true)
	_ = s.DefaultMachine.Set(DefaultMachine)
	_ = s.SaveSetupAtExitName.Set("")
	_ = s.SaveSetupAtExitDepth.Set("extensions")
}

// AddToDisk adds the persisted settings to dsk. The power and pause settings
// are not persisted.
func (s *Settings) AddToDisk(dsk *prefs.Disk) error {
	for key, p := range map[string]prefs.Pref{
		KeyThrottle:             &s.Throttle,
		KeyDefaultMachine:       &s.DefaultMachine,
		KeySaveSetupAtExitName:  &s.SaveSetupAtExitName,
		KeySaveSetupAtExitDepth: &s.SaveSetupAtExitDepth,
	} {
		if err := dsk.Add(key, p); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the setting with the key. Unlike AddToDisk every setting can
// be found.
func (s *Settings) Find(key string) (prefs.Pref, bool) {
	switch key {
	case KeyPower:
		return &s.Power, true
	case KeyPause:
		return &s.Pause, true
	case KeyThrottle:
		return &s.Throttle, true
	case KeyDefaultMachine:
		return &s.DefaultMachine, true
	case KeySaveSetupAtExitName:
		return &s.SaveSetupAtExitName, true
	case KeySaveSetupAtExitDepth:
		return &s.SaveSetupAtExitDepth, true
	}
	return nil, false
}
