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
	"github.com/taupter/openMSX/environment"
	"github.com/taupter/openMSX/hardware/device"
	"github.com/taupter/openMSX/hardware/hwconfig"
	"github.com/taupter/openMSX/hardware/media"
	"github.com/taupter/openMSX/hardware/scheduler"
	"github.com/taupter/openMSX/recorder"
	"github.com/taupter/openMSX/savestate"
)

// StateKind is the savestate kind of a complete board state.
const StateKind = "board"

// StateVersion is the current version of the State type.
//
//	version 1: machine, extensions and device state
//	version 2: connectors and media
//	version 3: replay history
const StateVersion = 3

// Sentinal error patterns.
const (
	UnsupportedVersion = "board: unsupported state version: %d"
	RestoreFailed      = "board: restore: %v"
)

// ExtensionState is an installed extension in a State.
type ExtensionState struct {
	Config string `yaml:"config"`
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Slot   string `yaml:"slot,omitempty"`
}

// DeviceState is the state of a device that implements device.Stater.
type DeviceState struct {
	Name  string            `yaml:"name"`
	State map[string]string `yaml:"state"`
}

// ConnectorState is a pluggable plugged into a connector.
type ConnectorState struct {
	Connector string `yaml:"connector"`
	Pluggable string `yaml:"pluggable,omitempty"`
}

// State is the complete state of a board.
type State struct {
	Version    int              `yaml:"version"`
	Scheduler  scheduler.State  `yaml:"scheduler"`
	Machine    string           `yaml:"machine"`
	Extensions []ExtensionState `yaml:"extensions,omitempty"`
	Devices    []DeviceState    `yaml:"devices,omitempty"`
	Powered    bool             `yaml:"powered"`

	// version 2
	Connectors []ConnectorState `yaml:"connectors,omitempty"`
	Media      []media.Info     `yaml:"media,omitempty"`

	// version 3
	History []recorder.Entry `yaml:"history,omitempty"`
}

// connectorStates returns the state of every connector. If all is false only
// connectors with something plugged in are returned.
func (b *Board) connectorStates(all bool) []ConnectorState {
	var l []ConnectorState
	for _, c := range b.plugging.Connectors() {
		if all || c.Plugged() != "" {
			l = append(l, ConnectorState{Connector: c.Name, Pluggable: c.Plugged()})
		}
	}
	return l
}

// State returns the complete state of the board.
func (b *Board) State() (*State, error) {
	if b.machine == nil {
		return nil, curated.Errorf(NoMachine)
	}

	st := &State{
		Version:   StateVersion,
		Scheduler: b.sched.State(),
		Machine:   b.machine.ConfigName(),
		Powered:   b.powered,
	}

	for _, e := range b.extensions {
		st.Extensions = append(st.Extensions, ExtensionState{
			Config: e.ConfigName(),
			Name:   e.Name(),
			Kind:   e.Kind().String(),
			Slot:   b.slotOf(e),
		})
	}

	for _, d := range b.devices.All() {
		if s, ok := d.(device.Stater); ok {
			st.Devices = append(st.Devices, DeviceState{Name: d.Name(), State: s.State()})
		}
	}

	st.Connectors = b.connectorStates(false)

	for _, n := range b.media.Names() {
		info, err := b.MediaInfo(n)
		if err == nil && info.Image != "" {
			st.Media = append(st.Media, info)
		}
	}

	st.History = b.history.Entries()

	return st, nil
}

// RestoreBoard creates a new board from a State. If the state cannot be
// restored the partially built board is destroyed and an error returned.
func RestoreBoard(env *environment.Environment, st *State) (*Board, error) {
	b := NewBoard(env)
	if err := b.restore(st); err != nil {
		b.Destroy()
		return nil, curated.Errorf(RestoreFailed, err)
	}
	return b, nil
}

func (b *Board) restore(st *State) error {
	if st.Version < 1 || st.Version > StateVersion {
		return curated.Errorf(UnsupportedVersion, st.Version)
	}

	// virtual time must be restored before any device registers a sync point
	if err := b.sched.SetState(st.Scheduler); err != nil {
		return err
	}

	if err := b.LoadMachineConfig(st.Machine); err != nil {
		return err
	}

	for _, e := range st.Extensions {
		kind, err := hwconfig.ParseKind(e.Kind)
		if err != nil {
			return err
		}
		cfg, err := b.LoadExtensionConfig(kind, e.Config, e.Slot)
		if err != nil {
			return err
		}
		cfg.SetName(e.Name)
		if err := b.InsertExtension(cfg); err != nil {
			return err
		}
	}

	if st.Powered {
		b.PowerUp()
	}

	for _, ds := range st.Devices {
		d, ok := b.devices.Find(ds.Name)
		if !ok {
			return curated.Errorf(DeviceNotFound, ds.Name)
		}
		if s, ok := d.(device.Stater); ok {
			if err := s.SetState(ds.State); err != nil {
				return err
			}
		}
	}

	if st.Version >= 2 {
		for _, c := range st.Connectors {
			if err := b.plugging.Plug(c.Connector, c.Pluggable); err != nil {
				return err
			}
		}
		for _, m := range st.Media {
			p, ok := b.media.Find(m.Target)
			if !ok {
				return curated.Errorf(MediaNotFound, m.Target)
			}
			if err := p.InsertMedia(m.Image); err != nil {
				return curated.Errorf(MediaError, m.Target, err)
			}
		}
	}

	if st.Version >= 3 {
		b.history.SetEntries(st.History)
	} else {
		b.history.Clear()
	}

	return nil
}

// StoreState writes the complete state of the board to a file.
func StoreState(b *Board, path string) error {
	st, err := b.State()
	if err != nil {
		return err
	}
	return savestate.Write(path, StateKind, StateVersion, st)
}

// LoadState reads a complete board state from a file and creates a new board
// from it.
func LoadState(env *environment.Environment, path string) (*Board, error) {
	var st State
	version, err := savestate.Read(path, StateKind, &st)
	if err != nil {
		return nil, err
	}
	st.Version = version
	return RestoreBoard(env, &st)
}
