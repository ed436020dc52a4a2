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

package setup

import (
	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/environment"
	"github.com/taupter/openMSX/hardware"
	"github.com/taupter/openMSX/hardware/hwconfig"
	"github.com/taupter/openMSX/logger"
)

// Store the setup of the board to path. Nothing is stored for the None depth.
func Store(env *environment.Environment, b *hardware.Board, path string, depth Depth) error {
	switch depth {
	case None:
		return nil
	case CompleteState:
		return hardware.StoreState(b, path)
	}

	if b.Machine() == nil {
		return curated.Errorf(hardware.NoMachine)
	}

	tmp := hardware.NewBoard(env)
	defer tmp.Destroy()
	tmp.SetSuppressMessages(true)

	if err := reconstruct(b, tmp, depth); err != nil {
		return curated.Errorf(StoreFailed, err)
	}

	tmp.History().Clear()

	return hardware.StoreState(tmp, path)
}

// reconstruct the board in the temporary board, to the requested depth.
func reconstruct(b *hardware.Board, tmp *hardware.Board, depth Depth) error {
	if err := tmp.LoadMachineConfig(b.MachineName()); err != nil {
		return err
	}
	tmp.PowerUp()

	if depth < Extensions {
		return nil
	}

	for _, e := range b.Extensions() {
		if e.Kind() == hwconfig.ROM {
			continue
		}
		info, err := b.ExtensionInfo(e.Name())
		if err != nil {
			return err
		}
		if _, err := tmp.InsertExtensionByName(e.Kind(), e.ConfigName(), info.Slot); err != nil {
			return err
		}
	}

	if depth < Connectors {
		return nil
	}

	for _, c := range b.Plugging().Connectors() {
		if c.Plugged() == "" {
			continue
		}
		if err := tmp.Plug(c.Name, c.Plugged()); err != nil {
			logger.Logf(logger.Allow, "setup", "skipping connector %s: %v", c.Name, err)
		}
	}

	if depth < Media {
		return nil
	}

	// cartridges are media
	for _, e := range b.Extensions() {
		if e.Kind() != hwconfig.ROM {
			continue
		}
		info, err := b.ExtensionInfo(e.Name())
		if err != nil {
			return err
		}
		if _, err := tmp.InsertExtensionByName(hwconfig.ROM, e.ConfigName(), info.Slot); err != nil {
			logger.Logf(logger.Allow, "setup", "skipping cartridge %s: %v", e.Name(), err)
		}
	}

	for _, n := range b.MediaProviders() {
		info, err := b.MediaInfo(n)
		if err != nil || info.Image == "" {
			continue
		}
		if _, ok := tmp.FindMediaProvider(n); !ok {
			logger.Logf(logger.Allow, "setup", "skipping media %s: no such media target", n)
			continue
		}
		if err := tmp.InsertMedia(n, info.Image); err != nil {
			logger.Logf(logger.Allow, "setup", "skipping media %s: %v", n, err)
		}
	}

	return nil
}

// Restore a setup from path. A failed restore leaves nothing behind.
func Restore(env *environment.Environment, path string) (*hardware.Board, error) {
	return hardware.LoadState(env, path)
}
