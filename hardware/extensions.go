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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware/hwconfig"
	"github.com/taupter/openMSX/hardware/slots"
	"github.com/taupter/openMSX/logger"
	"github.com/taupter/openMSX/notifications"
	"github.com/taupter/openMSX/recorder"
)

// LoadExtensionConfig loads and validates an extension description. The
// configuration is not inserted into the board. For the ROM kind the name is
// the path to the ROM image and the instance name is the filename of the
// image.
func (b *Board) LoadExtensionConfig(kind hwconfig.Kind, name string, slotSpec string) (*hwconfig.Config, error) {
	if kind == hwconfig.Machine {
		return nil, curated.Errorf(hwconfig.InvalidDescription, name, "a machine is not an extension")
	}

	if err := slots.ParseSlotSpec(slotSpec); err != nil {
		return nil, err
	}

	desc, err := b.env.Loader.Load(kind, name)
	if err != nil {
		return nil, err
	}

	cfg := b.newConfig(kind, name, slotSpec, desc)
	if kind == hwconfig.ROM {
		cfg.SetName(filepath.Base(name))
	}

	if err := cfg.Validate(b.env.Factory.Known); err != nil {
		return nil, err
	}

	return cfg, nil
}

// uniqueExtensionName returns name if no installed extension has that
// instance name. Otherwise "name (2)", "name (3)" and so on.
func (b *Board) uniqueExtensionName(name string) string {
	if _, ok := b.FindExtension(name); !ok {
		return name
	}
	for n := 2; ; n++ {
		s := fmt.Sprintf("%s (%d)", name, n)
		if _, ok := b.FindExtension(s); !ok {
			return s
		}
	}
}

// InsertExtension installs the configuration. Its slot is allocated and its
// devices are created. If any step fails the board is left exactly as it was
// before the call.
//
// NotifyExtensionAdd is published on success.
func (b *Board) InsertExtension(cfg *hwconfig.Config) error {
	if b.machine == nil {
		return curated.Errorf(NoMachine)
	}

	if err := cfg.Validate(b.env.Factory.Known); err != nil {
		return err
	}

	for _, r := range cfg.Description().Requires {
		if !b.hasConfig(r) {
			return curated.Errorf(MissingRequirement, cfg.Name(), r)
		}
	}

	// the devices are created under the unique name. the configuration gets
	// its requested name back if the insertion fails
	requested := cfg.Name()
	cfg.SetName(b.uniqueExtensionName(requested))
	fail := func(err error) error {
		cfg.SetName(requested)
		return curated.Errorf(InsertFailed, requested, err)
	}

	slotted := cfg.Description().NeedsSlot(cfg.Kind())
	slot := -1
	if slotted {
		var err error
		slot, err = b.slots.Resolve(cfg.SlotSpec())
		if err != nil {
			return fail(err)
		}
		if err := b.slots.Allocate(slot, cfg.ID()); err != nil {
			return fail(err)
		}
	}

	if err := b.createDevices(cfg); err != nil {
		if slotted {
			b.slots.Free(cfg.ID())
		}
		return fail(err)
	}

	b.extensions = append(b.extensions, cfg)

	slotName := ""
	if slotted {
		slotName = slots.SlotName(slot)
		logger.Logf(b, "board", "%s: inserted %s in slot %s", b.id, cfg.Name(), slotName)
	} else {
		logger.Logf(b, "board", "%s: inserted %s", b.id, cfg.Name())
	}

	b.history.Record(b.sched.CurrentTime(), recorder.KindInsertExtension, cfg.Kind().String(), cfg.ConfigName(), slotName)
	b.publish(notifications.NotifyExtensionAdd, cfg.Name())

	return nil
}

// InsertExtensionByName loads and inserts an extension. If an explicit slot
// is requested and the slot is occupied, the occupying extension is removed
// first.
func (b *Board) InsertExtensionByName(kind hwconfig.Kind, name string, slotSpec string) (*hwconfig.Config, error) {
	cfg, err := b.LoadExtensionConfig(kind, name, slotSpec)
	if err != nil {
		return nil, err
	}

	spec := strings.ToLower(strings.TrimSpace(slotSpec))
	if cfg.Description().NeedsSlot(kind) && spec != "" && spec != slots.Any {
		idx, err := b.slots.Resolve(slotSpec)
		if err != nil {
			return nil, err
		}
		if id, ok := b.slots.ConfigForSlot(idx); ok {
			if old, ok := b.extensionByID(id); ok {
				if err := b.RemoveExtension(old); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := b.InsertExtension(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RemoveExtension removes an installed extension. The removal is refused if
// another extension requires it or any of its devices vetoes the removal.
//
// NotifyExtensionRemove is published before the devices are destroyed.
func (b *Board) RemoveExtension(cfg *hwconfig.Config) error {
	idx := -1
	for i, e := range b.extensions {
		if e == cfg {
			idx = i
			break
		}
	}
	if idx == -1 {
		return curated.Errorf(ExtensionNotFound, cfg.Name())
	}

	if err := cfg.TestRemove(b.extensions); err != nil {
		return err
	}

	b.publish(notifications.NotifyExtensionRemove, cfg.Name())

	b.destroyDevices(cfg)
	b.slots.Free(cfg.ID())
	b.extensions = append(b.extensions[:idx], b.extensions[idx+1:]...)

	logger.Logf(b, "board", "%s: removed %s", b.id, cfg.Name())
	b.history.Record(b.sched.CurrentTime(), recorder.KindRemoveExtension, cfg.Name())

	return nil
}

// RemoveExtensionByName removes the extension with the instance name.
func (b *Board) RemoveExtensionByName(name string) error {
	cfg, ok := b.FindExtension(name)
	if !ok {
		return curated.Errorf(ExtensionNotFound, name)
	}
	return b.RemoveExtension(cfg)
}

// Extensions returns the installed extensions in insertion order.
func (b *Board) Extensions() []*hwconfig.Config {
	l := make([]*hwconfig.Config, len(b.extensions))
	copy(l, b.extensions)
	return l
}

// FindExtension returns the installed extension with the instance name.
func (b *Board) FindExtension(name string) (*hwconfig.Config, bool) {
	for _, e := range b.extensions {
		if e.Name() == name {
			return e, true
		}
	}
	return nil, false
}

func (b *Board) extensionByID(id hwconfig.ID) (*hwconfig.Config, bool) {
	for _, e := range b.extensions {
		if e.ID() == id {
			return e, true
		}
	}
	return nil, false
}

// hasConfig returns true if an installed extension was loaded from the named
// description.
func (b *Board) hasConfig(configName string) bool {
	for _, e := range b.extensions {
		if e.ConfigName() == configName {
			return true
		}
	}
	return false
}
