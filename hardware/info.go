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
	"github.com/taupter/openMSX/hardware/device"
	"github.com/taupter/openMSX/hardware/hwconfig"
	"github.com/taupter/openMSX/hardware/media"
	"github.com/taupter/openMSX/hardware/mixer"
	"github.com/taupter/openMSX/hardware/plugging"
	"github.com/taupter/openMSX/hardware/scheduler"
	"github.com/taupter/openMSX/hardware/slots"
	"github.com/taupter/openMSX/recorder"
)

// ID returns the unique identifier of the board.
func (b *Board) ID() string { return b.id }

// Machine returns the machine configuration. Nil if no machine is loaded.
func (b *Board) Machine() *hwconfig.Config { return b.machine }

// MachineName returns the name of the loaded machine description. Empty if no
// machine is loaded.
func (b *Board) MachineName() string {
	if b.machine == nil {
		return ""
	}
	return b.machine.ConfigName()
}

// MachineType returns the type of the loaded machine, for example "MSX2".
func (b *Board) MachineType() string {
	if b.machine == nil {
		return ""
	}
	return b.machine.Description().Info.Type
}

// CurrentTime returns the virtual time of the board.
func (b *Board) CurrentTime() scheduler.Time { return b.sched.CurrentTime() }

// Active returns true if the board is the active board of the session.
func (b *Board) Active() bool { return b.active }

// Scheduler returns the scheduler of the board.
func (b *Board) Scheduler() *scheduler.Scheduler { return b.sched }

// Slots returns the slot manager of the board.
func (b *Board) Slots() *slots.Manager { return b.slots }

// Plugging returns the connector controller of the board.
func (b *Board) Plugging() *plugging.Controller { return b.plugging }

// Mixer returns the board mixer.
func (b *Board) Mixer() *mixer.Mixer { return b.mixer }

// History returns the replay history of the board.
func (b *Board) History() *recorder.History { return &b.history }

// Devices returns every device on the board in registration order.
func (b *Board) Devices() []device.Device { return b.devices.All() }

// FindDevice returns the device with name.
func (b *Board) FindDevice(name string) (device.Device, bool) {
	return b.devices.Find(name)
}

// DeviceInfo returns a description of the named device.
func (b *Board) DeviceInfo(name string) (string, error) {
	d, ok := b.devices.Find(name)
	if !ok {
		return "", curated.Errorf(DeviceNotFound, name)
	}
	if i, ok := d.(device.Informer); ok {
		return i.Info(), nil
	}
	return d.Name(), nil
}

// MediaInfo returns information about the media held by the named provider.
func (b *Board) MediaInfo(target string) (media.Info, error) {
	p, ok := b.media.Find(target)
	if !ok {
		return media.Info{}, curated.Errorf(MediaNotFound, target)
	}
	info := p.MediaInfo()
	info.Target = target
	return info, nil
}

// ExtensionInfo describes an installed extension.
type ExtensionInfo struct {
	Name    string
	Config  string
	Kind    string
	Slot    string
	Info    hwconfig.Info
	Devices []string
}

// ExtensionInfo returns information about the extension with the instance
// name.
func (b *Board) ExtensionInfo(name string) (ExtensionInfo, error) {
	cfg, ok := b.FindExtension(name)
	if !ok {
		return ExtensionInfo{}, curated.Errorf(ExtensionNotFound, name)
	}

	info := ExtensionInfo{
		Name:   cfg.Name(),
		Config: cfg.ConfigName(),
		Kind:   cfg.Kind().String(),
		Slot:   b.slotOf(cfg),
		Info:   cfg.Description().Info,
	}
	for _, d := range cfg.Devices() {
		info.Devices = append(info.Devices, d.Name())
	}

	return info, nil
}

// slotOf returns the name of the slot occupied by the configuration. Empty if
// it occupies no slot.
func (b *Board) slotOf(cfg *hwconfig.Config) string {
	if idx, ok := b.slots.FindSlotWith(cfg.ID()); ok {
		return slots.SlotName(idx)
	}
	return ""
}

// Topology is a snapshot of the structure of a board. Suitable for printing or
// graphing.
type Topology struct {
	ID         string
	Machine    string
	Type       string
	Powered    bool
	Time       scheduler.Time
	Slots      []SlotTopology
	Extensions []ExtensionInfo
	Devices    []string
	Media      []media.Info
	Connectors []ConnectorState
}

// SlotTopology is the occupancy of a single cartridge slot.
type SlotTopology struct {
	Slot      string
	Extension string
}

// Topology returns a snapshot of the structure of the board.
func (b *Board) Topology() Topology {
	tp := Topology{
		ID:      b.id,
		Machine: b.MachineName(),
		Type:    b.MachineType(),
		Powered: b.powered,
		Time:    b.sched.CurrentTime(),
	}

	for i := 0; i < b.slots.Count(); i++ {
		st := SlotTopology{Slot: slots.SlotName(i)}
		if id, ok := b.slots.ConfigForSlot(i); ok {
			if cfg, ok := b.extensionByID(id); ok {
				st.Extension = cfg.Name()
			}
		}
		tp.Slots = append(tp.Slots, st)
	}

	for _, e := range b.extensions {
		if info, err := b.ExtensionInfo(e.Name()); err == nil {
			tp.Extensions = append(tp.Extensions, info)
		}
	}

	for _, d := range b.devices.All() {
		tp.Devices = append(tp.Devices, d.Name())
	}

	for _, n := range b.media.Names() {
		if info, err := b.MediaInfo(n); err == nil {
			tp.Media = append(tp.Media, info)
		}
	}

	tp.Connectors = b.connectorStates(true)

	return tp
}
