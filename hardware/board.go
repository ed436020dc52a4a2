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

	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/environment"
	"github.com/taupter/openMSX/hardware/cpu"
	"github.com/taupter/openMSX/hardware/device"
	"github.com/taupter/openMSX/hardware/hwconfig"
	"github.com/taupter/openMSX/hardware/media"
	"github.com/taupter/openMSX/hardware/mixer"
	"github.com/taupter/openMSX/hardware/plugging"
	"github.com/taupter/openMSX/hardware/realtime"
	"github.com/taupter/openMSX/hardware/scheduler"
	"github.com/taupter/openMSX/hardware/slots"
	"github.com/taupter/openMSX/logger"
	"github.com/taupter/openMSX/notifications"
	"github.com/taupter/openMSX/recorder"
)

// Sentinal error patterns.
const (
	AlreadyLoaded      = "board: machine already loaded: %s"
	NoMachine          = "board: no machine loaded"
	ExtensionNotFound  = "board: extension not found: %s"
	MissingRequirement = "board: %s requires %s"
	InsertFailed       = "board: insert %s: %v"
	NotPowered         = "board: not powered"
	FastForwardStalled = "board: fast-forward made no progress at %s"
	DeviceNotFound     = "board: device not found: %s"
	MediaNotFound      = "board: media target not found: %s"
	MediaError         = "board: media %s: %v"
	ConnectorError     = "board: %v"
)

// Board is a single emulated machine.
type Board struct {
	env *environment.Environment
	id  string

	sched *scheduler.Scheduler
	cpu   *cpu.CPU

	devices  *device.Registry
	slots    *slots.Manager
	media    *media.Registry
	plugging *plugging.Controller

	// the board mixer is muted while the board is powered down. it is a
	// child of the global mixer
	mixer *mixer.Mixer

	pacer *realtime.Pacer

	history recorder.History

	machine    *hwconfig.Config
	extensions []*hwconfig.Config

	// configuration IDs are never reused on a board
	nextConfigID hwconfig.ID

	powered  bool
	active   bool
	suppress bool

	// allocated user names, keyed by hardware name
	userNames map[string]map[string]bool

	destroyed bool
}

// NewBoard is the preferred method of initialisation for the Board type. The
// new board is empty and powered down. NotifyHardwareAdd is published.
func NewBoard(env *environment.Environment) *Board {
	b := &Board{
		env:       env,
		id:        env.NextBoardID(),
		sched:     scheduler.NewScheduler(),
		devices:   device.NewRegistry(),
		slots:     slots.NewManager(0),
		media:     &media.Registry{},
		plugging:  plugging.NewController(env.Pluggables),
		mixer:     mixer.NewMixer(env.Mixer),
		pacer:     realtime.NewPacer(),
		userNames: make(map[string]map[string]bool),
	}
	b.cpu = cpu.NewCPU(b.sched, nil)

	// muted until powered up
	b.mixer.Mute()

	b.publish(notifications.NotifyHardwareAdd, "")

	return b
}

func (b *Board) String() string {
	if b.machine == nil {
		return fmt.Sprintf("%s (empty)", b.id)
	}
	return fmt.Sprintf("%s (%s)", b.id, b.machine.ConfigName())
}

// SetCore replaces the instruction interpreter of the board. A nil core is
// an idle core.
func (b *Board) SetCore(core cpu.Core) {
	paused := b.cpu.Paused()
	b.cpu = cpu.NewCPU(b.sched, core)
	b.cpu.SetPaused(paused)
}

// AllowLogging implements the logger.Permission interface.
func (b *Board) AllowLogging() bool {
	return !b.suppress
}

// SetSuppressMessages stops the board from logging. Used for temporary
// boards.
func (b *Board) SetSuppressMessages(suppress bool) {
	b.suppress = suppress
}

func (b *Board) publish(notice notifications.Notice, detail string) {
	b.env.Publish(notice, b.id, detail)
}

func (b *Board) deviceContext(owner string) device.Context {
	return device.Context{
		Scheduler: b.sched,
		Devices:   b.devices,
		Media:     b.media,
		Plugging:  b.plugging,
		Perm:      b,
		Owner:     owner,
	}
}

func (b *Board) newConfig(kind hwconfig.Kind, name string, slotSpec string, desc *hwconfig.Description) *hwconfig.Config {
	b.nextConfigID++
	return hwconfig.NewConfig(b.nextConfigID, kind, name, slotSpec, desc)
}

// LoadMachine loads the named machine description and creates its devices.
// The board is powered up if the power setting is on.
func (b *Board) LoadMachine(name string) error {
	if err := b.LoadMachineConfig(name); err != nil {
		return err
	}
	if b.env.Settings.Power.Get().(bool) {
		b.PowerUp()
	}
	return nil
}

// LoadMachineConfig loads the named machine description and creates its
// devices. The board is not powered up. The board is unchanged if an error
// is returned.
func (b *Board) LoadMachineConfig(name string) error {
	if b.machine != nil {
		return curated.Errorf(AlreadyLoaded, b.machine.ConfigName())
	}

	desc, err := b.env.Loader.Load(hwconfig.Machine, name)
	if err != nil {
		return err
	}

	cfg := b.newConfig(hwconfig.Machine, name, "", desc)
	if err := cfg.Validate(b.env.Factory.Known); err != nil {
		return err
	}

	b.slots = slots.NewManager(desc.Slots)

	if err := b.createDevices(cfg); err != nil {
		b.slots = slots.NewManager(0)
		return err
	}

	b.machine = cfg
	logger.Logf(b, "board", "%s: loaded %s", b.id, name)

	return nil
}

// createDevices instantiates every device in the configuration's description.
// If any device cannot be created the devices already created are destroyed
// and every media provider and connector registered in the attempt is
// removed.
func (b *Board) createDevices(cfg *hwconfig.Config) error {
	mediaBefore := make(map[string]bool)
	for _, n := range b.media.Names() {
		mediaBefore[n] = true
	}
	connectorsBefore := make(map[*plugging.Connector]bool)
	for _, c := range b.plugging.Connectors() {
		connectorsBefore[c] = true
	}

	rollback := func() {
		b.destroyDevices(cfg)
		for _, n := range b.media.Names() {
			if !mediaBefore[n] {
				p, _ := b.media.Find(n)
				b.media.Unregister(p)
			}
		}
		for _, c := range b.plugging.Connectors() {
			if !connectorsBefore[c] {
				b.plugging.UnregisterConnector(c)
			}
		}
	}

	ctx := b.deviceContext(cfg.Name())

	for _, spec := range cfg.Description().Devices {
		d, err := b.env.Factory.Create(ctx, spec)
		if err != nil {
			rollback()
			return err
		}

		if err := b.devices.Add(d); err != nil {
			destroyDevice(b.sched, d)
			rollback()
			return err
		}

		cfg.AddDevice(d)
	}

	if b.powered {
		now := b.sched.CurrentTime()
		for _, d := range cfg.Devices() {
			d.PowerUp(now)
		}
	}

	return nil
}

// destroyDevice calls the device's Destroy() function if it has one and
// cancels any sync points it still has pending.
func destroyDevice(sched *scheduler.Scheduler, d device.Device) {
	if dd, ok := d.(device.Destroyer); ok {
		dd.Destroy()
	}
	if s, ok := d.(scheduler.Schedulable); ok {
		sched.CancelAll(s)
	}
}

// destroyDevices destroys the devices of the configuration in reverse
// creation order.
func (b *Board) destroyDevices(cfg *hwconfig.Config) {
	devs := cfg.Devices()
	for i := len(devs) - 1; i >= 0; i-- {
		destroyDevice(b.sched, devs[i])
		b.devices.Remove(devs[i])
	}
	cfg.ClearDevices()
}

// Destroy tears down the board. Extensions are removed most recent first,
// without checking whether they can be removed, followed by the machine.
// NotifyHardwareRemove is published. The board must not be used afterwards.
func (b *Board) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true

	for i := len(b.extensions) - 1; i >= 0; i-- {
		b.destroyDevices(b.extensions[i])
		b.slots.Free(b.extensions[i].ID())
	}
	b.extensions = nil

	if b.machine != nil {
		b.destroyDevices(b.machine)
		b.machine = nil
	}

	if b.powered {
		b.powered = false
		b.mixer.Mute()
	}

	b.publish(notifications.NotifyHardwareRemove, "")
}

// UserName allocates a name of the form "untitledN" that is unique for the
// hardware name on this board.
func (b *Board) UserName(hwName string) string {
	names, ok := b.userNames[hwName]
	if !ok {
		names = make(map[string]bool)
		b.userNames[hwName] = names
	}
	for n := 1; ; n++ {
		s := fmt.Sprintf("untitled%d", n)
		if !names[s] {
			names[s] = true
			return s
		}
	}
}

// FreeUserName releases a name allocated with UserName().
func (b *Board) FreeUserName(hwName string, name string) {
	delete(b.userNames[hwName], name)
}

// ExitLoopAsync requests that the current slice of execution ends. Safe to
// call from any goroutine.
func (b *Board) ExitLoopAsync() {
	b.cpu.ExitLoopAsync()
}

// ExitLoopSync requests that the current slice of execution ends. Foreground
// goroutine only.
func (b *Board) ExitLoopSync() {
	b.cpu.ExitLoopSync()
}

// Execute runs one slice of emulation. Virtual time is paced against the
// wall clock if the throttle setting is on. Returns false if no virtual time
// elapsed.
func (b *Board) Execute() bool {
	if b.machine == nil {
		return false
	}

	progress := b.cpu.Execute(false)

	if progress && b.env.Settings.Throttle.Get().(bool) {
		b.pacer.Sync(b.sched.CurrentTime())
	}

	return progress
}

// Activate is called by the session when the board becomes, or stops being,
// the active board.
func (b *Board) Activate(active bool) {
	b.active = active
	if active {
		b.pacer.Resync(b.sched.CurrentTime())
		b.publish(notifications.NotifyMachineActivated, "")
	} else {
		b.publish(notifications.NotifyMachineDeactivated, "")
	}
}

// Pause stops execution of the board. The board mixer is muted.
func (b *Board) Pause() {
	if b.cpu.Paused() {
		return
	}
	b.cpu.SetPaused(true)
	b.mixer.Mute()
}

// Unpause resumes execution of the board.
func (b *Board) Unpause() {
	if !b.cpu.Paused() {
		return
	}
	b.cpu.SetPaused(false)
	b.mixer.Unmute()
	b.pacer.Resync(b.sched.CurrentTime())
}

// Paused returns true if the board is paused.
func (b *Board) Paused() bool {
	return b.cpu.Paused()
}
