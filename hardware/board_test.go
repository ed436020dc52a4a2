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

package hardware_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/environment"
	"github.com/taupter/openMSX/hardware"
	"github.com/taupter/openMSX/hardware/cpu"
	"github.com/taupter/openMSX/hardware/device"
	"github.com/taupter/openMSX/hardware/hwconfig"
	"github.com/taupter/openMSX/hardware/scheduler"
	"github.com/taupter/openMSX/hardware/slots"
	"github.com/taupter/openMSX/notifications"
	"github.com/taupter/openMSX/test"
)

const machine = `info:
  type: MSX2
  manufacturer: Philips
slots: 2
devices:
  - type: RAM
    params:
      size: "0x10000"
  - type: Timer
    name: vdp
  - type: JoystickPort
    name: joyporta
  - type: DiskDrive
    name: diska
`

const fmpac = `info:
  type: extension
  description: FM-PAC
devices:
  - type: ROM
    name: fmpacrom
  - type: RAM
    name: sram
    params:
      size: "0x2000"
`

const broken = `info:
  type: extension
devices:
  - type: DiskDrive
    name: diskb
  - type: JoystickPort
    name: joyportb
  - type: Timer
    name: ticker
  - type: RAM
    params:
      size: lots
`

const ide = `info:
  type: extension
devices:
  - type: ROM
    name: iderom
`

const harddisk = `info:
  type: extension
noslot: true
requires:
  - ide
devices:
  - type: DiskDrive
    name: hda
`

type events struct {
	list []notifications.Event
}

func (e *events) Notify(ev notifications.Event) error {
	e.list = append(e.list, ev)
	return nil
}

func (e *events) notices() []notifications.Notice {
	var n []notifications.Notice
	for _, ev := range e.list {
		n = append(n, ev.Notice)
	}
	return n
}

func (e *events) count(notice notifications.Notice) int {
	var c int
	for _, ev := range e.list {
		if ev.Notice == notice {
			c++
		}
	}
	return c
}

func newEnvironment(t *testing.T) (*environment.Environment, *events) {
	t.Helper()

	l := hwconfig.NewMemoryLoader()
	l.Add(hwconfig.Machine, "NMS_8250", machine)
	l.Add(hwconfig.Extension, "fmpac", fmpac)
	l.Add(hwconfig.Extension, "broken", broken)
	l.Add(hwconfig.Extension, "ide", ide)
	l.Add(hwconfig.Extension, "harddisk", harddisk)

	env := environment.NewEnvironment(l)
	require.NoError(t, env.Settings.Throttle.Set(false))

	ev := &events{}
	env.Notifications.Subscribe(ev)

	return env, ev
}

func newBoard(t *testing.T) (*hardware.Board, *events) {
	t.Helper()
	env, ev := newEnvironment(t)
	b := hardware.NewBoard(env)
	require.NoError(t, b.LoadMachine("NMS_8250"))
	return b, ev
}

func TestLoadMachine(t *testing.T) {
	env, ev := newEnvironment(t)

	b := hardware.NewBoard(env)
	require.Equal(t, "machine1", b.ID())
	require.Equal(t, "", b.MachineName())
	require.False(t, b.Execute())

	err := b.LoadMachine("HB-F1XD")
	require.True(t, curated.Is(err, hwconfig.NotFound))
	require.Nil(t, b.Machine())

	require.NoError(t, b.LoadMachine("NMS_8250"))
	require.Equal(t, "NMS_8250", b.MachineName())
	require.Equal(t, "MSX2", b.MachineType())
	require.Equal(t, 2, b.Slots().Count())
	require.Len(t, b.Devices(), 4)

	// the power setting is on by default
	require.True(t, b.Powered())

	// loading a second machine changes nothing
	err = b.LoadMachine("NMS_8250")
	require.True(t, curated.Is(err, hardware.AlreadyLoaded))
	require.Len(t, b.Devices(), 4)

	require.Equal(t, []notifications.Notice{
		notifications.NotifyHardwareAdd,
		notifications.NotifyBoot,
	}, ev.notices())
	require.Equal(t, "machine1", ev.list[0].Source)

	b2 := hardware.NewBoard(env)
	require.Equal(t, "machine2", b2.ID())
	require.NoError(t, env.Settings.Power.Set(false))
	require.NoError(t, b2.LoadMachine("NMS_8250"))
	require.False(t, b2.Powered())
}

func TestInsertExtension(t *testing.T) {
	b, ev := newBoard(t)

	cfg, err := b.InsertExtensionByName(hwconfig.Extension, "fmpac", "any")
	require.NoError(t, err)
	require.Equal(t, "fmpac", cfg.Name())

	info, err := b.ExtensionInfo("fmpac")
	require.NoError(t, err)
	require.Equal(t, "a", info.Slot)
	require.Equal(t, []string{"fmpacrom", "sram"}, info.Devices)

	// the same description twice
	cfg, err = b.InsertExtensionByName(hwconfig.Extension, "fmpac", "")
	require.NoError(t, err)
	require.Equal(t, "fmpac (2)", cfg.Name())
	info, err = b.ExtensionInfo("fmpac (2)")
	require.NoError(t, err)
	require.Equal(t, "b", info.Slot)
	require.Equal(t, []string{"fmpacrom (2)", "sram (2)"}, info.Devices)

	// no free slots
	devices := len(b.Devices())
	_, err = b.InsertExtensionByName(hwconfig.Extension, "fmpac", "any")
	require.True(t, curated.Has(err, slots.NoFreeSlot))
	require.Len(t, b.Extensions(), 2)
	require.Len(t, b.Devices(), devices)

	// a failed insert leaves the configuration name as it was
	third, err := b.LoadExtensionConfig(hwconfig.Extension, "fmpac", "any")
	require.NoError(t, err)
	err = b.InsertExtension(third)
	require.True(t, curated.Has(err, slots.NoFreeSlot))
	require.Equal(t, "fmpac", third.Name())

	_, err = b.InsertExtensionByName(hwconfig.Extension, "fmpac", "c")
	require.True(t, curated.Is(err, slots.OutOfRange))
	require.Equal(t, "slots: slot c but only 2 slots", err.Error())

	_, err = b.InsertExtensionByName(hwconfig.Extension, "fmpac", "9")
	require.True(t, curated.Is(err, slots.MalformedSpec))

	require.Equal(t, 2, ev.count(notifications.NotifyExtensionAdd))

	// remove unknown
	n := len(ev.list)
	err = b.RemoveExtensionByName("moonsound")
	require.True(t, curated.Is(err, hardware.ExtensionNotFound))
	require.Len(t, ev.list, n)

	require.NoError(t, b.RemoveExtensionByName("fmpac"))
	require.Len(t, b.Extensions(), 1)
	_, ok := b.FindDevice("sram")
	require.False(t, ok)
	_, ok = b.FindDevice("sram (2)")
	require.True(t, ok)
	require.Equal(t, notifications.NotifyExtensionRemove, ev.list[len(ev.list)-1].Notice)
	require.Equal(t, "fmpac", ev.list[len(ev.list)-1].Detail)

	// the freed slot is reused
	cfg, err = b.InsertExtensionByName(hwconfig.Extension, "fmpac", "any")
	require.NoError(t, err)
	require.Equal(t, "fmpac", cfg.Name())
	require.Equal(t, "a:7 b:3", b.Slots().String())
}

func TestInsertRollback(t *testing.T) {
	b, ev := newBoard(t)

	media := b.MediaProviders()
	connectors := len(b.Plugging().Connectors())
	devices := len(b.Devices())
	pending := b.Scheduler().Len()
	notices := len(ev.list)

	_, err := b.InsertExtensionByName(hwconfig.Extension, "broken", "b")
	require.True(t, curated.Is(err, hardware.InsertFailed))
	require.True(t, curated.Has(err, device.CreationFailed))

	require.Equal(t, media, b.MediaProviders())
	require.Len(t, b.Plugging().Connectors(), connectors)
	require.Len(t, b.Devices(), devices)
	require.Equal(t, pending, b.Scheduler().Len())
	require.Empty(t, b.Extensions())
	_, ok := b.Slots().ConfigForSlot(1)
	require.False(t, ok)
	require.Len(t, ev.list, notices)

	// the slot is still usable
	_, err = b.InsertExtensionByName(hwconfig.Extension, "fmpac", "b")
	require.NoError(t, err)
}

func TestReplaceSlot(t *testing.T) {
	b, ev := newBoard(t)

	_, err := b.InsertExtensionByName(hwconfig.Extension, "ide", "a")
	require.NoError(t, err)
	ev.list = nil

	_, err = b.InsertExtensionByName(hwconfig.Extension, "fmpac", "a")
	require.NoError(t, err)

	require.Equal(t, []notifications.Notice{
		notifications.NotifyExtensionRemove,
		notifications.NotifyExtensionAdd,
	}, ev.notices())
	require.Equal(t, "ide", ev.list[0].Detail)
	require.Equal(t, "fmpac", ev.list[1].Detail)

	exts := b.Extensions()
	require.Len(t, exts, 1)
	require.Equal(t, "fmpac", exts[0].Name())
	_, ok := b.FindDevice("iderom")
	require.False(t, ok)
}

func TestRequires(t *testing.T) {
	b, _ := newBoard(t)

	_, err := b.InsertExtensionByName(hwconfig.Extension, "harddisk", "")
	require.True(t, curated.Is(err, hardware.MissingRequirement))

	_, err = b.InsertExtensionByName(hwconfig.Extension, "ide", "")
	require.NoError(t, err)
	_, err = b.InsertExtensionByName(hwconfig.Extension, "harddisk", "")
	require.NoError(t, err)

	// harddisk does not occupy a slot
	require.Equal(t, "a:3 b:-", b.Slots().String())

	// ide is in use
	err = b.RemoveExtensionByName("ide")
	require.True(t, curated.Is(err, hwconfig.InUse))
	require.Len(t, b.Extensions(), 2)

	require.NoError(t, b.RemoveExtensionByName("harddisk"))
	require.NoError(t, b.RemoveExtensionByName("ide"))
	require.Empty(t, b.Extensions())
}

func TestROMCartridge(t *testing.T) {
	b, _ := newBoard(t)

	fn := filepath.Join(t.TempDir(), "aleste.rom")
	require.NoError(t, os.WriteFile(fn, []byte{0x41, 0x42}, 0o644))

	cfg, err := b.InsertExtensionByName(hwconfig.ROM, fn, "b")
	require.NoError(t, err)
	require.Equal(t, "aleste.rom", cfg.Name())

	d, ok := b.FindDevice("aleste")
	require.True(t, ok)
	require.Equal(t, uint8(0x42), d.Read(1, b.CurrentTime()))

	_, err = b.InsertExtensionByName(hwconfig.ROM, filepath.Join(t.TempDir(), "missing.rom"), "")
	require.True(t, curated.Is(err, hwconfig.NotFound))
}

func TestPower(t *testing.T) {
	b, ev := newBoard(t)
	require.False(t, b.Mixer().Muted())

	vdp, ok := b.FindDevice("vdp")
	require.True(t, ok)
	timer := vdp.(*device.Timer)

	require.True(t, b.Execute())
	require.Greater(t, timer.Count(), uint64(0))

	b.Reset()
	require.Equal(t, uint64(0), timer.Count())
	require.Equal(t, 2, ev.count(notifications.NotifyBoot))

	b.PowerDown()
	require.False(t, b.Powered())
	require.True(t, b.Mixer().Muted())
	require.Equal(t, 0, b.Scheduler().Len())

	// reset does nothing when powered down
	b.Reset()
	require.Equal(t, 2, ev.count(notifications.NotifyBoot))

	// power down twice does not mute twice
	b.PowerDown()
	b.PowerUp()
	require.True(t, b.Powered())
	require.False(t, b.Mixer().Muted())
	require.Equal(t, 3, ev.count(notifications.NotifyBoot))

	// power up twice does nothing
	b.PowerUp()
	require.Equal(t, 3, ev.count(notifications.NotifyBoot))
}

// powerLog is a device that records its power transitions in a log shared by
// every powerLog device of a board.
type powerLog struct {
	name string
	log  *[]string
}

func (d *powerLog) Name() string                              { return d.name }
func (d *powerLog) Reset(_ scheduler.Time)                    {}
func (d *powerLog) PowerUp(_ scheduler.Time)                  { *d.log = append(*d.log, "up "+d.name) }
func (d *powerLog) PowerDown(_ scheduler.Time)                { *d.log = append(*d.log, "down "+d.name) }
func (d *powerLog) Read(_ uint16, _ scheduler.Time) uint8     { return 0xff }
func (d *powerLog) Write(_ uint16, _ uint8, _ scheduler.Time) {}

const logged = `info:
  type: MSX
devices:
  - type: PowerLog
    name: first
  - type: PowerLog
    name: second
`

func TestPowerCycle(t *testing.T) {
	env, _ := newEnvironment(t)
	require.NoError(t, env.Settings.Power.Set(false))

	var log []string
	env.Factory.Register("PowerLog", func(_ device.Context, name string, _ device.Spec) (device.Device, error) {
		return &powerLog{name: name, log: &log}, nil
	})
	env.Loader.(*hwconfig.MemoryLoader).Add(hwconfig.Machine, "logged", logged)

	b := hardware.NewBoard(env)
	require.NoError(t, b.LoadMachine("logged"))
	require.False(t, b.Powered())
	require.Empty(t, log)

	b.PowerUp()
	b.PowerDown()
	b.PowerUp()
	require.Equal(t, []string{
		"up first", "up second",
		"down first", "down second",
		"up first", "up second",
	}, log)
}

func TestPowerUpWithoutMachine(t *testing.T) {
	env, ev := newEnvironment(t)
	b := hardware.NewBoard(env)

	b.PowerUp()
	require.False(t, b.Powered())
	require.Equal(t, 0, ev.count(notifications.NotifyBoot))
}

func TestPause(t *testing.T) {
	b, _ := newBoard(t)

	b.Pause()
	b.Pause()
	require.True(t, b.Paused())
	require.True(t, b.Mixer().Muted())
	require.False(t, b.Execute())

	b.Unpause()
	require.False(t, b.Mixer().Muted())
	require.True(t, b.Execute())
}

func TestExitLoopAsync(t *testing.T) {
	b, _ := newBoard(t)

	done := make(chan bool)
	go func() {
		b.ExitLoopAsync()
		done <- true
	}()
	<-done

	// the exit request is noticed before the first quantum
	now := b.CurrentTime()
	require.False(t, b.Execute())
	require.Equal(t, now, b.CurrentTime())

	// the request is consumed
	require.True(t, b.Execute())
	require.Greater(t, b.CurrentTime(), now)
	require.LessOrEqual(t, b.CurrentTime(), now+cpu.Quantum*cpu.SliceQuanta)
}

func TestFastForward(t *testing.T) {
	env, _ := newEnvironment(t)
	require.NoError(t, env.Settings.Power.Set(false))

	b := hardware.NewBoard(env)
	require.NoError(t, b.LoadMachine("NMS_8250"))

	err := b.FastForward(scheduler.TicksPerSecond)
	require.True(t, curated.Is(err, hardware.NotPowered))

	b.PowerUp()

	// target in the past
	require.NoError(t, b.FastForward(0))
	require.Equal(t, scheduler.Time(0), b.CurrentTime())

	target := scheduler.Time(scheduler.TicksPerSecond + 12345)
	require.NoError(t, b.FastForward(target))
	require.GreaterOrEqual(t, b.CurrentTime(), target)
	require.Less(t, b.CurrentTime(), target+cpu.Quantum)

	require.False(t, b.Mixer().Muted())
	require.Equal(t, 0, b.Mixer().Count())

	vdp, _ := b.FindDevice("vdp")
	require.Equal(t, uint64(b.CurrentTime()/59659), vdp.(*device.Timer).Count())

	// only the timer remains scheduled
	require.Equal(t, 1, b.Scheduler().Len())
}

func TestFastForwardPaused(t *testing.T) {
	b, _ := newBoard(t)
	b.Pause()

	target := scheduler.Time(scheduler.TicksPerSecond)
	require.NoError(t, b.FastForward(target))
	require.GreaterOrEqual(t, b.CurrentTime(), target)
	require.True(t, b.Paused())
	require.False(t, b.Execute())
}

func TestFastForwardPendingExit(t *testing.T) {
	b, _ := newBoard(t)
	b.ExitLoopAsync()

	target := scheduler.Time(scheduler.TicksPerSecond)
	require.NoError(t, b.FastForward(target))
	require.GreaterOrEqual(t, b.CurrentTime(), target)
}

func TestDestroy(t *testing.T) {
	b, ev := newBoard(t)

	_, err := b.InsertExtensionByName(hwconfig.Extension, "ide", "")
	require.NoError(t, err)
	_, err = b.InsertExtensionByName(hwconfig.Extension, "harddisk", "")
	require.NoError(t, err)

	b.Destroy()
	require.Empty(t, b.Extensions())
	require.Empty(t, b.Devices())
	require.Empty(t, b.MediaProviders())
	require.Empty(t, b.Plugging().Connectors())
	require.Equal(t, 0, b.Scheduler().Len())
	require.Equal(t, notifications.NotifyHardwareRemove, ev.list[len(ev.list)-1].Notice)

	// destroying twice does nothing
	n := len(ev.list)
	b.Destroy()
	require.Len(t, ev.list, n)
}

func TestUserName(t *testing.T) {
	b, _ := newBoard(t)
	test.ExpectEquality(t, b.UserName("tape"), "untitled1")
	test.ExpectEquality(t, b.UserName("tape"), "untitled2")
	test.ExpectEquality(t, b.UserName("disk"), "untitled1")
	b.FreeUserName("tape", "untitled1")
	test.ExpectEquality(t, b.UserName("tape"), "untitled1")
	test.ExpectEquality(t, b.UserName("tape"), "untitled3")
}

func TestSuppressMessages(t *testing.T) {
	b, _ := newBoard(t)
	test.ExpectSuccess(t, b.AllowLogging())
	b.SetSuppressMessages(true)
	test.ExpectFailure(t, b.AllowLogging())
}

func TestTopology(t *testing.T) {
	b, _ := newBoard(t)
	_, err := b.InsertExtensionByName(hwconfig.Extension, "fmpac", "b")
	require.NoError(t, err)

	tp := b.Topology()
	require.Equal(t, "NMS_8250", tp.Machine)
	require.Equal(t, []hardware.SlotTopology{{Slot: "a"}, {Slot: "b", Extension: "fmpac"}}, tp.Slots)
	require.Len(t, tp.Extensions, 1)
	require.Len(t, tp.Connectors, 1)
	require.Equal(t, "joyporta", tp.Connectors[0].Connector)
	require.Len(t, tp.Media, 1)
	require.Equal(t, "diska", tp.Media[0].Target)
}
