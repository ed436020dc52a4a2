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

package device_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware/device"
	"github.com/taupter/openMSX/hardware/media"
	"github.com/taupter/openMSX/hardware/plugging"
	"github.com/taupter/openMSX/hardware/scheduler"
	"github.com/taupter/openMSX/test"
)

func newContext() device.Context {
	return device.Context{
		Scheduler: scheduler.NewScheduler(),
		Devices:   device.NewRegistry(),
		Media:     &media.Registry{},
		Plugging:  plugging.NewController(plugging.DefaultPluggables),
	}
}

func TestFactory(t *testing.T) {
	f := device.NewFactory()
	ctx := newContext()

	test.ExpectSuccess(t, f.Known("RAM"))
	test.ExpectEquality(t, len(f.Types()), 6)

	_, err := f.Create(ctx, device.Spec{Type: "FM-PAC"})
	test.ExpectSuccess(t, curated.Is(err, device.UnknownDeviceType))

	d, err := f.Create(ctx, device.Spec{Type: "RAM", Params: map[string]string{"size": "0x4000"}})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d.Name(), "ram")
	test.DemandSuccess(t, ctx.Devices.Add(d))

	// names are made unique
	d2, err := f.Create(ctx, device.Spec{Type: "RAM", Params: map[string]string{"size": "1024"}})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d2.Name(), "ram (2)")
	test.DemandSuccess(t, ctx.Devices.Add(d2))

	d3, err := f.Create(ctx, device.Spec{Type: "RAM", Name: "ram", Params: map[string]string{"size": "1024"}})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d3.Name(), "ram (3)")

	_, err = f.Create(ctx, device.Spec{Type: "RAM", Params: map[string]string{"size": "lots"}})
	test.ExpectSuccess(t, curated.Has(err, device.InvalidParameter))
}

func TestRegistry(t *testing.T) {
	f := device.NewFactory()
	ctx := newContext()

	a, _ := f.Create(ctx, device.Spec{Type: "ROM", Name: "a"})
	b, _ := f.Create(ctx, device.Spec{Type: "ROM", Name: "b"})
	test.DemandSuccess(t, ctx.Devices.Add(a))
	test.DemandSuccess(t, ctx.Devices.Add(b))
	test.ExpectSuccess(t, curated.Is(ctx.Devices.Add(a), device.DuplicateDevice))

	all := ctx.Devices.All()
	test.DemandEquality(t, len(all), 2)
	test.ExpectEquality(t, all[0].Name(), "a")
	test.ExpectEquality(t, all[1].Name(), "b")

	ctx.Devices.Remove(a)
	_, ok := ctx.Devices.Find("a")
	test.ExpectFailure(t, ok)

	defer func() {
		test.ExpectInequality(t, recover(), nil)
	}()
	ctx.Devices.Remove(a)
}

func TestRAMState(t *testing.T) {
	f := device.NewFactory()
	ctx := newContext()

	d, err := f.Create(ctx, device.Spec{Type: "RAM", Params: map[string]string{"size": "16"}})
	test.DemandSuccess(t, err)
	d.Write(3, 0x42, 0)
	test.ExpectEquality(t, d.Read(3, 0), uint8(0x42))

	st := d.(device.Stater).State()
	d.PowerUp(0)
	test.ExpectEquality(t, d.Read(3, 0), uint8(0))

	test.ExpectSuccess(t, d.(device.Stater).SetState(st))
	test.ExpectEquality(t, d.Read(3, 0), uint8(0x42))

	err = d.(device.Stater).SetState(map[string]string{"data": "00"})
	test.ExpectSuccess(t, curated.Is(err, device.InvalidState))
}

func TestROM(t *testing.T) {
	f := device.NewFactory()
	ctx := newContext()

	fn := filepath.Join(t.TempDir(), "game.rom")
	test.DemandSuccess(t, os.WriteFile(fn, []byte{0x41, 0x42, 0x10, 0x40}, 0o600))

	d, err := f.Create(ctx, device.Spec{Type: "ROM", Params: map[string]string{"filename": fn}})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d.Read(1, 0), uint8(0x42))
	d.Write(1, 0, 0)
	test.ExpectEquality(t, d.Read(1, 0), uint8(0x42))

	_, err = f.Create(ctx, device.Spec{Type: "ROM", Params: map[string]string{"filename": fn + ".missing"}})
	test.ExpectSuccess(t, curated.Is(err, device.CreationFailed))
}

func TestTimer(t *testing.T) {
	f := device.NewFactory()
	ctx := newContext()

	d, err := f.Create(ctx, device.Spec{Type: "Timer", Params: map[string]string{"period": "100"}})
	test.DemandSuccess(t, err)
	tm := d.(*device.Timer)

	tm.PowerUp(0)
	ctx.Scheduler.RunUntil(350)
	test.ExpectEquality(t, tm.Count(), uint64(3))

	st := tm.State()
	test.ExpectEquality(t, st["next"], "400")

	tm.PowerDown(350)
	test.ExpectEquality(t, ctx.Scheduler.Len(), 0)

	test.ExpectSuccess(t, tm.SetState(st))
	test.ExpectEquality(t, ctx.Scheduler.Len(), 1)
	ctx.Scheduler.RunUntil(400)
	test.ExpectEquality(t, tm.Count(), uint64(4))

	err = tm.SetState(map[string]string{"count": "1", "next": "100"})
	test.ExpectSuccess(t, curated.Is(err, device.InvalidState))
	err = tm.SetState(map[string]string{"count": "many"})
	test.ExpectSuccess(t, curated.Is(err, device.InvalidState))

	tm.Destroy()
	test.ExpectEquality(t, ctx.Scheduler.Len(), 0)
}

func TestDiskDrive(t *testing.T) {
	f := device.NewFactory()
	ctx := newContext()

	d, err := f.Create(ctx, device.Spec{Type: "DiskDrive", Name: "diska"})
	test.DemandSuccess(t, err)

	p, ok := ctx.Media.Find("diska")
	test.DemandSuccess(t, ok)

	fn := filepath.Join(t.TempDir(), "disk.dsk")
	test.DemandSuccess(t, os.WriteFile(fn, make([]byte, 720*1024), 0o600))

	test.ExpectFailure(t, p.InsertMedia(fn+".missing"))
	test.ExpectSuccess(t, p.InsertMedia(fn))
	test.ExpectEquality(t, p.MediaInfo().Image, fn)
	test.ExpectEquality(t, d.Read(0, 0), uint8(1))

	// a second drive with the same media target fails
	_, err = f.Create(device.Context{Media: ctx.Media}, device.Spec{Type: "DiskDrive", Name: "diska"})
	test.ExpectFailure(t, err)

	d.(device.Destroyer).Destroy()
	test.ExpectEquality(t, ctx.Media.Len(), 0)
}

func TestJoystickPort(t *testing.T) {
	f := device.NewFactory()
	ctx := newContext()

	d, err := f.Create(ctx, device.Spec{Type: "JoystickPort", Name: "joyporta"})
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, ctx.Plugging.Plug("joyporta", "mouse"))
	test.ExpectEquality(t, d.(device.Informer).Info(), "joystick port (mouse)")

	d.(device.Destroyer).Destroy()
	_, ok := ctx.Plugging.FindConnector("joyporta")
	test.ExpectFailure(t, ok)
}
