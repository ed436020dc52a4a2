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
	"github.com/taupter/openMSX/hardware"
	"github.com/taupter/openMSX/hardware/device"
	"github.com/taupter/openMSX/hardware/hwconfig"
	"github.com/taupter/openMSX/hardware/scheduler"
	"github.com/taupter/openMSX/notifications"
	"github.com/taupter/openMSX/recorder"
)

func TestStateRoundTrip(t *testing.T) {
	env, ev := newEnvironment(t)

	b := hardware.NewBoard(env)
	require.NoError(t, b.LoadMachine("NMS_8250"))

	_, err := b.InsertExtensionByName(hwconfig.Extension, "fmpac", "b")
	require.NoError(t, err)
	_, err = b.InsertExtensionByName(hwconfig.Extension, "fmpac", "a")
	require.NoError(t, err)

	dir := t.TempDir()
	disk := filepath.Join(dir, "games.dsk")
	require.NoError(t, os.WriteFile(disk, []byte{0}, 0o644))

	require.NoError(t, b.InsertMedia("diska", disk))
	require.NoError(t, b.Plug("joyporta", "mouse"))
	require.NoError(t, b.FastForward(scheduler.TicksPerSecond/2))

	sram, ok := b.FindDevice("sram")
	require.True(t, ok)
	sram.Write(0x10, 0xaa, b.CurrentTime())

	fn := filepath.Join(dir, "state.yaml")
	require.NoError(t, hardware.StoreState(b, fn))

	ev.list = nil
	r, err := hardware.LoadState(env, fn)
	require.NoError(t, err)
	require.NotEqual(t, b.ID(), r.ID())

	require.Equal(t, b.CurrentTime(), r.CurrentTime())
	require.True(t, r.Powered())
	require.Equal(t, "NMS_8250", r.MachineName())

	exts := r.Extensions()
	require.Len(t, exts, 2)
	require.Equal(t, "fmpac", exts[0].Name())
	require.Equal(t, "fmpac (2)", exts[1].Name())
	require.Equal(t, b.Slots().String(), r.Slots().String())

	vdp, _ := b.FindDevice("vdp")
	rvdp, _ := r.FindDevice("vdp")
	require.Equal(t, vdp.(*device.Timer).Count(), rvdp.(*device.Timer).Count())
	require.Equal(t, vdp.(device.Stater).State(), rvdp.(device.Stater).State())

	rsram, ok := r.FindDevice("sram")
	require.True(t, ok)
	require.Equal(t, uint8(0xaa), rsram.Read(0x10, r.CurrentTime()))

	info, err := r.MediaInfo("diska")
	require.NoError(t, err)
	require.Equal(t, disk, info.Image)

	con, ok := r.Plugging().FindConnector("joyporta")
	require.True(t, ok)
	require.Equal(t, "mouse", con.Plugged())

	require.Equal(t, b.History().Entries(), r.History().Entries())

	// both boards run identically
	require.True(t, b.Execute())
	require.True(t, r.Execute())
	require.Equal(t, b.CurrentTime(), r.CurrentTime())
	require.Equal(t, vdp.(*device.Timer).Count(), rvdp.(*device.Timer).Count())
}

func TestStateVersions(t *testing.T) {
	b, _ := newBoard(t)
	require.NoError(t, b.Plug("joyporta", "joystick"))

	st, err := b.State()
	require.NoError(t, err)
	require.NotEmpty(t, st.History)

	// version 1 has no connectors and no history
	env, _ := newEnvironment(t)

	st.Version = 1
	r, err := hardware.RestoreBoard(env, st)
	require.NoError(t, err)
	con, _ := r.Plugging().FindConnector("joyporta")
	require.Equal(t, "", con.Plugged())
	require.Equal(t, 0, r.History().Len())

	st.Version = 4
	_, err = hardware.RestoreBoard(env, st)
	require.True(t, curated.Has(err, hardware.UnsupportedVersion))
}

func TestRestoreFailure(t *testing.T) {
	b, _ := newBoard(t)
	_, err := b.InsertExtensionByName(hwconfig.Extension, "fmpac", "")
	require.NoError(t, err)

	st, err := b.State()
	require.NoError(t, err)
	st.Extensions[0].Config = "moonsound"

	env, ev := newEnvironment(t)
	r, err := hardware.RestoreBoard(env, st)
	require.Nil(t, r)
	require.True(t, curated.Is(err, hardware.RestoreFailed))
	require.True(t, curated.Has(err, hwconfig.NotFound))

	// the partial board was created and then destroyed
	require.Equal(t, notifications.NotifyHardwareAdd, ev.list[0].Notice)
	require.Equal(t, notifications.NotifyHardwareRemove, ev.list[len(ev.list)-1].Notice)

	st, err = b.State()
	require.NoError(t, err)
	st.Devices = append(st.Devices, hardware.DeviceState{Name: "v9990"})
	_, err = hardware.RestoreBoard(env, st)
	require.True(t, curated.Has(err, hardware.DeviceNotFound))

	_, err = hardware.NewBoard(env).State()
	require.True(t, curated.Is(err, hardware.NoMachine))
}

func TestHistory(t *testing.T) {
	b, _ := newBoard(t)
	_, err := b.InsertExtensionByName(hwconfig.Extension, "ide", "b")
	require.NoError(t, err)
	b.Reset()
	require.NoError(t, b.RemoveExtensionByName("ide"))

	var kinds []recorder.Kind
	for _, e := range b.History().Entries() {
		kinds = append(kinds, e.Kind)
	}
	require.Equal(t, []recorder.Kind{
		recorder.KindPowerUp,
		recorder.KindInsertExtension,
		recorder.KindReset,
		recorder.KindRemoveExtension,
	}, kinds)

	require.Equal(t, []string{"extension", "ide", "b"}, b.History().Entries()[1].Args)
}
