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

package hwconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware/device"
	"github.com/taupter/openMSX/hardware/hwconfig"
)

const machineYAML = `info:
  type: MSX2
  manufacturer: Philips
  code: NMS 8250
slots: 2
devices:
  - type: RAM
  - type: JoystickPort
    name: joyporta
`

const diskYAML = `info:
  type: extension
  description: floppy disk interface
devices:
  - type: DiskDrive
    name: diska
`

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDirLoader(t *testing.T) {
	user := t.TempDir()
	system := t.TempDir()

	writeFile(t, filepath.Join(system, "machines", "NMS_8250.yaml"), machineYAML)
	writeFile(t, filepath.Join(system, "extensions", "disk.yaml"), diskYAML)
	writeFile(t, filepath.Join(user, "extensions", "disk.yaml"), `info:
  type: extension
  description: user disk interface
devices:
  - type: DiskDrive
`)
	writeFile(t, filepath.Join(user, "extensions", "readme.txt"), "not a description")

	l := hwconfig.DirLoader{Roots: []string{user, system}}

	d, err := l.Load(hwconfig.Machine, "NMS_8250")
	require.NoError(t, err)
	require.Equal(t, 2, d.Slots)
	require.Equal(t, "Philips", d.Info.Manufacturer)
	require.Len(t, d.Devices, 2)
	require.Equal(t, "joyporta", d.Devices[1].Name)
	require.NoError(t, d.Validate(hwconfig.Machine, "NMS_8250", device.NewFactory().Known))

	// the first root wins
	d, err = l.Load(hwconfig.Extension, "disk")
	require.NoError(t, err)
	require.Equal(t, "user disk interface", d.Info.Description)

	_, err = l.Load(hwconfig.Extension, "fmpac")
	require.True(t, curated.Is(err, hwconfig.NotFound))

	_, err = l.Load(hwconfig.Machine, "../extensions/disk")
	require.True(t, curated.Is(err, hwconfig.NotFound))

	names, err := l.List(hwconfig.Extension)
	require.NoError(t, err)
	require.Equal(t, []string{"disk"}, names)

	names, err = l.List(hwconfig.Machine)
	require.NoError(t, err)
	require.Equal(t, []string{"NMS_8250"}, names)
}

func TestParseError(t *testing.T) {
	l := hwconfig.NewMemoryLoader()
	l.Add(hwconfig.Extension, "bad", "info:\n  type: x\ncolour: red\n")
	l.Add(hwconfig.Extension, "worse", "info: [\n")

	_, err := l.Load(hwconfig.Extension, "bad")
	require.True(t, curated.Is(err, hwconfig.ParseError))

	_, err = l.Load(hwconfig.Extension, "worse")
	require.True(t, curated.Is(err, hwconfig.ParseError))

	_, err = l.Load(hwconfig.Machine, "bad")
	require.True(t, curated.Is(err, hwconfig.NotFound))
}

func TestValidate(t *testing.T) {
	known := device.NewFactory().Known

	d := &hwconfig.Description{Slots: 17, Devices: []device.Spec{{Type: "RAM"}}}
	require.True(t, curated.Is(d.Validate(hwconfig.Machine, "m", known), hwconfig.InvalidDescription))

	d = &hwconfig.Description{Slots: 1, Devices: []device.Spec{{Type: "RAM"}}}
	require.NoError(t, d.Validate(hwconfig.Machine, "m", known))
	require.Error(t, d.Validate(hwconfig.Extension, "m", known))

	d = &hwconfig.Description{}
	require.Error(t, d.Validate(hwconfig.Extension, "e", known))

	d = &hwconfig.Description{Devices: []device.Spec{{Type: "V9990"}}}
	require.Error(t, d.Validate(hwconfig.Extension, "e", known))
	require.NoError(t, d.Validate(hwconfig.Extension, "e", nil))

	require.True(t, d.NeedsSlot(hwconfig.Extension))
	require.False(t, d.NeedsSlot(hwconfig.Machine))
	d.NoSlot = true
	require.False(t, d.NeedsSlot(hwconfig.Extension))
	require.True(t, d.NeedsSlot(hwconfig.ROM))
}

func TestROMDescription(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "game.rom")
	require.NoError(t, os.WriteFile(fn, []byte("abc"), 0o644))

	d, err := hwconfig.DirLoader{}.Load(hwconfig.ROM, fn)
	require.NoError(t, err)
	require.Len(t, d.Devices, 1)
	require.Equal(t, "ROM", d.Devices[0].Type)
	require.Equal(t, "game", d.Devices[0].Name)
	require.Equal(t, fn, d.Devices[0].Param("filename", ""))
	require.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", d.Devices[0].Param("sha1", ""))

	_, err = hwconfig.NewMemoryLoader().Load(hwconfig.ROM, filepath.Join(t.TempDir(), "missing.rom"))
	require.True(t, curated.Is(err, hwconfig.NotFound))
}

type vetoDevice struct {
	device.Device
	veto error
}

func (v vetoDevice) Name() string      { return "veto" }
func (v vetoDevice) TestRemove() error { return v.veto }

func TestRemove(t *testing.T) {
	ide := hwconfig.NewConfig(1, hwconfig.Extension, "ide", "any", &hwconfig.Description{})
	hd := hwconfig.NewConfig(2, hwconfig.Extension, "harddisk", "", &hwconfig.Description{
		NoSlot:   true,
		Requires: []string{"ide"},
	})
	hd.SetName("harddisk (2)")

	installed := []*hwconfig.Config{ide, hd}

	err := ide.TestRemove(installed)
	require.True(t, curated.Is(err, hwconfig.InUse))
	require.Equal(t, "hwconfig: ide is required by harddisk (2)", err.Error())

	require.NoError(t, hd.TestRemove(installed))
	require.NoError(t, ide.TestRemove(installed[:1]))

	veto := errors.New("disk is busy")
	ide.AddDevice(vetoDevice{veto: veto})
	err = ide.TestRemove(installed[:1])
	require.True(t, curated.Is(err, hwconfig.NotRemovable))
	require.ErrorIs(t, err, veto)

	require.Len(t, ide.Devices(), 1)
	ide.ClearDevices()
	require.Empty(t, ide.Devices())
}
