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

package device

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware/cassette"
	"github.com/taupter/openMSX/hardware/media"
	"github.com/taupter/openMSX/hardware/plugging"
	"github.com/taupter/openMSX/hardware/scheduler"
	"github.com/taupter/openMSX/logger"
)

// DiskDrive is a floppy disk drive. The drive registers itself as a media
// provider under its own name.
type DiskDrive struct {
	name     string
	registry *media.Registry
	perm     logger.Permission

	image    string
	readOnly bool
}

func newDiskDrive(ctx Context, name string, spec Spec) (Device, error) {
	if ctx.Media == nil {
		return nil, curated.Errorf(MissingService, name, "media registry")
	}
	ro, err := strconv.ParseBool(spec.Param("readonly", "false"))
	if err != nil {
		return nil, curated.Errorf(InvalidParameter, spec.Type, "readonly", err)
	}
	if _, ok := ctx.Media.Find(name); ok {
		return nil, curated.Errorf(TargetExists, name, "media target")
	}
	d := &DiskDrive{
		name:     name,
		registry: ctx.Media,
		perm:     ctx.logPerm(),
		readOnly: ro,
	}
	ctx.Media.Register(name, d)
	return d, nil
}

// Name implements the Device interface.
func (d *DiskDrive) Name() string { return d.name }

// Reset implements the Device interface.
func (d *DiskDrive) Reset(_ scheduler.Time) {}

// PowerUp implements the Device interface.
func (d *DiskDrive) PowerUp(_ scheduler.Time) {}

// PowerDown implements the Device interface.
func (d *DiskDrive) PowerDown(_ scheduler.Time) {}

// Read implements the Device interface. Bit 0 is set when a disk is present.
func (d *DiskDrive) Read(_ uint16, _ scheduler.Time) uint8 {
	if d.image != "" {
		return 0x01
	}
	return 0x00
}

// Write implements the Device interface.
func (d *DiskDrive) Write(_ uint16, _ uint8, _ scheduler.Time) {}

// Destroy implements the Destroyer interface.
func (d *DiskDrive) Destroy() {
	d.registry.Unregister(d)
}

// Info implements the Informer interface.
func (d *DiskDrive) Info() string {
	if d.image == "" {
		return "disk drive (empty)"
	}
	return fmt.Sprintf("disk drive (%s)", filepath.Base(d.image))
}

// MediaInfo implements the media.Provider interface.
func (d *DiskDrive) MediaInfo() media.Info {
	return media.Info{
		Target:   d.name,
		Type:     "disk",
		Image:    d.image,
		ReadOnly: d.readOnly,
	}
}

// InsertMedia implements the media.Provider interface. The image must exist.
func (d *DiskDrive) InsertMedia(image string) error {
	if _, err := os.Stat(image); err != nil {
		return curated.Errorf(MediaError, d.name, err)
	}
	d.image = image
	logger.Logf(d.perm, d.name, "inserted %s", filepath.Base(image))
	return nil
}

// EjectMedia implements the media.Provider interface.
func (d *DiskDrive) EjectMedia() {
	d.image = ""
}

// CassettePlayer is the device wrapper for the cassette.Player media
// provider.
type CassettePlayer struct {
	*cassette.Player
	name     string
	registry *media.Registry
	sched    *scheduler.Scheduler
	last     scheduler.Time
}

func newCassettePlayer(ctx Context, name string, _ Spec) (Device, error) {
	if ctx.Media == nil {
		return nil, curated.Errorf(MissingService, name, "media registry")
	}
	if _, ok := ctx.Media.Find(name); ok {
		return nil, curated.Errorf(TargetExists, name, "media target")
	}
	c := &CassettePlayer{
		Player:   cassette.NewPlayer(name),
		name:     name,
		registry: ctx.Media,
		sched:    ctx.Scheduler,
	}
	ctx.Media.Register(name, c)
	return c, nil
}

// Name implements the Device interface.
func (c *CassettePlayer) Name() string { return c.name }

// Reset implements the Device interface.
func (c *CassettePlayer) Reset(t scheduler.Time) {
	c.sync(t)
	c.SetMotor(false)
}

// PowerUp implements the Device interface.
func (c *CassettePlayer) PowerUp(t scheduler.Time) {
	c.last = t
}

// PowerDown implements the Device interface.
func (c *CassettePlayer) PowerDown(t scheduler.Time) {
	c.sync(t)
	c.SetMotor(false)
}

// sync advances the tape to virtual time t.
func (c *CassettePlayer) sync(t scheduler.Time) {
	if t > c.last {
		c.Advance((t - c.last).Duration())
	}
	c.last = t
}

// Read implements the Device interface. Bit 0 is the motor state.
func (c *CassettePlayer) Read(_ uint16, t scheduler.Time) uint8 {
	c.sync(t)
	if c.Motor() {
		return 0x01
	}
	return 0x00
}

// Write implements the Device interface. Bit 0 switches the motor.
func (c *CassettePlayer) Write(_ uint16, data uint8, t scheduler.Time) {
	c.sync(t)
	c.SetMotor(data&0x01 == 0x01)
}

// Destroy implements the Destroyer interface.
func (c *CassettePlayer) Destroy() {
	c.registry.Unregister(c)
}

// Info implements the Informer interface.
func (c *CassettePlayer) Info() string {
	if t := c.Tape(); t != nil {
		return fmt.Sprintf("cassette player (%s)", t)
	}
	return "cassette player (empty)"
}

// JoystickPort is a connector for joysticks, mice and similar pluggables.
type JoystickPort struct {
	name       string
	controller *plugging.Controller
	connector  *plugging.Connector
}

func newJoystickPort(ctx Context, name string, _ Spec) (Device, error) {
	if ctx.Plugging == nil {
		return nil, curated.Errorf(MissingService, name, "plugging controller")
	}
	if _, ok := ctx.Plugging.FindConnector(name); ok {
		return nil, curated.Errorf(TargetExists, name, "connector")
	}
	j := &JoystickPort{
		name:       name,
		controller: ctx.Plugging,
		connector: &plugging.Connector{
			Name:        name,
			Class:       plugging.JoystickPort,
			Description: "MSX joystick port",
		},
	}
	ctx.Plugging.RegisterConnector(j.connector)
	return j, nil
}

// Name implements the Device interface.
func (j *JoystickPort) Name() string { return j.name }

// Reset implements the Device interface.
func (j *JoystickPort) Reset(_ scheduler.Time) {}

// PowerUp implements the Device interface.
func (j *JoystickPort) PowerUp(_ scheduler.Time) {}

// PowerDown implements the Device interface.
func (j *JoystickPort) PowerDown(_ scheduler.Time) {}

// Read implements the Device interface. All lines are high (nothing pressed).
func (j *JoystickPort) Read(_ uint16, _ scheduler.Time) uint8 {
	return 0x3f
}

// Write implements the Device interface.
func (j *JoystickPort) Write(_ uint16, _ uint8, _ scheduler.Time) {}

// Destroy implements the Destroyer interface.
func (j *JoystickPort) Destroy() {
	j.controller.UnregisterConnector(j.connector)
}

// Info implements the Informer interface.
func (j *JoystickPort) Info() string {
	if p := j.connector.Plugged(); p != "" {
		return fmt.Sprintf("joystick port (%s)", p)
	}
	return "joystick port (unplugged)"
}
