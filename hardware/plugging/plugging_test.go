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

package plugging_test

import (
	"testing"

	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware/plugging"
	"github.com/taupter/openMSX/test"
)

func TestPlug(t *testing.T) {
	c := plugging.NewController(plugging.DefaultPluggables)
	portA := &plugging.Connector{Name: "joyporta", Class: plugging.JoystickPort}
	portB := &plugging.Connector{Name: "joyportb", Class: plugging.JoystickPort}
	prn := &plugging.Connector{Name: "printerport", Class: plugging.PrinterPort}
	c.RegisterConnector(portA)
	c.RegisterConnector(portB)
	c.RegisterConnector(prn)

	test.ExpectSuccess(t, c.Plug("joyporta", "mouse"))
	test.ExpectEquality(t, portA.Plugged(), "mouse")

	// replacing what is plugged in
	test.ExpectSuccess(t, c.Plug("joyporta", "joystick"))
	test.ExpectEquality(t, portA.Plugged(), "joystick")

	err := c.Plug("joyportb", "joystick")
	test.ExpectSuccess(t, curated.Is(err, plugging.AlreadyPlugged))

	err = c.Plug("printerport", "mouse")
	test.ExpectSuccess(t, curated.Is(err, plugging.ClassMismatch))

	err = c.Plug("joyportc", "mouse")
	test.ExpectSuccess(t, curated.Is(err, plugging.UnknownConnector))

	err = c.Plug("joyportb", "trackball")
	test.ExpectSuccess(t, curated.Is(err, plugging.UnknownPluggable))

	test.ExpectSuccess(t, c.Unplug("joyporta"))
	test.ExpectEquality(t, portA.Plugged(), "")
}

func TestUnregister(t *testing.T) {
	c := plugging.NewController(plugging.DefaultPluggables)
	port := &plugging.Connector{Name: "joyporta", Class: plugging.JoystickPort}
	c.RegisterConnector(port)
	test.ExpectSuccess(t, c.Plug("joyporta", "mouse"))

	c.UnregisterConnector(port)
	_, ok := c.FindConnector("joyporta")
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, port.Plugged(), "")
	test.ExpectEquality(t, len(c.Connectors()), 0)
}
