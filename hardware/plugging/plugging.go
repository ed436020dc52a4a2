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

// Package plugging manages the connectors of a board and the pluggables that
// can be plugged into them. A connector is provided by a device (for example
// a joystick port). A pluggable is something that can be plugged into a
// connector of the same class (for example a joystick or a mouse).
package plugging

import (
	"fmt"
	"sort"

	"github.com/taupter/openMSX/curated"
)

// Sentinal error patterns.
const (
	UnknownConnector = "plugging: unknown connector: %s"
	UnknownPluggable = "plugging: unknown pluggable: %s"
	ClassMismatch    = "plugging: %s (%s) cannot be plugged into %s (%s)"
	AlreadyPlugged   = "plugging: %s is already plugged into %s"
)

// Class differentiates incompatible kinds of connector.
type Class string

// List of connector classes.
const (
	JoystickPort Class = "msx joystick port"
	PrinterPort  Class = "printer port"
	CassettePort Class = "cassette port"
)

// Pluggable describes something that can be plugged into a connector.
type Pluggable struct {
	Name        string
	Class       Class
	Description string
}

// Connector is provided by a device.
type Connector struct {
	Name        string
	Class       Class
	Description string

	plugged *Pluggable
}

// Plugged returns the name of the pluggable in the connector. The empty string
// if nothing is plugged in.
func (c *Connector) Plugged() string {
	if c.plugged == nil {
		return ""
	}
	return c.plugged.Name
}

// Controller keeps track of the connectors and pluggables of a board.
type Controller struct {
	connectors []*Connector
	pluggables map[string]Pluggable
}

// NewController is the preferred method of initialisation for the Controller
// type. The list of pluggables is the same for every board.
func NewController(pluggables []Pluggable) *Controller {
	c := &Controller{
		pluggables: make(map[string]Pluggable),
	}
	for _, p := range pluggables {
		c.pluggables[p.Name] = p
	}
	return c
}

// DefaultPluggables is the list of pluggables available to every board.
var DefaultPluggables = []Pluggable{
	{Name: "joystick", Class: JoystickPort, Description: "MSX joystick"},
	{Name: "mouse", Class: JoystickPort, Description: "MSX mouse"},
	{Name: "keyjoystick", Class: JoystickPort, Description: "joystick emulated with the keyboard"},
	{Name: "printer", Class: PrinterPort, Description: "printer logging to file"},
}

// RegisterConnector adds a connector. Duplicate connector names are a
// programming error and will cause a panic.
func (c *Controller) RegisterConnector(con *Connector) {
	for _, e := range c.connectors {
		if e.Name == con.Name {
			panic(fmt.Sprintf("plugging: duplicate connector: %s", con.Name))
		}
	}
	c.connectors = append(c.connectors, con)
}

// UnregisterConnector removes a connector. Anything plugged into the connector
// is unplugged.
func (c *Controller) UnregisterConnector(con *Connector) {
	for i, e := range c.connectors {
		if e == con {
			con.plugged = nil
			c.connectors = append(c.connectors[:i], c.connectors[i+1:]...)
			return
		}
	}
}

// Connectors returns every connector in registration order.
func (c *Controller) Connectors() []*Connector {
	l := make([]*Connector, len(c.connectors))
	copy(l, c.connectors)
	return l
}

// FindConnector returns the connector with name.
func (c *Controller) FindConnector(name string) (*Connector, bool) {
	for _, e := range c.connectors {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Pluggables returns the names of all pluggables sorted alphabetically.
func (c *Controller) Pluggables() []string {
	n := make([]string, 0, len(c.pluggables))
	for k := range c.pluggables {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// Plug the named pluggable into the named connector. Anything already in the
// connector is unplugged first. A pluggable can only be in one connector at
// a time.
func (c *Controller) Plug(connector string, pluggable string) error {
	con, ok := c.FindConnector(connector)
	if !ok {
		return curated.Errorf(UnknownConnector, connector)
	}
	p, ok := c.pluggables[pluggable]
	if !ok {
		return curated.Errorf(UnknownPluggable, pluggable)
	}
	if p.Class != con.Class {
		return curated.Errorf(ClassMismatch, p.Name, p.Class, con.Name, con.Class)
	}
	for _, e := range c.connectors {
		if e != con && e.Plugged() == p.Name {
			return curated.Errorf(AlreadyPlugged, p.Name, e.Name)
		}
	}
	con.plugged = &p
	return nil
}

// Unplug whatever is plugged into the named connector.
func (c *Controller) Unplug(connector string) error {
	con, ok := c.FindConnector(connector)
	if !ok {
		return curated.Errorf(UnknownConnector, connector)
	}
	con.plugged = nil
	return nil
}
