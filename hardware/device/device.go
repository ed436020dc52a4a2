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

// Package device defines the hardware units installed on a board. Concrete
// chip emulation is not the concern of this package. What matters are the
// lifecycle hooks called by the board and the optional interfaces that allow
// a device to take part in removal checks, save states and info queries.
//
// Devices are created by the Factory from a Spec. The Spec comes from a
// hardware description and names the type of the device, an optional name and
// a list of parameters.
package device

import (
	"github.com/taupter/openMSX/hardware/media"
	"github.com/taupter/openMSX/hardware/plugging"
	"github.com/taupter/openMSX/hardware/scheduler"
	"github.com/taupter/openMSX/logger"
)

// Sentinal error patterns.
const (
	MissingService = "device: %s: no %s"
	TargetExists   = "device: %s: %s already exists"
	InvalidState   = "device: %s: invalid state: %v"
	EmptyImage     = "device: %s: %s is empty"
	MediaError     = "device: %s: media: %v"
)

// Device is a hardware unit owned by a board.
type Device interface {
	Name() string
	Reset(t scheduler.Time)
	PowerUp(t scheduler.Time)
	PowerDown(t scheduler.Time)
	Read(address uint16, t scheduler.Time) uint8
	Write(address uint16, data uint8, t scheduler.Time)
}

// Destroyer is implemented by devices that need to release resources when
// they are removed from a board. A device that registered a media provider or
// a connector must unregister it in Destroy().
type Destroyer interface {
	Destroy()
}

// Remover is implemented by devices that can veto their removal.
type Remover interface {
	TestRemove() error
}

// Stater is implemented by devices that have state that must be stored in a
// complete save state.
type Stater interface {
	State() map[string]string
	SetState(state map[string]string) error
}

// Informer is implemented by devices that can describe themselves.
type Informer interface {
	Info() string
}

// Spec describes a device to be created by the Factory.
type Spec struct {
	Type   string            `yaml:"type"`
	Name   string            `yaml:"name,omitempty"`
	Params map[string]string `yaml:"params,omitempty"`
}

// Param returns the named parameter or the default value if the parameter is
// not present.
func (s Spec) Param(key string, def string) string {
	if v, ok := s.Params[key]; ok {
		return v
	}
	return def
}

// Context is given to device constructors. It is how a device reaches the
// services of the board it is being installed on.
type Context struct {
	Scheduler *scheduler.Scheduler
	Devices   *Registry
	Media     *media.Registry
	Plugging  *plugging.Controller

	// permission to use when logging
	Perm logger.Permission

	// the instance name of the configuration creating the device
	Owner string
}

// logPerm returns the permission of the context. logger.Allow if none has
// been set.
func (ctx Context) logPerm() logger.Permission {
	if ctx.Perm == nil {
		return logger.Allow
	}
	return ctx.Perm
}
