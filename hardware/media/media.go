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

// Package media is the registry of devices that accept removable media. A
// media provider is found by name (for example "diska" or "cassetteplayer")
// without needing to know the concrete type of the device.
package media

import "fmt"

// Info describes the media currently held by a provider.
type Info struct {
	Target string `yaml:"target"`
	Type   string `yaml:"type"`

	// Image is empty when no media is inserted.
	Image string `yaml:"image,omitempty"`

	ReadOnly bool `yaml:"readonly,omitempty"`
}

// Provider is implemented by devices that hold removable media.
type Provider interface {
	MediaInfo() Info
	InsertMedia(image string) error
	EjectMedia()
}

type registration struct {
	name     string
	provider Provider
}

// Registry maps names to media providers. The zero value is ready to use.
type Registry struct {
	providers []registration
}

// Register a media provider. Registering the same name or the same provider
// twice is a programming error and will cause a panic.
func (r *Registry) Register(name string, p Provider) {
	for _, e := range r.providers {
		if e.name == name {
			panic(fmt.Sprintf("media: duplicate media provider name: %s", name))
		}
		if e.provider == p {
			panic(fmt.Sprintf("media: media provider already registered as %s", e.name))
		}
	}
	r.providers = append(r.providers, registration{name: name, provider: p})
}

// Unregister a media provider. Unregistering a provider that was never
// registered is a programming error and will cause a panic.
func (r *Registry) Unregister(p Provider) {
	for i, e := range r.providers {
		if e.provider == p {
			r.providers = append(r.providers[:i], r.providers[i+1:]...)
			return
		}
	}
	panic("media: unregistering unknown media provider")
}

// Find returns the media provider registered with name.
func (r *Registry) Find(name string) (Provider, bool) {
	for _, e := range r.providers {
		if e.name == name {
			return e.provider, true
		}
	}
	return nil, false
}

// Names returns the names of every registered provider in registration order.
func (r *Registry) Names() []string {
	n := make([]string, 0, len(r.providers))
	for _, e := range r.providers {
		n = append(n, e.name)
	}
	return n
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	return len(r.providers)
}
