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

// Package setup stores and restores the setup of a board. A setup is a board
// state of limited depth. At the shallowest depth only the machine is stored.
// Deeper setups add the extensions, what is plugged into the connectors and
// the media in the media providers. The deepest depth is the complete state
// of the board.
//
// Setups of less than complete depth are made by reconstructing the board in
// a temporary board, to the requested depth, and storing the complete state
// of the temporary board. The restored board boots from power up.
package setup

import (
	"path/filepath"
	"strings"

	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/paths"
)

// Sentinal error patterns.
const (
	UnknownDepth = "setup: unknown depth: %s"
	StoreFailed  = "setup: store: %v"
)

// Depth of a setup.
type Depth int

// List of valid Depth values. Each depth includes everything of the depths
// before it.
const (
	None Depth = iota
	Machine
	Extensions
	Connectors
	Media
	CompleteState
)

var depthNames = []string{"none", "machine", "extensions", "connectors", "media", "complete_state"}

func (d Depth) String() string {
	if d < None || d > CompleteState {
		return "unknown"
	}
	return depthNames[d]
}

// ParseDepth is the inverse of Depth.String(). Case insensitive.
func ParseDepth(s string) (Depth, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	for i, d := range depthNames {
		if d == n {
			return Depth(i), nil
		}
	}
	return None, curated.Errorf(UnknownDepth, s)
}

// Path returns the filename for a setup name. A name with a directory or a
// file extension is used as it is. Otherwise the file is in the setups
// resource directory.
func Path(name string) string {
	if filepath.Base(name) != name || filepath.Ext(name) != "" {
		return name
	}
	return paths.ResourcePath(paths.Setups, name+".yaml")
}
