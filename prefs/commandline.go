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

package prefs

import (
	"strings"
)

// ParseCommandLine divides a preferences string of the form:
//
//	key::value; key::value
//
// into key/value pairs. Malformed pairs are ignored.
func ParseCommandLine(prefs string) map[string]string {
	cl := make(map[string]string)

	for _, p := range strings.Split(prefs, ";") {
		kv := strings.Split(p, "::")
		if len(kv) == 2 {
			cl[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return cl
}

// ApplyCommandLine sets the preferences in the Disk from a preferences
// string. See ParseCommandLine() for the format of the string. Unknown keys
// are returned as an error but do not stop the other keys being applied.
func (dsk *Disk) ApplyCommandLine(prefs string) error {
	var first error
	for k, v := range ParseCommandLine(prefs) {
		if err := dsk.Set(k, v); err != nil && first == nil {
			first = err
		}
	}
	return first
}
