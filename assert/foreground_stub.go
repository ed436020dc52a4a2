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

//go:build !assertions

package assert

import "sync/atomic"

var foreground atomic.Uint64

// SetForeground marks the calling goroutine as the foreground goroutine.
func SetForeground() {
	foreground.Store(GetGoRoutineID())
}

// Foreground does nothing unless the "assertions" build tag is present.
func Foreground() {
}

// IsForeground returns true if the calling goroutine is the foreground
// goroutine, or if no foreground goroutine has been set.
func IsForeground() bool {
	f := foreground.Load()
	return f == 0 || f == GetGoRoutineID()
}
