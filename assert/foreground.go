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

//go:build assertions

package assert

import (
	"fmt"
	"sync/atomic"
)

var foreground atomic.Uint64

// SetForeground marks the calling goroutine as the foreground goroutine. The
// foreground goroutine owns virtual time and board mutation.
func SetForeground() {
	foreground.Store(GetGoRoutineID())
}

// Foreground panics if the calling goroutine is not the foreground goroutine.
// If SetForeground() has never been called the first caller becomes the
// foreground goroutine.
func Foreground() {
	id := GetGoRoutineID()
	if foreground.CompareAndSwap(0, id) {
		return
	}
	if f := foreground.Load(); f != id {
		panic(fmt.Sprintf("assert: foreground operation called from goroutine %d (foreground is %d)", id, f))
	}
}

// IsForeground returns true if the calling goroutine is the foreground
// goroutine.
func IsForeground() bool {
	f := foreground.Load()
	return f == 0 || f == GetGoRoutineID()
}
