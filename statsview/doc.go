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

// Package statsview serves runtime statistics of the emulator process over
// HTTP. The server is only built when the "statsview" build tag is present.
// Without the tag Available() returns false and Launch() does nothing.
//
// Once launched, the statistics are at
//
//	localhost:12680/debug/statsview
//
// and the standard pprof pages at
//
//	localhost:12680/debug/pprof/
package statsview

// DefaultAddress is the address used when Launch() is given an empty address.
const DefaultAddress = "localhost:12680"

const page = "/debug/statsview"
