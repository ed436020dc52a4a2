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

// Package logger is the central log for the emulator. Entries are made with
// the Log() and Logf() functions and consist of a tag and a detail string.
// Consecutive entries that are identical are folded into a single entry with
// a repeat count.
//
// Every log request is accompanied by a Permission. Use logger.Allow when an
// entry should always be made. A board is also a Permission, denying log
// entries while its messages are suppressed, which is how temporary boards
// created while storing a setup stay quiet.
//
// Entries can be echoed to a logrus.Logger with SetEcho(). The level and
// formatting of the echo is decided by the logrus.Logger, not by this package.
package logger
