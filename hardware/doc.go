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

// Package hardware is the base package for the emulation of a board. It and
// its sub-packages contain everything required for a headless emulation.
//
// The Board type is the root of the emulation of a single machine. It owns
// the scheduler, the CPU loop, the device registry, the slot manager, the
// media provider registry and the connectors of the machine. Exactly one
// machine configuration can be loaded into a board and any number of
// extension configurations can be inserted and removed while the board is
// running.
//
// Every Board method must be called from the foreground goroutine with the
// exception of ExitLoopAsync(), which can be called from any goroutine.
package hardware
