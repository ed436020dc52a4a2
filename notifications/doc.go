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

// Package notifications allow communication from the hardware and session to
// anything that is interested in lifecycle events. For example, a front-end
// might use the NotifyExtensionAdd notice to update a list of inserted
// cartridges.
//
// Notifications are published on a Bus. Publishing never waits for a response
// from a subscriber and a subscriber that returns an error does not stop the
// notice being delivered to other subscribers.
package notifications
