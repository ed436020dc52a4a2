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

// Package paths contains functions to prepare paths to openMSX resources.
//
// The ResourcePath() function modifies the supplied resource string such that
// it is prepended with the appropriate base directory. For example, the
// following will return the path to a stored setup.
//
//	d := paths.ResourcePath("setups", "mysetup.yaml")
//
// The policy of ResourcePath() is simple: if the OPENMSX_HOME environment
// variable is set then that is the base path. Otherwise, if the base resource
// path, defined to be ".openmsx", is present in the program's current
// directory then that is the base path that will used. If it is not present
// then the user's config directory is used.
//
// In the last case, on a modern Linux system, the path returned will be:
//
//	/home/user/.config/openmsx/setups/mysetup.yaml
//
// The OPENMSX_HOME variable can also be set in a .env file, loaded with the
// LoadDotEnv() function.
package paths
