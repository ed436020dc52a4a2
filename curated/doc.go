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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with the Errorf() function. The pattern string
// given to Errorf() is kept with the error and can later be used to identify
// the error with the Is() and Has() functions.
//
// Packages that produce errors that callers are expected to react to declare
// their patterns as exported constants. For example:
//
//	const ExtensionNotFound = "board: extension not found: %s"
//
//	func (b *Board) FindExtension(name string) (*hwconfig.Config, error) {
//		...
//		return nil, curated.Errorf(ExtensionNotFound, name)
//	}
//
// And the caller:
//
//	if curated.Is(err, hardware.ExtensionNotFound) {
//		...
//	}
//
// Has() is like Is() but will also look at any errors that have been used as
// values when creating the error. In other words, it searches the chain of
// errors.
//
// The Error() function de-duplicates adjacent message parts. A chain of
// errors that have been wrapped with the same prefix will only show that
// prefix once:
//
//	board: board: extension not found: fmpac
//
// is shown as:
//
//	board: extension not found: fmpac
//
// Curated errors that have been created with an error value can be unwrapped
// and so work with the errors.Is() and errors.As() functions of the standard
// library.
package curated
