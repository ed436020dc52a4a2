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

package paths

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// the base path for all resources. note that we don't use this value directly
// except in the getBasePath() function. that function should be used instead.
const baseResourcePath = ".openmsx"

// HomeEnv is the environment variable that overrides the base path.
const HomeEnv = "OPENMSX_HOME"

// Resource directories below the base path.
const (
	Machines   = "machines"
	Extensions = "extensions"
	Setups     = "setups"
	States     = "savestates"
	Settings   = "settings.yaml"
)

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with operating system specific details.
func ResourcePath(resource ...string) string {
	p := make([]string, 0, len(resource)+1)
	p = append(p, getBasePath())
	p = append(p, resource...)
	return filepath.Join(p...)
}

// getBasePath() returns the base path for resources. note that we're not
// checking for the existance of the resource requested by the caller.
func getBasePath() string {
	if h := os.Getenv(HomeEnv); h != "" {
		return h
	}

	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return baseResourcePath
	}
	return filepath.Join(cnf, baseResourcePath[1:])
}

// LoadDotEnv loads environment variables from path. Missing files are
// ignored. Variables already present in the environment are not overwritten.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
