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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/taupter/openMSX/environment"
	"github.com/taupter/openMSX/hardware/hwconfig"
	"github.com/taupter/openMSX/logger"
	"github.com/taupter/openMSX/paths"
	"github.com/taupter/openMSX/session"
	"github.com/taupter/openMSX/setup"
)

// flags shared by every command.
var (
	logLevel string
	dataDirs []string
	dotEnv   string
	settings string
)

// flags that describe the machine to start with.
var (
	machineName string
	setupName   string
	extensions  []string
	cartridges  []string
)

var rootCmd = &cobra.Command{
	Use:   "openmsx",
	Short: "MSX home computer emulator",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := paths.LoadDotEnv(dotEnv); err != nil {
			logrus.Fatalf("cannot read %s: %v", dotEnv, err)
		}

		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		logger.SetEcho(logrus.StandardLogger())
	},
}

var testMachineCmd = &cobra.Command{
	Use:   "test-machine <machine>",
	Short: "Check that a machine description can be loaded",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := session.NewSession(newEnvironment())
		if err := s.TestMachine(args[0]); err != nil {
			logrus.Fatalf("%v", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
	},
}

var listCmd = &cobra.Command{
	Use:       "list machines|extensions|setups",
	Short:     "List the available machines, extensions or setups",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"machines", "extensions", "setups"},
	Run: func(cmd *cobra.Command, args []string) {
		names, err := list(args[0])
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
	},
}

var storeSetupCmd = &cobra.Command{
	Use:   "store-setup <depth> <file>",
	Short: "Store the setup of a machine without running it",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		depth, err := setup.ParseDepth(args[0])
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		env := newEnvironment()
		s := session.NewSession(env)
		if err := startMachine(s); err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := s.StoreSetup(args[1], depth); err != nil {
			logrus.Fatalf("%v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), setup.Path(args[1]))
	},
}

// loaderRoots returns the directories searched for hardware descriptions.
// Directories named on the command line are searched before the resource
// directory.
func loaderRoots() []string {
	return append(append([]string{}, dataDirs...), paths.ResourcePath())
}

// newEnvironment creates the environment for a session. Settings are loaded
// from the settings file in the resource directory.
func newEnvironment() *environment.Environment {
	env := environment.NewEnvironment(&hwconfig.DirLoader{Roots: loaderRoots()})
	if err := env.LoadSettings(paths.ResourcePath(paths.Settings)); err != nil {
		logger.Logf(logger.Allow, "openmsx", "settings: %v", err)
	}
	if settings != "" && env.Disk != nil {
		if err := env.Disk.ApplyCommandLine(settings); err != nil {
			logrus.Fatalf("%v", err)
		}
	}
	return env
}

// startMachine creates the first machine of the session from the command
// line flags. A setup takes precedence over a machine name. Without either
// the default machine setting is used.
func startMachine(s *session.Session) error {
	if setupName != "" {
		if err := s.SwitchMachineFromSetup(setupName); err != nil {
			return err
		}
	} else {
		name := machineName
		if name == "" {
			name = s.Environment().Settings.DefaultMachine.String()
		}
		if err := s.SwitchMachine(name); err != nil {
			return err
		}
	}

	b := s.Active()
	for _, e := range extensions {
		if _, err := b.InsertExtensionByName(hwconfig.Extension, e, ""); err != nil {
			return err
		}
	}
	for _, c := range cartridges {
		if _, err := b.InsertExtensionByName(hwconfig.ROM, c, ""); err != nil {
			return err
		}
	}

	return nil
}

// list the names of the available machines, extensions or setups.
func list(what string) ([]string, error) {
	l := &hwconfig.DirLoader{Roots: loaderRoots()}

	switch what {
	case "machines":
		return l.List(hwconfig.Machine)
	case "extensions":
		return l.List(hwconfig.Extension)
	case "setups":
		m, err := filepath.Glob(paths.ResourcePath(paths.Setups, "*.yaml"))
		if err != nil {
			return nil, err
		}
		var n []string
		for _, f := range m {
			n = append(n, strings.TrimSuffix(filepath.Base(f), ".yaml"))
		}
		sort.Strings(n)
		return n, nil
	}

	return nil, fmt.Errorf("cannot list %s", what)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringSliceVar(&dataDirs, "data", nil, "Additional directories containing machines and extensions")
	rootCmd.PersistentFlags().StringVar(&dotEnv, "env-file", ".env", "File of environment variables to load before starting")
	rootCmd.PersistentFlags().StringVar(&settings, "settings", "", "Settings to apply at startup, in the form \"key::value; key::value\"")

	for _, c := range []*cobra.Command{runCmd, storeSetupCmd} {
		c.Flags().StringVar(&machineName, "machine", "", "Machine to start with (default is the default_machine setting)")
		c.Flags().StringSliceVar(&extensions, "ext", nil, "Extensions to insert")
		c.Flags().StringSliceVar(&cartridges, "cart", nil, "Cartridge images to insert")
	}
	runCmd.Flags().StringVar(&setupName, "setup", "", "Setup to start with")

	rootCmd.AddCommand(runCmd, testMachineCmd, listCmd, storeSetupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
