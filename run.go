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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/taupter/openMSX/assert"
	"github.com/taupter/openMSX/commands"
	"github.com/taupter/openMSX/logger"
	"github.com/taupter/openMSX/session"
	"github.com/taupter/openMSX/statsview"
)

// flags of the run command.
var (
	noThrottle bool
	stats      bool
	script     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the emulator with commands read from stdin",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		assert.SetForeground()

		env := newEnvironment()
		if noThrottle {
			if err := env.Settings.Throttle.Set(false); err != nil {
				logrus.Fatalf("%v", err)
			}
		}

		s := session.NewSession(env)
		if err := startMachine(s); err != nil {
			logrus.Fatalf("%v", err)
		}

		if stats {
			if !statsview.Available() {
				logrus.Warn("statsview is not available in this build")
			}
			statsview.Launch(cmd.OutOrStdout(), "")
		}

		c := commands.NewController(s, cmd.OutOrStdout())

		if script != "" {
			f, err := os.Open(script)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			err = runScript(c, f, cmd.OutOrStdout())
			f.Close()
			if err != nil {
				logrus.Fatalf("%v", err)
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		go console(s, c, os.Stdin, cmd.OutOrStdout(), isTerminal(os.Stdin))

		if err := s.Run(ctx); err != nil && err != context.Canceled {
			logger.Log(logger.Allow, "openmsx", err)
		}

		if err := env.SaveSettings(); err != nil {
			logrus.Errorf("%v", err)
		}
	},
}

func init() {
	runCmd.Flags().BoolVar(&noThrottle, "no-throttle", false, "Run as fast as possible")
	runCmd.Flags().BoolVar(&stats, "statsview", false, "Launch the runtime statistics server")
	runCmd.Flags().StringVar(&script, "script", "", "File of commands to run before reading from stdin")
}

// runScript executes every line read from r. Lines starting with # are
// comments. The first failing command stops the script.
func runScript(c *commands.Controller, r io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if len(line) > 0 && line[0] == '#' {
			continue
		}
		res, err := c.Execute(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if res != "" {
			fmt.Fprintln(out, res)
		}
	}
	return scanner.Err()
}

// console reads commands from in and posts them to the session. The session
// quits when in is closed. A prompt is printed when in is a terminal.
func console(s *session.Session, c *commands.Controller, in io.Reader, out io.Writer, prompt bool) {
	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		done := make(chan struct{})
		s.Post(session.EventFunc(func(_ *session.Session) error {
			defer close(done)
			res, err := c.Execute(line)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				return nil
			}
			if res != "" {
				fmt.Fprintln(out, res)
			}
			return nil
		}))

		// wait for the result before printing the next prompt
		<-done
	}
	s.Quit()
}
