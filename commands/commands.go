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

// Package commands is the user and script interface to a session. Every
// command is an entry in a single table that maps the command name to its
// handler and its help text.
//
// Arguments are separated by spaces. An argument containing spaces can be
// quoted with double quotes, using Go escaping rules inside the quotes.
package commands

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware"
	"github.com/taupter/openMSX/session"
)

// Sentinal error patterns.
const (
	UnknownCommand = "commands: unknown command: %s"
	Usage          = "commands: usage: %s"
	Failed         = "commands: %s: %v"
	Malformed      = "commands: malformed command: %s"
)

// handler is the function implementing a command. The args do not include
// the command name.
type handler func(c *Controller, args []string) (string, error)

type command struct {
	handler handler
	usage   string
	help    string
}

// Controller executes commands against a session.
type Controller struct {
	Session *session.Session

	// output of commands that write more than a single result. may be nil
	Out io.Writer
}

// NewController is the preferred method of initialisation for the Controller
// type.
func NewController(s *session.Session, out io.Writer) *Controller {
	return &Controller{Session: s, Out: out}
}

// Split a command line into arguments.
func Split(line string) ([]string, error) {
	var args []string

	s := strings.TrimSpace(line)
	for s != "" {
		if s[0] == '"' {
			q, err := strconv.QuotedPrefix(s)
			if err != nil {
				return nil, curated.Errorf(Malformed, line)
			}
			a, err := strconv.Unquote(q)
			if err != nil {
				return nil, curated.Errorf(Malformed, line)
			}
			args = append(args, a)
			s = s[len(q):]
			if s != "" && s[0] != ' ' && s[0] != '\t' {
				return nil, curated.Errorf(Malformed, line)
			}
		} else {
			i := strings.IndexAny(s, " \t")
			if i < 0 {
				i = len(s)
			}
			args = append(args, s[:i])
			s = s[i:]
		}
		s = strings.TrimLeft(s, " \t")
	}

	return args, nil
}

// Execute a single command line. Returns the result of the command. An empty
// line does nothing.
func (c *Controller) Execute(line string) (string, error) {
	args, err := Split(line)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return "", nil
	}
	return c.Run(args[0], args[1:]...)
}

// Run the named command with the arguments.
func (c *Controller) Run(name string, args ...string) (string, error) {
	cmd, ok := table[name]
	if !ok {
		return "", curated.Errorf(UnknownCommand, name)
	}
	return cmd.handler(c, args)
}

// Names returns the name of every command in alphabetical order.
func Names() []string {
	n := make([]string, 0, len(table))
	for k := range table {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// Help returns the usage and help text for the named command.
func Help(name string) (string, error) {
	cmd, ok := table[name]
	if !ok {
		return "", curated.Errorf(UnknownCommand, name)
	}
	return fmt.Sprintf("%s\n  %s", cmd.usage, cmd.help), nil
}

func (c *Controller) printf(format string, args ...any) {
	if c.Out != nil {
		fmt.Fprintf(c.Out, format, args...)
	}
}

// active returns the active board of the session.
func (c *Controller) active() (*hardware.Board, error) {
	b := c.Session.Active()
	if b == nil {
		return nil, curated.Errorf(session.NoActiveBoard)
	}
	return b, nil
}

// board returns the board with the ID or the active board if the ID is
// empty.
func (c *Controller) board(id string) (*hardware.Board, error) {
	if id == "" {
		return c.active()
	}
	return c.Session.Board(id)
}

// usage returns the usage error for the named command.
func usage(name string) error {
	return curated.Errorf(Usage, table[name].usage)
}

// checkArgs returns the usage error if the number of args is outside of the
// range min to max. A negative max means there is no upper limit.
func checkArgs(name string, args []string, min int, max int) error {
	if len(args) < min || (max >= 0 && len(args) > max) {
		return usage(name)
	}
	return nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
