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

package commands

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware/hwconfig"
	"github.com/taupter/openMSX/hardware/scheduler"
	"github.com/taupter/openMSX/paths"
	"github.com/taupter/openMSX/recorder"
	"github.com/taupter/openMSX/setup"
)

// list formats the items as a single result. Items containing spaces are
// quoted.
func list(items []string) string {
	q := make([]string, len(items))
	for i, s := range items {
		if s == "" || strings.ContainsAny(s, " \t\"") {
			s = strconv.Quote(s)
		}
		q[i] = s
	}
	return strings.Join(q, " ")
}

func seconds(t scheduler.Time) string {
	return strconv.FormatFloat(float64(t)/float64(scheduler.TicksPerSecond), 'f', 6, 64)
}

func createMachine(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdCreateMachine, args, 0, 0); err != nil {
		return "", err
	}
	return c.Session.CreateEmptyBoard().ID(), nil
}

func loadMachine(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdLoadMachine, args, 2, 2); err != nil {
		return "", err
	}
	b, err := c.Session.Board(args[0])
	if err != nil {
		return "", err
	}
	if err := b.LoadMachine(args[1]); err != nil {
		return "", err
	}
	return b.MachineName(), nil
}

func deleteMachine(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdDeleteMachine, args, 1, 1); err != nil {
		return "", err
	}
	return "", c.Session.DeleteBoard(args[0])
}

func listMachines(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdListMachines, args, 0, 0); err != nil {
		return "", err
	}
	return list(c.Session.IDs()), nil
}

func activateMachine(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdActivateMachine, args, 1, 1); err != nil {
		return "", err
	}
	b, err := c.Session.Board(args[0])
	if err != nil {
		return "", err
	}
	return "", c.Session.SwitchActive(b)
}

func machine(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdMachine, args, 0, 1); err != nil {
		return "", err
	}
	if len(args) == 1 {
		if err := c.Session.SwitchMachine(args[0]); err != nil {
			return "", err
		}
	}
	if b := c.Session.Active(); b != nil {
		return b.ID(), nil
	}
	return "", nil
}

func testMachine(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdTestMachine, args, 1, 1); err != nil {
		return "", err
	}
	return "", c.Session.TestMachine(args[0])
}

func storeMachine(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdStoreMachine, args, 0, 2); err != nil {
		return "", err
	}
	id := ""
	path := ""
	switch len(args) {
	case 1:
		path = args[0]
	case 2:
		id = args[0]
		path = args[1]
	}
	b, err := c.board(id)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = paths.ResourcePath(paths.States, paths.UniqueFilename("state", b.MachineName())+".yaml")
	}
	if err := c.Session.StoreBoard(b.ID(), path); err != nil {
		return "", err
	}
	return path, nil
}

func restoreMachine(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdRestoreMachine, args, 1, 1); err != nil {
		return "", err
	}
	b, err := c.Session.RestoreBoard(args[0])
	if err != nil {
		return "", err
	}
	return b.ID(), nil
}

func loadSetup(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdSetup, args, 1, 1); err != nil {
		return "", err
	}
	if err := c.Session.SwitchMachineFromSetup(args[0]); err != nil {
		return "", err
	}
	return c.Session.Active().ID(), nil
}

func storeSetup(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdStoreSetup, args, 1, 2); err != nil {
		return "", err
	}
	d := c.Session.Environment().Settings.SaveSetupAtExitDepth.String()
	if len(args) == 2 {
		d = args[1]
	}
	depth, err := setup.ParseDepth(d)
	if err != nil {
		return "", err
	}
	if err := c.Session.StoreSetup(args[0], depth); err != nil {
		return "", err
	}
	return setup.Path(args[0]), nil
}

// insertExtension returns the handler for the ext and cart commands. A fixed
// slot means the slot is not an argument.
func insertExtension(kind hwconfig.Kind, slot string) handler {
	return func(c *Controller, args []string) (string, error) {
		name := CmdExt
		if kind == hwconfig.ROM {
			name = CmdCart
		}
		max := 2
		if slot != "" {
			name += slot
			max = 1
		}

		if err := checkArgs(name, args, 1, max); err != nil {
			return "", err
		}

		b, err := c.active()
		if err != nil {
			return "", err
		}

		spec := slot
		if len(args) == 2 {
			spec = args[1]
		}

		cfg, err := b.InsertExtensionByName(kind, args[0], spec)
		if err != nil {
			return "", err
		}
		return cfg.Name(), nil
	}
}

func removeExtension(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdRemoveExtension, args, 1, 1); err != nil {
		return "", err
	}
	b, err := c.active()
	if err != nil {
		return "", err
	}
	return "", b.RemoveExtensionByName(args[0])
}

func extensionNames(c *Controller) ([]string, error) {
	b, err := c.active()
	if err != nil {
		return nil, err
	}
	var n []string
	for _, e := range b.Extensions() {
		n = append(n, e.Name())
	}
	return n, nil
}

func listExtensions(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdListExtensions, args, 0, 0); err != nil {
		return "", err
	}
	n, err := extensionNames(c)
	if err != nil {
		return "", err
	}
	return list(n), nil
}

func reset(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdReset, args, 0, 0); err != nil {
		return "", err
	}
	b, err := c.active()
	if err != nil {
		return "", err
	}
	b.Reset()
	return "", nil
}

func power(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdPower, args, 0, 1); err != nil {
		return "", err
	}
	b, err := c.active()
	if err != nil {
		return "", err
	}
	if len(args) == 1 {
		if err := c.Session.Environment().Settings.Power.Set(args[0]); err != nil {
			return "", curated.Errorf(Failed, CmdPower, err)
		}
	}
	return onOff(b.Powered()), nil
}

func pause(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdPause, args, 0, 0); err != nil {
		return "", err
	}
	return "", c.Session.Pause()
}

func unpause(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdUnpause, args, 0, 0); err != nil {
		return "", err
	}
	return "", c.Session.Unpause()
}

func plug(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdPlug, args, 0, 2); err != nil {
		return "", err
	}
	b, err := c.active()
	if err != nil {
		return "", err
	}

	switch len(args) {
	case 0:
		for _, con := range b.Plugging().Connectors() {
			c.printf("%s: %s\n", con.Name, con.Plugged())
		}
		return "", nil
	case 1:
		con, ok := b.Plugging().FindConnector(args[0])
		if !ok {
			return "", curated.Errorf(Failed, CmdPlug, fmt.Sprintf("no connector %s", args[0]))
		}
		return con.Plugged(), nil
	}

	return "", b.Plug(args[0], args[1])
}

func unplug(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdUnplug, args, 1, 1); err != nil {
		return "", err
	}
	b, err := c.active()
	if err != nil {
		return "", err
	}
	return "", b.Unplug(args[0])
}

func mediaCmd(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdMedia, args, 1, 2); err != nil {
		return "", err
	}
	b, err := c.active()
	if err != nil {
		return "", err
	}

	if len(args) == 1 {
		info, err := b.MediaInfo(args[0])
		if err != nil {
			return "", err
		}
		return list([]string{info.Type, info.Image}), nil
	}

	if args[1] == "eject" {
		return "", b.EjectMedia(args[0])
	}
	return "", b.InsertMedia(args[0], args[1])
}

func fastForward(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdFastForward, args, 1, 1); err != nil {
		return "", err
	}
	b, err := c.active()
	if err != nil {
		return "", err
	}
	s, err := strconv.ParseFloat(args[0], 64)
	if err != nil || s < 0 {
		return "", usage(CmdFastForward)
	}
	if err := b.FastForward(scheduler.Time(s * float64(scheduler.TicksPerSecond))); err != nil {
		return "", err
	}
	return seconds(b.CurrentTime()), nil
}

func machineInfo(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdMachineInfo, args, 1, 2); err != nil {
		return "", err
	}
	b, err := c.active()
	if err != nil {
		return "", err
	}

	name := ""
	if len(args) == 2 {
		name = args[1]
	}

	switch args[0] {
	case "config_name":
		return b.MachineName(), nil

	case "type":
		return b.MachineType(), nil

	case "time":
		return seconds(b.CurrentTime()), nil

	case "extension":
		if name == "" {
			return listExtensions(c, nil)
		}
		info, err := b.ExtensionInfo(name)
		if err != nil {
			return "", err
		}
		items := []string{info.Config, info.Kind, info.Slot}
		return list(append(items, info.Devices...)), nil

	case "media":
		if name == "" {
			return list(b.MediaProviders()), nil
		}
		return mediaCmd(c, []string{name})

	case "device":
		if name == "" {
			var n []string
			for _, d := range b.Devices() {
				n = append(n, d.Name())
			}
			return list(n), nil
		}
		return b.DeviceInfo(name)
	}

	return "", usage(CmdMachineInfo)
}

func set(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdSet, args, 1, 2); err != nil {
		return "", err
	}
	p, ok := c.Session.Environment().Settings.Find(args[0])
	if !ok {
		return "", curated.Errorf(Failed, CmdSet, fmt.Sprintf("no setting %s", args[0]))
	}
	if len(args) == 2 {
		if err := p.Set(args[1]); err != nil {
			return "", curated.Errorf(Failed, CmdSet, err)
		}
	}
	return p.String(), nil
}

func dump(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdDump, args, 0, 0); err != nil {
		return "", err
	}
	b, err := c.active()
	if err != nil {
		return "", err
	}
	tp := b.Topology()
	var buf bytes.Buffer
	memviz.Map(&buf, &tp)
	return buf.String(), nil
}

func history(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdHistory, args, 0, 0); err != nil {
		return "", err
	}
	b, err := c.active()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := recorder.Write(&buf, b.MachineName(), b.History()); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func help(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdHelp, args, 0, 1); err != nil {
		return "", err
	}
	if len(args) == 1 {
		return Help(args[0])
	}
	return strings.Join(Names(), "\n"), nil
}

func quit(c *Controller, args []string) (string, error) {
	if err := checkArgs(CmdQuit, args, 0, 0); err != nil {
		return "", err
	}
	c.Session.Quit()
	return "", nil
}
