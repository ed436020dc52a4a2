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
	"fmt"

	"github.com/taupter/openMSX/hardware/hwconfig"
	"github.com/taupter/openMSX/hardware/slots"
)

// Command names.
const (
	CmdCreateMachine   = "create_machine"
	CmdLoadMachine     = "load_machine"
	CmdDeleteMachine   = "delete_machine"
	CmdListMachines    = "list_machines"
	CmdActivateMachine = "activate_machine"
	CmdMachine         = "machine"
	CmdTestMachine     = "test_machine"
	CmdStoreMachine    = "store_machine"
	CmdRestoreMachine  = "restore_machine"
	CmdSetup           = "setup"
	CmdStoreSetup      = "store_setup"
	CmdExt             = "ext"
	CmdCart            = "cart"
	CmdRemoveExtension = "remove_extension"
	CmdListExtensions  = "list_extensions"
	CmdReset           = "reset"
	CmdPower           = "power"
	CmdPause           = "pause"
	CmdUnpause         = "unpause"
	CmdPlug            = "plug"
	CmdUnplug          = "unplug"
	CmdMedia           = "media"
	CmdFastForward     = "fast_forward"
	CmdMachineInfo     = "machine_info"
	CmdSet             = "set"
	CmdDump            = "dump"
	CmdHistory         = "history"
	CmdHelp            = "help"
	CmdQuit            = "quit"
)

// table of every command. filled in by init() because handlers refer back to
// the table for their usage text.
var table map[string]command

func init() {
	table = map[string]command{
		CmdCreateMachine: {
			handler: createMachine,
			usage:   "create_machine",
			help:    "Create an empty machine and return its ID",
		},
		CmdLoadMachine: {
			handler: loadMachine,
			usage:   "load_machine <id> <machine>",
			help:    "Load a machine description into an empty machine",
		},
		CmdDeleteMachine: {
			handler: deleteMachine,
			usage:   "delete_machine <id>",
			help:    "Delete a machine",
		},
		CmdListMachines: {
			handler: listMachines,
			usage:   "list_machines",
			help:    "List the ID of every machine",
		},
		CmdActivateMachine: {
			handler: activateMachine,
			usage:   "activate_machine <id>",
			help:    "Make the machine the active machine",
		},
		CmdMachine: {
			handler: machine,
			usage:   "machine [<machine>]",
			help:    "Switch to a new machine, or return the ID of the active machine",
		},
		CmdTestMachine: {
			handler: testMachine,
			usage:   "test_machine <machine>",
			help:    "Check that a machine description can be loaded",
		},
		CmdStoreMachine: {
			handler: storeMachine,
			usage:   "store_machine [[<id>] <file>]",
			help:    "Store the complete state of a machine. Without a file the state is stored in the savestates directory",
		},
		CmdRestoreMachine: {
			handler: restoreMachine,
			usage:   "restore_machine <file>",
			help:    "Restore a machine from its complete state and return its ID",
		},
		CmdSetup: {
			handler: loadSetup,
			usage:   "setup <name>",
			help:    "Switch to the machine stored in a setup",
		},
		CmdStoreSetup: {
			handler: storeSetup,
			usage:   "store_setup <name> [<depth>]",
			help:    "Store the setup of the active machine (none, machine, extensions, connectors, media or complete_state)",
		},
		CmdExt: {
			handler: insertExtension(hwconfig.Extension, ""),
			usage:   "ext <extension> [<slot>]",
			help:    "Insert an extension",
		},
		CmdCart: {
			handler: insertExtension(hwconfig.ROM, ""),
			usage:   "cart <image> [<slot>]",
			help:    "Insert a cartridge image",
		},
		CmdRemoveExtension: {
			handler: removeExtension,
			usage:   "remove_extension <name>",
			help:    "Remove an extension or cartridge",
		},
		CmdListExtensions: {
			handler: listExtensions,
			usage:   "list_extensions",
			help:    "List the extensions of the active machine",
		},
		CmdReset: {
			handler: reset,
			usage:   "reset",
			help:    "Reset the active machine",
		},
		CmdPower: {
			handler: power,
			usage:   "power [on|off]",
			help:    "Change or return the power state of the active machine",
		},
		CmdPause: {
			handler: pause,
			usage:   "pause",
			help:    "Pause emulation",
		},
		CmdUnpause: {
			handler: unpause,
			usage:   "unpause",
			help:    "Resume emulation",
		},
		CmdPlug: {
			handler: plug,
			usage:   "plug [<connector> [<pluggable>]]",
			help:    "Plug a pluggable into a connector, or list what is plugged",
		},
		CmdUnplug: {
			handler: unplug,
			usage:   "unplug <connector>",
			help:    "Unplug a connector",
		},
		CmdMedia: {
			handler: mediaCmd,
			usage:   "media <target> [<image>|eject]",
			help:    "Insert or eject media, or describe the media of a target",
		},
		CmdFastForward: {
			handler: fastForward,
			usage:   "fast_forward <seconds>",
			help:    "Run the active machine as fast as possible until the virtual time is reached",
		},
		CmdMachineInfo: {
			handler: machineInfo,
			usage:   "machine_info <config_name|type|extension|media|device|time> [<name>]",
			help:    "Information about the active machine",
		},
		CmdSet: {
			handler: set,
			usage:   "set <setting> [<value>]",
			help:    "Change or return a setting",
		},
		CmdDump: {
			handler: dump,
			usage:   "dump",
			help:    "Write a graph of the active machine structure in dot format",
		},
		CmdHistory: {
			handler: history,
			usage:   "history",
			help:    "Write the replay history of the active machine",
		},
		CmdHelp: {
			handler: help,
			usage:   "help [<command>]",
			help:    "List commands or describe a command",
		},
		CmdQuit: {
			handler: quit,
			usage:   "quit",
			help:    "Quit the emulator",
		},
	}

	// one command per slot for extensions and cartridges
	for i := 0; i < slots.MaxSlots; i++ {
		s := slots.SlotName(i)
		table[CmdExt+s] = command{
			handler: insertExtension(hwconfig.Extension, s),
			usage:   fmt.Sprintf("ext%s <extension>", s),
			help:    fmt.Sprintf("Insert an extension into slot %s", s),
		}
		table[CmdCart+s] = command{
			handler: insertExtension(hwconfig.ROM, s),
			usage:   fmt.Sprintf("cart%s <image>", s),
			help:    fmt.Sprintf("Insert a cartridge image into slot %s", s),
		}
	}
}
