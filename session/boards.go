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

package session

import (
	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware"
	"github.com/taupter/openMSX/logger"
	"github.com/taupter/openMSX/notifications"
	"github.com/taupter/openMSX/setup"
)

// CreateEmptyBoard creates a new board with no machine and adds it to the
// session. The new board is not made active.
func (s *Session) CreateEmptyBoard() *hardware.Board {
	b := hardware.NewBoard(s.env)
	s.boards = append(s.boards, b)
	return b
}

func (s *Session) indexOf(b *hardware.Board) int {
	for i, o := range s.boards {
		if o == b {
			return i
		}
	}
	return -1
}

// Board returns the board with the ID.
func (s *Session) Board(id string) (*hardware.Board, error) {
	for _, b := range s.boards {
		if b.ID() == id {
			return b, nil
		}
	}
	return nil, curated.Errorf(UnknownBoard, id)
}

// IDs returns the ID of every board in the order they were added.
func (s *Session) IDs() []string {
	ids := make([]string, len(s.boards))
	for i, b := range s.boards {
		ids[i] = b.ID()
	}
	return ids
}

// Active returns the active board. Returns nil if there is no active board.
func (s *Session) Active() *hardware.Board {
	return s.active
}

// DeleteBoard removes the board from the session and destroys it. If the
// board is the active board there will be no active board afterwards.
func (s *Session) DeleteBoard(id string) error {
	b, err := s.Board(id)
	if err != nil {
		return err
	}
	s.deleteBoard(b)
	return nil
}

func (s *Session) deleteBoard(b *hardware.Board) {
	if b == s.active {
		// switching to nil can not fail
		_ = s.SwitchActive(nil)
	}
	if i := s.indexOf(b); i >= 0 {
		s.boards = append(s.boards[:i], s.boards[i+1:]...)
	}
	b.Destroy()
}

// SwitchActive makes the board the active board. The board must already be a
// board of the session. A nil board means there will be no active board.
func (s *Session) SwitchActive(b *hardware.Board) error {
	if b != nil && s.indexOf(b) < 0 {
		return curated.Errorf(NotMember, b.ID())
	}

	old := s.active
	if old == b {
		return nil
	}

	if old != nil {
		if s.paused {
			old.Unpause()
		}
		old.Activate(false)
	}

	s.activeCrit.Lock()
	s.active = b
	s.activeCrit.Unlock()

	id := ""
	if b != nil {
		id = b.ID()
	}
	s.env.Publish(notifications.NotifyMachineLoaded, id, "")
	s.env.Publish(notifications.NotifyHardwareSelect, id, "")

	if b != nil {
		if s.paused {
			b.Pause()
		}
		b.Activate(true)
	}

	return nil
}

// ReplaceBoard puts the new board in place of the old board, which is then
// deleted. The new board is added to the session if it is not already a board
// of the session. The new board only becomes active if the old board was the
// active board.
func (s *Session) ReplaceBoard(old *hardware.Board, b *hardware.Board) error {
	if s.indexOf(old) < 0 {
		return curated.Errorf(NotMember, old.ID())
	}
	if s.indexOf(b) < 0 {
		s.boards = append(s.boards, b)
	}
	if s.active == old {
		if err := s.SwitchActive(b); err != nil {
			return err
		}
	}
	s.deleteBoard(old)
	return nil
}

// adopt a new board and make it the active board. The previously active
// board, if any, is deleted.
func (s *Session) adopt(b *hardware.Board) error {
	if s.active == nil {
		s.boards = append(s.boards, b)
		return s.SwitchActive(b)
	}
	return s.ReplaceBoard(s.active, b)
}

// SwitchMachine creates a board with the named machine and makes it the
// active board in place of the current active board. On failure the current
// active board is untouched.
func (s *Session) SwitchMachine(name string) error {
	b := hardware.NewBoard(s.env)
	if err := b.LoadMachine(name); err != nil {
		b.Destroy()
		return err
	}
	logger.Logf(logger.Allow, "session", "switched to %s (%s)", name, b.ID())
	return s.adopt(b)
}

// TestMachine checks that the named machine can be loaded. Nothing is added
// to the session.
func (s *Session) TestMachine(name string) error {
	b := hardware.NewBoard(s.env)
	defer b.Destroy()
	b.SetSuppressMessages(true)
	return b.LoadMachine(name)
}

// StoreBoard stores the complete state of the board to path.
func (s *Session) StoreBoard(id string, path string) error {
	b, err := s.Board(id)
	if err != nil {
		return err
	}
	return hardware.StoreState(b, path)
}

// RestoreBoard restores a board from a complete state at path and adds it to
// the session. The restored board is not made active. A failed restore adds
// nothing to the session.
func (s *Session) RestoreBoard(path string) (*hardware.Board, error) {
	b, err := hardware.LoadState(s.env, path)
	if err != nil {
		return nil, err
	}
	s.boards = append(s.boards, b)
	return b, nil
}

// SwitchMachineFromSetup restores the setup and makes the restored board the
// active board in place of the current active board.
func (s *Session) SwitchMachineFromSetup(name string) error {
	b, err := setup.Restore(s.env, setup.Path(name))
	if err != nil {
		return err
	}
	return s.adopt(b)
}

// StoreSetup stores the setup of the active board.
func (s *Session) StoreSetup(name string, depth setup.Depth) error {
	if s.active == nil {
		return curated.Errorf(NoActiveBoard)
	}
	return setup.Store(s.env, s.active, setup.Path(name), depth)
}

// saveSetupAtExit stores the setup of the active board as named by the save
// setup at exit settings. Nothing is stored if the name is empty.
func (s *Session) saveSetupAtExit() error {
	name := s.env.Settings.SaveSetupAtExitName.String()
	if name == "" || s.active == nil {
		return nil
	}
	depth, err := setup.ParseDepth(s.env.Settings.SaveSetupAtExitDepth.String())
	if err != nil {
		return err
	}
	return s.StoreSetup(name, depth)
}
