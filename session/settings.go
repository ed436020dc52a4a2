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
	"github.com/taupter/openMSX/environment"
	"github.com/taupter/openMSX/notifications"
	"github.com/taupter/openMSX/prefs"
)

// settingHandler reacts to a change of a boolean setting.
type settingHandler func(s *Session, v bool) error

// settingHandlers is the dispatch table for settings that affect the
// session.
var settingHandlers = map[string]settingHandler{
	environment.KeyPower: (*Session).onPower,
	environment.KeyPause: (*Session).onPause,
}

func (s *Session) installSettingHooks() {
	s.paused = s.env.Settings.Pause.Get().(bool)

	for key, h := range settingHandlers {
		key, h := key, h
		p, ok := s.env.Settings.Find(key)
		if !ok {
			continue
		}
		p.(*prefs.Bool).SetHookPost(func(v prefs.Value) error {
			if err := h(s, v.(bool)); err != nil {
				return curated.Errorf(SettingFailed, key, err)
			}
			return nil
		})
	}
}

func (s *Session) onPower(v bool) error {
	if s.active == nil {
		return nil
	}
	if v {
		s.active.PowerUp()
	} else {
		s.active.PowerDown()
	}
	return nil
}

func (s *Session) onPause(v bool) error {
	if s.paused == v {
		return nil
	}
	s.paused = v

	id := ""
	if s.active != nil {
		id = s.active.ID()
		if v {
			s.active.Pause()
			s.RequestExit()
		} else {
			s.active.Unpause()
		}
	}

	if v {
		s.env.Publish(notifications.NotifyPause, id, "")
	} else {
		s.env.Publish(notifications.NotifyUnpause, id, "")
	}

	return nil
}
