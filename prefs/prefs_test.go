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

package prefs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/prefs"
	"github.com/taupter/openMSX/test"
)

func TestBool(t *testing.T) {
	var v prefs.Bool
	test.ExpectEquality(t, v.Get().(bool), false)
	test.ExpectEquality(t, v.String(), "off")

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectEquality(t, v.Get().(bool), true)
	test.ExpectSuccess(t, v.Set("off"))
	test.ExpectEquality(t, v.Get().(bool), false)
	test.ExpectSuccess(t, v.Set("ON"))
	test.ExpectEquality(t, v.String(), "on")

	test.ExpectFailure(t, v.Set("foo"))
	test.ExpectFailure(t, v.Set(1))
}

func TestInt(t *testing.T) {
	var v prefs.Int
	test.ExpectSuccess(t, v.Set(10))
	test.ExpectEquality(t, v.Get().(int), 10)
	test.ExpectSuccess(t, v.Set("99"))
	test.ExpectEquality(t, v.String(), "99")
	test.ExpectFailure(t, v.Set("---"))
	test.ExpectFailure(t, v.Set(1.0))
}

func TestHooks(t *testing.T) {
	var v prefs.Bool
	var post []bool

	v.SetHookPre(func(nv prefs.Value) error {
		if !nv.(bool) {
			return errors.New("refused")
		}
		return nil
	})
	v.SetHookPost(func(nv prefs.Value) error {
		post = append(post, nv.(bool))
		return nil
	})

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectFailure(t, v.Set(false))

	// the pre-hook prevented the change
	test.ExpectEquality(t, v.Get().(bool), true)
	test.DemandEquality(t, len(post), 1)
	test.ExpectEquality(t, post[0], true)
}

func TestDisk(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "settings.yaml")

	dsk := prefs.NewDisk(fn)
	var power prefs.Bool
	var name prefs.String
	var depth prefs.Int
	test.DemandSuccess(t, dsk.Add("power", &power))
	test.DemandSuccess(t, dsk.Add("name", &name))
	test.DemandSuccess(t, dsk.Add("depth", &depth))
	test.ExpectSuccess(t, curated.Is(dsk.Add("power", &power), prefs.DuplicateKey))

	// loading a missing file is not an error
	test.ExpectSuccess(t, dsk.Load())

	test.ExpectSuccess(t, power.Set(true))
	test.ExpectSuccess(t, name.Set("Boosted_MSX2_EN"))
	test.ExpectSuccess(t, depth.Set(3))
	test.DemandSuccess(t, dsk.Save())

	b, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "depth: \"3\"\nname: \"Boosted_MSX2_EN\"\npower: \"on\"\n")

	// a second disk with fewer entries preserves the entries it doesn't know
	dsk2 := prefs.NewDisk(fn)
	var name2 prefs.String
	test.DemandSuccess(t, dsk2.Add("name", &name2))
	test.DemandSuccess(t, dsk2.Load())
	test.ExpectEquality(t, name2.String(), "Boosted_MSX2_EN")
	test.ExpectSuccess(t, name2.Set("C-BIOS_MSX1"))
	test.DemandSuccess(t, dsk2.Save())

	power.Reset()
	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, power.Get().(bool), true)
	test.ExpectEquality(t, name.String(), "C-BIOS_MSX1")
}

func TestCommandLine(t *testing.T) {
	cl := prefs.ParseCommandLine("power::on; pause :: off;bad")
	test.ExpectEquality(t, len(cl), 2)
	test.ExpectEquality(t, cl["power"], "on")
	test.ExpectEquality(t, cl["pause"], "off")

	dsk := prefs.NewDisk("")
	var power prefs.Bool
	test.DemandSuccess(t, dsk.Add("power", &power))
	err := dsk.ApplyCommandLine("power::on; unknown::1")
	test.ExpectSuccess(t, curated.Is(err, prefs.UnknownKey))
	test.ExpectEquality(t, power.Get().(bool), true)
}
