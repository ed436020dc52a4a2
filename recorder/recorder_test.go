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

package recorder_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/recorder"
	"github.com/taupter/openMSX/test"
)

func TestHistory(t *testing.T) {
	var h recorder.History
	h.Record(0, recorder.KindPowerUp)
	h.Record(100, recorder.KindInsertExtension, "fmpac", "b")

	e := h.Entries()
	test.DemandEquality(t, len(e), 2)
	test.ExpectEquality(t, e[1].Kind, recorder.KindInsertExtension)
	test.ExpectEquality(t, e[1].Args[1], "b")

	// entries are copies
	e[0].Kind = recorder.KindReset
	test.ExpectEquality(t, h.Entries()[0].Kind, recorder.KindPowerUp)

	h.Clear()
	test.ExpectEquality(t, h.Len(), 0)

	h.SetEntries(e)
	test.ExpectEquality(t, h.Len(), 2)
	test.ExpectEquality(t, h.Entries()[0].Kind, recorder.KindReset)
}

func TestTranscript(t *testing.T) {
	var h recorder.History
	h.Record(0, recorder.KindPowerUp)
	h.Record(3579545, recorder.KindMedia, "diska", "games, vol 1.dsk")
	h.Record(3579545, recorder.KindPlug, "joyporta", "mouse")

	var b bytes.Buffer
	test.DemandSuccess(t, recorder.Write(&b, "NMS_8250", &h))

	s := b.String()
	test.ExpectSuccess(t, strings.HasPrefix(s, "# NMS_8250\n0, power_up\n"))
	test.ExpectSuccess(t, strings.Contains(s, `3579545, media, "diska", "games, vol 1.dsk"`))

	machine, entries, err := recorder.Parse(&b)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, machine, "NMS_8250")
	test.DemandEquality(t, len(entries), 3)
	test.ExpectEquality(t, entries[1].Args[1], "games, vol 1.dsk")
	test.ExpectEquality(t, entries[2].Kind, recorder.KindPlug)
}

func TestTranscriptErrors(t *testing.T) {
	_, _, err := recorder.Parse(strings.NewReader(""))
	test.ExpectSuccess(t, curated.Is(err, recorder.MalformedLine))

	_, _, err = recorder.Parse(strings.NewReader("# m\n10, reset\n5, reset\n"))
	test.ExpectSuccess(t, curated.Is(err, recorder.MalformedLine))

	_, _, err = recorder.Parse(strings.NewReader("# m\n10, plug, joyporta\n"))
	test.ExpectSuccess(t, curated.Is(err, recorder.MalformedLine))

	_, _, err = recorder.Parse(strings.NewReader("# m\nlater, reset\n"))
	test.ExpectSuccess(t, curated.Is(err, recorder.MalformedLine))
}
