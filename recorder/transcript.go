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

package recorder

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware/scheduler"
)

// Sentinal error patterns.
const (
	TranscriptError = "recorder: transcript: %v"
	MalformedLine   = "recorder: transcript: line %d: %s"
)

// transcript format
// -----------------
//
// # <machine name>
// <time>, <kind>, "<arg>", "<arg>", ...
//
// arguments are quoted go strings so they can contain the field separator

const fieldSep = ", "

const headerPrefix = "# "

// Write the history as a transcript.
func Write(w io.Writer, machine string, h *History) error {
	b := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(b, "%s%s\n", headerPrefix, machine); err != nil {
		return curated.Errorf(TranscriptError, err)
	}

	for _, e := range h.entries {
		fields := make([]string, 0, 2+len(e.Args))
		fields = append(fields, strconv.FormatUint(uint64(e.Time), 10), string(e.Kind))
		for _, a := range e.Args {
			fields = append(fields, strconv.Quote(a))
		}
		if _, err := fmt.Fprintln(b, strings.Join(fields, fieldSep)); err != nil {
			return curated.Errorf(TranscriptError, err)
		}
	}

	if err := b.Flush(); err != nil {
		return curated.Errorf(TranscriptError, err)
	}

	return nil
}

// Parse a transcript. Returns the machine name in the header and the list of
// entries.
func Parse(r io.Reader) (string, []Entry, error) {
	s := bufio.NewScanner(r)

	if !s.Scan() {
		if err := s.Err(); err != nil {
			return "", nil, curated.Errorf(TranscriptError, err)
		}
		return "", nil, curated.Errorf(MalformedLine, 1, "missing header")
	}

	header := s.Text()
	if !strings.HasPrefix(header, headerPrefix) {
		return "", nil, curated.Errorf(MalformedLine, 1, "missing header")
	}
	machine := strings.TrimPrefix(header, headerPrefix)

	var entries []Entry
	var prev scheduler.Time

	line := 1
	for s.Scan() {
		line++

		l := s.Text()
		if strings.TrimSpace(l) == "" {
			continue
		}

		e, err := parseEntry(l)
		if err != nil {
			return "", nil, curated.Errorf(MalformedLine, line, err)
		}
		if e.Time < prev {
			return "", nil, curated.Errorf(MalformedLine, line, "time goes backwards")
		}
		prev = e.Time

		entries = append(entries, e)
	}

	if err := s.Err(); err != nil {
		return "", nil, curated.Errorf(TranscriptError, err)
	}

	return machine, entries, nil
}

func parseEntry(l string) (Entry, error) {
	var e Entry

	toks := strings.SplitN(l, fieldSep, 3)
	if len(toks) < 2 {
		return e, fmt.Errorf("expected at least 2 fields")
	}

	t, err := strconv.ParseUint(toks[0], 10, 64)
	if err != nil {
		return e, fmt.Errorf("time: %w", err)
	}
	e.Time = scheduler.Time(t)
	e.Kind = Kind(toks[1])

	if len(toks) < 3 {
		return e, nil
	}

	rest := toks[2]
	for {
		q, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return e, fmt.Errorf("argument %d: %w", len(e.Args)+1, err)
		}
		a, err := strconv.Unquote(q)
		if err != nil {
			return e, fmt.Errorf("argument %d: %w", len(e.Args)+1, err)
		}
		e.Args = append(e.Args, a)

		rest = rest[len(q):]
		if rest == "" {
			break
		}
		if !strings.HasPrefix(rest, fieldSep) {
			return e, fmt.Errorf("argument %d: expected separator", len(e.Args))
		}
		rest = rest[len(fieldSep):]
	}

	return e, nil
}
