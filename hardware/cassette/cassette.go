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

// Package cassette is the tape deck of a board. Tapes are audio recordings
// (wav or mp3 files) or CAS images. The player itself is only concerned with
// which tape is inserted and where the tape is. Decoding the audio signal
// into data is the job of the emulated machine.
package cassette

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/taupter/openMSX/curated"
	"github.com/taupter/openMSX/hardware/media"
)

// Sentinal error patterns.
const (
	UnsupportedTape = "cassette: unsupported tape format: %s"
	InvalidTape     = "cassette: invalid tape: %s: %v"
	InvalidState    = "cassette: %s: invalid state: %v"
)

// MediaType is the media type reported in media.Info.
const MediaType = "cassette"

// Tape describes an inserted tape.
type Tape struct {
	Filename string
	Format   string

	// audio details. zero for CAS images
	SampleRate int
	Channels   int

	Length time.Duration

	// number of samples per channel and the largest absolute sample value.
	// only set for wav recordings
	Samples int
	Peak    int
}

// Silent returns true if a wav recording contains nothing but silence.
func (t Tape) Silent() bool {
	return t.Format == "wav" && t.Peak == 0
}

func (t Tape) String() string {
	if t.SampleRate == 0 {
		return fmt.Sprintf("%s (%s)", filepath.Base(t.Filename), t.Format)
	}
	if t.Silent() {
		return fmt.Sprintf("%s (%s, %dHz, %.1fs, silent)", filepath.Base(t.Filename), t.Format, t.SampleRate, t.Length.Seconds())
	}
	return fmt.Sprintf("%s (%s, %dHz, %.1fs)", filepath.Base(t.Filename), t.Format, t.SampleRate, t.Length.Seconds())
}

// Player is a cassette player. It implements the media.Provider interface.
type Player struct {
	name string
	tape *Tape

	// position of the tape
	position time.Duration
	motor    bool
}

// NewPlayer is the preferred method of initialisation for the Player type.
func NewPlayer(name string) *Player {
	return &Player{name: name}
}

// Tape returns the inserted tape. Returns nil if there is no tape.
func (p *Player) Tape() *Tape {
	return p.tape
}

// MediaInfo implements the media.Provider interface.
func (p *Player) MediaInfo() media.Info {
	inf := media.Info{
		Target: p.name,
		Type:   MediaType,
	}
	if p.tape != nil {
		inf.Image = p.tape.Filename
		inf.ReadOnly = true
	}
	return inf
}

// InsertMedia implements the media.Provider interface. The tape is opened and
// checked before it replaces the current tape.
func (p *Player) InsertMedia(image string) error {
	t, err := Load(image)
	if err != nil {
		return err
	}
	p.tape = t
	p.position = 0
	return nil
}

// EjectMedia implements the media.Provider interface.
func (p *Player) EjectMedia() {
	p.tape = nil
	p.position = 0
	p.motor = false
}

// SetMotor switches the tape motor on or off.
func (p *Player) SetMotor(on bool) {
	p.motor = on && p.tape != nil
}

// Motor returns true if the motor is running.
func (p *Player) Motor() bool {
	return p.motor
}

// Advance moves the tape forward by d if the motor is running. The position
// never moves past the end of the tape.
func (p *Player) Advance(d time.Duration) {
	if !p.motor || p.tape == nil {
		return
	}
	p.position += d
	if p.tape.Length > 0 && p.position > p.tape.Length {
		p.position = p.tape.Length
		p.motor = false
	}
}

// Rewind the tape to the beginning.
func (p *Player) Rewind() {
	p.position = 0
}

// Position returns the position of the tape.
func (p *Player) Position() time.Duration {
	return p.position
}

// State returns the state of the player for a save state.
func (p *Player) State() map[string]string {
	st := map[string]string{
		"position": strconv.FormatInt(int64(p.position), 10),
		"motor":    strconv.FormatBool(p.motor),
	}
	return st
}

// SetState restores the player from a save state. The tape itself is
// restored through the media registry.
func (p *Player) SetState(st map[string]string) error {
	if v, ok := st["position"]; ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return curated.Errorf(InvalidState, p.name, err)
		}
		p.position = time.Duration(n)
	}
	if v, ok := st["motor"]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return curated.Errorf(InvalidState, p.name, err)
		}
		p.motor = b && p.tape != nil
	}
	return nil
}

// Load opens the tape file and reads the details of the recording.
func Load(filename string) (*Tape, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(InvalidTape, filename, err)
	}
	defer f.Close()

	t := &Tape{Filename: filename}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		t.Format = "wav"
		dec := wav.NewDecoder(f)
		if dec == nil || !dec.IsValidFile() {
			return nil, curated.Errorf(InvalidTape, filename, "not a valid wav file")
		}

		format := dec.Format()
		if format == nil || format.NumChannels == 0 {
			return nil, curated.Errorf(InvalidTape, filename, "no audio format")
		}
		t.SampleRate = format.SampleRate
		t.Channels = format.NumChannels

		// read the whole recording in chunks to find the peak level
		buf := &audio.IntBuffer{Format: format, Data: make([]int, 4096)}
		for {
			n, err := dec.PCMBuffer(buf)
			if err != nil && err != io.EOF {
				return nil, curated.Errorf(InvalidTape, filename, err)
			}
			for _, v := range buf.Data[:n] {
				if v < 0 {
					v = -v
				}
				if v > t.Peak {
					t.Peak = v
				}
			}
			t.Samples += n / format.NumChannels
			if n == 0 || err == io.EOF {
				break
			}
		}

		t.Length, err = dec.Duration()
		if err != nil {
			return nil, curated.Errorf(InvalidTape, filename, err)
		}

	case ".mp3":
		t.Format = "mp3"
		dec, err := mp3.NewDecoder(f)
		if err != nil {
			return nil, curated.Errorf(InvalidTape, filename, err)
		}

		// the decoded stream is always 16bit stereo. four bytes per sample
		t.SampleRate = dec.SampleRate()
		t.Channels = 2
		if t.SampleRate > 0 {
			samples := dec.Length() / 4
			t.Length = time.Duration(float64(samples) / float64(t.SampleRate) * float64(time.Second))
		}

	case ".cas":
		t.Format = "cas"
		n, err := f.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, curated.Errorf(InvalidTape, filename, err)
		}
		if n == 0 {
			return nil, curated.Errorf(InvalidTape, filename, "empty image")
		}

	default:
		return nil, curated.Errorf(UnsupportedTape, filepath.Ext(filename))
	}

	return t, nil
}
