/* Copyright 2026 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package workspace

import (
	"log"

	"github.com/tonalring/ring/lighting"
	"github.com/tonalring/ring/music"
)

// SoundPlayer turns pitches into light presses.  There is no synth;
// the lights are what a listener sees.
type SoundPlayer struct {
	Lights *lighting.System

	// Last is the most recent chord given to PlayPitches.
	Last []music.Pitch

	Debug bool

	held []music.Pitch
}

// NewSoundPlayer makes a SoundPlayer that drives the given lights.
func NewSoundPlayer(lights *lighting.System) *SoundPlayer {
	return &SoundPlayer{
		Lights: lights,
	}
}

func (p *SoundPlayer) logf(format string, args ...interface{}) {
	if p.Debug {
		log.Printf("SoundPlayer "+format, args...)
	}
}

// Attack starts a pitch.  It reports whether the pitch has a light.
func (p *SoundPlayer) Attack(pitch music.Pitch) bool {
	return p.Lights.Press(lighting.LightIDForNote(pitch.Note))
}

// Release ends a pitch.  It reports whether the pitch has a light.
func (p *SoundPlayer) Release(pitch music.Pitch) bool {
	return p.Lights.Release(lighting.LightIDForNote(pitch.Note))
}

// HandleNoteOn takes a MIDI note-on.
func (p *SoundPlayer) HandleNoteOn(n int) bool {
	return p.Attack(music.PitchFromMidiNumber(n))
}

// HandleNoteOff takes a MIDI note-off.
func (p *SoundPlayer) HandleNoteOff(n int) bool {
	return p.Release(music.PitchFromMidiNumber(n))
}

// PlayPitches plays a chord, ending whatever chord was playing.
func (p *SoundPlayer) PlayPitches(ps []music.Pitch) {
	p.StopAll()
	p.logf("play %v", music.SlashNotation(ps))
	p.Last = ps
	for _, pitch := range ps {
		if p.Attack(pitch) {
			p.held = append(p.held, pitch)
		}
	}
}

// StopAll ends the chord that PlayPitches started.
func (p *SoundPlayer) StopAll() {
	for _, pitch := range p.held {
		p.Release(pitch)
	}
	p.held = nil
}
