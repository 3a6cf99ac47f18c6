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

// Package music maps interval sets onto notes and pitches.
//
// A Note is a pitch class, 0 through 11, with 0 being C.  A Pitch is
// a note in an octave, numbered like MIDI: middle C is C4, which is
// MIDI note 60, and A4 is MIDI note 69.
package music

import (
	"strconv"

	"github.com/tonalring/ring/intervals"
)

// Note is a pitch class.
type Note int

var noteNames = [intervals.Divisions]string{
	"C", "C#", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B",
}

// NoteFromID wraps any integer into a Note.
func NoteFromID(id int) Note {
	return Note(intervals.Wrap(id, intervals.Divisions))
}

// ID returns the note's number in [0, 12).
func (n Note) ID() int {
	return intervals.Wrap(int(n), intervals.Divisions)
}

func (n Note) String() string {
	return noteNames[n.ID()]
}

// ChromaticNotes lists every note, starting with C.
func ChromaticNotes() []Note {
	acc := make([]Note, intervals.Divisions)
	for i := range acc {
		acc[i] = Note(i)
	}
	return acc
}

// NotesFromIntervalSet gives the notes of an interval set placed on a
// tonal center, in ordinal order.
func NotesFromIntervalSet(is intervals.Set, tonalCenter int) []Note {
	ordinals := is.Ordinals()
	acc := make([]Note, len(ordinals))
	for i, o := range ordinals {
		acc[i] = NoteFromID(o + tonalCenter)
	}
	return acc
}

// Pitch is a note in an octave.
type Pitch struct {
	Note   Note
	Octave int
}

// PitchFromMidiNumber gives the pitch with the given MIDI note number.
func PitchFromMidiNumber(n int) Pitch {
	id, octave := NoteIDAndOctaveFromNoteNumber(n)
	return Pitch{
		Note:   Note(id),
		Octave: octave,
	}
}

// MidiNumber gives the pitch's MIDI note number.
func (p Pitch) MidiNumber() int {
	return NoteNumberFromNoteIDAndOctave(p.Note.ID(), p.Octave)
}

// Frequency gives the pitch's frequency in Hz with A4 at 440.
func (p Pitch) Frequency() float64 {
	return FrequencyFromNoteNumber(float64(p.MidiNumber()))
}

// SlashNotation is like "c#/4".
func (p Pitch) SlashNotation() string {
	name := p.Note.String()
	bs := []byte(name)
	bs[0] = bs[0] - 'A' + 'a'
	return string(bs) + "/" + strconv.Itoa(p.Octave)
}

func (p Pitch) String() string {
	return p.Note.String() + strconv.Itoa(p.Octave)
}

// PitchAboveLowestNote places a note in the given octave, counting
// octaves from the lowest note rather than from C.  A note below the
// lowest note goes up an octave.
func PitchAboveLowestNote(n, lowest Note, octave int) Pitch {
	if n.ID() < lowest.ID() {
		octave++
	}
	return Pitch{
		Note:   NoteFromID(int(n)),
		Octave: octave,
	}
}

// SlashNotation joins the slash notations of some pitches.
func SlashNotation(ps []Pitch) []string {
	acc := make([]string, len(ps))
	for i, p := range ps {
		acc[i] = p.SlashNotation()
	}
	return acc
}
