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

package music

import (
	"math"
	"reflect"
	"testing"

	"github.com/tonalring/ring/intervals"
)

func TestFrequency(t *testing.T) {
	for n, f := range map[float64]float64{
		69 - 12: 220,
		69:      440,
		69 + 12: 880,
	} {
		if got := FrequencyFromNoteNumber(n); got != f {
			t.Fatalf("%v: %v != %v", n, got, f)
		}
		if got := NoteNumberFromFrequency(f); math.Abs(got-n) > 1e-9 {
			t.Fatalf("%v: %v != %v", f, got, n)
		}
	}
}

func TestNoteNumbers(t *testing.T) {
	type tc struct {
		id, octave, n int
	}
	for _, c := range []tc{
		{9, 4, 69},
		{9, 5, 69 + 12},
		{10, 4, 70},
		{8, 4, 68},
		{8, 5, 80},
		{0, 4, 60},
		{11, -1, 11},
	} {
		if n := NoteNumberFromNoteIDAndOctave(c.id, c.octave); n != c.n {
			t.Fatalf("%d/%d: %d", c.id, c.octave, n)
		}
		id, octave := NoteIDAndOctaveFromNoteNumber(c.n)
		if id != c.id || octave != c.octave {
			t.Fatalf("%d: %d/%d", c.n, id, octave)
		}
	}
}

func TestPitch(t *testing.T) {
	p := PitchFromMidiNumber(61)
	if p.Note != 1 || p.Octave != 4 {
		t.Fatal(p)
	}
	if s := p.SlashNotation(); s != "c#/4" {
		t.Fatal(s)
	}
	if s := p.String(); s != "C#4" {
		t.Fatal(s)
	}
	if f := (Pitch{Note: 9, Octave: 4}).Frequency(); f != 440 {
		t.Fatal(f)
	}
}

func TestNotesFromIntervalSet(t *testing.T) {
	notes := NotesFromIntervalSet(intervals.FromBinary(145), 10)
	if !reflect.DeepEqual(notes, []Note{10, 2, 5}) {
		t.Fatal(notes)
	}
}

func TestPitchAboveLowestNote(t *testing.T) {
	if p := PitchAboveLowestNote(2, 10, 4); p.Octave != 5 {
		t.Fatal(p)
	}
	if p := PitchAboveLowestNote(10, 10, 4); p.Octave != 4 {
		t.Fatal(p)
	}
}
