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

	"github.com/tonalring/ring/intervals"
)

// FrequencyFromNoteNumber converts a (possibly fractional) MIDI note
// number to Hz.
func FrequencyFromNoteNumber(n float64) float64 {
	return 440 * math.Pow(2, (n-69)/12)
}

// NoteNumberFromFrequency converts Hz to a (possibly fractional) MIDI
// note number.
func NoteNumberFromFrequency(f float64) float64 {
	return 33 + 12*math.Log2(f/55)
}

// NoteNumberFromNoteIDAndOctave gives the MIDI note number of a note
// in an octave.
func NoteNumberFromNoteIDAndOctave(id, octave int) int {
	return id + (octave+1)*intervals.Divisions
}

// NoteIDAndOctaveFromNoteNumber is the inverse of
// NoteNumberFromNoteIDAndOctave.
func NoteIDAndOctaveFromNoteNumber(n int) (id, octave int) {
	id = intervals.Wrap(n, intervals.Divisions)
	octave = (n-id)/intervals.Divisions - 1
	return id, octave
}
