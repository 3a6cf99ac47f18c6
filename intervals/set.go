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

// Package intervals provides an immutable set of interval ordinals
// stored as a 12-bit mask.
//
// An ordinal is a number of semitones above a tonal center, from 0 to
// 11.  Ordinal n is bit n of the mask, so a major triad [0, 4, 7] is
// 0b000010010001.
package intervals

import (
	"math"
	"math/bits"
)

// Divisions is the number of ordinals in an octave.
const Divisions = 12

// ChromaticBinary is the mask with every ordinal active.
const ChromaticBinary = 1<<Divisions - 1

// Set is an immutable set of interval ordinals.
//
// The zero Set is empty.
type Set struct {
	binary uint16
}

// FromBinary makes a Set from a mask.  Bits above the chromatic mask
// are dropped.
func FromBinary(binary int) Set {
	return Set{
		binary: uint16(binary & ChromaticBinary),
	}
}

// FromOrdinals makes a Set with the given ordinals.  Ordinals are
// wrapped into the octave.
func FromOrdinals(ordinals ...int) Set {
	var binary int
	for _, o := range ordinals {
		binary |= 1 << Wrap(o, Divisions)
	}
	return FromBinary(binary)
}

// Chromatic returns the Set with every ordinal.
func Chromatic() Set {
	return FromBinary(ChromaticBinary)
}

// Binary returns the mask.
func (s Set) Binary() int {
	return int(s.binary)
}

// Ordinals returns the ordinals in ascending order.
func (s Set) Ordinals() []int {
	acc := make([]int, 0, s.Count())
	for o := 0; o < Divisions; o++ {
		if s.ContainsOrdinal(o) {
			acc = append(acc, o)
		}
	}
	return acc
}

// ContainsOrdinal reports whether the ordinal is in the set.
func (s Set) ContainsOrdinal(ordinal int) bool {
	if ordinal < 0 || Divisions <= ordinal {
		return false
	}
	return s.binary&(1<<ordinal) != 0
}

// WithOrdinal returns a Set that includes the ordinal.
func (s Set) WithOrdinal(ordinal int) Set {
	return FromBinary(s.Binary() | FromOrdinals(ordinal).Binary())
}

// ToggleOrdinal flips one ordinal.
func (s Set) ToggleOrdinal(ordinal int) Set {
	return s.ToggleBinary(FromOrdinals(ordinal).Binary())
}

// ToggleBinary flips every ordinal set in the given mask.
func (s Set) ToggleBinary(binary int) Set {
	return FromBinary(s.Binary() ^ binary)
}

// Union returns the ordinals in either set.
func (s Set) Union(other Set) Set {
	return FromBinary(s.Binary() | other.Binary())
}

// Contains reports whether other is a subset of s.
func (s Set) Contains(other Set) bool {
	return s.binary&other.binary == other.binary
}

// Complement returns the ordinals not in s.
func (s Set) Complement() Set {
	return s.ToggleBinary(ChromaticBinary)
}

// Count is the number of ordinals in the set.
func (s Set) Count() int {
	return bits.OnesCount16(s.binary)
}

// IsEmpty reports whether the set has no ordinals.
func (s Set) IsEmpty() bool {
	return s.binary == 0
}

// IsIdenticalTo reports whether both sets hold the same ordinals.
func (s Set) IsIdenticalTo(other Set) bool {
	return s.binary == other.binary
}

// HasTonalCenter reports whether ordinal 0 is present.
func (s Set) HasTonalCenter() bool {
	return s.ContainsOrdinal(0)
}

// Shift rotates the set by n semitones, wrapping around the octave.
// n is rounded to the nearest integer first, so -1.4 shifts by -1.
func (s Set) Shift(n float64) Set {
	shift := Wrap(int(math.Round(n)), Divisions)
	if shift == 0 {
		return s
	}
	b := int(s.binary)
	return FromBinary(b<<shift | b>>(Divisions-shift))
}

// ShiftedToHaveTonalCenter shifts the set so that its lowest ordinal
// lands on 0.
func (s Set) ShiftedToHaveTonalCenter() Set {
	if s.IsEmpty() {
		return s
	}
	return s.Shift(float64(-s.Ordinals()[0]))
}

// Modes returns, for each ordinal in ascending order, the set shifted
// so that ordinal lands on 0.
func (s Set) Modes() []Set {
	ordinals := s.Ordinals()
	acc := make([]Set, len(ordinals))
	for i, o := range ordinals {
		acc[i] = s.Shift(float64(-o))
	}
	return acc
}

// ModeShift moves to the nth mode of this set.  n wraps around the
// number of modes.
func (s Set) ModeShift(n int) Set {
	if s.IsEmpty() {
		return s
	}
	ordinals := s.Ordinals()
	return s.Shift(float64(-ordinals[Wrap(n, len(ordinals))]))
}

// ModeShiftDistance returns the smallest index into s.Modes() that is
// identical to other.  ok is false when the sets have different counts
// or are not modes of each other.
func (s Set) ModeShiftDistance(other Set) (distance int, ok bool) {
	if s.Count() != other.Count() {
		return 0, false
	}
	for i, m := range s.Modes() {
		if m.IsIdenticalTo(other) {
			return i, true
		}
	}
	return 0, false
}

// CanContain reports whether other fits inside s after some rotation
// of the two sets relative to each other.
func (s Set) CanContain(other Set) bool {
	if other.Count() > s.Count() {
		return false
	}
	sub := other.ShiftedToHaveTonalCenter()
	for _, m := range s.Modes() {
		if m.Contains(sub) {
			return true
		}
	}
	return false
}

// ShiftWithinSuperset moves every ordinal of s the given number of
// steps along the superset's own ordinals.  Shifting a C major triad
// one stop within C major gives D minor; -1 stop gives B diminished.
func (s Set) ShiftWithinSuperset(superset Set, stops int) (Set, error) {
	super := superset.Ordinals()
	index := make(map[int]int, len(super))
	for i, o := range super {
		index[o] = i
	}
	var binary int
	for _, o := range s.Ordinals() {
		i, have := index[o]
		if !have {
			return Set{}, &NotContained{
				Set:      s,
				Superset: superset,
				Ordinal:  o,
			}
		}
		binary |= 1 << super[Wrap(i+stops, len(super))]
	}
	return FromBinary(binary), nil
}

func (s Set) String() string {
	bs := make([]byte, Divisions)
	for o := 0; o < Divisions; o++ {
		if s.ContainsOrdinal(o) {
			bs[Divisions-1-o] = '1'
		} else {
			bs[Divisions-1-o] = '0'
		}
	}
	return string(bs)
}

// Wrap returns n modulo m in [0, m).
func Wrap(n, m int) int {
	if m <= 0 {
		return 0
	}
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}

// WrapFloat returns x modulo m in [0, m).
func WrapFloat(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
