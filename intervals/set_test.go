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

package intervals

import (
	"errors"
	"reflect"
	"testing"
)

var (
	major     = FromBinary(2741) // 0b101010110101
	majorTri  = FromOrdinals(0, 4, 7)
	minorTri  = FromOrdinals(0, 3, 7)
	dimTri    = FromOrdinals(0, 3, 6)
	augmented = FromOrdinals(0, 4, 8)
)

func TestBinaryIsMasked(t *testing.T) {
	s := FromBinary(0xFFFF)
	if s.Binary() != ChromaticBinary {
		t.Fatalf("binary == %b", s.Binary())
	}
	if s.Count() != 12 {
		t.Fatalf("count == %d", s.Count())
	}
}

func TestOrdinalsRoundTrip(t *testing.T) {
	for m := 0; m <= ChromaticBinary; m++ {
		s := FromBinary(m)
		if got := FromOrdinals(s.Ordinals()...); got.Binary() != m {
			t.Fatalf("%b -> %v -> %b", m, s.Ordinals(), got.Binary())
		}
	}
}

func TestMajorScale(t *testing.T) {
	if got := major.Ordinals(); !reflect.DeepEqual(got, []int{0, 2, 4, 5, 7, 9, 11}) {
		t.Fatalf("ordinals %v", got)
	}
	if !major.Contains(majorTri) {
		t.Fatal("major should contain its triad")
	}
	if major.Contains(minorTri) {
		t.Fatal("major shouldn't contain the parallel minor triad")
	}
	if got := major.Complement().Ordinals(); !reflect.DeepEqual(got, []int{1, 3, 6, 8, 10}) {
		t.Fatalf("complement %v", got)
	}
}

func TestToggleAndWith(t *testing.T) {
	s := majorTri.ToggleOrdinal(4)
	if s.ContainsOrdinal(4) {
		t.Fatal("4 still present")
	}
	if s = s.ToggleOrdinal(4); !s.IsIdenticalTo(majorTri) {
		t.Fatalf("got %v", s)
	}
	if s = s.WithOrdinal(4); !s.IsIdenticalTo(majorTri) {
		t.Fatalf("WithOrdinal changed an existing ordinal: %v", s)
	}
	if got := majorTri.Union(minorTri).Ordinals(); !reflect.DeepEqual(got, []int{0, 3, 4, 7}) {
		t.Fatalf("union %v", got)
	}
}

func TestShift(t *testing.T) {
	tests := []struct {
		n    float64
		want []int
	}{
		{0, []int{0, 4, 7}},
		{1, []int{1, 5, 8}},
		{5, []int{0, 5, 9}},
		{-1, []int{3, 6, 11}},
		{12, []int{0, 4, 7}},
		{1.4, []int{1, 5, 8}},
		{-1.6, []int{2, 5, 10}},
	}
	for _, test := range tests {
		if got := majorTri.Shift(test.n).Ordinals(); !reflect.DeepEqual(got, test.want) {
			t.Fatalf("shift %v: %v != %v", test.n, got, test.want)
		}
	}
}

func TestShiftComposes(t *testing.T) {
	for m := 0; m <= ChromaticBinary; m += 7 {
		s := FromBinary(m)
		for a := -13; a <= 13; a += 3 {
			for b := -5; b <= 5; b++ {
				x := s.Shift(float64(a)).Shift(float64(b))
				y := s.Shift(float64(Wrap(a+b, Divisions)))
				if !x.IsIdenticalTo(y) {
					t.Fatalf("%v shift %d then %d", s, a, b)
				}
			}
		}
	}
}

func TestModes(t *testing.T) {
	modes := majorTri.Modes()
	want := []Set{majorTri, FromOrdinals(0, 3, 8), FromOrdinals(0, 5, 9)}
	if !reflect.DeepEqual(modes, want) {
		t.Fatalf("modes %v", modes)
	}
	if got := majorTri.ModeShift(4); !got.IsIdenticalTo(FromOrdinals(0, 3, 8)) {
		t.Fatalf("mode shift %v", got)
	}
}

func TestModeShiftDistance(t *testing.T) {
	first := FromOrdinals(0, 3, 8)
	k, ok := majorTri.ModeShiftDistance(first)
	if !ok || k != 1 {
		t.Fatalf("k=%d ok=%v", k, ok)
	}
	back, ok := first.ModeShiftDistance(majorTri)
	if !ok || back != (majorTri.Count()-k)%majorTri.Count() {
		t.Fatalf("back=%d ok=%v", back, ok)
	}

	if k, ok = augmented.ModeShiftDistance(augmented.Shift(4)); !ok || k != 0 {
		t.Fatalf("augmented k=%d ok=%v", k, ok)
	}

	if _, ok = majorTri.ModeShiftDistance(major); ok {
		t.Fatal("different counts should not be comparable")
	}
	if _, ok = majorTri.ModeShiftDistance(dimTri); ok {
		t.Fatal("major and diminished triads are not modes of each other")
	}
}

func TestCanContain(t *testing.T) {
	if !major.CanContain(minorTri.Shift(3)) {
		t.Fatal("major scale can hold a minor triad")
	}
	if major.CanContain(augmented) {
		t.Fatal("major scale has no augmented triad")
	}
	if majorTri.CanContain(major) {
		t.Fatal("bigger set can't fit")
	}
}

func TestShiftWithinSuperset(t *testing.T) {
	up, err := majorTri.ShiftWithinSuperset(major, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := up.Ordinals(); !reflect.DeepEqual(got, []int{2, 5, 9}) {
		t.Fatalf("D minor: %v", got)
	}

	down, err := majorTri.ShiftWithinSuperset(major, -1)
	if err != nil {
		t.Fatal(err)
	}
	if got := down.Ordinals(); !reflect.DeepEqual(got, []int{2, 5, 11}) {
		t.Fatalf("B diminished: %v", got)
	}

	full, err := majorTri.ShiftWithinSuperset(major, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !full.IsIdenticalTo(majorTri) {
		t.Fatalf("seven stops should come home: %v", full)
	}

	_, err = minorTri.ShiftWithinSuperset(major, 1)
	var nc *NotContained
	if !errors.As(err, &nc) {
		t.Fatalf("err %#v", err)
	}
	if nc.Ordinal != 3 {
		t.Fatalf("ordinal %d", nc.Ordinal)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(-1, 12) != 11 || Wrap(25, 12) != 1 || Wrap(3, 0) != 0 {
		t.Fatal("wrap")
	}
	if WrapFloat(-0.25, 1) != 0.75 {
		t.Fatal("wrap float")
	}
}
