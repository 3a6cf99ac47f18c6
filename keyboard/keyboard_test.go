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

package keyboard

import (
	"testing"
	"time"

	"github.com/tonalring/ring/layer"
	"github.com/tonalring/ring/rotation"
)

func TestShift(t *testing.T) {
	k := New(layer.NewActiveCell(), rotation.NewManualClock(), 3, 14)
	if n := k.LowestNoteOrdinal.Get(); n != 2 {
		t.Fatalf("lowest note ordinal %d", n)
	}
	k.Shift(5)
	if n := k.TonalCenter.Get(); n != 10 {
		t.Fatalf("tonal center %d", n)
	}
	k.Shift(-3)
	if n := k.TonalCenter.Get(); n != 1 {
		t.Fatalf("tonal center %d", n)
	}
	k.ShiftLowestNote(3)
	if n := k.LowestNoteOrdinal.Get(); n != 11 {
		t.Fatalf("lowest note ordinal %d", n)
	}
}

func TestSlots(t *testing.T) {
	k := New(layer.NewActiveCell(), rotation.NewManualClock(), 0, 0)
	for _, n := range layer.SlotNames() {
		want := false
		switch n {
		case layer.Show, layer.Hide, layer.RotateCw, layer.RotateCcw:
			want = true
		}
		if got := k.Controller().Has(n); got != want {
			t.Fatalf("%s: %v", n, got)
		}
	}
	k.Controller().Invoke(layer.Hide)
	if k.Data().Visible.Get() {
		t.Fatal("still visible")
	}
	if k.Data().Anchored.Get() {
		t.Fatal("anchored")
	}
	if k.Kind() != layer.KeyboardKind {
		t.Fatal(k.Kind())
	}
}

func TestShiftWithAnimation(t *testing.T) {
	clock := rotation.NewManualClock()
	k := New(layer.NewActiveCell(), clock, 0, 0)
	k.Controller().Invoke(layer.RotateCw)

	rejected := k.ShiftWithAnimation(1)
	if !rotation.IsConflict(rejected.Err()) {
		t.Fatalf("expected a conflict, not %v", rejected.Err())
	}

	clock.Advance(0)
	clock.RunFor(time.Second, 10*time.Millisecond)
	if n := k.TonalCenter.Get(); n != 11 {
		t.Fatalf("tonal center %d", n)
	}
	if k.TonalCenterRotation.IsRotating.Get() {
		t.Fatal("still rotating")
	}
}
