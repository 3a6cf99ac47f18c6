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

// Package keyboard is the keyboard layer: the tonal center and the
// lowest note that structures are played against.
package keyboard

import (
	"time"

	"github.com/tonalring/ring/cell"
	"github.com/tonalring/ring/intervals"
	"github.com/tonalring/ring/layer"
	"github.com/tonalring/ring/rotation"
)

// Keyboard is the other variant of layer.Layer.
type Keyboard struct {
	// TonalCenter is a note id in [0, 12), with 0 being C.
	TonalCenter *cell.Value[int]

	// LowestNoteOrdinal is the interval ordinal, relative to the
	// tonal center, of the lowest note.
	LowestNoteOrdinal *cell.Value[int]

	TonalCenterRotation *rotation.Controller
	LowestNoteRotation  *rotation.Controller

	// AnimationDuration is the duration of a rotation.  Zero means
	// rotation.DefaultDuration.
	AnimationDuration time.Duration

	data       *layer.Data
	controller *layer.Controller
}

// New makes a Keyboard.  Both numbers are wrapped into [0, 12).
func New(active *cell.Value[layer.Layer], clock rotation.Clock, tonalCenter, lowestNoteOrdinal int) *Keyboard {
	k := &Keyboard{
		TonalCenter:         cell.NewComparable(intervals.Wrap(tonalCenter, intervals.Divisions)),
		LowestNoteOrdinal:   cell.NewComparable(intervals.Wrap(lowestNoteOrdinal, intervals.Divisions)),
		TonalCenterRotation: rotation.NewController(clock),
		LowestNoteRotation:  rotation.NewController(clock),
	}
	k.data = layer.NewData(k, active, nil)
	k.controller = layer.NewController(map[layer.SlotName]layer.Slot{
		layer.Show: layer.Present(func() {
			k.data.Visible.Set(true)
		}),
		layer.Hide: layer.Present(func() {
			k.data.Visible.Set(false)
		}),
		layer.RotateCw: layer.Present(func() {
			k.ShiftWithAnimation(1)
		}),
		layer.RotateCcw: layer.Present(func() {
			k.ShiftWithAnimation(-1)
		}),
	})
	return k
}

func (k *Keyboard) Kind() layer.Kind {
	return layer.KeyboardKind
}

func (k *Keyboard) Data() *layer.Data {
	return k.data
}

func (k *Keyboard) Controller() *layer.Controller {
	return k.controller
}

// Shift rotates the keyboard by diff half steps.  Rotating the
// keyboard clockwise moves the tonal center down.
func (k *Keyboard) Shift(diff int) {
	k.TonalCenter.Update(func(tc int) int {
		return intervals.Wrap(tc-diff, intervals.Divisions)
	})
}

// ShiftLowestNote moves the lowest note the same way.
func (k *Keyboard) ShiftLowestNote(diff int) {
	k.LowestNoteOrdinal.Update(func(o int) int {
		return intervals.Wrap(o-diff, intervals.Divisions)
	})
}

// ShiftWithAnimation animates the tonal-center rotation by the given
// number of half steps and then shifts.  A rejected animation is
// dropped, and the Completion carries the *rotation.Conflict.
func (k *Keyboard) ShiftWithAnimation(stops int) *rotation.Completion {
	d := k.AnimationDuration
	if d <= 0 {
		d = rotation.DefaultDuration
	}
	done := rotation.NewCompletion()
	k.TonalCenterRotation.AnimateTo(float64(stops), d).OnSettle(func(err error) {
		if err == nil {
			k.Shift(stops)
		}
		done.Settle(err)
	})
	return done
}
