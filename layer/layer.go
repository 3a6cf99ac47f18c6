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

// Package layer defines the capability every stacked layer exposes: a
// set of flags (Data) and a table of guarded actions (Controller).
//
// A guarded action lives in a Slot, which is a cell holding either an
// Action (the guard currently holds) or nil (it doesn't).  The only
// legal way to use a slot is to check for presence and then call,
// which is what Controller.Invoke does.
package layer

import (
	"github.com/tonalring/ring/cell"
)

// Kind tags the two layer variants.
type Kind int

const (
	KeyboardKind Kind = iota
	StructureKind
)

func (k Kind) String() string {
	switch k {
	case KeyboardKind:
		return "keyboard"
	case StructureKind:
		return "structure"
	default:
		return "unknown"
	}
}

// Layer is implemented by exactly two types: the keyboard and a
// stacked structure.  Switch on Kind to tell them apart.
type Layer interface {
	Kind() Kind
	Data() *Data
	Controller() *Controller
}

// Data holds a layer's flags.
type Data struct {
	Visible cell.Writable[bool]
	Checked cell.Writable[bool]
	Playing cell.Writable[bool]

	// Active is true for at most one layer at a time.  It's a view
	// of a cell shared by all layers; setting it to true makes this
	// layer the active one.
	Active cell.Writable[bool]

	// Anchored is true when the layer is anchored to another.
	Anchored cell.Cell[bool]
}

// NewData makes Data for the given layer with default flags: visible,
// not checked, not playing.
//
// active is the shared active-layer cell.  anchored may be nil for
// layers that can't be anchored.
func NewData(l Layer, active *cell.Value[Layer], anchored cell.Cell[bool]) *Data {
	if anchored == nil {
		anchored = cell.Const(false)
	}
	return &Data{
		Visible:  cell.NewComparable(true),
		Checked:  cell.NewComparable(false),
		Playing:  cell.NewComparable(false),
		Active:   newActiveFlag(l, active),
		Anchored: anchored,
	}
}

// NewActiveCell makes the cell that records which layer is active.
func NewActiveCell() *cell.Value[Layer] {
	return cell.NewComparable[Layer](nil)
}

// activeFlag is a boolean view of the shared active-layer cell.
type activeFlag struct {
	layer  Layer
	active *cell.Value[Layer]
	view   cell.Cell[bool]
}

func newActiveFlag(l Layer, active *cell.Value[Layer]) *activeFlag {
	return &activeFlag{
		layer:  l,
		active: active,
		view: cell.Derive[Layer](active, func(a Layer) bool {
			return a == l
		}),
	}
}

func (f *activeFlag) Get() bool {
	return f.active.Get() == f.layer
}

// Subscribe only reports changes for this layer, not every change of
// the shared cell.
func (f *activeFlag) Subscribe(g func(bool)) cell.Unsubscribe {
	var (
		last bool
		seen bool
	)
	return f.view.Subscribe(func(on bool) {
		if seen && on == last {
			return
		}
		last, seen = on, true
		g(on)
	})
}

// Set(true) makes this layer the active one.  Set(false) clears the
// active layer only if it's this one.
func (f *activeFlag) Set(on bool) {
	if on {
		f.active.Set(f.layer)
		return
	}
	if f.Get() {
		f.active.Set(nil)
	}
}

func (f *activeFlag) Update(g func(bool) bool) {
	f.Set(g(f.Get()))
}

// Unified is the AND of some flags across several layers.
type Unified struct {
	Visible cell.Cell[bool]
	Playing cell.Cell[bool]
}

// UnifyData combines the flags of a changing list of layers.  A flag
// is true when it's true for every layer (and for an empty list).
func UnifyData(data cell.Cell[[]*Data]) *Unified {
	all := func(sel func(*Data) cell.Cell[bool]) cell.Cell[bool] {
		return cell.Derive(cell.MapCells(data, sel), func(vs []bool) bool {
			for _, v := range vs {
				if !v {
					return false
				}
			}
			return true
		})
	}
	return &Unified{
		Visible: all(func(d *Data) cell.Cell[bool] { return d.Visible }),
		Playing: all(func(d *Data) cell.Cell[bool] { return d.Playing }),
	}
}
