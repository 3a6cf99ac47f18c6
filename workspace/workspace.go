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

// Package workspace is the whole state graph: the keyboard, the stack
// of structures, the lights, and which layers are being edited.
//
// Everything is constructed explicitly by New and handed to whoever
// needs it.
package workspace

import (
	"fmt"
	"strings"
	"time"

	"github.com/tonalring/ring/cell"
	"github.com/tonalring/ring/intervals"
	"github.com/tonalring/ring/keyboard"
	"github.com/tonalring/ring/layer"
	"github.com/tonalring/ring/lighting"
	"github.com/tonalring/ring/music"
	"github.com/tonalring/ring/rotation"
	"github.com/tonalring/ring/stack"
)

// EditingMode says which layers the unified controller acts on.
type EditingMode int

const (
	// Single edits the active layer.
	Single EditingMode = iota

	// Multi edits the checked layers.
	Multi
)

func (m EditingMode) String() string {
	switch m {
	case Single:
		return "single"
	case Multi:
		return "multi"
	default:
		return fmt.Sprintf("EditingMode(%d)", int(m))
	}
}

// ParseEditingMode parses the String of an EditingMode.
func ParseEditingMode(s string) (EditingMode, error) {
	switch strings.ToLower(s) {
	case "single":
		return Single, nil
	case "multi":
		return Multi, nil
	}
	return Single, fmt.Errorf("unknown editing mode %q", s)
}

// PlayOctave is the octave, counted from the lowest note, that
// structures are played in.
const PlayOctave = 4

// Config says how to build a Workspace.
type Config struct {
	TonalCenter       int
	LowestNoteOrdinal int

	// Structures are the initial interval sets, bottom first.
	Structures []int

	// Active is the index into Structures of the active structure.
	// A negative value means no structure is active.
	Active int

	AnimationDuration time.Duration

	Debug bool
}

// DefaultStructures is a major scale with a major triad above it.
var DefaultStructures = []int{2741, 145}

// DefaultConfig has the default stack with the top structure active.
func DefaultConfig() Config {
	return Config{
		Structures:        append([]int(nil), DefaultStructures...),
		Active:            len(DefaultStructures) - 1,
		AnimationDuration: rotation.DefaultDuration,
	}
}

// Workspace holds everything.
type Workspace struct {
	EditingMode *cell.Value[EditingMode]

	// ActiveLayer is shared by every layer's Active flag.
	ActiveLayer *cell.Value[layer.Layer]

	Keyboard   *keyboard.Keyboard
	Collection *stack.Collection
	Lights     *lighting.System
	Sound      *SoundPlayer

	// AllLayers is the keyboard followed by the structures.
	AllLayers     cell.Cell[[]layer.Layer]
	CheckedLayers cell.Cell[[]layer.Layer]

	// TargetLayers is the active layer in Single mode and the
	// checked layers in Multi mode.
	TargetLayers cell.Cell[[]layer.Layer]

	UnifiedController cell.Cell[*layer.Controller]
	UnifiedData       *layer.Unified

	Clock rotation.Clock
}

// New builds a Workspace.
func New(cfg Config, clock rotation.Clock) (*Workspace, error) {
	active := layer.NewActiveCell()
	lights := lighting.NewNoteSystem()
	w := &Workspace{
		EditingMode: cell.NewComparable(Single),
		ActiveLayer: active,
		Keyboard:    keyboard.New(active, clock, cfg.TonalCenter, cfg.LowestNoteOrdinal),
		Collection:  stack.NewCollection(active, clock),
		Lights:      lights,
		Sound:       NewSoundPlayer(lights),
		Clock:       clock,
	}
	w.Keyboard.AnimationDuration = cfg.AnimationDuration
	w.Collection.AnimationDuration = cfg.AnimationDuration
	w.Collection.Debug = cfg.Debug
	w.Collection.Player = w
	w.Sound.Debug = cfg.Debug

	for i, binary := range cfg.Structures {
		if binary&^intervals.ChromaticBinary != 0 {
			return nil, fmt.Errorf("structure %d: %d isn't a 12-bit interval set", i, binary)
		}
		s, err := w.Collection.Add(binary, stack.NoID)
		if err != nil {
			return nil, err
		}
		if i == cfg.Active {
			s.Data().Active.Set(true)
		}
	}

	w.AllLayers = cell.Derive(w.Collection.Structures, func(ss []*stack.Structure) []layer.Layer {
		acc := make([]layer.Layer, 0, len(ss)+1)
		acc = append(acc, w.Keyboard)
		for _, s := range ss {
			acc = append(acc, s)
		}
		return acc
	})
	w.CheckedLayers = cell.FilterCells(w.AllLayers, func(l layer.Layer) cell.Cell[bool] {
		return l.Data().Checked
	})
	w.TargetLayers = cell.Derive3[EditingMode, layer.Layer, []layer.Layer](w.EditingMode, w.ActiveLayer, w.CheckedLayers,
		func(mode EditingMode, active layer.Layer, checked []layer.Layer) []layer.Layer {
			if mode == Multi {
				return checked
			}
			if active == nil {
				return nil
			}
			return []layer.Layer{active}
		})
	w.UnifiedController = layer.UnifyControllers(cell.Derive(w.TargetLayers, func(ls []layer.Layer) []*layer.Controller {
		acc := make([]*layer.Controller, len(ls))
		for i, l := range ls {
			acc[i] = l.Controller()
		}
		return acc
	}))
	w.UnifiedData = layer.UnifyData(cell.Derive(w.TargetLayers, func(ls []layer.Layer) []*layer.Data {
		acc := make([]*layer.Data, len(ls))
		for i, l := range ls {
			acc[i] = l.Data()
		}
		return acc
	}))

	return w, nil
}

// Invoke invokes a slot of the unified controller.
func (w *Workspace) Invoke(n layer.SlotName) error {
	return w.UnifiedController.Get().MustInvoke(n)
}

// ToggleInterval toggles an ordinal on the structures being edited.
// In Single mode that's the active structure.  In Multi mode it's
// every checked structure that is visible and isn't the target of an
// anchor.
func (w *Workspace) ToggleInterval(ordinal int) {
	if w.EditingMode.Get() == Single {
		w.Collection.ToggleInterval(ordinal)
		return
	}
	var ss []*stack.Structure
	for _, l := range w.CheckedLayers.Get() {
		s, is := l.(*stack.Structure)
		if !is {
			continue
		}
		if s.Data().Visible.Get() && s.Source() == nil {
			ss = append(ss, s)
		}
	}
	stack.ToggleIntervalIn(ss, ordinal)
}

// Pitches gives the pitches of a structure against the keyboard: the
// notes at and above the lowest note, in PlayOctave.
func (w *Workspace) Pitches(s *stack.Structure) []music.Pitch {
	var (
		tonalCenter = w.Keyboard.TonalCenter.Get()
		lowest      = w.Keyboard.LowestNoteOrdinal.Get()
		effective   = s.IntervalSet.Get().Shift(float64(-lowest))
		center      = tonalCenter + lowest
		notes       = music.NotesFromIntervalSet(effective, center)
		acc         = make([]music.Pitch, len(notes))
	)
	for i, n := range notes {
		acc[i] = music.PitchAboveLowestNote(n, music.NoteFromID(center), PlayOctave)
	}
	return acc
}

// PlayStructure plays a structure's pitches.
func (w *Workspace) PlayStructure(s *stack.Structure) []music.Pitch {
	ps := w.Pitches(s)
	w.Sound.PlayPitches(ps)
	return ps
}

// Play implements stack.Player.
func (w *Workspace) Play(s *stack.Structure) {
	w.PlayStructure(s)
}

// Stop implements stack.Player.  Every held pitch is released, so no
// structure is left marked as playing.
func (w *Workspace) Stop(s *stack.Structure) {
	w.Sound.StopAll()
	for _, o := range w.Collection.Structures.Get() {
		o.Data().Playing.Set(false)
	}
}
