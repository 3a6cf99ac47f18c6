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

package stack

import (
	"strconv"

	"github.com/tonalring/ring/cell"
	"github.com/tonalring/ring/intervals"
	"github.com/tonalring/ring/layer"
	"github.com/tonalring/ring/rotation"
)

// ID identifies a Structure within its Collection.  IDs start at 1.
type ID int

// NoID is the absence of a Structure.
const NoID ID = 0

func (id ID) String() string {
	return strconv.Itoa(int(id))
}

// Player plays structures on behalf of their play and stop slots.
type Player interface {
	Play(s *Structure)
	Stop(s *Structure)
}

// Structure is one interval-set layer in a Collection.
type Structure struct {
	ID ID

	IntervalSet *cell.Value[intervals.Set]

	// Rotation is this structure's rotation controller.  Its
	// Rotation cell is in semitones.
	Rotation *rotation.Controller

	// Highlighted is flipped by the highlight slot.
	Highlighted *cell.Value[bool]

	// Relations, resolved through the Collection's arena.
	StructureAbove cell.Cell[*Structure]
	StructureBelow cell.Cell[*Structure]
	AnchorTarget   cell.Cell[*Structure]
	AnchorSource   cell.Cell[*Structure]

	// AnchorTargetIntervalSet is the anchor target's interval set.
	// The second value is false when there's no anchor target.
	AnchorTargetIntervalSet cell.Cell[OptionalSet]

	IsEmpty cell.Cell[bool]

	// EditableIntervalSet is the anchor target's interval set when
	// anchored, and the chromatic set otherwise.
	EditableIntervalSet cell.Cell[intervals.Set]

	// IsEditing holds when this structure is active, visible, and
	// not the target of another structure's anchor.
	IsEditing cell.Cell[bool]

	// MergeDown copies this structure's intervals into the one
	// below.  It isn't one of the layer slots.
	MergeDown layer.Slot

	above, below, anchorTarget, anchorSource *cell.Value[ID]

	collection *Collection
	data       *layer.Data
	controller *layer.Controller
}

// OptionalSet is an interval set that might be absent.
type OptionalSet struct {
	Set     intervals.Set
	Present bool
}

func newStructure(c *Collection, id ID, binary int) *Structure {
	s := &Structure{
		ID:           id,
		IntervalSet:  cell.NewComparable(intervals.FromBinary(binary)),
		Rotation:     rotation.NewController(c.clock),
		Highlighted:  cell.NewComparable(false),
		above:        cell.NewComparable(NoID),
		below:        cell.NewComparable(NoID),
		anchorTarget: cell.NewComparable(NoID),
		anchorSource: cell.NewComparable(NoID),
		collection:   c,
	}
	s.Rotation.Debug = c.Debug

	s.StructureAbove = cell.Derive[ID](s.above, c.lookup)
	s.StructureBelow = cell.Derive[ID](s.below, c.lookup)
	s.AnchorTarget = cell.Derive[ID](s.anchorTarget, c.lookup)
	s.AnchorSource = cell.Derive[ID](s.anchorSource, c.lookup)

	anchored := cell.Derive[ID](s.anchorTarget, present)
	s.data = layer.NewData(s, c.active, anchored)

	s.AnchorTargetIntervalSet = within(s.AnchorTarget, optionalSet, OptionalSet{})
	s.IsEmpty = cell.Derive[intervals.Set](s.IntervalSet, intervals.Set.IsEmpty)
	s.EditableIntervalSet = cell.Derive(s.AnchorTargetIntervalSet, func(o OptionalSet) intervals.Set {
		if o.Present {
			return o.Set
		}
		return intervals.Chromatic()
	})
	s.IsEditing = cell.Derive3[bool, bool, ID](s.data.Active, s.data.Visible, s.anchorSource,
		func(active, visible bool, source ID) bool {
			return active && visible && source == NoID
		})

	s.MergeDown = layer.MakeAction(s.canMergeDown(), func() {
		s.MergeInto(s.Below())
	})
	s.controller = s.newController()

	return s
}

func present(id ID) bool {
	return id != NoID
}

func optionalSet(s *Structure) cell.Cell[OptionalSet] {
	return cell.Derive[intervals.Set](s.IntervalSet, func(is intervals.Set) OptionalSet {
		return OptionalSet{
			Set:     is,
			Present: true,
		}
	})
}

// within follows a cell of the structure that ref currently points
// to.  When ref points nowhere, the result is none.
func within[T any](ref cell.Cell[*Structure], sel func(*Structure) cell.Cell[T], none T) cell.Cell[T] {
	return cell.Collapse(cell.Derive(ref, func(s *Structure) cell.Cell[T] {
		if s == nil {
			return cell.Const(none)
		}
		return sel(s)
	}))
}

func (s *Structure) Kind() layer.Kind {
	return layer.StructureKind
}

func (s *Structure) Data() *layer.Data {
	return s.data
}

func (s *Structure) Controller() *layer.Controller {
	return s.controller
}

func (s *Structure) String() string {
	return "structure " + s.ID.String() + " " + s.IntervalSet.Get().String()
}

// Above returns the structure directly above, if any.
func (s *Structure) Above() *Structure {
	return s.collection.lookup(s.above.Get())
}

// Below returns the structure directly below, if any.
func (s *Structure) Below() *Structure {
	return s.collection.lookup(s.below.Get())
}

// Target returns the structure this one is anchored to, if any.
func (s *Structure) Target() *Structure {
	return s.collection.lookup(s.anchorTarget.Get())
}

// Source returns the structure anchored to this one, if any.
func (s *Structure) Source() *Structure {
	return s.collection.lookup(s.anchorSource.Get())
}

func (s *Structure) newController() *layer.Controller {
	var (
		visible  = s.data.Visible
		notEmpty = cell.Derive(s.IsEmpty, not)
		noSource = cell.Derive[ID](s.anchorSource, absent)
		audible  = cell.Derive2[bool, bool](visible, s.IsEmpty, func(v, empty bool) bool {
			return v && !empty
		})
	)

	return layer.NewController(map[layer.SlotName]layer.Slot{
		layer.Show: layer.MakeAction(notEmpty, func() {
			s.data.Visible.Set(true)
		}),
		layer.Hide: layer.MakeAction(notEmpty, func() {
			s.data.Visible.Set(false)
		}),
		layer.Clear: layer.MakeAction(cell.Derive2[bool, ID](visible, s.anchorSource,
			func(v bool, source ID) bool {
				return v && source == NoID
			}), func() {
			s.IntervalSet.Set(intervals.Set{})
		}),
		layer.MergeUp: layer.MakeAction(s.canMergeUp(), func() {
			s.MergeInto(s.Above())
		}),
		layer.Highlight: layer.MakeAction(audible, func() {
			s.Highlighted.Update(not)
		}),
		layer.Play: layer.MakeAction(audible, s.play),
		layer.Stop: layer.Present(s.stop),
		layer.RotateCw: layer.MakeAction(noSource, func() {
			s.rotate(1)
		}),
		layer.RotateCcw: layer.MakeAction(noSource, func() {
			s.rotate(-1)
		}),
		layer.SetAnchor:     layer.MakeAction(s.canSetAnchor(), s.setAnchor),
		layer.ReleaseAnchor: layer.MakeAction(cell.Derive[ID](s.anchorTarget, present), s.releaseAnchor),
	})
}

func not(b bool) bool {
	return !b
}

func absent(id ID) bool {
	return id == NoID
}

func (s *Structure) canSetAnchor() cell.Cell[bool] {
	var (
		belowSet = within(s.StructureBelow, func(o *Structure) cell.Cell[intervals.Set] {
			return o.IntervalSet
		}, intervals.Set{})
		belowTarget = within(s.StructureBelow, func(o *Structure) cell.Cell[ID] {
			return o.anchorTarget
		}, NoID)
	)
	return cell.Derive4[intervals.Set, intervals.Set, ID, ID](s.IntervalSet, belowSet, s.anchorSource, belowTarget,
		func(is, below intervals.Set, source, belowTarget ID) bool {
			switch {
			case source != NoID:
				// Something is already anchored here.
			case belowTarget != NoID:
				// The one below is anchored to another.
			case below.Count() < 3:
				// Also covers the bottom of the stack.
			default:
				return below.Contains(is)
			}
			return false
		})
}

func (s *Structure) canMergeUp() cell.Cell[bool] {
	var (
		aboveSet     = within(s.StructureAbove, optionalSet, OptionalSet{})
		aboveVisible = within(s.StructureAbove, func(o *Structure) cell.Cell[bool] {
			return o.data.Visible
		}, false)
		aboveSource = within(s.StructureAbove, func(o *Structure) cell.Cell[ID] {
			return o.anchorSource
		}, NoID)
	)
	return s.canMerge(aboveSet, aboveVisible, aboveSource)
}

func (s *Structure) canMergeDown() cell.Cell[bool] {
	var (
		belowSet     = within(s.StructureBelow, optionalSet, OptionalSet{})
		belowVisible = within(s.StructureBelow, func(o *Structure) cell.Cell[bool] {
			return o.data.Visible
		}, false)
		belowTarget = within(s.StructureBelow, func(o *Structure) cell.Cell[ID] {
			return o.anchorTarget
		}, NoID)
	)
	return s.canMerge(belowSet, belowVisible, belowTarget)
}

// canMerge is the guard for merging into a neighbour.  link is the
// neighbour's anchor relation that blocks the merge: its source for
// the neighbour above and its target for the neighbour below.
func (s *Structure) canMerge(dst cell.Cell[OptionalSet], dstVisible cell.Cell[bool], link cell.Cell[ID]) cell.Cell[bool] {
	return cell.Derive5[bool, intervals.Set, OptionalSet, bool, ID](s.data.Visible, s.IntervalSet, dst, dstVisible, link,
		func(visible bool, is intervals.Set, dst OptionalSet, dstVisible bool, link ID) bool {
			switch {
			case !visible:
			case is.IsEmpty():
			case !dst.Present:
			case dst.Set.Contains(is):
				// Nothing to add.
			case !dstVisible:
			case link != NoID:
			default:
				return true
			}
			return false
		})
}

// MergeInto adds this structure's intervals to dst.  A nil dst is
// ignored.
func (s *Structure) MergeInto(dst *Structure) {
	if dst == nil {
		return
	}
	is := s.IntervalSet.Get()
	dst.IntervalSet.Update(func(d intervals.Set) intervals.Set {
		return d.Union(is)
	})
}

func (s *Structure) setAnchor() {
	target := s.Below()
	if target == nil {
		return
	}
	s.collection.logf("anchor %s to %s", s.ID, target.ID)
	s.anchorTarget.Set(target.ID)
	target.anchorSource.Set(s.ID)

	s.data.Visible.Set(true)
	target.data.Visible.Set(true)

	s.data.Active.Set(true)
}

func (s *Structure) releaseAnchor() {
	target := s.Target()
	s.anchorTarget.Set(NoID)
	if target != nil {
		target.anchorSource.Set(NoID)
	}
}

// unlink clears both of this structure's anchor relations without
// touching its partners.  The Collection uses it when it clears every
// anchor at once.
func (s *Structure) unlink() {
	s.anchorSource.Set(NoID)
	s.anchorTarget.Set(NoID)
}

func (s *Structure) play() {
	s.data.Playing.Set(true)
	if p := s.collection.Player; p != nil {
		p.Play(s)
	}
}

func (s *Structure) stop() {
	if p := s.collection.Player; p != nil {
		p.Stop(s)
	}
	s.data.Playing.Set(false)
}

// ToggleVisibility flips visibility.  The two sides of an anchor pair
// stay in sync: both are hidden if both were visible, and otherwise
// both are shown.
func (s *Structure) ToggleVisibility() {
	linked := s.Source()
	if linked == nil {
		linked = s.Target()
	}
	if linked == nil {
		s.data.Visible.Update(not)
		return
	}
	both := s.data.Visible.Get() && linked.data.Visible.Get()
	s.data.Visible.Set(!both)
	linked.data.Visible.Set(!both)
}

// TargetRotation is the rotation, in semitones, that corresponds to
// the given number of stops.  An unanchored stop is a half step.  An
// anchored stop is one step along the anchor target's intervals.
func (s *Structure) TargetRotation(stops int) float64 {
	if t := s.Target(); t != nil {
		if n := t.IntervalSet.Get().Count(); 0 < n {
			return float64(stops) * float64(intervals.Divisions) / float64(n)
		}
	}
	return float64(stops)
}

// Shift moves the interval set by the given number of stops right
// away: within the anchor target's intervals when anchored, and by
// half steps otherwise.
func (s *Structure) Shift(stops int) error {
	t := s.Target()
	if t == nil {
		s.IntervalSet.Update(func(is intervals.Set) intervals.Set {
			return is.Shift(float64(stops))
		})
		return nil
	}
	shifted, err := s.IntervalSet.Get().ShiftWithinSuperset(t.IntervalSet.Get(), stops)
	if err != nil {
		return err
	}
	s.IntervalSet.Set(shifted)
	return nil
}

// ShiftWithAnimation animates the rotation for the given number of
// stops and then shifts the interval set.
//
// The returned Completion settles after the shift.  If the structure
// is already rotating, it settles right away with a
// *rotation.Conflict and nothing shifts.
func (s *Structure) ShiftWithAnimation(stops int) *rotation.Completion {
	done := rotation.NewCompletion()
	s.Rotation.AnimateTo(s.TargetRotation(stops), s.collection.duration()).OnSettle(func(err error) {
		if err != nil {
			s.collection.logf("structure %s: shift %d dropped: %v", s.ID, stops, err)
			done.Settle(err)
			return
		}
		done.Settle(s.Shift(stops))
	})
	return done
}

// rotate is the effect of the rotate slots.  A rejected animation is
// dropped.  Any other failure means the anchor links are broken.
func (s *Structure) rotate(stops int) {
	s.ShiftWithAnimation(stops).OnSettle(func(err error) {
		if err != nil && !rotation.IsConflict(err) {
			panic(err)
		}
	})
}
