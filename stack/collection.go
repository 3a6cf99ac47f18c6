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
	"fmt"
	"log"
	"time"

	"github.com/tonalring/ring/cell"
	"github.com/tonalring/ring/intervals"
	"github.com/tonalring/ring/layer"
	"github.com/tonalring/ring/rotation"
)

// Collection is an ordered stack of Structures, bottom first.
type Collection struct {
	// Structures is the stack, bottom first.
	Structures cell.Cell[[]*Structure]

	Top    cell.Cell[*Structure]
	Bottom cell.Cell[*Structure]

	// Active is the structure whose layer is active, if any.
	Active cell.Cell[*Structure]

	// EditableIntervalSet is what the user can toggle right now:
	// empty when no structure is active, and otherwise the active
	// structure's EditableIntervalSet.
	EditableIntervalSet cell.Cell[intervals.Set]

	// Player, if not nil, handles the play and stop slots.
	Player Player

	// AnimationDuration is the duration of a rotation.  Zero means
	// rotation.DefaultDuration.
	AnimationDuration time.Duration

	Debug bool

	list   *cell.Value[[]*Structure]
	arena  map[ID]*Structure
	maxID  ID
	active *cell.Value[layer.Layer]
	clock  rotation.Clock
}

// NewCollection makes an empty Collection.
//
// active is the cell that records the active layer, which is shared
// with every other layer.  clock drives the structures' rotations.
func NewCollection(active *cell.Value[layer.Layer], clock rotation.Clock) *Collection {
	c := &Collection{
		list:   cell.New[[]*Structure](nil),
		arena:  make(map[ID]*Structure),
		active: active,
		clock:  clock,
	}
	c.Structures = c.list

	// This subscription comes first, so the links are right before
	// anybody else hears about a new order.
	c.list.Subscribe(c.refresh)

	c.Top = cell.Derive(c.Structures, func(ss []*Structure) *Structure {
		if len(ss) == 0 {
			return nil
		}
		return ss[len(ss)-1]
	})
	c.Bottom = cell.Derive(c.Structures, func(ss []*Structure) *Structure {
		if len(ss) == 0 {
			return nil
		}
		return ss[0]
	})
	c.Active = cell.Derive(cell.FilterCells(c.Structures, func(s *Structure) cell.Cell[bool] {
		return s.data.Active
	}), func(ss []*Structure) *Structure {
		if len(ss) == 0 {
			return nil
		}
		return ss[0]
	})
	c.EditableIntervalSet = within(c.Active, func(s *Structure) cell.Cell[intervals.Set] {
		return s.EditableIntervalSet
	}, intervals.Set{})

	return c
}

func (c *Collection) logf(format string, args ...interface{}) {
	if c.Debug {
		log.Printf("stack.Collection "+format, args...)
	}
}

func (c *Collection) duration() time.Duration {
	if c.AnimationDuration <= 0 {
		return rotation.DefaultDuration
	}
	return c.AnimationDuration
}

func (c *Collection) lookup(id ID) *Structure {
	if id == NoID {
		return nil
	}
	return c.arena[id]
}

// Get returns the structure with the given ID, if any.
func (c *Collection) Get(id ID) *Structure {
	return c.lookup(id)
}

// Len returns the number of structures.
func (c *Collection) Len() int {
	return len(c.list.Get())
}

// IDs lists the structures' IDs, bottom first.
func (c *Collection) IDs() []ID {
	ss := c.list.Get()
	acc := make([]ID, len(ss))
	for i, s := range ss {
		acc[i] = s.ID
	}
	return acc
}

// MaxID returns the largest ID ever issued.
func (c *Collection) MaxID() ID {
	return c.maxID
}

// Add puts a new structure on top of the stack.
//
// With id NoID, the new structure gets the next ID after the largest
// one ever issued.  An explicit id restores a structure that was
// removed earlier; it must not be in use.
func (c *Collection) Add(binary int, id ID) (*Structure, error) {
	switch {
	case id == NoID:
		id = c.maxID + 1
	case id < NoID:
		return nil, fmt.Errorf("bad structure id %d", id)
	case c.arena[id] != nil:
		return nil, fmt.Errorf("%w: %d", IDExists, id)
	}
	s := newStructure(c, id, binary)
	c.arena[id] = s
	if c.maxID < id {
		c.maxID = id
	}
	c.logf("add %s", s)

	ss := c.list.Get()
	next := make([]*Structure, len(ss), len(ss)+1)
	copy(next, ss)
	c.list.Set(append(next, s))

	return s, nil
}

// Remove takes the structure with the given ID out of the stack.  The
// order of the others doesn't change.  If the structure was the
// active layer, no layer is active afterwards.
func (c *Collection) Remove(id ID) bool {
	s := c.arena[id]
	if s == nil {
		return false
	}
	c.logf("remove %s", s)
	s.data.Active.Set(false)
	delete(c.arena, id)

	ss := c.list.Get()
	next := make([]*Structure, 0, len(ss))
	for _, x := range ss {
		if x != s {
			next = append(next, x)
		}
	}
	c.list.Set(next)

	return true
}

// Reorder puts the structures in the given order, bottom first.  ids
// must be a permutation of IDs().
func (c *Collection) Reorder(ids []ID) error {
	if len(ids) != len(c.arena) {
		return &BadOrder{
			Msg: fmt.Sprintf("have %d structures, got %d ids", len(c.arena), len(ids)),
		}
	}
	next := make([]*Structure, len(ids))
	seen := make(map[ID]bool, len(ids))
	for i, id := range ids {
		s := c.arena[id]
		if s == nil {
			return fmt.Errorf("%w: %d", NotFound, id)
		}
		if seen[id] {
			return &BadOrder{
				Msg: "duplicate id " + id.String(),
			}
		}
		seen[id] = true
		next[i] = s
	}
	c.logf("reorder %v", ids)
	c.list.Set(next)
	return nil
}

// refresh links neighbours, bottom to top, and clears every anchor.
func (c *Collection) refresh(ss []*Structure) {
	var lower *Structure
	for _, s := range ss {
		if lower != nil {
			s.below.Set(lower.ID)
			lower.above.Set(s.ID)
		} else {
			s.below.Set(NoID)
		}
		// This breaks anchors that the change didn't touch.
		s.unlink()
		lower = s
	}
	if lower != nil {
		lower.above.Set(NoID)
	}
}

// ToggleInterval toggles an ordinal on every structure that is being
// edited.  See ToggleIntervalIn.
func (c *Collection) ToggleInterval(ordinal int) {
	var editing []*Structure
	for _, s := range c.list.Get() {
		if s.IsEditing.Get() {
			editing = append(editing, s)
		}
	}
	ToggleIntervalIn(editing, ordinal)
}

// ToggleIntervalIn toggles an ordinal on each of the given structures.
// If they disagree about the ordinal, it's turned on for all of them
// instead.
//
// A structure whose EditableIntervalSet lacks the ordinal is left
// alone, so an anchored structure stays inside its anchor target.
func ToggleIntervalIn(ss []*Structure, ordinal int) {
	editable := make([]*Structure, 0, len(ss))
	for _, s := range ss {
		if s.EditableIntervalSet.Get().ContainsOrdinal(ordinal) {
			editable = append(editable, s)
		}
	}
	ss = editable
	if len(ss) == 0 {
		return
	}

	consistent := true
	first := ss[0].IntervalSet.Get().ContainsOrdinal(ordinal)
	for _, s := range ss[1:] {
		if s.IntervalSet.Get().ContainsOrdinal(ordinal) != first {
			consistent = false
			break
		}
	}

	for _, s := range ss {
		s.IntervalSet.Update(func(is intervals.Set) intervals.Set {
			if consistent {
				return is.ToggleOrdinal(ordinal)
			}
			return is.WithOrdinal(ordinal)
		})
	}
}
