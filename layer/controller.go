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

package layer

import (
	"fmt"

	"github.com/tonalring/ring/cell"
)

// Action is an operation that a slot offers.
type Action func()

// Slot holds an Action while its guard holds and nil otherwise.
type Slot = cell.Cell[Action]

// SlotName names one of a Controller's slots.
type SlotName int

const (
	Show SlotName = iota
	Hide
	Clear
	MergeUp
	Highlight
	Play
	Stop
	RotateCw
	RotateCcw
	SetAnchor
	ReleaseAnchor
)

// NumSlots is the number of slots in every Controller.
const NumSlots = int(ReleaseAnchor) + 1

var slotNames = [NumSlots]string{
	"show",
	"hide",
	"clear",
	"mergeUp",
	"highlight",
	"play",
	"stop",
	"rotateCw",
	"rotateCcw",
	"setAnchor",
	"releaseAnchor",
}

func (n SlotName) String() string {
	if n < 0 || int(n) >= NumSlots {
		return fmt.Sprintf("SlotName(%d)", int(n))
	}
	return slotNames[n]
}

// ParseSlotName finds a slot by its String.
func ParseSlotName(s string) (SlotName, error) {
	for i, name := range slotNames {
		if name == s {
			return SlotName(i), nil
		}
	}
	return 0, &UnknownSlot{Name: s}
}

// SlotNames lists every slot in order.
func SlotNames() []SlotName {
	acc := make([]SlotName, NumSlots)
	for i := range acc {
		acc[i] = SlotName(i)
	}
	return acc
}

// Absent is a slot that's never present.
func Absent() Slot {
	return cell.Const[Action](nil)
}

// Present is a slot that's always present.
func Present(op Action) Slot {
	return cell.Const(op)
}

// MakeAction gives a slot that holds op exactly while guard is true.
func MakeAction(guard cell.Cell[bool], op Action) Slot {
	return cell.Derive(guard, func(ok bool) Action {
		if ok {
			return op
		}
		return nil
	})
}

// Controller is a table of slots.
type Controller struct {
	slots [NumSlots]Slot
}

// NewController makes a Controller from the given slots.  Missing
// slots are absent.
func NewController(slots map[SlotName]Slot) *Controller {
	c := &Controller{}
	for i := range c.slots {
		if s, have := slots[SlotName(i)]; have && s != nil {
			c.slots[i] = s
		} else {
			c.slots[i] = Absent()
		}
	}
	return c
}

// EmptyController has every slot absent.
func EmptyController() *Controller {
	return NewController(nil)
}

// Slot returns the named slot.
func (c *Controller) Slot(n SlotName) Slot {
	return c.slots[n]
}

// Has reports whether the named slot is currently present.
func (c *Controller) Has(n SlotName) bool {
	return c.slots[n].Get() != nil
}

// Present lists the slots that are currently present.
func (c *Controller) Present() []SlotName {
	acc := make([]SlotName, 0, NumSlots)
	for i, s := range c.slots {
		if s.Get() != nil {
			acc = append(acc, SlotName(i))
		}
	}
	return acc
}

// Invoke calls the named slot's action if the slot is present.  It
// reports whether anything ran.
func (c *Controller) Invoke(n SlotName) bool {
	op := c.slots[n].Get()
	if op == nil {
		return false
	}
	op()
	return true
}

// MustInvoke is Invoke for callers that expect the slot to be
// present.  An absent slot gives a *Conflict and nothing runs.
func (c *Controller) MustInvoke(n SlotName) error {
	if !c.Invoke(n) {
		return &Conflict{Slot: n}
	}
	return nil
}

// UnifyControllers folds a changing list of controllers into one.  A
// unified slot is present when it's present on every controller, and
// invoking it invokes each constituent in list order.  The empty list
// gives a controller with nothing present, and a list of one gives
// that controller.
func UnifyControllers(cs cell.Cell[[]*Controller]) cell.Cell[*Controller] {
	return cell.Derive(cs, Unify)
}

// Unify is UnifyControllers for a fixed list.
func Unify(cs []*Controller) *Controller {
	switch len(cs) {
	case 0:
		return EmptyController()
	case 1:
		return cs[0]
	}
	u := &Controller{}
	for i := range u.slots {
		slots := make([]Slot, len(cs))
		for j, c := range cs {
			slots[j] = c.slots[i]
		}
		u.slots[i] = cell.DeriveSlice(slots, all)
	}
	return u
}

func all(ops []Action) Action {
	for _, op := range ops {
		if op == nil {
			return nil
		}
	}
	return func() {
		for _, op := range ops {
			op()
		}
	}
}
