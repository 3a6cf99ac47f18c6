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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonalring/ring/cell"
)

type fake struct {
	data *Data
	ctl  *Controller
}

func (f *fake) Kind() Kind              { return StructureKind }
func (f *fake) Data() *Data             { return f.data }
func (f *fake) Controller() *Controller { return f.ctl }

func newFake(active *cell.Value[Layer]) *fake {
	f := &fake{
		ctl: EmptyController(),
	}
	f.data = NewData(f, active, nil)
	return f
}

func TestMakeAction(t *testing.T) {
	guard := cell.NewComparable(false)
	ran := 0
	slot := MakeAction(guard, func() { ran++ })

	c := NewController(map[SlotName]Slot{
		Clear: slot,
	})
	assert.False(t, c.Has(Clear))
	assert.False(t, c.Invoke(Clear))
	assert.Equal(t, 0, ran)

	var conflict *Conflict
	require.ErrorAs(t, c.MustInvoke(Clear), &conflict)
	assert.Equal(t, Clear, conflict.Slot)

	guard.Set(true)
	assert.True(t, c.Has(Clear))
	assert.True(t, c.Invoke(Clear))
	assert.Equal(t, 1, ran)
	assert.Equal(t, []SlotName{Clear}, c.Present())
}

func TestUnifyEmpty(t *testing.T) {
	u := Unify(nil)
	for _, n := range SlotNames() {
		assert.False(t, u.Has(n), n.String())
	}
}

func TestUnifySingle(t *testing.T) {
	a := NewController(map[SlotName]Slot{
		Show: Present(func() {}),
	})
	list := cell.New([]*Controller{a})
	u := UnifyControllers(list)
	assert.Same(t, a, u.Get())
}

func TestUnifyAndsAndRunsInOrder(t *testing.T) {
	var (
		order []string
		guard = cell.NewComparable(true)
	)
	a := NewController(map[SlotName]Slot{
		Play: Present(func() { order = append(order, "a") }),
		Hide: Present(func() {}),
	})
	b := NewController(map[SlotName]Slot{
		Play: MakeAction(guard, func() { order = append(order, "b") }),
	})
	list := cell.New([]*Controller{a, b})
	u := UnifyControllers(list)

	var current *Controller
	unsubscribe := u.Subscribe(func(c *Controller) { current = c })
	defer unsubscribe()

	assert.False(t, current.Has(Hide))
	require.True(t, current.Has(Play))
	current.Invoke(Play)
	assert.Equal(t, []string{"a", "b"}, order)

	guard.Set(false)
	assert.False(t, current.Has(Play))

	list.Set([]*Controller{b, a})
	guard.Set(true)
	order = nil
	current.Invoke(Play)
	assert.Equal(t, []string{"b", "a"}, order)
}

func TestActiveIsExclusive(t *testing.T) {
	active := NewActiveCell()
	x := newFake(active)
	y := newFake(active)

	var xs []bool
	unsubscribe := x.Data().Active.Subscribe(func(on bool) { xs = append(xs, on) })
	defer unsubscribe()

	x.Data().Active.Set(true)
	assert.True(t, x.Data().Active.Get())
	assert.False(t, y.Data().Active.Get())

	y.Data().Active.Set(true)
	assert.False(t, x.Data().Active.Get())
	assert.True(t, y.Data().Active.Get())

	// Clearing a layer that isn't active leaves the active one alone.
	x.Data().Active.Set(false)
	assert.True(t, y.Data().Active.Get())

	y.Data().Active.Update(func(on bool) bool { return !on })
	assert.Nil(t, active.Get())
	assert.Equal(t, []bool{false, true, false}, xs)
}

func TestUnifyData(t *testing.T) {
	active := NewActiveCell()
	x := newFake(active)
	y := newFake(active)
	list := cell.New([]*Data{x.Data(), y.Data()})
	u := UnifyData(list)

	assert.True(t, u.Visible.Get())
	y.Data().Visible.Set(false)
	assert.False(t, u.Visible.Get())
	list.Set([]*Data{x.Data()})
	assert.True(t, u.Visible.Get())

	assert.False(t, u.Playing.Get())
	list.Set(nil)
	assert.True(t, u.Playing.Get())
}

func TestParseSlotName(t *testing.T) {
	for _, n := range SlotNames() {
		got, err := ParseSlotName(n.String())
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
	_, err := ParseSlotName("jump")
	var unknown *UnknownSlot
	assert.ErrorAs(t, err, &unknown)
}
