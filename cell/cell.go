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

package cell

// Unsubscribe removes a subscription.  Calling it more than once is
// harmless.
type Unsubscribe func()

// Cell is a read-only reactive value.
type Cell[T any] interface {
	// Get returns the current value.
	Get() T

	// Subscribe registers the given function, which is called
	// immediately with the current value (if there is one) and then
	// again on every change.
	Subscribe(func(T)) Unsubscribe
}

// Writable is a Cell that can be changed directly.
type Writable[T any] interface {
	Cell[T]
	Set(T)
	Update(func(T) T)
}

type subscription[T any] struct {
	f    func(T)
	live bool
}

// subscribers is an ordered set of subscriptions.
type subscribers[T any] struct {
	subs []*subscription[T]
}

func (ss *subscribers[T]) add(f func(T)) *subscription[T] {
	s := &subscription[T]{
		f:    f,
		live: true,
	}
	ss.subs = append(ss.subs, s)
	return s
}

func (ss *subscribers[T]) remove(s *subscription[T]) {
	if !s.live {
		return
	}
	s.live = false
	for i, x := range ss.subs {
		if x == s {
			copy(ss.subs[i:], ss.subs[i+1:])
			ss.subs[len(ss.subs)-1] = nil
			ss.subs = ss.subs[:len(ss.subs)-1]
			return
		}
	}
}

func (ss *subscribers[T]) len() int {
	return len(ss.subs)
}

// notify calls every live subscriber with v.  If a subscriber causes a
// newer value to be published (stale returns true), the remaining
// subscribers have already been told about the newer value, so we stop.
func (ss *subscribers[T]) notify(v T, stale func() bool) {
	if len(ss.subs) == 0 {
		return
	}
	snapshot := make([]*subscription[T], len(ss.subs))
	copy(snapshot, ss.subs)
	for _, s := range snapshot {
		if !s.live {
			continue
		}
		s.f(v)
		if stale() {
			return
		}
	}
}

// Value is a writable Cell.
type Value[T any] struct {
	v       T
	equal   func(a, b T) bool
	version uint64
	subs    subscribers[T]
}

// New makes a Value that notifies its subscribers on every Set.
func New[T any](v T) *Value[T] {
	return &Value[T]{
		v: v,
	}
}

// NewComparable makes a Value that ignores a Set to the value it
// already holds.
func NewComparable[T comparable](v T) *Value[T] {
	return &Value[T]{
		v: v,
		equal: func(a, b T) bool {
			return a == b
		},
	}
}

// Get returns the current value.
func (c *Value[T]) Get() T {
	return c.v
}

// Set replaces the value and notifies subscribers.
func (c *Value[T]) Set(v T) {
	if c.equal != nil && c.equal(c.v, v) {
		return
	}
	c.v = v
	c.version++
	version := c.version
	c.subs.notify(v, func() bool {
		return c.version != version
	})
}

// Update sets the value to f applied to the current value.
func (c *Value[T]) Update(f func(T) T) {
	c.Set(f(c.v))
}

// Subscribe implements Cell.
func (c *Value[T]) Subscribe(f func(T)) Unsubscribe {
	s := c.subs.add(f)
	f(c.v)
	return func() {
		c.subs.remove(s)
	}
}

// Subscribers reports the number of current subscribers.
func (c *Value[T]) Subscribers() int {
	return c.subs.len()
}

// Readable is a lazy Cell driven by a start function.
//
// start is called when the first subscriber arrives.  It receives a
// function to publish values and returns a function that stop calls
// when the last subscriber leaves.
type Readable[T any] struct {
	start   func(set func(T)) (stop func())
	stop    func()
	running bool
	v       T
	has     bool
	version uint64
	subs    subscribers[T]
}

// NewReadable makes a Readable with the given start function.
func NewReadable[T any](start func(set func(T)) (stop func())) *Readable[T] {
	return &Readable[T]{
		start: start,
	}
}

func (r *Readable[T]) set(v T) {
	r.v = v
	r.has = true
	r.version++
	version := r.version
	r.subs.notify(v, func() bool {
		return r.version != version
	})
}

// Subscribe implements Cell.
func (r *Readable[T]) Subscribe(f func(T)) Unsubscribe {
	s := r.subs.add(f)
	if !r.running {
		r.running = true
		stop := r.start(r.set)
		if r.running {
			r.stop = stop
		} else if stop != nil {
			// Everybody left while we were starting.
			stop()
		}
	} else if r.has {
		f(r.v)
	}
	return func() {
		r.unsubscribe(s)
	}
}

func (r *Readable[T]) unsubscribe(s *subscription[T]) {
	if !s.live {
		return
	}
	r.subs.remove(s)
	if r.subs.len() > 0 || !r.running {
		return
	}
	r.running = false
	r.has = false
	var zero T
	r.v = zero
	if r.stop != nil {
		stop := r.stop
		r.stop = nil
		stop()
	}
}

// Get returns the current value.
//
// When nobody is subscribed, Get subscribes and unsubscribes in order
// to compute a fresh value.  Get panics with an *UnsetValue if the
// cell has never published a value.
func (r *Readable[T]) Get() T {
	if r.running {
		if !r.has {
			panic(&UnsetValue{})
		}
		return r.v
	}
	var (
		v   T
		got bool
	)
	unsubscribe := r.Subscribe(func(x T) {
		v = x
		got = true
	})
	unsubscribe()
	if !got {
		panic(&UnsetValue{})
	}
	return v
}

// Subscribers reports the number of current subscribers.
func (r *Readable[T]) Subscribers() int {
	return r.subs.len()
}

type constant[T any] struct {
	v T
}

// Const makes a Cell that never changes.
func Const[T any](v T) Cell[T] {
	return &constant[T]{v}
}

func (c *constant[T]) Get() T {
	return c.v
}

func (c *constant[T]) Subscribe(f func(T)) Unsubscribe {
	f(c.v)
	return func() {}
}
