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

// bind subscribes to one source.  changed should be called after the
// source's latest value has been recorded.
type bind func(changed func()) Unsubscribe

// combine makes a Readable that recomputes whenever any bound source
// changes.  The first value is published only after every source has
// reported in.
func combine[T any](compute func() T, binds ...bind) *Readable[T] {
	return NewReadable(func(set func(T)) func() {
		ready := false
		unsubscribes := make([]Unsubscribe, len(binds))
		for i, b := range binds {
			unsubscribes[i] = b(func() {
				if ready {
					set(compute())
				}
			})
		}
		ready = true
		set(compute())
		return func() {
			for _, unsubscribe := range unsubscribes {
				unsubscribe()
			}
		}
	})
}

func bindTo[S any](src Cell[S], dst *S) bind {
	return func(changed func()) Unsubscribe {
		return src.Subscribe(func(v S) {
			*dst = v
			changed()
		})
	}
}

// Derive makes a read-only Cell computed from one source.
func Derive[A, T any](a Cell[A], f func(A) T) Cell[T] {
	var av A
	return combine(func() T {
		return f(av)
	}, bindTo(a, &av))
}

// Derive2 makes a read-only Cell computed from two sources.
func Derive2[A, B, T any](a Cell[A], b Cell[B], f func(A, B) T) Cell[T] {
	var (
		av A
		bv B
	)
	return combine(func() T {
		return f(av, bv)
	}, bindTo(a, &av), bindTo(b, &bv))
}

// Derive3 makes a read-only Cell computed from three sources.
func Derive3[A, B, C, T any](a Cell[A], b Cell[B], c Cell[C], f func(A, B, C) T) Cell[T] {
	var (
		av A
		bv B
		cv C
	)
	return combine(func() T {
		return f(av, bv, cv)
	}, bindTo(a, &av), bindTo(b, &bv), bindTo(c, &cv))
}

// Derive4 makes a read-only Cell computed from four sources.
func Derive4[A, B, C, D, T any](a Cell[A], b Cell[B], c Cell[C], d Cell[D], f func(A, B, C, D) T) Cell[T] {
	var (
		av A
		bv B
		cv C
		dv D
	)
	return combine(func() T {
		return f(av, bv, cv, dv)
	}, bindTo(a, &av), bindTo(b, &bv), bindTo(c, &cv), bindTo(d, &dv))
}

// Derive5 makes a read-only Cell computed from five sources.
func Derive5[A, B, C, D, E, T any](a Cell[A], b Cell[B], c Cell[C], d Cell[D], e Cell[E], f func(A, B, C, D, E) T) Cell[T] {
	var (
		av A
		bv B
		cv C
		dv D
		ev E
	)
	return combine(func() T {
		return f(av, bv, cv, dv, ev)
	}, bindTo(a, &av), bindTo(b, &bv), bindTo(c, &cv), bindTo(d, &dv), bindTo(e, &ev))
}

// DeriveSlice makes a read-only Cell computed from a fixed list of
// sources of the same type.  f receives a fresh slice each time.
func DeriveSlice[S, T any](srcs []Cell[S], f func([]S) T) Cell[T] {
	vs := make([]S, len(srcs))
	binds := make([]bind, len(srcs))
	for i, src := range srcs {
		binds[i] = bindTo(src, &vs[i])
	}
	return combine(func() T {
		acc := make([]S, len(vs))
		copy(acc, vs)
		return f(acc)
	}, binds...)
}
