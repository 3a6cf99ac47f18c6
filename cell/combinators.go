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

// Unite combines a fixed list of cells into one cell of a slice.  The
// slice always has the same length as the input, and element i
// follows cell i.
func Unite[T any](cells []Cell[T]) Cell[[]T] {
	return DeriveSlice(cells, func(vs []T) []T {
		return vs
	})
}

// Collapse flattens one level of nesting.
//
// The result follows whatever inner cell outer currently holds.  When
// outer moves to a new inner cell, the subscription to the previous
// inner cell is released.  Reading the result before any inner cell
// has published a value panics with an *UnsetValue.
func Collapse[T any](outer Cell[Cell[T]]) Cell[T] {
	return NewReadable(func(set func(T)) func() {
		var inner Unsubscribe
		unsubscribe := outer.Subscribe(func(c Cell[T]) {
			previous := inner
			inner = c.Subscribe(set)
			if previous != nil {
				previous()
			}
		})
		return func() {
			unsubscribe()
			if inner != nil {
				inner()
				inner = nil
			}
		}
	})
}

// MapCells projects a changing list through a per-item cell and
// flattens the result.  Any change to the list (add, remove, reorder)
// rebuilds the projection.
func MapCells[S, T any](items Cell[[]S], toInner func(S) Cell[T]) Cell[[]T] {
	return Collapse(Derive(items, func(xs []S) Cell[[]T] {
		inners := make([]Cell[T], len(xs))
		for i, x := range xs {
			inners[i] = toInner(x)
		}
		return Unite(inners)
	}))
}

// FilterCells is a live view of the items whose predicate cell
// currently holds true.
func FilterCells[S any](items Cell[[]S], pred func(S) Cell[bool]) Cell[[]S] {
	return Collapse(Derive(items, func(xs []S) Cell[[]S] {
		verdicts := make([]Cell[bool], len(xs))
		for i, x := range xs {
			verdicts[i] = pred(x)
		}
		return Derive(Unite(verdicts), func(vs []bool) []S {
			acc := make([]S, 0, len(xs))
			for i, keep := range vs {
				if keep {
					acc = append(acc, xs[i])
				}
			}
			return acc
		})
	}))
}
