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

// Package cell provides a small push-based reactive kernel.
//
// A Cell holds a value and a set of subscribers.  When the value
// changes, every current subscriber is called synchronously with the
// new value.  There is no batching: a cell derived from several
// sources may be recomputed more than once for what the caller thinks
// of as a single change.  Subscribers always end up seeing the latest
// value.
//
// Two kinds of cells exist.  A Value is a writable cell that owns its
// value.  A Readable is a lazy cell: it only subscribes to its own
// sources while it has subscribers of its own, and it releases those
// subscriptions when the last subscriber leaves.  All the combinators
// (Derive, Unite, Collapse, MapCells, FilterCells) return Readables,
// which is what keeps a graph with a changing topology from leaking
// subscriptions.
//
// Everything here assumes a single writer.  Cells are not safe for
// concurrent use.  A derive function must not write to any of its own
// (direct or transitive) sources; nothing guards against that.
package cell
