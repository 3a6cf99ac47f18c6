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

// Package stack is the ordered stack of interval-set layers.
//
// A Collection owns its Structures in an arena keyed by ID.  Each
// Structure refers to its neighbours (StructureAbove, StructureBelow)
// and to its anchor partner (AnchorTarget, AnchorSource) by ID, and
// those IDs are resolved through the arena.
//
// Every change to the order of the stack recomputes the neighbour
// links and breaks every anchor in the Collection, including anchors
// that the change didn't otherwise touch.
//
// Mutation is supposed to go through the guarded slots of each
// Structure's layer.Controller.  The guards are what keep the anchor
// links consistent.
package stack
