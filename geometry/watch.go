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

package geometry

import (
	"github.com/tonalring/ring/cell"
	"github.com/tonalring/ring/intervals"
	"github.com/tonalring/ring/stack"
)

// Shape is a structure's current outline.
type Shape struct {
	Vertices []Point
	Lines    []Line
	Err      error
}

// Project computes a Shape from a structure's three rendering inputs.
func Project(is intervals.Set, rotation float64, target stack.OptionalSet) Shape {
	vs, err := Vertices(is, rotation, target.Set, target.Present)
	if err != nil {
		return Shape{Err: err}
	}
	return Shape{
		Vertices: vs,
		Lines:    SegmentLines(vs),
	}
}

// Watch follows a structure's Shape.
func Watch(s *stack.Structure) cell.Cell[Shape] {
	return cell.Derive3[intervals.Set, float64, stack.OptionalSet](s.IntervalSet, s.Rotation.Rotation, s.AnchorTargetIntervalSet, Project)
}
