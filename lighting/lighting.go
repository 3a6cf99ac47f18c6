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

// Package lighting tracks which lights are on.
//
// A light is on while it has more presses than releases.  Extra
// releases are ignored.
package lighting

import (
	"sort"
	"strconv"

	"github.com/tonalring/ring/cell"
	"github.com/tonalring/ring/music"
)

// Light counts presses.
type Light struct {
	Presses *cell.Value[int]
	IsOn    cell.Cell[bool]
}

// NewLight makes a Light that's off.
func NewLight() *Light {
	l := &Light{
		Presses: cell.NewComparable(0),
	}
	l.IsOn = cell.Derive[int](l.Presses, func(n int) bool {
		return 0 < n
	})
	return l
}

func (l *Light) press() {
	l.Presses.Update(func(n int) int {
		return n + 1
	})
}

func (l *Light) release() {
	l.Presses.Update(func(n int) int {
		if n <= 0 {
			return 0
		}
		return n - 1
	})
}

// System is a fixed set of lights.
type System struct {
	lights map[string]*Light
}

// NewSystem makes a System with the given light ids.
func NewSystem(ids ...string) *System {
	s := &System{
		lights: make(map[string]*Light, len(ids)),
	}
	for _, id := range ids {
		s.lights[id] = NewLight()
	}
	return s
}

// NewNoteSystem makes a System with one light for each note.
func NewNoteSystem() *System {
	return NewSystem(AllNoteLightIDs()...)
}

// Light returns the light with the given id, if any.
func (s *System) Light(id string) *Light {
	return s.lights[id]
}

// IDs lists the light ids in order.
func (s *System) IDs() []string {
	acc := make([]string, 0, len(s.lights))
	for id := range s.lights {
		acc = append(acc, id)
	}
	sort.Strings(acc)
	return acc
}

// Press presses the light.  It reports whether the light exists.
func (s *System) Press(id string) bool {
	l, have := s.lights[id]
	if !have {
		return false
	}
	l.press()
	return true
}

// Release releases the light.  It reports whether the light exists.
func (s *System) Release(id string) bool {
	l, have := s.lights[id]
	if !have {
		return false
	}
	l.release()
	return true
}

// LightIDForNote gives the id of the note's light.
func LightIDForNote(n music.Note) string {
	return "note-" + strconv.Itoa(n.ID())
}

// AllNoteLightIDs lists the ids of every note's light.
func AllNoteLightIDs() []string {
	notes := music.ChromaticNotes()
	acc := make([]string, len(notes))
	for i, n := range notes {
		acc[i] = LightIDForNote(n)
	}
	return acc
}
