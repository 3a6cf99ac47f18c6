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

// Package rotation animates a rotation value on an external frame
// clock.
//
// A Controller is either Idle or Animating.  AnimateTo moves it from
// Idle to Animating and returns a Completion, which settles once the
// animation lands.  While Animating, every frame samples
//
//	rotation(t) = (target / duration) * elapsed
//
// with elapsed measured from the first frame.  When elapsed reaches
// the duration, the rotation snaps back to 0 (not to the target: the
// animation is a transient gesture) and the controller is Idle again.
//
// There is no cancellation.  AnimateTo while Animating is rejected
// immediately and leaves the running animation alone.
package rotation

import (
	"log"
	"time"

	"github.com/tonalring/ring/cell"
)

// DefaultDuration is the duration of a non-interactive rotation.
const DefaultDuration = 150 * time.Millisecond

// State is the state of a Controller.
type State int

const (
	Idle      State = iota // Not rotating; rotation is 0.
	Animating              // An AnimateTo is in flight.
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	default:
		return "unknown"
	}
}

// Controller holds the rotation of one thing on screen.
type Controller struct {
	// Rotation is the current rotation in semitones: 1 is a half
	// step clockwise, 12 is a full revolution.
	Rotation *cell.Value[float64]

	// CurrentDetent is where the rotation would land if the user
	// let go now.  AnimateTo doesn't touch it; an interactive drag
	// does.
	CurrentDetent *cell.Value[float64]

	// IsRotating is true while an animation (or a drag) is in
	// progress.
	IsRotating *cell.Value[bool]

	Debug bool

	clock Clock
}

// NewController makes an Idle Controller driven by the given clock.
func NewController(clock Clock) *Controller {
	return &Controller{
		Rotation:      cell.NewComparable(0.0),
		CurrentDetent: cell.NewComparable(0.0),
		IsRotating:    cell.NewComparable(false),
		clock:         clock,
	}
}

// State reports Idle or Animating.
func (c *Controller) State() State {
	if c.IsRotating.Get() {
		return Animating
	}
	return Idle
}

// Reset puts everything back to rest.
func (c *Controller) Reset() {
	c.IsRotating.Set(false)
	c.Rotation.Set(0)
	c.CurrentDetent.Set(0)
}

func (c *Controller) logf(format string, args ...interface{}) {
	if c.Debug {
		log.Printf("rotation.Controller "+format, args...)
	}
}

// AnimateTo rotates from 0 toward target over the given duration and
// then snaps back to 0.
//
// The returned Completion settles with nil when the animation lands.
// If an animation is already running, the Completion is already
// settled with a *Conflict, and nothing else changes.
func (c *Controller) AnimateTo(target float64, duration time.Duration) *Completion {
	if c.IsRotating.Get() {
		c.logf("AnimateTo %v rejected", target)
		return Settled(&Conflict{
			Op: "AnimateTo",
		})
	}

	done := NewCompletion()
	c.IsRotating.Set(true)

	var (
		velocity = 0.0
		started  = false
		start    time.Duration
	)
	if 0 < duration {
		velocity = target / milliseconds(duration)
	}

	var step func(now time.Duration)
	step = func(now time.Duration) {
		if !started {
			start = now
			started = true
		}
		elapsed := now - start
		if duration <= elapsed {
			c.logf("AnimateTo %v landed after %s", target, elapsed)
			c.IsRotating.Set(false)
			c.Rotation.Set(0)
			done.Settle(nil)
			return
		}
		c.Rotation.Set(velocity * milliseconds(elapsed))
		c.clock.RequestFrame(step)
	}

	c.clock.RequestFrame(step)

	return done
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
