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

package rotation

import "time"

// Clock is a cooperative frame clock.
//
// RequestFrame asks for f to be called once, at the next frame, with
// that frame's timestamp.  Frames are the only points at which an
// animation makes progress.
type Clock interface {
	RequestFrame(f func(now time.Duration))
}

// ManualClock is a Clock that only moves when told to.  Tests and
// scripted drivers use it to get deterministic animations.
type ManualClock struct {
	now     time.Duration
	pending []func(time.Duration)
}

// NewManualClock makes a ManualClock at time zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// RequestFrame implements Clock.
func (c *ManualClock) RequestFrame(f func(now time.Duration)) {
	c.pending = append(c.pending, f)
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Pending reports the number of callbacks waiting for a frame.
func (c *ManualClock) Pending() int {
	return len(c.pending)
}

// Advance moves time forward by d and then delivers one frame.  It
// returns the number of callbacks that ran.
func (c *ManualClock) Advance(d time.Duration) int {
	c.now += d
	return c.Frame()
}

// Frame delivers one frame at the current time.  Callbacks requested
// during this frame wait for the next one.
func (c *ManualClock) Frame() int {
	fs := c.pending
	c.pending = nil
	for _, f := range fs {
		f(c.now)
	}
	return len(fs)
}

// RunFor delivers frames every step until d has passed or nothing is
// pending.
func (c *ManualClock) RunFor(d, step time.Duration) {
	if step <= 0 {
		step = time.Millisecond
	}
	end := c.now + d
	for c.now < end && 0 < len(c.pending) {
		next := step
		if end-c.now < next {
			next = end - c.now
		}
		c.Advance(next)
	}
}
