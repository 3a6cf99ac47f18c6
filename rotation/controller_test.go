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

import (
	"testing"
	"time"
)

func TestAnimateTo(t *testing.T) {
	clock := NewManualClock()
	c := NewController(clock)

	var samples []float64
	c.Rotation.Subscribe(func(r float64) {
		samples = append(samples, r)
	})

	done := c.AnimateTo(12, 150*time.Millisecond)
	if c.State() != Animating {
		t.Fatalf("state %s", c.State())
	}
	if done.IsSettled() {
		t.Fatal("settled too early")
	}

	clock.Advance(0) // first frame starts the clock
	clock.Advance(75 * time.Millisecond)
	if r := c.Rotation.Get(); r != 6 {
		t.Fatalf("rotation at 75ms == %v", r)
	}

	clock.Advance(75 * time.Millisecond)
	if r := c.Rotation.Get(); r != 0 {
		t.Fatalf("rotation after landing == %v", r)
	}
	if c.State() != Idle {
		t.Fatalf("state %s", c.State())
	}
	if !done.IsSettled() || done.Err() != nil {
		t.Fatalf("settled=%v err=%v", done.IsSettled(), done.Err())
	}
	if clock.Pending() != 0 {
		t.Fatalf("%d frames still requested", clock.Pending())
	}

	// 0 (initial), 6 (at 75ms), 0 (landed); the first frame samples 0
	// which the comparable cell swallows.
	if len(samples) != 3 || samples[1] != 6 {
		t.Fatalf("samples %v", samples)
	}
}

func TestAnimateToRejectsWhileAnimating(t *testing.T) {
	clock := NewManualClock()
	c := NewController(clock)

	first := c.AnimateTo(12, 150*time.Millisecond)
	clock.Advance(0)
	clock.Advance(50 * time.Millisecond)

	second := c.AnimateTo(12, 150*time.Millisecond)
	if !second.IsSettled() || !IsConflict(second.Err()) {
		t.Fatalf("second: settled=%v err=%v", second.IsSettled(), second.Err())
	}
	if r := c.Rotation.Get(); r != 4 {
		t.Fatalf("rejection disturbed the rotation: %v", r)
	}

	clock.Advance(50 * time.Millisecond)
	if r := c.Rotation.Get(); r != 8 {
		t.Fatalf("rotation at 100ms == %v", r)
	}

	clock.Advance(50 * time.Millisecond)
	if c.Rotation.Get() != 0 || c.IsRotating.Get() {
		t.Fatalf("rotation=%v rotating=%v", c.Rotation.Get(), c.IsRotating.Get())
	}
	if first.Err() != nil || !first.IsSettled() {
		t.Fatal("first animation should have landed")
	}

	if third := c.AnimateTo(-12, 150*time.Millisecond); third.IsSettled() {
		t.Fatal("controller should accept a new animation once idle")
	}
}

func TestCompletionSettlesOnce(t *testing.T) {
	c := NewCompletion()
	calls := 0
	c.OnSettle(func(err error) { calls++ })
	if !c.Settle(nil) {
		t.Fatal("first settle refused")
	}
	if c.Settle(&Conflict{Op: "x"}) {
		t.Fatal("second settle accepted")
	}
	if c.Err() != nil {
		t.Fatal("outcome changed")
	}
	c.OnSettle(func(err error) { calls++ })
	if calls != 2 {
		t.Fatalf("calls == %d", calls)
	}
}

func TestZeroDuration(t *testing.T) {
	clock := NewManualClock()
	c := NewController(clock)
	done := c.AnimateTo(3, 0)
	clock.Frame()
	if !done.IsSettled() || c.IsRotating.Get() {
		t.Fatal("zero duration should land on the first frame")
	}
}

func TestRunFor(t *testing.T) {
	clock := NewManualClock()
	c := NewController(clock)
	done := c.AnimateTo(1, DefaultDuration)
	clock.RunFor(time.Second, 16*time.Millisecond)
	if !done.IsSettled() {
		t.Fatal("not settled")
	}
	if clock.Now() >= time.Second {
		t.Fatalf("RunFor kept going after the animation: %s", clock.Now())
	}
}
