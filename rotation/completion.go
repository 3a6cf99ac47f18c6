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

// Completion is a single pending outcome that settles exactly once,
// either with nil (success) or with an error (rejection).
type Completion struct {
	settled   bool
	err       error
	callbacks []func(error)
}

// NewCompletion makes an unsettled Completion.
func NewCompletion() *Completion {
	return &Completion{}
}

// Settled makes a Completion that has already settled with err.
func Settled(err error) *Completion {
	c := NewCompletion()
	c.Settle(err)
	return c
}

// Settle records the outcome and runs any registered callbacks.  Only
// the first call has any effect; it returns false otherwise.
func (c *Completion) Settle(err error) bool {
	if c.settled {
		return false
	}
	c.settled = true
	c.err = err
	callbacks := c.callbacks
	c.callbacks = nil
	for _, f := range callbacks {
		f(err)
	}
	return true
}

// IsSettled reports whether the outcome is known.
func (c *Completion) IsSettled() bool {
	return c.settled
}

// Err returns the outcome, which is nil before settling.
func (c *Completion) Err() error {
	return c.err
}

// OnSettle registers f to receive the outcome.  If the Completion has
// already settled, f runs right away.
func (c *Completion) OnSettle(f func(error)) {
	if c.settled {
		f(c.err)
		return
	}
	c.callbacks = append(c.callbacks, f)
}
