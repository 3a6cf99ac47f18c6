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

import "errors"

// Conflict occurs when an operation can't run because another one is
// still in progress.  For a Controller, that means AnimateTo was
// called while Animating.  Callers treat it as a no-op.
type Conflict struct {
	Op string
}

func (e *Conflict) Error() string {
	return e.Op + " rejected: animation already in progress"
}

// IsConflict reports whether err is (or wraps) a *Conflict.
func IsConflict(err error) bool {
	var c *Conflict
	return errors.As(err, &c)
}
