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

package layer

// Conflict occurs when an action is attempted while its guard is
// false.  Callers are supposed to make that impossible by only
// offering present slots.
type Conflict struct {
	Slot SlotName
}

func (e *Conflict) Error() string {
	return `slot "` + e.Slot.String() + `" is not available`
}

// UnknownSlot occurs when a slot name doesn't parse.
type UnknownSlot struct {
	Name string
}

func (e *UnknownSlot) Error() string {
	return `unknown slot "` + e.Name + `"`
}
