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

package intervals

import "strconv"

// NotContained occurs when ShiftWithinSuperset meets an ordinal that
// the superset lacks.
type NotContained struct {
	Set      Set
	Superset Set
	Ordinal  int
}

func (e *NotContained) Error() string {
	return "ordinal " + strconv.Itoa(e.Ordinal) + " of " + e.Set.String() +
		" not contained in superset " + e.Superset.String()
}
