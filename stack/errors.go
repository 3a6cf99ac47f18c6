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

package stack

import (
	"errors"
	"strconv"
)

var (
	// IDExists is returned when an explicit ID is already in use.
	IDExists = errors.New("structure id exists")

	// NotFound is returned for an ID that isn't in the Collection.
	NotFound = errors.New("structure not found")
)

// BadOrder occurs when Reorder is given something other than a
// permutation of the current IDs.
type BadOrder struct {
	Msg string
}

func (e *BadOrder) Error() string {
	return "bad order: " + e.Msg
}

// BadSnapshot occurs when a Snapshot can't be restored.
type BadSnapshot struct {
	ID  ID
	Msg string
}

func (e *BadSnapshot) Error() string {
	return "bad snapshot at structure " + strconv.Itoa(int(e.ID)) + ": " + e.Msg
}
