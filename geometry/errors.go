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
	"fmt"

	"github.com/tonalring/ring/intervals"
)

// GeometryError occurs when an anchored vertex's ordinal isn't in
// its anchor target, which means the anchor's subset rule was broken.
type GeometryError struct {
	Ordinal int
	Target  intervals.Set
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("can't place ordinal %d on anchor target %s", e.Ordinal, e.Target)
}
