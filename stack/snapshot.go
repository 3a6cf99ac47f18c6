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

import "github.com/tonalring/ring/intervals"

// Snapshot is a plain-data copy of a Collection, for an undo log or
// for storage.
type Snapshot struct {
	MaxID      ID                  `json:"maxId" yaml:"maxId"`
	Active     ID                  `json:"active,omitempty" yaml:"active,omitempty"`
	Structures []StructureSnapshot `json:"structures" yaml:"structures"`
}

// StructureSnapshot is one structure in a Snapshot.
type StructureSnapshot struct {
	ID      ID   `json:"id" yaml:"id"`
	Binary  int  `json:"binary" yaml:"binary"`
	Visible bool `json:"visible" yaml:"visible"`
	Checked bool `json:"checked,omitempty" yaml:"checked,omitempty"`

	// AnchorTarget must be the structure directly below, if any.
	AnchorTarget ID `json:"anchorTarget,omitempty" yaml:"anchorTarget,omitempty"`
}

// Snapshot captures the current state.
func (c *Collection) Snapshot() *Snapshot {
	ss := c.list.Get()
	snap := &Snapshot{
		MaxID:      c.maxID,
		Structures: make([]StructureSnapshot, len(ss)),
	}
	for i, s := range ss {
		snap.Structures[i] = StructureSnapshot{
			ID:           s.ID,
			Binary:       s.IntervalSet.Get().Binary(),
			Visible:      s.data.Visible.Get(),
			Checked:      s.data.Checked.Get(),
			AnchorTarget: s.anchorTarget.Get(),
		}
		if s.data.Active.Get() {
			snap.Active = s.ID
		}
	}
	return snap
}

// Restore replaces the whole stack with the one in the snapshot.  The
// structures are new, so cells of the old ones don't follow along.
//
// If the snapshot is bad, nothing changes.
func (c *Collection) Restore(snap *Snapshot) error {
	seen := make(map[ID]bool, len(snap.Structures))
	var below StructureSnapshot
	for _, x := range snap.Structures {
		switch {
		case x.ID <= NoID:
			return &BadSnapshot{ID: x.ID, Msg: "bad id"}
		case seen[x.ID]:
			return &BadSnapshot{ID: x.ID, Msg: "duplicate id"}
		case snap.MaxID < x.ID:
			return &BadSnapshot{ID: x.ID, Msg: "id exceeds maxId"}
		}
		if x.AnchorTarget != NoID {
			if msg := badAnchor(x, below); msg != "" {
				return &BadSnapshot{ID: x.ID, Msg: msg}
			}
		}
		seen[x.ID] = true
		below = x
	}
	if snap.Active != NoID && !seen[snap.Active] {
		return &BadSnapshot{ID: snap.Active, Msg: "active structure missing"}
	}

	for _, s := range c.list.Get() {
		s.data.Active.Set(false)
	}

	c.logf("restore %d structures", len(snap.Structures))
	c.arena = make(map[ID]*Structure, len(snap.Structures))
	c.maxID = snap.MaxID
	next := make([]*Structure, len(snap.Structures))
	for i, x := range snap.Structures {
		s := newStructure(c, x.ID, x.Binary)
		s.data.Visible.Set(x.Visible)
		s.data.Checked.Set(x.Checked)
		c.arena[x.ID] = s
		next[i] = s
	}
	c.list.Set(next)

	// The new order cleared every anchor, so put them back.
	for _, x := range snap.Structures {
		if x.AnchorTarget == NoID {
			continue
		}
		s, target := c.arena[x.ID], c.arena[x.AnchorTarget]
		s.anchorTarget.Set(target.ID)
		target.anchorSource.Set(s.ID)
	}
	if s := c.arena[snap.Active]; s != nil {
		s.data.Active.Set(true)
	}
	return nil
}

// badAnchor checks an anchor against the same conditions that the
// setAnchor slot requires.
func badAnchor(x, below StructureSnapshot) string {
	var (
		is     = intervals.FromBinary(x.Binary)
		target = intervals.FromBinary(below.Binary)
	)
	switch {
	case below.ID == NoID || x.AnchorTarget != below.ID:
		return "anchor target isn't directly below"
	case below.AnchorTarget != NoID:
		return "anchor target is itself anchored"
	case target.Count() < 3:
		return "anchor target has fewer than 3 intervals"
	case !target.Contains(is):
		return "anchor target doesn't contain the structure"
	}
	return ""
}
