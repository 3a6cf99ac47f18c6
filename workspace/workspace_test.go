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

package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonalring/ring/intervals"
	"github.com/tonalring/ring/layer"
	"github.com/tonalring/ring/music"
	"github.com/tonalring/ring/rotation"
	"github.com/tonalring/ring/stack"
)

func newWorkspace(t *testing.T, cfg Config) *Workspace {
	t.Helper()
	w, err := New(cfg, rotation.NewManualClock())
	require.NoError(t, err)
	return w
}

func structures(w *Workspace) []*stack.Structure {
	return w.Collection.Structures.Get()
}

func TestDefault(t *testing.T) {
	w := newWorkspace(t, DefaultConfig())
	ss := structures(w)
	require.Len(t, ss, 2)
	assert.Equal(t, 2741, ss[0].IntervalSet.Get().Binary())
	assert.Equal(t, 145, ss[1].IntervalSet.Get().Binary())
	assert.Same(t, ss[1], w.Collection.Active.Get())

	all := w.AllLayers.Get()
	require.Len(t, all, 3)
	assert.Equal(t, layer.KeyboardKind, all[0].Kind())

	targets := w.TargetLayers.Get()
	require.Len(t, targets, 1)
	assert.Same(t, ss[1].Controller(), w.UnifiedController.Get())

	w.ActiveLayer.Set(nil)
	assert.Empty(t, w.TargetLayers.Get())
	for _, n := range layer.SlotNames() {
		assert.False(t, w.UnifiedController.Get().Has(n), n.String())
	}
	assert.Error(t, w.Invoke(layer.Show))
}

func TestBadConfig(t *testing.T) {
	_, err := New(Config{Structures: []int{4096}}, rotation.NewManualClock())
	assert.Error(t, err)
}

func TestMulti(t *testing.T) {
	w := newWorkspace(t, DefaultConfig())
	ss := structures(w)
	w.EditingMode.Set(Multi)
	assert.Empty(t, w.TargetLayers.Get())

	w.Keyboard.Data().Checked.Set(true)
	ss[0].Data().Checked.Set(true)
	require.Len(t, w.TargetLayers.Get(), 2)

	u := w.UnifiedController.Get()
	assert.True(t, u.Has(layer.Hide))
	assert.True(t, u.Has(layer.RotateCw))
	assert.False(t, u.Has(layer.Clear), "the keyboard can't clear")
	assert.False(t, u.Has(layer.SetAnchor))

	assert.True(t, w.UnifiedData.Visible.Get())
	require.NoError(t, w.Invoke(layer.Hide))
	assert.False(t, w.Keyboard.Data().Visible.Get())
	assert.False(t, ss[0].Data().Visible.Get())
	assert.True(t, ss[1].Data().Visible.Get())
	assert.False(t, w.UnifiedData.Visible.Get())

	var conflict *layer.Conflict
	assert.ErrorAs(t, w.Invoke(layer.Clear), &conflict)
}

func TestUnifiedPlayStop(t *testing.T) {
	w := newWorkspace(t, DefaultConfig())
	ss := structures(w)
	w.EditingMode.Set(Multi)
	ss[0].Data().Checked.Set(true)
	ss[1].Data().Checked.Set(true)

	require.NoError(t, w.Invoke(layer.Play))
	assert.True(t, w.UnifiedData.Playing.Get())
	assert.Equal(t, w.Pitches(ss[1]), w.Sound.Last)

	require.NoError(t, w.Invoke(layer.Stop))
	assert.False(t, ss[0].Data().Playing.Get())
	assert.False(t, ss[1].Data().Playing.Get())
	for _, id := range w.Lights.IDs() {
		assert.False(t, w.Lights.Light(id).IsOn.Get(), id)
	}
}

func TestStopClearsEveryPlaying(t *testing.T) {
	w := newWorkspace(t, DefaultConfig())
	ss := structures(w)

	require.True(t, ss[0].Controller().Invoke(layer.Play))
	require.True(t, ss[1].Controller().Invoke(layer.Play))
	assert.True(t, ss[0].Data().Playing.Get())

	require.True(t, ss[1].Controller().Invoke(layer.Stop))
	for _, id := range w.Lights.IDs() {
		assert.False(t, w.Lights.Light(id).IsOn.Get(), id)
	}
	for _, s := range ss {
		assert.False(t, s.Data().Playing.Get(), s.String())
	}
}

func TestPlayStructure(t *testing.T) {
	cfg := DefaultConfig()
	w := newWorkspace(t, cfg)
	top := structures(w)[1]

	ps := w.PlayStructure(top)
	assert.Equal(t, []string{"c/4", "e/4", "g/4"}, music.SlashNotation(ps))

	w.Keyboard.LowestNoteOrdinal.Set(5)
	ps = w.PlayStructure(top)
	assert.Equal(t, []string{"g/4", "c/5", "e/5"}, music.SlashNotation(ps))
	assert.True(t, w.Lights.Light("note-7").IsOn.Get())
	assert.True(t, w.Lights.Light("note-0").IsOn.Get())
	assert.False(t, w.Lights.Light("note-2").IsOn.Get())

	w.Keyboard.TonalCenter.Set(2)
	w.Keyboard.LowestNoteOrdinal.Set(0)
	ps = w.PlayStructure(top)
	assert.Equal(t, []string{"d/4", "f#/4", "a/4"}, music.SlashNotation(ps))
	assert.False(t, w.Lights.Light("note-7").IsOn.Get(), "the previous chord ended")
}

func TestToggleIntervalMulti(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Structures = []int{
		intervals.FromOrdinals(5).Binary(),
		intervals.FromOrdinals(0, 5).Binary(),
		intervals.FromOrdinals(0).Binary(),
	}
	w := newWorkspace(t, cfg)
	ss := structures(w)
	w.EditingMode.Set(Multi)
	for _, s := range ss {
		s.Data().Checked.Set(true)
	}

	w.ToggleInterval(5)
	for _, s := range ss {
		assert.True(t, s.IntervalSet.Get().ContainsOrdinal(5), s.String())
	}

	ss[0].Data().Visible.Set(false)
	w.ToggleInterval(5)
	assert.True(t, ss[0].IntervalSet.Get().ContainsOrdinal(5))
	assert.False(t, ss[1].IntervalSet.Get().ContainsOrdinal(5))
	assert.False(t, ss[2].IntervalSet.Get().ContainsOrdinal(5))
}

func TestMidiNotes(t *testing.T) {
	w := newWorkspace(t, DefaultConfig())
	assert.True(t, w.Sound.HandleNoteOn(69))
	assert.True(t, w.Lights.Light("note-9").IsOn.Get())
	assert.True(t, w.Sound.HandleNoteOff(69))
	assert.False(t, w.Lights.Light("note-9").IsOn.Get())
}

func TestParseEditingMode(t *testing.T) {
	m, err := ParseEditingMode("Multi")
	require.NoError(t, err)
	assert.Equal(t, Multi, m)
	_, err = ParseEditingMode("double")
	assert.Error(t, err)
}
