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

package main

import (
	"bytes"
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonalring/ring/cmd/ringctl/storage"
)

type harness struct {
	t     *testing.T
	store *storage.MemStorage
}

func newHarness(t *testing.T) *harness {
	return &harness{
		t:     t,
		store: storage.NewMemStorage(),
	}
}

func (h *harness) run(args ...string) (string, error) {
	a := &app{
		OpenStorage: func(ctx context.Context, cfg *Config) (storage.Storage, error) {
			return h.store, nil
		},
	}
	root := newRootCommand(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func TestDemo(t *testing.T) {
	out := newHarness(t).mustRun("demo")
	assert.Contains(t, out, "# anchored")
	assert.Contains(t, out, "anchored to 1")
	assert.Contains(t, out, "[2 5 9]")
	assert.Contains(t, out, "[4 7 11]")
	assert.Contains(t, out, "# playing")
	assert.Contains(t, out, "maxId: 2")
}

func TestSaveLoadList(t *testing.T) {
	h := newHarness(t)
	key := strings.TrimSpace(h.mustRun("save", "--note", "triads", "--structures", "145,145"))
	require.NotEmpty(t, key)

	out := h.mustRun("list")
	assert.Contains(t, out, key)
	assert.Contains(t, out, "triads")

	out = h.mustRun("load", key)
	assert.Contains(t, out, "# triads")
	assert.Equal(t, 2, strings.Count(out, "binary: 145"))

	h.mustRun("delete", key)
	_, err := h.run("load", key)
	assert.ErrorIs(t, err, storage.NotFound)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.js")
	require.NoError(t, ioutil.WriteFile(script, []byte(`
_.log("hello");
var id = _.add(0);
_.activate(id);
_.toggle(0);
_.toggle(7);
return {id: id, pitches: _.pitches(id)};
`), 0644))

	h := newHarness(t)
	out := h.mustRun("run", script, "--save", "fifth")
	assert.Contains(t, out, `"hello"`)
	assert.Contains(t, out, `{"id":3,"pitches":["c/4","g/4"]}`)
	assert.Contains(t, out, "saved ")

	rs, err := h.store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Len(t, rs[0].Snapshot.Structures, 3)

	bad := filepath.Join(dir, "bad.js")
	require.NoError(t, ioutil.WriteFile(bad, []byte(`_.invoke("dance");`), 0644))
	_, err = h.run("run", bad)
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	h := newHarness(t)
	for format, want := range map[string]string{
		"dot":     "digraph G {",
		"mermaid": "graph TB",
		"svg":     "<svg",
		"md":      "145",
		"html":    "<html",
	} {
		out := h.mustRun("render", "-f", format)
		assert.Contains(t, out, want, format)
	}

	_, err := h.run("render", "-f", "gif")
	assert.Error(t, err)

	filename := filepath.Join(t.TempDir(), "stack.dot")
	h.mustRun("render", "-o", filename)
	bs, err := ioutil.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(bs), "digraph G {")
}

func TestAnimate(t *testing.T) {
	out := newHarness(t).mustRun("animate", "--animation-ms", "30", "--interval", "2ms")
	assert.Contains(t, out, "[1 5 8]")

	out = newHarness(t).mustRun("animate", "--keyboard", "-n", "-2", "--animation-ms", "30", "--interval", "2ms")
	assert.Contains(t, out, "tonal center D")
}

func TestBadStructures(t *testing.T) {
	_, err := newHarness(t).run("demo", "--structures", "4096")
	assert.Error(t, err)
}
