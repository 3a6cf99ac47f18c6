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

package bolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tonalring/ring/cmd/ringctl/storage"
	"github.com/tonalring/ring/stack"
)

func TestImpl(t *testing.T) {
	// Just confirm that this code compiles.
	var _ storage.Storage = &Storage{}
}

func TestBasics(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "storage.db")

	s, err := NewStorage(filename)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := s.Save(ctx, &storage.Record{}); err != NotOpen {
		t.Fatalf("wanted NotOpen, not %v", err)
	}

	if err := s.Open(ctx); err != nil {
		t.Fatal(err)
	}

	defer func() {
		if err := s.Close(ctx); err != nil {
			t.Fatal(err)
		}
	}()

	then := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	first := &storage.Record{
		Saved: then,
		Note:  "major",
		Snapshot: &stack.Snapshot{
			MaxID:  1,
			Active: 1,
			Structures: []stack.StructureSnapshot{
				{ID: 1, Binary: 2741, Visible: true},
			},
		},
	}
	second := &storage.Record{
		Saved: then.Add(time.Minute),
		Snapshot: &stack.Snapshot{
			MaxID: 2,
			Structures: []stack.StructureSnapshot{
				{ID: 1, Binary: 2741, Visible: true},
				{ID: 2, Binary: 145, Visible: true, AnchorTarget: 1},
			},
		},
	}

	// Save in reverse order to check List's sorting.
	k2, err := s.Save(ctx, second)
	if err != nil {
		t.Fatal(err)
	}
	k1, err := s.Save(ctx, first)
	if err != nil {
		t.Fatal(err)
	}
	if k1 == k2 {
		t.Fatal("keys should differ")
	}

	r, err := s.Load(ctx, k2)
	if err != nil {
		t.Fatal(err)
	}
	if r.Key != k2 {
		t.Fatalf("key %s", r.Key)
	}
	if got, want := JS(r.Snapshot), JS(second.Snapshot); got != want {
		t.Fatalf("got %s, wanted %s", got, want)
	}

	rs, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 2 || rs[0].Key != k1 || rs[1].Key != k2 {
		t.Fatalf("listed %s", JS(rs))
	}

	if err := s.Delete(ctx, k1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx, k1); err != storage.NotFound {
		t.Fatalf("wanted NotFound, not %v", err)
	}
	if err := s.Delete(ctx, k1); err != storage.NotFound {
		t.Fatalf("wanted NotFound, not %v", err)
	}
}

func TestReopen(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "storage.db")
	ctx := context.Background()

	s, _ := NewStorage(filename)
	if err := s.Open(ctx); err != nil {
		t.Fatal(err)
	}
	key, err := s.Save(ctx, &storage.Record{
		Snapshot: &stack.Snapshot{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatal(err)
	}

	s, _ = NewStorage(filename)
	if err := s.Open(ctx); err != nil {
		t.Fatal(err)
	}
	defer s.Close(ctx)
	if _, err := s.Load(ctx, key); err != nil {
		t.Fatal(err)
	}
}
