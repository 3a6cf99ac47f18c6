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

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/tonalring/ring/stack"
)

func TestMem(t *testing.T) {
	var (
		ctx         = context.Background()
		s   Storage = NewMemStorage()
		now         = time.Now()
	)

	k1, err := s.Save(ctx, &Record{Saved: now.Add(time.Second), Snapshot: &stack.Snapshot{MaxID: 1}})
	if err != nil {
		t.Fatal(err)
	}
	k2, err := s.Save(ctx, &Record{Saved: now, Snapshot: &stack.Snapshot{MaxID: 2}})
	if err != nil {
		t.Fatal(err)
	}

	rs, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 2 || rs[0].Key != k2 || rs[1].Key != k1 {
		t.Fatalf("listed %#v", rs)
	}

	r, err := s.Load(ctx, k1)
	if err != nil {
		t.Fatal(err)
	}
	if r.Snapshot.MaxID != 1 {
		t.Fatalf("loaded %#v", r.Snapshot)
	}

	if err = s.Delete(ctx, k1); err != nil {
		t.Fatal(err)
	}
	if _, err = s.Load(ctx, k1); err != NotFound {
		t.Fatalf("wanted NotFound, not %v", err)
	}
}
