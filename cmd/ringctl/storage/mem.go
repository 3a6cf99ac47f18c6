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
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemStorage keeps records in memory.  It's good for tests and
// single-process use.
type MemStorage struct {
	sync.Mutex
	records map[string]*Record
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		records: make(map[string]*Record),
	}
}

func (s *MemStorage) Open(ctx context.Context) error {
	return nil
}

func (s *MemStorage) Close(ctx context.Context) error {
	return nil
}

func (s *MemStorage) Save(ctx context.Context, r *Record) (string, error) {
	s.Lock()
	defer s.Unlock()
	key := uuid.NewString()
	copied := *r
	copied.Key = key
	s.records[key] = &copied
	return key, nil
}

func (s *MemStorage) Load(ctx context.Context, key string) (*Record, error) {
	s.Lock()
	defer s.Unlock()
	r, have := s.records[key]
	if !have {
		return nil, NotFound
	}
	copied := *r
	return &copied, nil
}

func (s *MemStorage) List(ctx context.Context) ([]*Record, error) {
	s.Lock()
	defer s.Unlock()
	acc := make([]*Record, 0, len(s.records))
	for _, r := range s.records {
		copied := *r
		acc = append(acc, &copied)
	}
	sort.SliceStable(acc, func(i, j int) bool {
		if acc[i].Saved.Equal(acc[j].Saved) {
			return acc[i].Key < acc[j].Key
		}
		return acc[i].Saved.Before(acc[j].Saved)
	})
	return acc, nil
}

func (s *MemStorage) Delete(ctx context.Context, key string) error {
	s.Lock()
	defer s.Unlock()
	if _, have := s.records[key]; !have {
		return NotFound
	}
	delete(s.records, key)
	return nil
}
