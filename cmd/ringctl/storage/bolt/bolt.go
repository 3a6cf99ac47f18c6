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
	"encoding/json"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/tonalring/ring/cmd/ringctl/storage"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

// Bucket holds the snapshots, keyed by UUID.
var Bucket = []byte("snapshots")

var NotOpen = errors.New("storage not open")

func JS(x interface{}) string {
	js, err := json.Marshal(&x)
	if err != nil {
		panic(err)
	}
	return string(js)
}

// Storage keeps snapshots in a BoltDB file.
type Storage struct {
	Debug    bool
	filename string
	db       *bbolt.DB
}

func NewStorage(filename string) (*Storage, error) {
	return &Storage{
		filename: filename,
	}, nil
}

func (s *Storage) Open(ctx context.Context) error {
	opts := &bbolt.Options{
		Timeout: time.Second,
	}

	db, err := bbolt.Open(s.filename, 0644, opts)
	if err != nil {
		return err
	}
	s.db = db

	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(Bucket)
		return err
	})
}

func (s *Storage) Close(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Storage) logf(format string, args ...interface{}) {
	if s.Debug {
		log.Printf("BoltDB Storage."+format, args...)
	}
}

func (s *Storage) Save(ctx context.Context, r *storage.Record) (string, error) {
	if s.db == nil {
		return "", NotOpen
	}
	key := uuid.NewString()

	// The key is the bucket key, so don't store it twice.
	copied := *r
	copied.Key = ""
	js, err := json.Marshal(&copied)
	if err != nil {
		return "", err
	}

	s.logf("Save %s %s", key, js)

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(Bucket).Put([]byte(key), js)
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *Storage) Load(ctx context.Context, key string) (*storage.Record, error) {
	if s.db == nil {
		return nil, NotOpen
	}
	s.logf("Load %s", key)
	var r *storage.Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		bs := tx.Bucket(Bucket).Get([]byte(key))
		if bs == nil {
			return storage.NotFound
		}
		var err error
		r, err = decode(key, bs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func decode(key string, bs []byte) (*storage.Record, error) {
	var r storage.Record
	if err := json.Unmarshal(bs, &r); err != nil {
		return nil, err
	}
	r.Key = key
	return &r, nil
}

func (s *Storage) List(ctx context.Context) ([]*storage.Record, error) {
	if s.db == nil {
		return nil, NotOpen
	}
	acc := make([]*storage.Record, 0, 32)
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(Bucket).Cursor()
		for k, bs := c.First(); k != nil; k, bs = c.Next() {
			r, err := decode(string(k), bs)
			if err != nil {
				return err
			}
			acc = append(acc, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Keys are random, so the cursor's order means nothing.
	sort.SliceStable(acc, func(i, j int) bool {
		return acc[i].Saved.Before(acc[j].Saved)
	})

	s.logf("List found %d snapshots", len(acc))

	return acc, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if s.db == nil {
		return NotOpen
	}
	s.logf("Delete %s", key)
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(Bucket)
		if b.Get([]byte(key)) == nil {
			return storage.NotFound
		}
		return b.Delete([]byte(key))
	})
}
