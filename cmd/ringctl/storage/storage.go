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

// Package storage describes where ringctl keeps stack snapshots.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/tonalring/ring/stack"
)

// NotFound is returned by Load and Delete for an unknown key.
var NotFound = errors.New("snapshot not found")

// Record is a stored snapshot.
type Record struct {
	// Key is assigned by Save.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	Saved time.Time `json:"saved" yaml:"saved"`

	// Note is an optional label.
	Note string `json:"note,omitempty" yaml:"note,omitempty"`

	Snapshot *stack.Snapshot `json:"snapshot" yaml:"snapshot"`
}

// Storage is a persistence interface for snapshots.
type Storage interface {
	Open(ctx context.Context) error

	Close(ctx context.Context) error

	// Save stores the record under a new key, which is returned.
	Save(ctx context.Context, r *Record) (string, error)

	Load(ctx context.Context, key string) (*Record, error)

	// List returns every record, oldest first.
	List(ctx context.Context) ([]*Record, error)

	Delete(ctx context.Context, key string) error
}
