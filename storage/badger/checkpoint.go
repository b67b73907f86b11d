// Copyright 2026 Oratia Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package badger implements storage.CheckpointStore on BadgerDB, for
// deployments that prefer a local key-value store over a flat file.
package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/oratia/talkbase/core"
	"github.com/oratia/talkbase/storage"
)

const keyPrefix = "checkpoint:"

// CheckpointStore implements storage.CheckpointStore for BadgerDB.
// Multiple named checkpoints can share one backend.
type CheckpointStore struct {
	backend *Backend
	key     []byte
}

var _ storage.CheckpointStore = (*CheckpointStore)(nil)

// NewCheckpointStore creates a checkpoint store under the given name.
func NewCheckpointStore(backend *Backend, name string) *CheckpointStore {
	return &CheckpointStore{
		backend: backend,
		key:     []byte(keyPrefix + name),
	}
}

// Save persists the checkpoint, overwriting any previous value. The stored
// copy is stamped with the save time; the caller's value is left untouched.
func (s *CheckpointStore) Save(ctx context.Context, checkpoint *core.Checkpoint) error {
	if checkpoint.Row < 0 {
		return core.ErrInvalidCheckpoint
	}
	stamped := *checkpoint
	stamped.UpdatedAt = time.Now().UTC()
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(s.key, storage.MarshalCheckpoint(&stamped)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Load retrieves the checkpoint.
// Returns nil, nil if no checkpoint exists.
func (s *CheckpointStore) Load(ctx context.Context) (*core.Checkpoint, error) {
	var checkpoint *core.Checkpoint
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(s.key)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			checkpoint, unmarshalErr = storage.UnmarshalCheckpoint(val)
			return unmarshalErr
		})
	}, false)

	return checkpoint, err
}

// Close is a no-op; the shared backend owns the database handle.
func (s *CheckpointStore) Close() error {
	return nil
}
