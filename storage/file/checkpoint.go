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


// Package file implements storage.CheckpointStore as a single text file
// holding the last-completed row index.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/oratia/talkbase/core"
	"github.com/oratia/talkbase/storage"
)

// CheckpointStore persists the checkpoint as a decimal integer in a text
// file. Writes go through a temp file and rename so a crash mid-write never
// leaves a truncated checkpoint behind.
type CheckpointStore struct {
	path string
}

var _ storage.CheckpointStore = (*CheckpointStore)(nil)

// NewCheckpointStore creates a store writing to path.
// The file need not exist yet.
func NewCheckpointStore(path string) (*CheckpointStore, error) {
	if path == "" {
		return nil, fmt.Errorf("checkpoint path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &CheckpointStore{path: path}, nil
}

// Save persists the checkpoint, overwriting any previous value.
// The save time is recoverable from the file's mtime; the caller's
// value is left untouched.
func (s *CheckpointStore) Save(ctx context.Context, checkpoint *core.Checkpoint) error {
	if checkpoint.Row < 0 {
		return core.ErrInvalidCheckpoint
	}

	tmp := s.path + ".tmp"
	data := strconv.FormatInt(checkpoint.Row, 10) + "\n"
	if err := os.WriteFile(tmp, []byte(data), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load retrieves the current checkpoint. Returns nil, nil if the file does
// not exist.
func (s *CheckpointStore) Load(ctx context.Context) (*core.Checkpoint, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	row, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", storage.ErrCorruptCheckpoint, strings.TrimSpace(string(data)))
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return nil, err
	}
	return &core.Checkpoint{Row: row, UpdatedAt: info.ModTime().UTC()}, nil
}

// Close is a no-op; nothing is held open between operations.
func (s *CheckpointStore) Close() error {
	return nil
}
