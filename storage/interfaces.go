package storage

import (
	"context"

	"github.com/oratia/talkbase/core"
)

// CheckpointStore persists ingestion progress for crash recovery.
// Implementations must be thread-safe and support concurrent access.
type CheckpointStore interface {
	// Save persists the checkpoint, overwriting any previous value.
	// The stored copy carries the save time; the caller's value is
	// not modified.
	Save(ctx context.Context, checkpoint *core.Checkpoint) error

	// Load retrieves the current checkpoint.
	// Returns nil, nil if no checkpoint exists.
	Load(ctx context.Context) (*core.Checkpoint, error)

	// Close releases resources held by the store.
	Close() error
}
