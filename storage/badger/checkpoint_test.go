package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oratia/talkbase/core"
)

func setupBackend(t *testing.T) *Backend {
	t.Helper()
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return backend
}

func TestCheckpointStore_LoadMissing(t *testing.T) {
	s := NewCheckpointStore(setupBackend(t), "ingest")

	cp, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cp)
}

func TestCheckpointStore_SaveAndLoad(t *testing.T) {
	s := NewCheckpointStore(setupBackend(t), "ingest")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &core.Checkpoint{Row: 10}))

	cp, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.Equal(t, int64(10), cp.Row)
	assert.False(t, cp.UpdatedAt.IsZero())
}

func TestCheckpointStore_Overwrite(t *testing.T) {
	s := NewCheckpointStore(setupBackend(t), "ingest")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &core.Checkpoint{Row: 5}))
	require.NoError(t, s.Save(ctx, &core.Checkpoint{Row: 10}))

	cp, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), cp.Row)
}

func TestCheckpointStore_SaveDoesNotMutateArgument(t *testing.T) {
	s := NewCheckpointStore(setupBackend(t), "ingest")

	cp := &core.Checkpoint{Row: 10}
	require.NoError(t, s.Save(context.Background(), cp))

	assert.True(t, cp.UpdatedAt.IsZero(), "caller's checkpoint must not be stamped")

	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.False(t, loaded.UpdatedAt.IsZero(), "stored copy carries the save time")
}

func TestCheckpointStore_NamesAreIndependent(t *testing.T) {
	backend := setupBackend(t)
	a := NewCheckpointStore(backend, "ingest")
	b := NewCheckpointStore(backend, "other")
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, &core.Checkpoint{Row: 7}))

	cp, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, cp, "checkpoints are scoped per name")
}
