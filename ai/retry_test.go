package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oratia/talkbase/retry"
)

// flakyEmbedder fails a fixed number of times before succeeding.
type flakyEmbedder struct {
	failures int
	calls    int
	vector   []float32
}

func (f *flakyEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("upstream unavailable")
	}
	return f.vector, nil
}

func newTestRetryEmbedder(t *testing.T, inner Embedder, dim int) *RetryEmbedder {
	t.Helper()
	r, err := NewRetryEmbedder(inner,
		WithBackoff(retry.Linear(time.Millisecond)),
		WithExpectedDimension(dim),
	)
	require.NoError(t, err)
	return r
}

func TestRetryEmbedder_SucceedsOnFifthAttempt(t *testing.T) {
	inner := &flakyEmbedder{failures: 4, vector: make([]float32, 3)}
	r := newTestRetryEmbedder(t, inner, 3)

	v, err := r.EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, v, 3)
	assert.Equal(t, 5, inner.calls, "should make exactly 5 calls")
}

func TestRetryEmbedder_FailsAfterFiveAttempts(t *testing.T) {
	inner := &flakyEmbedder{failures: 100}
	r := newTestRetryEmbedder(t, inner, 3)

	_, err := r.EmbedText(context.Background(), "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmbeddingFailed)
	assert.Contains(t, err.Error(), "upstream unavailable", "should carry the last cause")
	assert.Equal(t, 5, inner.calls, "should attempt exactly 5 times")
}

func TestRetryEmbedder_MalformedVectorIsRetried(t *testing.T) {
	calls := 0
	inner := embedderFunc(func(ctx context.Context, text string) ([]float32, error) {
		calls++
		if calls < 3 {
			return make([]float32, 7), nil // wrong dimension
		}
		return make([]float32, 4), nil
	})
	r := newTestRetryEmbedder(t, inner, 4)

	v, err := r.EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, v, 4)
	assert.Equal(t, 3, calls)
}

func TestRetryEmbedder_RequiresInner(t *testing.T) {
	_, err := NewRetryEmbedder(nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestRetryEmbedder_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inner := &flakyEmbedder{failures: 100}
	r := newTestRetryEmbedder(t, inner, 3)

	_, err := r.EmbedText(ctx, "hello")
	assert.ErrorIs(t, err, context.Canceled)
}

// embedderFunc adapts a function to the Embedder interface.
type embedderFunc func(ctx context.Context, text string) ([]float32, error)

func (f embedderFunc) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return f(ctx, text)
}
