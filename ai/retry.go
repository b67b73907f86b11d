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


package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oratia/talkbase/retry"
)

const (
	// EmbedAttempts is the number of tries before an embedding call is
	// declared failed.
	EmbedAttempts = 5

	// EmbedBackoffStep is the linear backoff step between embedding
	// attempts: attempt 1 waits one step, attempt 2 two steps, and so on.
	EmbedBackoffStep = time.Second
)

// RetryEmbedder wraps an Embedder with bounded retry and dimension
// validation. Any failure counts against the budget: transport errors,
// non-2xx responses and malformed responses (a vector of the wrong length).
// After exhausting retries it fails with ErrEmbeddingFailed carrying the
// last observed cause.
type RetryEmbedder struct {
	inner     Embedder
	attempts  int
	backoff   retry.Backoff
	dimension int
	logger    *slog.Logger
}

var _ Embedder = (*RetryEmbedder)(nil)

// RetryOption configures a RetryEmbedder.
type RetryOption func(*RetryEmbedder)

// WithAttempts overrides the retry budget.
func WithAttempts(attempts int) RetryOption {
	return func(r *RetryEmbedder) {
		r.attempts = attempts
	}
}

// WithBackoff overrides the backoff schedule.
func WithBackoff(backoff retry.Backoff) RetryOption {
	return func(r *RetryEmbedder) {
		r.backoff = backoff
	}
}

// WithExpectedDimension overrides the expected vector length.
// Zero disables the check.
func WithExpectedDimension(dim int) RetryOption {
	return func(r *RetryEmbedder) {
		r.dimension = dim
	}
}

// NewRetryEmbedder wraps inner with the standard embedding retry policy:
// EmbedAttempts attempts, linear backoff of attempt * EmbedBackoffStep.
func NewRetryEmbedder(inner Embedder, opts ...RetryOption) (*RetryEmbedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}
	r := &RetryEmbedder{
		inner:     inner,
		attempts:  EmbedAttempts,
		backoff:   retry.Linear(EmbedBackoffStep),
		dimension: Dimension,
		logger:    slog.Default().With("component", "retry-embedder"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// EmbedText embeds text, retrying failed calls until the budget is spent.
func (r *RetryEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	var vector []float32
	attempt := 0
	err := retry.Do(ctx, func() error {
		attempt++
		v, err := r.inner.EmbedText(ctx, text)
		if err != nil {
			r.logger.Warn("embedding attempt failed", "attempt", attempt, "err", err)
			return err
		}
		if r.dimension > 0 && len(v) != r.dimension {
			err := fmt.Errorf("expected %d dimensions, got %d", r.dimension, len(v))
			r.logger.Warn("embedding attempt returned malformed vector", "attempt", attempt, "err", err)
			return err
		}
		vector = v
		return nil
	}, r.attempts, r.backoff)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w after %d attempts: %w", ErrEmbeddingFailed, r.attempts, err)
	}
	return vector, nil
}
