package ai

import "errors"

var (
	// ErrEmbeddingFailed is returned when a remote embedding call has
	// exhausted its retries. It wraps the last observed cause.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")
)
