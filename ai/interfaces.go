package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Generator produces a chat-completion answer from a system instruction and
// a user prompt. Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate sends one chat-completion request and returns the model's raw
	// text answer. There is no retry: generation sits on a synchronous
	// request/response path with a caller waiting.
	Generate(ctx context.Context, system, user string) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Generator instances,
// ensuring they share configuration appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the chat-completion service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
