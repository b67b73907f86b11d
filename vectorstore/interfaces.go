package vectorstore

import "context"

// Vector is one indexed vector: a unique id, the embedding values and the
// metadata bundle of the chunk it was built from. Once upserted, the store
// owns it; the pipeline keeps no local copy.
type Vector struct {
	ID       string
	Values   []float32
	Metadata map[string]string
}

// Match is one nearest-neighbor result with its similarity score and the
// metadata bundle stored alongside the vector.
type Match struct {
	ID       string
	Score    float32
	Metadata map[string]string
}

// Store persists embedding vectors and supports nearest-neighbor search.
// Implementations must be thread-safe for concurrent use.
type Store interface {
	// Upsert writes vectors to the index. Upserting an existing id
	// overwrites rather than duplicates, which makes re-running ingestion
	// after a crash safe. Implementations retry transient failures and
	// return ErrUpsertFailed once the retry budget is spent.
	Upsert(ctx context.Context, vectors ...Vector) error

	// Query returns up to topK nearest vectors ranked by descending
	// similarity score. There is no retry: queries sit on a synchronous
	// request/response path, so failures wrap ErrRetrievalFailed and
	// propagate immediately.
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)

	// Close releases resources held by the store.
	Close() error
}
