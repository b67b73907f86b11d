package ingest

import "errors"

var (
	// ErrReaderRequired is returned when a dataset reader is not provided.
	ErrReaderRequired = errors.New("dataset reader required")

	// ErrChunkerRequired is returned when a chunker is not provided.
	ErrChunkerRequired = errors.New("chunker required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrStoreRequired is returned when a vector store is not provided.
	ErrStoreRequired = errors.New("vector store required")

	// ErrCheckpointStoreRequired is returned when a checkpoint store is not
	// provided.
	ErrCheckpointStoreRequired = errors.New("checkpoint store required")
)
