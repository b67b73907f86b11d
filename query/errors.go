package query

import "errors"

var (
	// ErrInvalidQuestion is returned for an empty or whitespace-only question.
	ErrInvalidQuestion = errors.New("question must not be empty")

	// ErrGenerationFailed indicates the chat completion call errored.
	// There is no retry on the generation path.
	ErrGenerationFailed = errors.New("answer generation failed")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrStoreRequired is returned when a vector store is not provided.
	ErrStoreRequired = errors.New("vector store required")

	// ErrGeneratorRequired is returned when a generator is not provided.
	ErrGeneratorRequired = errors.New("generator required")
)
