package openai

import "errors"

// ErrNoEmbedding is returned when the embedding API answers successfully but
// carries no embedding data. Treated as a failed attempt, never as an empty
// vector.
var ErrNoEmbedding = errors.New("no embedding returned")
