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

package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/oratia/talkbase/ai"
	"github.com/oratia/talkbase/core"
	"github.com/oratia/talkbase/vectorstore"
)

// DefaultTopK is the number of nearest chunks retrieved per question.
const DefaultTopK = 15

// Engine answers questions over the indexed transcripts: it embeds the
// question, retrieves the nearest chunks and asks the chat model to answer
// from them. Engines are stateless and safe to share across requests.
type Engine struct {
	embedder  ai.Embedder
	store     vectorstore.Store
	generator ai.Generator
	topK      int
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTopK sets how many nearest chunks are retrieved per question.
// Default is DefaultTopK. Values below 1 keep the default.
func WithTopK(topK int) Option {
	return func(e *Engine) {
		if topK >= 1 {
			e.topK = topK
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger.With("component", "query")
	}
}

// NewEngine creates a query engine over the given embedder, vector store and
// generator.
func NewEngine(embedder ai.Embedder, store vectorstore.Store, generator ai.Generator, opts ...Option) (*Engine, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	e := &Engine{
		embedder:  embedder,
		store:     store,
		generator: generator,
		topK:      DefaultTopK,
		logger:    slog.Default().With("component", "query"),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Answer is the result of one question: the model's raw text answer, the
// retrieved context it was grounded on and the exact prompts sent.
type Answer struct {
	Response string
	Context  []core.ChunkMatch
	Prompt   Prompt
}

// Ask answers one question. With zero retrieved matches it short-circuits to
// FallbackAnswer without calling the chat model. Retrieval and generation
// failures are terminal for the request; there is no retry on this path.
func (e *Engine) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrInvalidQuestion
	}

	embedding, err := e.embedder.EmbedText(ctx, question)
	if err != nil {
		e.logger.Error("error embedding question", "err", err)
		return nil, err
	}

	matches, err := e.store.Query(ctx, embedding, e.topK)
	if err != nil {
		e.logger.Error("error querying vector store", "err", err)
		return nil, err
	}

	if len(matches) == 0 {
		e.logger.Info("no matches for question, returning fallback")
		return &Answer{
			Response: FallbackAnswer,
			Context:  []core.ChunkMatch{},
		}, nil
	}

	chunkContext := make([]core.ChunkMatch, len(matches))
	for i, m := range matches {
		chunkContext[i] = core.MatchFromMetadata(m.ID, m.Score, m.Metadata)
	}

	prompt := Prompt{
		System: SystemInstruction,
		User:   buildUserPrompt(question, chunkContext),
	}

	response, err := e.generator.Generate(ctx, prompt.System, prompt.User)
	if err != nil {
		e.logger.Error("error generating answer", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	e.logger.Debug("question answered", "matches", len(matches))
	return &Answer{
		Response: response,
		Context:  chunkContext,
		Prompt:   prompt,
	}, nil
}
