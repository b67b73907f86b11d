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


// Package chromem provides an embedded vectorstore.Store backed by
// chromem-go, for development and tests where no managed index is available.
package chromem

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/philippgille/chromem-go"

	"github.com/oratia/talkbase/vectorstore"
)

const compress = false

// Store is an embedded vector index. With an empty path it lives purely in
// memory; otherwise it persists under the given directory.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	logger     *slog.Logger
}

var _ vectorstore.Store = (*Store)(nil)

// New opens (or creates) a collection. path == "" selects an in-memory store.
func New(path, collectionName string) (*Store, error) {
	var db *chromem.DB
	var err error
	if path == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(path, compress)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %w", err)
	}

	return &Store{
		db:         db,
		collection: collection,
		logger:     slog.Default().With("component", "chromem"),
	}, nil
}

// Upsert writes vectors to the collection. Adding an existing id replaces the
// stored document, so re-running ingestion is safe.
func (s *Store) Upsert(ctx context.Context, vectors ...vectorstore.Vector) error {
	if len(vectors) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(vectors))
	for i, v := range vectors {
		docs[i] = chromem.Document{
			ID:        v.ID,
			Content:   v.Metadata["text"],
			Metadata:  v.Metadata,
			Embedding: v.Values,
		}
	}

	if err := s.collection.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("%w: %w", vectorstore.ErrUpsertFailed, err)
	}
	return nil
}

// Query returns up to topK nearest vectors by cosine similarity.
func (s *Store) Query(ctx context.Context, vector []float32, topK int) ([]vectorstore.Match, error) {
	// chromem rejects queries asking for more results than stored documents.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	results, err := s.collection.QueryEmbedding(ctx, vector, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", vectorstore.ErrRetrievalFailed, err)
	}

	matches := make([]vectorstore.Match, 0, len(results))
	for _, r := range results {
		matches = append(matches, vectorstore.Match{ID: r.ID, Score: r.Similarity, Metadata: r.Metadata})
	}
	return matches, nil
}

// Close is a no-op; chromem persists on write.
func (s *Store) Close() error {
	return nil
}
