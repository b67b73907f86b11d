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


// Package postgres provides a vectorstore.Store backed by a Postgres table
// with the pgvector extension, accessed through uptrace/bun.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/oratia/talkbase/retry"
	"github.com/oratia/talkbase/vectorstore"
)

// Config holds connection details for the pgvector backend.
type Config struct {
	// DSN is the Postgres connection string.
	DSN string

	// Table is the vector table name. Default "transcript_vectors".
	Table string

	// Attempts is the upsert retry budget. Default 5.
	Attempts int

	// Backoff is the upsert backoff schedule. Default linear 2s per attempt.
	Backoff retry.Backoff
}

// row is the stored form of one indexed vector. The tag names the default
// table; every query overrides it with the configured name.
type row struct {
	bun.BaseModel `bun:"table:transcript_vectors,alias:tv"`

	ID        string            `bun:"id,pk"`
	Embedding []float32         `bun:"embedding,notnull,type:vector(1536)"`
	Metadata  map[string]string `bun:"metadata,type:jsonb"`
}

// queryRow carries a similarity score alongside the stored columns.
type queryRow struct {
	ID       string            `bun:"id"`
	Score    float32           `bun:"score"`
	Metadata map[string]string `bun:"metadata"`
}

// Store is a pgvector-backed vector index.
type Store struct {
	db       *bun.DB
	table    string
	attempts int
	backoff  retry.Backoff
	logger   *slog.Logger
}

var _ vectorstore.Store = (*Store)(nil)

// New connects to Postgres and ensures the vector table exists.
func New(ctx context.Context, cfg Config) (*Store, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())

	table := cfg.Table
	if table == "" {
		table = "transcript_vectors"
	}
	attempts := cfg.Attempts
	if attempts == 0 {
		attempts = 5
	}
	backoff := cfg.Backoff
	if backoff == nil {
		backoff = retry.Linear(2 * time.Second)
	}

	s := &Store{
		db:       db,
		table:    table,
		attempts: attempts,
		backoff:  backoff,
		logger:   slog.Default().With("component", "pgvector"),
	}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("enable pgvector: %w", err)
	}
	if _, err := s.createTableQuery().Exec(ctx); err != nil {
		return fmt.Errorf("create vector table: %w", err)
	}
	return nil
}

// Upsert writes vectors, overwriting rows with the same id. Transient
// failures are retried with linear backoff.
func (s *Store) Upsert(ctx context.Context, vectors ...vectorstore.Vector) error {
	if len(vectors) == 0 {
		return nil
	}

	rows := make([]row, len(vectors))
	for i, v := range vectors {
		rows[i] = row{ID: v.ID, Embedding: v.Values, Metadata: v.Metadata}
	}

	attempt := 0
	err := retry.Do(ctx, func() error {
		attempt++
		_, err := s.upsertQuery(&rows).Exec(ctx)
		if err != nil {
			s.logger.Warn("upsert attempt failed", "attempt", attempt, "err", err)
		}
		return err
	}, s.attempts, s.backoff)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w after %d attempts: %w", vectorstore.ErrUpsertFailed, s.attempts, err)
	}
	return nil
}

// Query returns up to topK nearest vectors by cosine similarity,
// highest score first. No retry on the query path.
func (s *Store) Query(ctx context.Context, vector []float32, topK int) ([]vectorstore.Match, error) {
	var rows []queryRow
	err := s.queryQuery(vector, topK).Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", vectorstore.ErrRetrievalFailed, err)
	}

	matches := make([]vectorstore.Match, 0, len(rows))
	for _, r := range rows {
		matches = append(matches, vectorstore.Match{ID: r.ID, Score: r.Score, Metadata: r.Metadata})
	}
	return matches, nil
}

func (s *Store) createTableQuery() *bun.CreateTableQuery {
	return s.db.NewCreateTable().
		Model((*row)(nil)).
		ModelTableExpr("?", bun.Ident(s.table)).
		IfNotExists()
}

func (s *Store) upsertQuery(rows *[]row) *bun.InsertQuery {
	return s.db.NewInsert().
		Model(rows).
		ModelTableExpr("? AS ?", bun.Ident(s.table), bun.Ident("tv")).
		On("CONFLICT (id) DO UPDATE").
		Set("embedding = EXCLUDED.embedding").
		Set("metadata = EXCLUDED.metadata")
}

func (s *Store) queryQuery(vector []float32, topK int) *bun.SelectQuery {
	return s.db.NewSelect().
		Model((*row)(nil)).
		ModelTableExpr("? AS ?", bun.Ident(s.table), bun.Ident("tv")).
		ColumnExpr("id").
		ColumnExpr("metadata").
		ColumnExpr("1 - (embedding <=> ?) AS score", vector).
		OrderExpr("embedding <=> ?", vector).
		Limit(topK)
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
