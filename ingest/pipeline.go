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

package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"

	"github.com/oratia/talkbase/ai"
	"github.com/oratia/talkbase/chunk"
	"github.com/oratia/talkbase/core"
	"github.com/oratia/talkbase/dataset"
	"github.com/oratia/talkbase/storage"
	"github.com/oratia/talkbase/vectorstore"
)

// CheckpointInterval is the number of records processed between periodic
// checkpoint saves. A crash loses at most this many records of progress.
const CheckpointInterval = 5

// Pipeline ingests a transcript dataset into a vector store.
// Records flow through it one at a time; any exhausted-retry failure from
// the embedder or the store aborts the whole run.
type Pipeline struct {
	reader      dataset.Reader
	chunker     *chunk.Chunker
	embedder    ai.Embedder
	store       vectorstore.Store
	checkpoints storage.CheckpointStore
	bar         *progressbar.ProgressBar
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "ingest")
	}
}

// WithProgress attaches a progress bar advanced once per record.
func WithProgress(bar *progressbar.ProgressBar) Option {
	return func(p *Pipeline) {
		p.bar = bar
	}
}

// NewPipeline creates an ingestion pipeline over the given dataset reader,
// chunker, embedder, vector store and checkpoint store.
func NewPipeline(
	reader dataset.Reader,
	chunker *chunk.Chunker,
	embedder ai.Embedder,
	store vectorstore.Store,
	checkpoints storage.CheckpointStore,
	opts ...Option,
) (*Pipeline, error) {
	if reader == nil {
		return nil, ErrReaderRequired
	}
	if chunker == nil {
		return nil, ErrChunkerRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if checkpoints == nil {
		return nil, ErrCheckpointStoreRequired
	}

	p := &Pipeline{
		reader:      reader,
		chunker:     chunker,
		embedder:    embedder,
		store:       store,
		checkpoints: checkpoints,
		logger:      slog.Default().With("component", "ingest"),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Run processes the dataset from the last persisted checkpoint to the end.
// Rows at or before the checkpoint are skipped; records without a transcript
// pass through without embedding or upserting. The checkpoint is persisted
// every CheckpointInterval records and once more at completion, set to one
// past the last row processed.
func (p *Pipeline) Run(ctx context.Context) error {
	checkpoint, err := p.checkpoints.Load(ctx)
	if err != nil {
		return fmt.Errorf("load checkpoint: %w", err)
	}

	var resumeAfter int64
	if checkpoint != nil {
		resumeAfter = checkpoint.Row
	}
	if resumeAfter > 0 {
		p.logger.Info("resuming ingestion", "after_row", resumeAfter)
	}

	var lastRow, processed int64
	err = p.reader.ForEach(ctx, func(row int64, record *core.Record) error {
		if row <= resumeAfter {
			return nil
		}

		if record.HasTranscript() {
			if err := p.ingestRecord(ctx, record); err != nil {
				return fmt.Errorf("record %s (row %d): %w", record.ID, row, err)
			}
		} else {
			p.logger.Debug("skipping record without transcript", "record_id", record.ID, "row", row)
		}

		lastRow = row
		processed++
		if p.bar != nil {
			_ = p.bar.Add(1)
		}

		if processed%CheckpointInterval == 0 {
			if err := p.checkpoints.Save(ctx, &core.Checkpoint{Row: row}); err != nil {
				return fmt.Errorf("save checkpoint at row %d: %w", row, err)
			}
			p.logger.Info("ingestion progress", "row", row, "records", processed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if processed == 0 {
		p.logger.Info("nothing to ingest", "after_row", resumeAfter)
		return nil
	}

	// One past the last row, so a completed dataset is never re-read.
	if err := p.checkpoints.Save(ctx, &core.Checkpoint{Row: lastRow + 1}); err != nil {
		return fmt.Errorf("save final checkpoint: %w", err)
	}

	p.logger.Info("ingestion complete", "records", processed, "last_row", lastRow)
	return nil
}

// ingestRecord chunks one record's transcript and indexes every chunk.
func (p *Pipeline) ingestRecord(ctx context.Context, record *core.Record) error {
	chunks := p.chunker.Split(record.Transcript)
	metadata := record.Metadata()

	for i, text := range chunks {
		values, err := p.embedder.EmbedText(ctx, text)
		if err != nil {
			return err
		}

		chunkMetadata := make(map[string]string, len(metadata)+1)
		for k, v := range metadata {
			chunkMetadata[k] = v
		}
		chunkMetadata["text"] = text

		vector := vectorstore.Vector{
			ID:       record.VectorID(i),
			Values:   values,
			Metadata: chunkMetadata,
		}
		if err := p.store.Upsert(ctx, vector); err != nil {
			return err
		}
	}

	p.logger.Debug("record indexed", "record_id", record.ID, "chunks", len(chunks))
	return nil
}
