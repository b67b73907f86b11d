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

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/oratia/talkbase/ai"
	"github.com/oratia/talkbase/ai/openai"
	"github.com/oratia/talkbase/chunk"
	"github.com/oratia/talkbase/config"
	"github.com/oratia/talkbase/dataset"
	"github.com/oratia/talkbase/ingest"
	"github.com/oratia/talkbase/query"
	"github.com/oratia/talkbase/server"
	"github.com/oratia/talkbase/storage"
	badgerstore "github.com/oratia/talkbase/storage/badger"
	filestore "github.com/oratia/talkbase/storage/file"
	"github.com/oratia/talkbase/vectorstore"
	"github.com/oratia/talkbase/vectorstore/chromem"
	"github.com/oratia/talkbase/vectorstore/pinecone"
	"github.com/oratia/talkbase/vectorstore/postgres"
)

func main() {
	app := &cli.App{
		Name:  "talkbase",
		Usage: "Retrieval-augmented question answering over talk transcripts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
				Value:   "config.yaml",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Index a transcript dataset into the vector store",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dataset",
						Aliases: []string{"d"},
						Usage:   "Path to the dataset file (.csv or .xlsx)",
					},
					&cli.StringFlag{
						Name:  "checkpoint",
						Usage: "Path to the checkpoint file",
					},
					&cli.StringFlag{
						Name:  "checkpoint-db",
						Usage: "Path to a BadgerDB directory for checkpoints (overrides --checkpoint)",
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Show a progress bar",
						Value: true,
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the question-answering HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address (overrides config)",
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Answer one question from the command line",
				Action:    askCommand,
				ArgsUsage: "<question>",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newProvider(cfg *config.Config) (ai.Provider, error) {
	return openai.NewProvider(ai.NewConfig(
		ai.WithBaseURL(cfg.OpenAI.BaseURL),
		ai.WithAPIKey(cfg.OpenAI.APIKey),
		ai.WithEmbeddingModel(cfg.OpenAI.EmbeddingModel),
		ai.WithChatModel(cfg.OpenAI.ChatModel),
	))
}

func newStore(ctx context.Context, cfg *config.Config) (vectorstore.Store, error) {
	switch cfg.VectorStore.Backend {
	case config.BackendPinecone:
		return pinecone.New(pinecone.Config{
			IndexHost: cfg.VectorStore.Pinecone.IndexHost,
			APIKey:    cfg.VectorStore.Pinecone.APIKey,
			Namespace: cfg.VectorStore.Pinecone.Namespace,
		}), nil
	case config.BackendChromem:
		return chromem.New(cfg.VectorStore.Chromem.Path, cfg.VectorStore.Chromem.Collection)
	case config.BackendPostgres:
		return postgres.New(ctx, postgres.Config{DSN: cfg.VectorStore.Postgres.DSN})
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.VectorStore.Backend)
	}
}

func newCheckpointStore(c *cli.Context, cfg *config.Config) (storage.CheckpointStore, error) {
	if dbPath := c.String("checkpoint-db"); dbPath != "" {
		backend, err := badgerstore.OpenBackend(dbPath, false)
		if err != nil {
			return nil, fmt.Errorf("open checkpoint db: %w", err)
		}
		return badgerstore.NewCheckpointStore(backend, "ingest"), nil
	}

	path := c.String("checkpoint")
	if path == "" {
		path = cfg.CheckpointPath
	}
	return filestore.NewCheckpointStore(path)
}

func ingestCommand(c *cli.Context) error {
	ctx, stop := signalContext()
	defer stop()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	datasetPath := c.String("dataset")
	if datasetPath == "" {
		datasetPath = cfg.DatasetPath
	}
	if datasetPath == "" {
		return fmt.Errorf("dataset path is required (--dataset or config)")
	}

	reader, err := dataset.Open(datasetPath)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	embedder, err := ai.NewRetryEmbedder(provider.Embedder())
	if err != nil {
		return err
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	checkpoints, err := newCheckpointStore(c, cfg)
	if err != nil {
		return err
	}
	defer checkpoints.Close()

	chunker, err := chunk.New(chunk.DefaultWindow, chunk.DefaultOverlap)
	if err != nil {
		return err
	}

	opts := []ingest.Option{}
	if c.Bool("progress") {
		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("ingesting"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSpinnerType(14),
		)
		opts = append(opts, ingest.WithProgress(bar))
	}

	pipeline, err := ingest.NewPipeline(reader, chunker, embedder, store, checkpoints, opts...)
	if err != nil {
		return err
	}

	if err := pipeline.Run(ctx); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	return nil
}

func newEngine(ctx context.Context, cfg *config.Config) (*query.Engine, func(), error) {
	provider, err := newProvider(cfg)
	if err != nil {
		return nil, nil, err
	}

	embedder, err := ai.NewRetryEmbedder(provider.Embedder())
	if err != nil {
		provider.Close()
		return nil, nil, err
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		provider.Close()
		return nil, nil, err
	}

	engine, err := query.NewEngine(embedder, store, provider.Generator())
	if err != nil {
		provider.Close()
		store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		store.Close()
		provider.Close()
	}
	return engine, cleanup, nil
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signalContext()
	defer stop()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	engine, cleanup, err := newEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := server.New(engine, server.Stats{
		ChunkSize:    chunk.DefaultWindow,
		OverlapRatio: float64(chunk.DefaultOverlap) / float64(chunk.DefaultWindow),
		TopK:         query.DefaultTopK,
	})
	if err != nil {
		return err
	}

	addr := c.String("addr")
	if addr == "" {
		addr = cfg.ListenAddr
	}
	return srv.ListenAndServe(ctx, addr)
}

func askCommand(c *cli.Context) error {
	ctx, stop := signalContext()
	defer stop()

	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("usage: talkbase ask <question>")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	engine, cleanup, err := newEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	answer, err := engine.Ask(ctx, question)
	if err != nil {
		return err
	}

	fmt.Println(answer.Response)
	if len(answer.Context) > 0 {
		fmt.Fprintf(os.Stderr, "\n(%d supporting chunks", len(answer.Context))
		fmt.Fprintf(os.Stderr, ", best match %q score %.3f)\n", answer.Context[0].Title, answer.Context[0].Score)
	}
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
