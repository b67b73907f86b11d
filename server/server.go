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

// Package server exposes the query engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/oratia/talkbase/core"
	"github.com/oratia/talkbase/query"
)

// Asker answers one question. *query.Engine satisfies it.
type Asker interface {
	Ask(ctx context.Context, question string) (*query.Answer, error)
}

// Stats are the fixed configuration constants reported by GET /api/stats.
type Stats struct {
	ChunkSize    int     `json:"chunk_size"`
	OverlapRatio float64 `json:"overlap_ratio"`
	TopK         int     `json:"top_k"`
}

// Server handles the inbound HTTP surface: POST /api/prompt and
// GET /api/stats.
type Server struct {
	engine Asker
	stats  Stats
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "server")
	}
}

// New creates a Server over the given query engine.
func New(engine Asker, stats Stats, opts ...Option) (*Server, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}

	s := &Server{
		engine: engine,
		stats:  stats,
		logger: slog.Default().With("component", "server"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/prompt", s.handlePrompt)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	return mux
}

// ListenAndServe blocks serving the API on addr until ctx is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

type promptRequest struct {
	Question string `json:"question"`
}

type promptResponse struct {
	Response string            `json:"response"`
	Context  []core.ChunkMatch `json:"context"`
	// Field name kept for compatibility with existing clients.
	AugmentedPrompt query.Prompt `json:"Augmented_prompt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	answer, err := s.engine.Ask(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, query.ErrInvalidQuestion) {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "question must not be empty"})
			return
		}
		// Details stay server-side; the caller gets a generic message.
		s.logger.Error("error answering prompt", "err", err, "duration", time.Since(start))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	s.logger.Info("prompt answered", "matches", len(answer.Context), "duration", time.Since(start))
	s.writeJSON(w, http.StatusOK, promptResponse{
		Response:        answer.Response,
		Context:         answer.Context,
		AugmentedPrompt: answer.Prompt,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.stats)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("error encoding response", "err", err)
	}
}
