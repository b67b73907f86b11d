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


// Package pinecone is a minimal REST client to a Pinecone index.
// It covers the two operations the pipelines need: upsert and query.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/oratia/talkbase/retry"
	"github.com/oratia/talkbase/vectorstore"
)

const (
	// UpsertAttempts is the number of tries before an upsert is declared
	// failed.
	UpsertAttempts = 5

	// UpsertBackoffStep is the linear backoff step between upsert attempts.
	UpsertBackoffStep = 2 * time.Second

	defaultTimeout = 30 * time.Second
)

// Config holds connection details for a Pinecone index.
type Config struct {
	// IndexHost is the index endpoint URL, e.g.
	// "https://talks-abc123.svc.us-east-1-aws.pinecone.io".
	IndexHost string

	// APIKey authenticates every request via the Api-Key header.
	APIKey string

	// Namespace scopes upserts and queries. Optional.
	Namespace string

	// Timeout bounds each HTTP request. Default 30s; network hangs fail
	// fast instead of stalling the pipeline.
	Timeout time.Duration

	// Attempts is the upsert retry budget. Default UpsertAttempts.
	Attempts int

	// Backoff is the upsert backoff schedule.
	// Default linear attempt * UpsertBackoffStep.
	Backoff retry.Backoff
}

// Client talks to one Pinecone index.
type Client struct {
	host      string
	apiKey    string
	namespace string
	attempts  int
	backoff   retry.Backoff
	client    *http.Client
	logger    *slog.Logger
}

var _ vectorstore.Store = (*Client)(nil)

// New creates a Pinecone client from config.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	attempts := cfg.Attempts
	if attempts == 0 {
		attempts = UpsertAttempts
	}
	backoff := cfg.Backoff
	if backoff == nil {
		backoff = retry.Linear(UpsertBackoffStep)
	}
	return &Client{
		host:      cfg.IndexHost,
		apiKey:    cfg.APIKey,
		namespace: cfg.Namespace,
		attempts:  attempts,
		backoff:   backoff,
		client:    &http.Client{Timeout: timeout},
		logger:    slog.Default().With("component", "pinecone"),
	}
}

type upsertRequest struct {
	Vectors   []vectorPayload `json:"vectors"`
	Namespace string          `json:"namespace,omitempty"`
}

type vectorPayload struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type upsertResponse struct {
	UpsertedCount int `json:"upsertedCount"`
}

type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
	Namespace       string    `json:"namespace,omitempty"`
}

type queryResponse struct {
	Matches []struct {
		ID       string            `json:"id"`
		Score    float32           `json:"score"`
		Metadata map[string]string `json:"metadata"`
	} `json:"matches"`
}

// Upsert writes vectors to the index, retrying failures with linear backoff.
// A well-formed response that reports zero upserted vectors counts as a
// failure and is retried; silently accepting it would lose writes.
func (c *Client) Upsert(ctx context.Context, vectors ...vectorstore.Vector) error {
	if len(vectors) == 0 {
		return nil
	}

	payload := upsertRequest{
		Vectors:   make([]vectorPayload, len(vectors)),
		Namespace: c.namespace,
	}
	for i, v := range vectors {
		payload.Vectors[i] = vectorPayload{ID: v.ID, Values: v.Values, Metadata: v.Metadata}
	}

	attempt := 0
	err := retry.Do(ctx, func() error {
		attempt++
		var resp upsertResponse
		if err := c.postJSON(ctx, c.host+"/vectors/upsert", payload, &resp); err != nil {
			c.logger.Warn("upsert attempt failed", "attempt", attempt, "err", err)
			return err
		}
		if resp.UpsertedCount == 0 {
			c.logger.Warn("upsert returned empty response", "attempt", attempt)
			return vectorstore.ErrEmptyResponse
		}
		return nil
	}, c.attempts, c.backoff)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w after %d attempts: %w", vectorstore.ErrUpsertFailed, c.attempts, err)
	}
	return nil
}

// Query returns up to topK nearest vectors with their metadata.
// Failures propagate immediately; there is no retry on the query path.
func (c *Client) Query(ctx context.Context, vector []float32, topK int) ([]vectorstore.Match, error) {
	payload := queryRequest{
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
		Namespace:       c.namespace,
	}

	var resp queryResponse
	if err := c.postJSON(ctx, c.host+"/query", payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", vectorstore.ErrRetrievalFailed, err)
	}

	matches := make([]vectorstore.Match, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, vectorstore.Match{ID: m.ID, Score: m.Score, Metadata: m.Metadata})
	}
	return matches, nil
}

// Close is a no-op; the client holds no persistent connections beyond the
// standard pool.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

func (c *Client) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("POST %s failed: %s: %s", url, resp.Status, snippet)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response from %s: %w", url, err)
		}
	}
	return nil
}
