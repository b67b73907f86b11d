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


// Package dataset reads transcript records from tabular files.
//
// Row numbering matches checkpoint semantics: the header is row 0 and the
// first data row is row 1, so a zero checkpoint means "start at the first
// data row".
package dataset

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/oratia/talkbase/core"
)

// Reader streams records from a tabular dataset in row order.
type Reader interface {
	// ForEach calls fn once per data row with the row index (starting at 1)
	// and the parsed record. Iteration stops on the first error from fn.
	ForEach(ctx context.Context, fn func(row int64, record *core.Record) error) error
}

// Open picks a reader by file extension: .xlsx via excelize, everything
// else as CSV.
func Open(path string) (Reader, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return NewXLSXReader(path)
	}
	return NewCSVReader(path)
}

// column aliases seen across transcript datasets.
var columnAliases = map[string]string{
	"id":           "id",
	"talk_id":      "id",
	"title":        "title",
	"name":         "title",
	"speaker":      "speaker",
	"main_speaker": "speaker",
	"topics":       "topics",
	"tags":         "topics",
	"event":        "event",
	"description":  "description",
	"transcript":   "transcript",
}

// header maps canonical column names to their positions in the file.
type header map[string]int

func parseHeader(cells []string) header {
	h := make(header, len(cells))
	for i, cell := range cells {
		name := strings.ToLower(strings.TrimSpace(cell))
		if canonical, ok := columnAliases[name]; ok {
			if _, taken := h[canonical]; !taken {
				h[canonical] = i
			}
		}
	}
	return h
}

func (h header) get(cells []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

// recordFromRow builds a Record from one data row. Rows without an id column
// get a deterministic content-derived one, so re-ingestion upserts instead
// of duplicating.
func (h header) recordFromRow(cells []string) *core.Record {
	r := &core.Record{
		ID:          h.get(cells, "id"),
		Title:       h.get(cells, "title"),
		Speaker:     h.get(cells, "speaker"),
		Topics:      splitTopics(h.get(cells, "topics")),
		Event:       h.get(cells, "event"),
		Description: h.get(cells, "description"),
		Transcript:  h.get(cells, "transcript"),
	}
	if r.ID == "" {
		r.ID = core.IDFromContent(r.Title + "|" + r.Speaker + "|" + r.Event)
	}
	return r
}

func splitTopics(raw string) []string {
	if raw == "" {
		return nil
	}
	// Datasets carry topics either comma-separated or as a list literal
	// like ['education', 'creativity'].
	raw = strings.Trim(raw, "[]")
	parts := strings.Split(raw, ",")
	topics := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `'"`)
		if p != "" {
			topics = append(topics, p)
		}
	}
	return topics
}
