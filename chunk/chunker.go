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


// Package chunk splits long texts into overlapping fixed-size windows,
// the unit of embedding for the ingestion pipeline.
package chunk

import "fmt"

const (
	// DefaultWindow is the chunk window size in characters.
	DefaultWindow = 1000

	// DefaultOverlap is the number of characters consecutive chunks share.
	DefaultOverlap = 200
)

// Chunker produces overlapping fixed-size windows over a text.
// It is deterministic, pure and safe for concurrent use.
type Chunker struct {
	window  int
	overlap int
}

// New creates a Chunker. The overlap must be strictly less than the window;
// otherwise the sliding window would never advance.
func New(window, overlap int) (*Chunker, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: window %d", ErrInvalidWindow, window)
	}
	if overlap < 0 || overlap >= window {
		return nil, fmt.Errorf("%w: overlap %d, window %d", ErrInvalidOverlap, overlap, window)
	}
	return &Chunker{window: window, overlap: overlap}, nil
}

// Window returns the configured window size.
func (c *Chunker) Window() int { return c.window }

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Split returns the ordered sequence of chunks for text. A text no longer
// than the window yields a single chunk equal to the whole text; an empty
// text yields no chunks. Consecutive chunks share exactly the configured
// overlap, except the final chunk which may be shorter than the window.
//
// Window and overlap count characters, not bytes: boundaries always fall on
// rune starts, so multi-byte text is never cut mid-character.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= c.window {
		return []string{text}
	}

	step := c.window - c.overlap
	chunks := make([]string, 0, (len(runes)-c.overlap+step-1)/step)
	for start := 0; start < len(runes); start += step {
		end := start + c.window
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
