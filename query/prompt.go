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
	"fmt"
	"strings"

	"github.com/oratia/talkbase/core"
)

// SystemInstruction constrains the model to the supplied context.
const SystemInstruction = "You are a helpful assistant that answers questions about talk transcripts. " +
	"Answer using ONLY the context provided below. " +
	"If the context does not contain the information needed to answer, say that you don't know. " +
	"Do not use any outside knowledge."

// FallbackAnswer is returned verbatim when retrieval finds no matches.
// The chat model is never called in that case.
const FallbackAnswer = "I don't know based on the provided data"

// Prompt holds the exact system and user messages sent to the chat model,
// returned with every answer for auditability.
type Prompt struct {
	System string `json:"System"`
	User   string `json:"User"`
}

// buildUserPrompt assembles the numbered context block followed by the
// question. One entry per match, highest similarity first.
func buildUserPrompt(question string, matches []core.ChunkMatch) string {
	var b strings.Builder
	b.WriteString("Context:\n\n")

	for i, m := range matches {
		fmt.Fprintf(&b, "[%d] id: %s\n", i+1, m.ID)
		fmt.Fprintf(&b, "title: %s\n", m.Title)
		fmt.Fprintf(&b, "speaker: %s\n", m.Speaker)
		fmt.Fprintf(&b, "topics: %s\n", m.Topics)
		fmt.Fprintf(&b, "event: %s\n", m.Event)
		fmt.Fprintf(&b, "description: %s\n", m.Description)
		fmt.Fprintf(&b, "score: %.4f\n", m.Score)
		fmt.Fprintf(&b, "text: %s\n\n", m.Text)
	}

	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String()
}
