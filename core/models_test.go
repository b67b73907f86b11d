package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent_Deterministic(t *testing.T) {
	a := IDFromContent("Do schools kill creativity?|Ken Robinson")
	b := IDFromContent("Do schools kill creativity?|Ken Robinson")
	assert.Equal(t, a, b, "identical content must produce identical IDs")

	c := IDFromContent("The power of vulnerability|Brené Brown")
	assert.NotEqual(t, a, c, "different content must produce different IDs")
}

func TestIDFromContent_Format(t *testing.T) {
	id := IDFromContent("anything")
	assert.Len(t, id, 16, "ID is an 8-byte hash in hex")
}

func TestRecord_VectorID(t *testing.T) {
	r := &Record{ID: "42"}
	assert.Equal(t, "42-0", r.VectorID(0))
	assert.Equal(t, "42-12", r.VectorID(12))
}

func TestRecord_HasTranscript(t *testing.T) {
	assert.False(t, (&Record{}).HasTranscript())
	assert.False(t, (&Record{Transcript: "   \n\t"}).HasTranscript())
	assert.True(t, (&Record{Transcript: "hello"}).HasTranscript())
}

func TestRecord_Metadata(t *testing.T) {
	r := &Record{
		ID:          "42",
		Title:       "Do schools kill creativity?",
		Speaker:     "Ken Robinson",
		Topics:      []string{"education", "creativity"},
		Event:       "TED2006",
		Description: "A talk about schools.",
	}

	md := r.Metadata()
	require.Equal(t, "42", md["record_id"])
	assert.Equal(t, "education, creativity", md["topics"])
	assert.Equal(t, "Ken Robinson", md["speaker"])

	_, hasText := md["text"]
	assert.False(t, hasText, "chunk text is attached per vector, not per record")
}

func TestMatchFromMetadata(t *testing.T) {
	md := map[string]string{
		"record_id":   "42",
		"title":       "Title",
		"speaker":     "Speaker",
		"topics":      "a, b",
		"event":       "Event",
		"description": "Desc",
		"text":        "chunk text",
	}

	m := MatchFromMetadata("42-1", 0.87, md)
	assert.Equal(t, "42-1", m.ID)
	assert.InDelta(t, 0.87, m.Score, 1e-6)
	assert.Equal(t, "chunk text", m.Text)
	assert.Equal(t, "a, b", m.Topics)
}
