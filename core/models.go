package core

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Record is one source row from the transcript dataset.
// Records are immutable once read.
type Record struct {
	ID          string
	Title       string
	Speaker     string
	Topics      []string
	Event       string
	Description string
	Transcript  string
}

// HasTranscript reports whether the record carries any transcript text.
// Records without one are skipped by ingestion rather than treated as errors.
func (r *Record) HasTranscript() bool {
	return strings.TrimSpace(r.Transcript) != ""
}

// Metadata returns the metadata bundle attached to every vector built from
// this record. Chunks inherit all of the parent record's fields.
func (r *Record) Metadata() map[string]string {
	return map[string]string{
		"record_id":   r.ID,
		"title":       r.Title,
		"speaker":     r.Speaker,
		"topics":      strings.Join(r.Topics, ", "),
		"event":       r.Event,
		"description": r.Description,
	}
}

// VectorID returns the identifier of the indexed vector for one chunk of
// this record, in the form "{record_id}-{chunk_index}".
func (r *Record) VectorID(chunkIndex int) string {
	return r.ID + "-" + strconv.Itoa(chunkIndex)
}

// IDFromContent generates a deterministic record ID from text content using
// BLAKE2b hashing. Used for dataset rows that carry no identifier column, so
// that re-ingesting the same row upserts rather than duplicates.
func IDFromContent(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// ChunkMatch is one retrieved chunk with its similarity score and the
// metadata bundle of the parent record. Ordered sequences of ChunkMatch form
// the query context supplied to the generation step.
type ChunkMatch struct {
	ID          string  `json:"id"`
	Score       float32 `json:"score"`
	Title       string  `json:"title"`
	Speaker     string  `json:"speaker"`
	Topics      string  `json:"topics"`
	Event       string  `json:"event"`
	Description string  `json:"description"`
	Text        string  `json:"text"`
}

// MatchFromMetadata builds a ChunkMatch from a vector id, similarity score
// and the metadata bundle stored alongside the vector.
func MatchFromMetadata(id string, score float32, metadata map[string]string) ChunkMatch {
	return ChunkMatch{
		ID:          id,
		Score:       score,
		Title:       metadata["title"],
		Speaker:     metadata["speaker"],
		Topics:      metadata["topics"],
		Event:       metadata["event"],
		Description: metadata["description"],
		Text:        metadata["text"],
	}
}

// Checkpoint marks ingestion progress for crash recovery.
// Row is the index of the last fully processed dataset row; on restart,
// processing resumes strictly after it. A zero Row means nothing has been
// processed and ingestion begins at row 1, the first data row.
type Checkpoint struct {
	Row       int64
	UpdatedAt time.Time
}
