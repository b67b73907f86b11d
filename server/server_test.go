package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oratia/talkbase/core"
	"github.com/oratia/talkbase/query"
)

type fakeEngine struct {
	answer   *query.Answer
	err      error
	question string
	calls    int
}

func (f *fakeEngine) Ask(_ context.Context, question string) (*query.Answer, error) {
	f.calls++
	f.question = question
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

var testStats = Stats{ChunkSize: 1000, OverlapRatio: 0.2, TopK: 15}

func newTestServer(t *testing.T, engine *fakeEngine) *httptest.Server {
	t.Helper()
	s, err := New(engine, testStats)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postPrompt(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/prompt", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestNew_RequiresEngine(t *testing.T) {
	_, err := New(nil, testStats)
	assert.ErrorIs(t, err, ErrEngineRequired)
}

func TestHandlePrompt_Success(t *testing.T) {
	engine := &fakeEngine{answer: &query.Answer{
		Response: "an answer",
		Context: []core.ChunkMatch{
			{ID: "42-0", Score: 0.9, Title: "T", Speaker: "S", Text: "chunk"},
		},
		Prompt: query.Prompt{System: "sys", User: "usr"},
	}}
	ts := newTestServer(t, engine)

	resp := postPrompt(t, ts, `{"question": "what?"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "what?", engine.question)

	var body struct {
		Response        string            `json:"response"`
		Context         []core.ChunkMatch `json:"context"`
		AugmentedPrompt struct {
			System string `json:"System"`
			User   string `json:"User"`
		} `json:"Augmented_prompt"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "an answer", body.Response)
	require.Len(t, body.Context, 1)
	assert.Equal(t, "42-0", body.Context[0].ID)
	assert.Equal(t, "sys", body.AugmentedPrompt.System)
	assert.Equal(t, "usr", body.AugmentedPrompt.User)
}

func TestHandlePrompt_EmptyQuestionIs400(t *testing.T) {
	engine := &fakeEngine{err: query.ErrInvalidQuestion}
	ts := newTestServer(t, engine)

	resp := postPrompt(t, ts, `{"question": "   "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandlePrompt_MalformedBodyIs400(t *testing.T) {
	engine := &fakeEngine{}
	ts := newTestServer(t, engine)

	resp := postPrompt(t, ts, `{"question": `)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, engine.calls, "engine must not be called for malformed input")
}

func TestHandlePrompt_InternalFailureIsGeneric500(t *testing.T) {
	engine := &fakeEngine{err: errors.New("pinecone exploded: host=10.0.0.3 key=secret")}
	ts := newTestServer(t, engine)

	resp := postPrompt(t, ts, `{"question": "what?"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "internal error", body.Error, "failure details stay server-side")
}

func TestHandlePrompt_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, &fakeEngine{})

	resp, err := http.Get(ts.URL + "/api/prompt")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandleStats(t *testing.T) {
	ts := newTestServer(t, &fakeEngine{})

	resp, err := http.Get(ts.URL + "/api/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stats map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, float64(1000), stats["chunk_size"])
	assert.Equal(t, 0.2, stats["overlap_ratio"])
	assert.Equal(t, float64(15), stats["top_k"])
}
