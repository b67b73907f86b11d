package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oratia/talkbase/ai"
)

func newEmbedderFor(t *testing.T, ts *httptest.Server) ai.Embedder {
	t.Helper()
	embedder, err := NewEmbedder(ai.NewConfig(
		ai.WithBaseURL(ts.URL+"/v1"),
		ai.WithAPIKey("sk-test"),
	))
	require.NoError(t, err)
	return embedder
}

func TestEmbedText_ReturnsVector(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.1,0.2,0.3]}],"model":"text-embedding-ada-002","usage":{}}`))
	}))
	defer ts.Close()

	vector, err := newEmbedderFor(t, ts).EmbedText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
}

func TestEmbedText_EmptyDataIsAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[],"model":"text-embedding-ada-002","usage":{}}`))
	}))
	defer ts.Close()

	vector, err := newEmbedderFor(t, ts).EmbedText(context.Background(), "hello")
	assert.Error(t, err, "a successful response with no embedding must not be a silent success")
	assert.Nil(t, vector)
}
