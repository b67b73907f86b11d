package pinecone

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oratia/talkbase/retry"
	"github.com/oratia/talkbase/vectorstore"
)

func newTestClient(host string) *Client {
	return New(Config{
		IndexHost: host,
		APIKey:    "test-key",
		Namespace: "talks",
		Backoff:   retry.Linear(time.Millisecond),
	})
}

func testVector() vectorstore.Vector {
	return vectorstore.Vector{
		ID:       "42-0",
		Values:   []float32{0.1, 0.2, 0.3},
		Metadata: map[string]string{"title": "t", "text": "chunk"},
	}
}

func TestUpsert_SucceedsOnThirdAttempt(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/vectors/upsert", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("Api-Key"))
		calls++
		if calls <= 2 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"upsertedCount":1}`)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	err := c.Upsert(context.Background(), testVector())
	require.NoError(t, err)
	assert.Equal(t, 3, calls, "should succeed on the third attempt")
}

func TestUpsert_FailsAfterFiveAttempts(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	err := c.Upsert(context.Background(), testVector())
	require.Error(t, err)
	assert.ErrorIs(t, err, vectorstore.ErrUpsertFailed)
	assert.Equal(t, 5, calls, "should attempt exactly 5 times")
}

func TestUpsert_EmptyResponseIsRetried(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, `{"upsertedCount":0}`)
			return
		}
		fmt.Fprint(w, `{"upsertedCount":1}`)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	err := c.Upsert(context.Background(), testVector())
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "an empty response counts as a failed attempt")
}

func TestUpsert_SendsNamespaceAndMetadata(t *testing.T) {
	var got upsertRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"upsertedCount":1}`)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	require.NoError(t, c.Upsert(context.Background(), testVector()))

	assert.Equal(t, "talks", got.Namespace)
	require.Len(t, got.Vectors, 1)
	assert.Equal(t, "42-0", got.Vectors[0].ID)
	assert.Equal(t, "chunk", got.Vectors[0].Metadata["text"])
}

func TestUpsert_NoVectorsIsNoop(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1") // never dialed
	assert.NoError(t, c.Upsert(context.Background()))
}

func TestQuery_ReturnsRankedMatches(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/query", r.URL.Path)

		var req queryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 15, req.TopK)
		assert.True(t, req.IncludeMetadata)

		fmt.Fprint(w, `{"matches":[
			{"id":"42-1","score":0.91,"metadata":{"title":"a","text":"first"}},
			{"id":"7-0","score":0.83,"metadata":{"title":"b","text":"second"}}
		]}`)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	matches, err := c.Query(context.Background(), []float32{0.5}, 15)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "42-1", matches[0].ID)
	assert.InDelta(t, 0.91, matches[0].Score, 1e-6)
	assert.Equal(t, "second", matches[1].Metadata["text"])
}

func TestQuery_FailurePropagatesWithoutRetry(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	_, err := c.Query(context.Background(), []float32{0.5}, 15)
	require.Error(t, err)
	assert.ErrorIs(t, err, vectorstore.ErrRetrievalFailed)
	assert.Equal(t, 1, calls, "query path never retries")
}
