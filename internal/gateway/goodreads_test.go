package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GoodreadsClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewGoodreadsClient(server.URL, "test-key", 2*time.Second, zap.NewNop())
}

func TestReviewCountsSuccess(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"key":   r.URL.Query().Get("key"),
			"isbns": r.URL.Query().Get("isbns"),
		}
		// average_rating arrives as a quoted string upstream.
		w.Write([]byte(`{"books":[{"average_rating":"4.25","ratings_count":3210}]}`))
	})

	snapshot := client.ReviewCounts(context.Background(), "9780812524581")

	assert.Equal(t, "/book/review_counts.json", gotPath)
	assert.Equal(t, "test-key", gotQuery["key"])
	assert.Equal(t, "9780812524581", gotQuery["isbns"])

	require.True(t, snapshot.Available)
	assert.InDelta(t, 4.25, snapshot.AverageRating, 0.001)
	assert.Equal(t, int64(3210), snapshot.RatingsCount)
}

func TestReviewCountsBareNumberRating(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"books":[{"average_rating":3.9,"ratings_count":12}]}`))
	})

	snapshot := client.ReviewCounts(context.Background(), "9780812524581")

	require.True(t, snapshot.Available)
	assert.InDelta(t, 3.9, snapshot.AverageRating, 0.001)
}

func TestReviewCountsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	snapshot := client.ReviewCounts(context.Background(), "0000000000000")
	assert.False(t, snapshot.Available)
}

func TestReviewCountsMalformedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"books":[{`))
	})

	snapshot := client.ReviewCounts(context.Background(), "9780812524581")
	assert.False(t, snapshot.Available)
}

func TestReviewCountsEmptyBooks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"books":[]}`))
	})

	snapshot := client.ReviewCounts(context.Background(), "9780812524581")
	assert.False(t, snapshot.Available)
}

func TestReviewCountsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"books":[{"average_rating":"4.25","ratings_count":3210}]}`))
	}))
	t.Cleanup(server.Close)

	client := NewGoodreadsClient(server.URL, "test-key", 50*time.Millisecond, zap.NewNop())

	snapshot := client.ReviewCounts(context.Background(), "9780812524581")
	assert.False(t, snapshot.Available)
}

func TestReviewCountsUnreachableUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewGoodreadsClient(server.URL, "test-key", time.Second, zap.NewNop())

	snapshot := client.ReviewCounts(context.Background(), "9780812524581")
	assert.False(t, snapshot.Available)
}
