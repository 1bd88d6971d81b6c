package tool

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBraveSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Subscription-Token"))
		assert.Equal(t, "golang", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("count"))
		assert.Equal(t, "US", r.URL.Query().Get("country"))
		assert.Equal(t, "en", r.URL.Query().Get("search_lang"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"web": {
				"results": [
					{"title": "The Go Programming Language", "url": "https://go.dev", "description": "Build simple, secure, scalable systems."},
					{"title": "Go Wiki", "url": "https://go.dev/wiki", "description": "Community-maintained wiki."}
				]
			}
		}`))
	}))
	defer server.Close()

	brave, err := NewBraveSearch("test-key",
		WithBraveBaseURL(server.URL),
		WithBraveCount(2),
	)
	require.NoError(t, err)

	assert.Equal(t, "Brave_Search", brave.Name())
	assert.Contains(t, brave.Description(), "search query")

	result, err := brave.Call(context.Background(), "golang")
	require.NoError(t, err)
	assert.Contains(t, result, "1. Title: The Go Programming Language")
	assert.Contains(t, result, "URL: https://go.dev")
	assert.Contains(t, result, "Description: Build simple, secure, scalable systems.")
	assert.Contains(t, result, "2. Title: Go Wiki")
}

func TestBraveSearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"web": {"results": []}}`))
	}))
	defer server.Close()

	brave, err := NewBraveSearch("test-key", WithBraveBaseURL(server.URL))
	require.NoError(t, err)

	result, err := brave.Call(context.Background(), "nothing to see")
	require.NoError(t, err)
	assert.Equal(t, "No results found", result)
}

func TestBraveSearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	brave, err := NewBraveSearch("test-key", WithBraveBaseURL(server.URL))
	require.NoError(t, err)

	_, err = brave.Call(context.Background(), "golang")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "brave api returned status: 429")
}

func TestBraveSearchMissingKey(t *testing.T) {
	t.Setenv("BRAVE_API_KEY", "")

	_, err := NewBraveSearch("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "BRAVE_API_KEY not set")
}

func TestBraveSearchCountClamped(t *testing.T) {
	brave, err := NewBraveSearch("test-key", WithBraveCount(50))
	require.NoError(t, err)
	assert.Equal(t, 20, brave.count)

	brave, err = NewBraveSearch("test-key", WithBraveCount(0))
	require.NoError(t, err)
	assert.Equal(t, 1, brave.count)
}
