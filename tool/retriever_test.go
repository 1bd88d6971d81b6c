package tool

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
)

type stubRetriever struct {
	results   []rag.SearchResult
	err       error
	lastQuery string
}

func (r *stubRetriever) Retrieve(_ context.Context, query string) ([]rag.SearchResult, error) {
	r.lastQuery = query
	if r.err != nil {
		return nil, r.err
	}
	return r.results, nil
}

func TestKnowledgeBaseTool(t *testing.T) {
	retriever := &stubRetriever{
		results: []rag.SearchResult{
			{
				Document: rag.Document{
					Content:  "Go is a statically typed language.",
					Metadata: map[string]any{"source": "go-intro.txt"},
				},
				Score: 0.92,
			},
			{
				Document: rag.Document{
					Content: "Goroutines are lightweight threads.",
				},
				Score: 0.81,
			},
		},
	}

	kb := NewKnowledgeBaseTool(retriever)
	assert.Equal(t, "Knowledge_Base", kb.Name())
	assert.Contains(t, kb.Description(), "search query")

	t.Run("Raw query", func(t *testing.T) {
		result, err := kb.Call(context.Background(), "what is go")
		require.NoError(t, err)
		assert.Equal(t, "what is go", retriever.lastQuery)
		assert.Contains(t, result, "1. Source: go-intro.txt (score 0.92)")
		assert.Contains(t, result, "Go is a statically typed language.")
		assert.Contains(t, result, "2. Source: Unknown (score 0.81)")
		assert.Contains(t, result, "Goroutines are lightweight threads.")
	})

	t.Run("JSON query", func(t *testing.T) {
		result, err := kb.Call(context.Background(), `{"query": "goroutines"}`)
		require.NoError(t, err)
		assert.Equal(t, "goroutines", retriever.lastQuery)
		assert.Contains(t, result, "1. Source:")
	})

	t.Run("Empty input", func(t *testing.T) {
		_, err := kb.Call(context.Background(), "   ")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "empty query")
	})
}

func TestKnowledgeBaseToolNoResults(t *testing.T) {
	kb := NewKnowledgeBaseTool(&stubRetriever{})

	result, err := kb.Call(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "No results found", result)
}

func TestKnowledgeBaseToolRetrieverError(t *testing.T) {
	kb := NewKnowledgeBaseTool(&stubRetriever{err: fmt.Errorf("store is down")})

	_, err := kb.Call(context.Background(), "anything")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "knowledge base search failed")
	assert.Contains(t, err.Error(), "store is down")
}

func TestKnowledgeBaseToolOptions(t *testing.T) {
	kb := NewKnowledgeBaseTool(&stubRetriever{},
		WithToolName("Product_Docs"),
		WithToolDescription("Searches the product documentation."),
	)

	assert.Equal(t, "Product_Docs", kb.Name())
	assert.Equal(t, "Searches the product documentation.", kb.Description())
}
