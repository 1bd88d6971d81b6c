package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
)

func TestRedisVectorStore(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	ctx := context.Background()
	s := NewRedisVectorStore(NewMockEmbedder(3), RedisVectorStoreOptions{
		Addr: mr.Addr(),
	})
	defer s.Close()

	t.Run("Add and Search", func(t *testing.T) {
		docs := []rag.Document{
			{ID: "1", Content: "hello", Embedding: []float32{1, 0, 0}},
			{ID: "2", Content: "world", Embedding: []float32{0, 1, 0}},
		}
		err := s.Add(ctx, docs)
		assert.NoError(t, err)

		results, err := s.Search(ctx, []float32{1, 0.1, 0}, 1)
		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, "1", results[0].Document.ID)
		assert.Greater(t, results[0].Score, 0.9)
	})

	t.Run("Search with Filter", func(t *testing.T) {
		docs := []rag.Document{
			{ID: "3", Content: "filtered", Embedding: []float32{0, 0, 1}, Metadata: map[string]any{"type": "special"}},
		}
		err := s.Add(ctx, docs)
		assert.NoError(t, err)

		results, err := s.SearchWithFilter(ctx, []float32{0, 0, 1}, 10, map[string]any{"type": "special"})
		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, "3", results[0].Document.ID)

		results, err = s.SearchWithFilter(ctx, []float32{0, 0, 1}, 10, map[string]any{"type": "none"})
		assert.NoError(t, err)
		assert.Len(t, results, 0)
	})

	t.Run("Add without embedding", func(t *testing.T) {
		err := s.Add(ctx, []rag.Document{{ID: "4", Content: "no emb"}})
		assert.NoError(t, err)

		stats, err := s.GetStats(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 4, stats.TotalDocuments)
		assert.Equal(t, 3, stats.Dimension)
	})

	t.Run("Survives store reopen", func(t *testing.T) {
		other := NewRedisVectorStore(nil, RedisVectorStoreOptions{Addr: mr.Addr()})
		defer other.Close()

		results, err := other.Search(ctx, []float32{1, 0, 0}, 1)
		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, "hello", results[0].Document.Content)
	})

	t.Run("Delete", func(t *testing.T) {
		err := s.Delete(ctx, []string{"1", "unknown"})
		assert.NoError(t, err)

		stats, _ := s.GetStats(ctx)
		assert.Equal(t, 3, stats.TotalDocuments)

		results, err := s.Search(ctx, []float32{1, 0, 0}, 10)
		assert.NoError(t, err)
		for _, r := range results {
			assert.NotEqual(t, "1", r.Document.ID)
		}
	})

	t.Run("Custom prefix isolates keys", func(t *testing.T) {
		isolated := NewRedisVectorStore(nil, RedisVectorStoreOptions{
			Addr:   mr.Addr(),
			Prefix: "other:",
		})
		defer isolated.Close()

		stats, err := isolated.GetStats(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, stats.TotalDocuments)
	})
}
