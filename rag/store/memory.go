package store

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
)

// MemoryVectorStore keeps documents and their embeddings in process memory.
// Search is a brute-force cosine scan, which is plenty for corpora that fit
// in RAM.
type MemoryVectorStore struct {
	mu       sync.RWMutex
	docs     []rag.Document
	embedder rag.Embedder
}

var _ rag.VectorStore = (*MemoryVectorStore)(nil)

// NewMemoryVectorStore creates an empty in-memory store. The embedder is
// used for documents added without an embedding; it may be nil when every
// document arrives pre-embedded.
func NewMemoryVectorStore(embedder rag.Embedder) *MemoryVectorStore {
	return &MemoryVectorStore{embedder: embedder}
}

// Add stores documents, embedding any that do not carry a vector yet.
func (s *MemoryVectorStore) Add(ctx context.Context, docs []rag.Document) error {
	prepared := make([]rag.Document, 0, len(docs))
	for _, doc := range docs {
		if len(doc.Embedding) == 0 {
			if s.embedder == nil {
				return fmt.Errorf("document %s has no embedding and no embedder is configured", doc.ID)
			}
			embedding, err := s.embedder.EmbedDocument(ctx, doc.Content)
			if err != nil {
				return fmt.Errorf("failed to embed document %s: %w", doc.ID, err)
			}
			doc.Embedding = embedding
		}
		prepared = append(prepared, doc)
	}

	s.mu.Lock()
	s.docs = append(s.docs, prepared...)
	s.mu.Unlock()
	return nil
}

// Search returns the k documents most similar to the query embedding.
func (s *MemoryVectorStore) Search(ctx context.Context, query []float32, k int) ([]rag.SearchResult, error) {
	return s.SearchWithFilter(ctx, query, k, nil)
}

// SearchWithFilter is Search restricted to documents whose metadata matches
// every key/value pair in filter.
func (s *MemoryVectorStore) SearchWithFilter(ctx context.Context, query []float32, k int, filter map[string]any) ([]rag.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]rag.SearchResult, 0, len(s.docs))
	for _, doc := range s.docs {
		if !matchesFilter(doc, filter) {
			continue
		}
		results = append(results, rag.SearchResult{
			Document: doc,
			Score:    cosineSimilarity32(query, doc.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Delete removes documents by ID. Unknown IDs are ignored.
func (s *MemoryVectorStore) Delete(ctx context.Context, ids []string) error {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.docs[:0]
	for _, doc := range s.docs {
		if !drop[doc.ID] {
			kept = append(kept, doc)
		}
	}
	s.docs = kept
	return nil
}

// GetStats reports the store's size and dimensionality.
func (s *MemoryVectorStore) GetStats(ctx context.Context) (*rag.VectorStoreStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &rag.VectorStoreStats{
		TotalDocuments: len(s.docs),
		LastUpdated:    time.Now(),
	}
	if len(s.docs) > 0 {
		stats.Dimension = len(s.docs[0].Embedding)
	}
	return stats, nil
}

// Close drops all stored documents.
func (s *MemoryVectorStore) Close() error {
	s.mu.Lock()
	s.docs = nil
	s.mu.Unlock()
	return nil
}

// matchesFilter reports whether the document's metadata contains every
// key/value pair in filter. A nil filter matches everything.
func matchesFilter(doc rag.Document, filter map[string]any) bool {
	for key, want := range filter {
		if got, ok := doc.Metadata[key]; !ok || got != want {
			return false
		}
	}
	return true
}

// cosineSimilarity32 computes cosine similarity between two float32 vectors,
// accumulating in float64. Mismatched or zero-norm vectors score 0.
func cosineSimilarity32(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
