// Package retriever turns queries into relevant documents by searching a
// vector store.
package retriever

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
)

// VectorRetriever embeds the query, searches a vector store and filters the
// hits by score. With MMR enabled it fetches a larger candidate set and
// re-ranks it so the returned documents are relevant but not redundant.
type VectorRetriever struct {
	store     rag.VectorStore
	embedder  rag.Embedder
	topK      int
	threshold float64
	useMMR    bool
	mmrLambda float64
	filter    map[string]any
}

var _ rag.Retriever = (*VectorRetriever)(nil)

// VectorRetrieverOption configures a VectorRetriever.
type VectorRetrieverOption func(*VectorRetriever)

// WithTopK sets how many documents Retrieve returns. Default 4.
func WithTopK(k int) VectorRetrieverOption {
	return func(r *VectorRetriever) {
		r.topK = k
	}
}

// WithScoreThreshold drops results scoring below the threshold. Default 0.5;
// 0 disables the cut.
func WithScoreThreshold(threshold float64) VectorRetrieverOption {
	return func(r *VectorRetriever) {
		r.threshold = threshold
	}
}

// WithMMR enables maximal marginal relevance re-ranking. Lambda balances
// relevance against diversity: 1 is pure relevance, 0 pure diversity.
func WithMMR(lambda float64) VectorRetrieverOption {
	return func(r *VectorRetriever) {
		r.useMMR = true
		r.mmrLambda = lambda
	}
}

// WithFilter restricts retrieval to documents whose metadata matches every
// key/value pair.
func WithFilter(filter map[string]any) VectorRetrieverOption {
	return func(r *VectorRetriever) {
		r.filter = filter
	}
}

// NewVectorRetriever creates a retriever over the given store and embedder.
func NewVectorRetriever(store rag.VectorStore, embedder rag.Embedder, opts ...VectorRetrieverOption) *VectorRetriever {
	r := &VectorRetriever{
		store:     store,
		embedder:  embedder,
		topK:      4,
		threshold: 0.5,
		mmrLambda: 0.5,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.topK <= 0 {
		r.topK = 4
	}

	return r
}

// Retrieve returns the most relevant documents for the query.
func (r *VectorRetriever) Retrieve(ctx context.Context, query string) ([]rag.SearchResult, error) {
	embedding, err := r.embedder.EmbedDocument(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	// MMR needs surplus candidates to choose diversity from; a plain search
	// is already capped at topK.
	fetchK := r.topK
	if r.useMMR {
		fetchK = r.topK * 4
	}

	var results []rag.SearchResult
	if len(r.filter) > 0 {
		results, err = r.store.SearchWithFilter(ctx, embedding, fetchK, r.filter)
	} else {
		results, err = r.store.Search(ctx, embedding, fetchK)
	}
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	if r.threshold > 0 {
		filtered := make([]rag.SearchResult, 0, len(results))
		for _, result := range results {
			if result.Score >= r.threshold {
				filtered = append(filtered, result)
			}
		}
		results = filtered
	}

	if r.useMMR {
		results = applyMMR(results, r.topK, r.mmrLambda)
	}

	return results, nil
}

// applyMMR greedily selects k results maximizing
// lambda*relevance - (1-lambda)*maxSimilarityToSelected.
func applyMMR(results []rag.SearchResult, k int, lambda float64) []rag.SearchResult {
	if len(results) <= k {
		return results
	}

	selected := make([]rag.SearchResult, 0, k)
	selected = append(selected, results[0])
	candidates := append([]rag.SearchResult(nil), results[1:]...)

	for len(selected) < k && len(candidates) > 0 {
		bestIdx := 0
		bestScore := math.Inf(-1)

		for i, candidate := range candidates {
			maxSim := 0.0
			for _, chosen := range selected {
				if sim := docSimilarity(candidate.Document, chosen.Document); sim > maxSim {
					maxSim = sim
				}
			}

			score := lambda*candidate.Score - (1-lambda)*maxSim
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}

		selected = append(selected, candidates[bestIdx])
		candidates = append(candidates[:bestIdx], candidates[bestIdx+1:]...)
	}

	return selected
}

// docSimilarity compares two documents by embedding when both carry one,
// falling back to word overlap.
func docSimilarity(a, b rag.Document) float64 {
	if len(a.Embedding) > 0 && len(b.Embedding) > 0 {
		return cosineSimilarity(a.Embedding, b.Embedding)
	}
	return jaccardSimilarity(a.Content, b.Content)
}

func cosineSimilarity(a, b []float32) float64 {
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

// jaccardSimilarity measures word-set overlap between two texts.
func jaccardSimilarity(a, b string) float64 {
	wordsA := wordSet(a)
	wordsB := wordSet(b)

	intersection := 0
	for word := range wordsA {
		if wordsB[word] {
			intersection++
		}
	}

	union := len(wordsA) + len(wordsB) - intersection
	if union == 0 {
		return 1.0
	}

	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}
