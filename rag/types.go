package rag

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Document is a unit of retrievable knowledge: a piece of text with
// metadata and, once indexed, its embedding vector.
type Document struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Embedding []float32      `json:"embedding,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewDocument creates a document with a generated ID and timestamps.
func NewDocument(content string, metadata map[string]any) Document {
	now := time.Now()
	return Document{
		ID:        uuid.NewString(),
		Content:   content,
		Metadata:  metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SearchResult pairs a document with its relevance score for a query.
// Higher scores mean more relevant.
type SearchResult struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

// DocumentLoader loads documents from a source such as a file, a URL or
// a static list.
type DocumentLoader interface {
	Load(ctx context.Context) ([]Document, error)
}

// TextSplitter splits text or documents into smaller chunks suitable for
// embedding.
type TextSplitter interface {
	SplitText(text string) ([]string, error)
	SplitDocuments(docs []Document) ([]Document, error)
}

// Embedder generates embedding vectors for text.
type Embedder interface {
	// EmbedDocument embeds a single text, used for both documents and queries.
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
	// EmbedDocuments embeds a batch of texts.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	// GetDimension returns the dimensionality of produced vectors.
	GetDimension() int
}

// VectorStore stores documents with their embeddings and answers
// nearest-neighbour queries.
type VectorStore interface {
	// Add stores documents. Documents without an embedding are embedded by
	// the store if it has an embedder configured.
	Add(ctx context.Context, docs []Document) error
	// Search returns the k documents most similar to the query embedding,
	// ordered by descending score.
	Search(ctx context.Context, query []float32, k int) ([]SearchResult, error)
	// SearchWithFilter is like Search but only considers documents whose
	// metadata matches every key/value pair in filter.
	SearchWithFilter(ctx context.Context, query []float32, k int, filter map[string]any) ([]SearchResult, error)
	// Delete removes documents by ID. Unknown IDs are ignored.
	Delete(ctx context.Context, ids []string) error
	// GetStats reports the store's size and dimensionality.
	GetStats(ctx context.Context) (*VectorStoreStats, error)
	// Close releases resources held by the store.
	Close() error
}

// VectorStoreStats describes the current contents of a vector store.
type VectorStoreStats struct {
	TotalDocuments int       `json:"total_documents"`
	Dimension      int       `json:"dimension"`
	LastUpdated    time.Time `json:"last_updated"`
}

// Retriever finds the documents relevant to a query. How many documents
// come back and how they are ranked is decided at construction time.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]SearchResult, error)
}
