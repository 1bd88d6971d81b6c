package loader

import (
	"context"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
)

// StaticLoader returns a fixed set of documents. Useful for tests and for
// feeding pre-built documents through a pipeline that expects a loader.
type StaticLoader struct {
	documents []rag.Document
}

var _ rag.DocumentLoader = (*StaticLoader)(nil)

// NewStaticLoader creates a loader that returns the given documents.
func NewStaticLoader(documents []rag.Document) *StaticLoader {
	return &StaticLoader{documents: documents}
}

// NewStaticLoaderFromTexts creates a loader from raw strings. Each string
// becomes one document carrying the shared metadata.
func NewStaticLoaderFromTexts(texts []string, metadata map[string]any) *StaticLoader {
	documents := make([]rag.Document, 0, len(texts))
	for _, text := range texts {
		documents = append(documents, rag.NewDocument(text, metadata))
	}
	return &StaticLoader{documents: documents}
}

// Load returns the stored documents.
func (l *StaticLoader) Load(ctx context.Context) ([]rag.Document, error) {
	return l.documents, nil
}
