package rag

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
	"github.com/tmc/langchaingo/vectorstores"
)

// FromSchemaDocuments converts langchaingo documents to Documents. Each
// document gets a generated ID; metadata is copied as-is.
func FromSchemaDocuments(schemaDocs []schema.Document) []Document {
	docs := make([]Document, len(schemaDocs))
	for i, sd := range schemaDocs {
		metadata := make(map[string]any, len(sd.Metadata))
		maps.Copy(metadata, sd.Metadata)
		docs[i] = NewDocument(sd.PageContent, metadata)
	}
	return docs
}

// ToSchemaDocuments converts Documents to langchaingo documents.
func ToSchemaDocuments(docs []Document) []schema.Document {
	schemaDocs := make([]schema.Document, len(docs))
	for i, doc := range docs {
		schemaDocs[i] = schema.Document{
			PageContent: doc.Content,
			Metadata:    doc.Metadata,
		}
	}
	return schemaDocs
}

// LangChainLoader adapts a langchaingo documentloaders.Loader to the
// DocumentLoader interface.
type LangChainLoader struct {
	loader documentloaders.Loader
}

var _ DocumentLoader = (*LangChainLoader)(nil)

// NewLangChainLoader wraps a langchaingo document loader.
func NewLangChainLoader(loader documentloaders.Loader) *LangChainLoader {
	return &LangChainLoader{loader: loader}
}

// Load loads documents through the wrapped loader.
func (l *LangChainLoader) Load(ctx context.Context) ([]Document, error) {
	schemaDocs, err := l.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("langchain loader: %w", err)
	}
	return FromSchemaDocuments(schemaDocs), nil
}

// LangChainSplitter adapts a langchaingo textsplitter.TextSplitter to the
// TextSplitter interface.
type LangChainSplitter struct {
	splitter textsplitter.TextSplitter
}

var _ TextSplitter = (*LangChainSplitter)(nil)

// NewLangChainSplitter wraps a langchaingo text splitter.
func NewLangChainSplitter(splitter textsplitter.TextSplitter) *LangChainSplitter {
	return &LangChainSplitter{splitter: splitter}
}

// SplitText splits text through the wrapped splitter.
func (s *LangChainSplitter) SplitText(text string) ([]string, error) {
	return s.splitter.SplitText(text)
}

// SplitDocuments splits each document into chunk documents carrying
// chunk_index, chunk_total and parent_id metadata.
func (s *LangChainSplitter) SplitDocuments(docs []Document) ([]Document, error) {
	var chunks []Document
	for _, doc := range docs {
		texts, err := s.splitter.SplitText(doc.Content)
		if err != nil {
			return nil, fmt.Errorf("split document %s: %w", doc.ID, err)
		}

		for i, text := range texts {
			metadata := make(map[string]any, len(doc.Metadata)+3)
			maps.Copy(metadata, doc.Metadata)
			metadata["chunk_index"] = i
			metadata["chunk_total"] = len(texts)
			metadata["parent_id"] = doc.ID

			chunks = append(chunks, Document{
				ID:        fmt.Sprintf("%s_chunk_%d", doc.ID, i),
				Content:   text,
				Metadata:  metadata,
				CreatedAt: doc.CreatedAt,
				UpdatedAt: doc.UpdatedAt,
			})
		}
	}
	return chunks, nil
}

// LangChainEmbedder adapts a langchaingo embeddings.Embedder to the
// Embedder interface.
type LangChainEmbedder struct {
	embedder embeddings.Embedder

	probeOnce sync.Once
	dimension int
}

var _ Embedder = (*LangChainEmbedder)(nil)

// NewLangChainEmbedder wraps a langchaingo embedder.
func NewLangChainEmbedder(embedder embeddings.Embedder) *LangChainEmbedder {
	return &LangChainEmbedder{embedder: embedder}
}

// EmbedDocument embeds a single text.
func (e *LangChainEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return e.embedder.EmbedQuery(ctx, text)
}

// EmbedDocuments embeds a batch of texts.
func (e *LangChainEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return e.embedder.EmbedDocuments(ctx, texts)
}

// GetDimension probes the wrapped embedder once to determine the vector
// dimension. Returns 0 if the probe fails.
func (e *LangChainEmbedder) GetDimension() int {
	e.probeOnce.Do(func() {
		embedding, err := e.embedder.EmbedQuery(context.Background(), "dimension probe")
		if err != nil {
			return
		}
		e.dimension = len(embedding)
	})
	return e.dimension
}

// LangChainRetriever adapts a langchaingo vectorstores.VectorStore to the
// Retriever interface. The store does its own embedding, so queries are
// passed through as text.
type LangChainRetriever struct {
	store vectorstores.VectorStore
	topK  int
}

var _ Retriever = (*LangChainRetriever)(nil)

// NewLangChainRetriever wraps a langchaingo vector store as a retriever
// returning the topK most similar documents per query.
func NewLangChainRetriever(store vectorstores.VectorStore, topK int) *LangChainRetriever {
	if topK <= 0 {
		topK = 4
	}
	return &LangChainRetriever{store: store, topK: topK}
}

// Retrieve runs a similarity search for the query.
func (r *LangChainRetriever) Retrieve(ctx context.Context, query string) ([]SearchResult, error) {
	schemaDocs, err := r.store.SimilaritySearch(ctx, query, r.topK)
	if err != nil {
		return nil, fmt.Errorf("langchain similarity search: %w", err)
	}

	results := make([]SearchResult, len(schemaDocs))
	for i, sd := range schemaDocs {
		docs := FromSchemaDocuments([]schema.Document{sd})
		results[i] = SearchResult{
			Document: docs[0],
			Score:    float64(sd.Score),
		}
	}
	return results, nil
}
