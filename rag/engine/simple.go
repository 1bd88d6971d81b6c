package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/log"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag/splitter"
)

// SimpleRAG is the basic retrieval-augmented generation pattern: retrieve
// the most relevant documents, fold them into a prompt and generate a
// grounded answer. Each query stands alone; nothing is remembered between
// calls.
type SimpleRAG struct {
	model       llms.Model
	retriever   rag.Retriever
	prompt      *rag.PromptTemplate
	splitter    rag.TextSplitter
	vectorStore rag.VectorStore
	logger      log.Logger
}

// NewSimpleRAG creates a simple RAG engine over the given model and
// retriever. Pass WithVectorStore to enable ingestion.
func NewSimpleRAG(model llms.Model, ret rag.Retriever, opts ...Option) *SimpleRAG {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.splitter == nil {
		o.splitter = splitter.NewRecursiveCharacterTextSplitter()
	}

	return &SimpleRAG{
		model:       model,
		retriever:   ret,
		prompt:      o.prompt,
		splitter:    o.splitter,
		vectorStore: o.vectorStore,
		logger:      o.logger,
	}
}

// Ingest loads documents from the loader, splits them into chunks and adds
// them to the vector store. It returns the number of chunks indexed.
func (e *SimpleRAG) Ingest(ctx context.Context, loader rag.DocumentLoader) (int, error) {
	docs, err := loader.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load documents: %w", err)
	}
	return e.IngestDocuments(ctx, docs)
}

// IngestDocuments splits the given documents into chunks and adds them to
// the vector store. It returns the number of chunks indexed.
func (e *SimpleRAG) IngestDocuments(ctx context.Context, docs []rag.Document) (int, error) {
	if e.vectorStore == nil {
		return 0, fmt.Errorf("no vector store configured for ingestion")
	}

	chunks, err := e.splitter.SplitDocuments(docs)
	if err != nil {
		return 0, fmt.Errorf("split documents: %w", err)
	}

	if err := e.vectorStore.Add(ctx, chunks); err != nil {
		return 0, fmt.Errorf("failed to add documents to vector store: %w", err)
	}

	e.logger.Info("simple rag: indexed %d chunks from %d documents", len(chunks), len(docs))
	return len(chunks), nil
}

// Query retrieves context for the question and generates a grounded answer.
// When retrieval comes back empty the engine answers without calling the
// model.
func (e *SimpleRAG) Query(ctx context.Context, question string, opts ...llms.CallOption) (*Result, error) {
	start := time.Now()

	results, err := e.retriever.Retrieve(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	e.logger.Debug("simple rag: %d documents retrieved for %q", len(results), question)

	if len(results) == 0 {
		return &Result{
			Query:        question,
			Answer:       noRelevantInformation,
			Sources:      []rag.SearchResult{},
			ResponseTime: time.Since(start),
		}, nil
	}

	answer, err := e.model.Call(ctx, e.prompt.Format(question, documentsOf(results)), opts...)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &Result{
		Query:        question,
		Answer:       answer,
		Sources:      results,
		ResponseTime: time.Since(start),
	}, nil
}

// StreamQuery is Query with a streamed answer. The sources are returned
// immediately; the caller drains and closes the stream.
func (e *SimpleRAG) StreamQuery(ctx context.Context, question string, opts ...llms.CallOption) (*StreamResult, error) {
	results, err := e.retriever.Retrieve(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	e.logger.Debug("simple rag: %d documents retrieved for %q", len(results), question)

	if len(results) == 0 {
		return &StreamResult{
			Query:   question,
			Sources: []rag.SearchResult{},
			Stream:  &staticStream{text: noRelevantInformation},
		}, nil
	}

	stream, err := e.model.Stream(ctx, e.prompt.Format(question, documentsOf(results)), opts...)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &StreamResult{
		Query:   question,
		Sources: results,
		Stream:  stream,
	}, nil
}
