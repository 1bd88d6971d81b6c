package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag/loader"
	vecstore "github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag/store"
)

func TestSimpleRAG_Query(t *testing.T) {
	model := &mockModel{replies: []string{"Paris is the capital of France."}}
	ret := &mockRetriever{results: searchResults(
		"Paris has been the capital of France since 987.",
		"France is a country in Western Europe.",
	)}

	eng := NewSimpleRAG(model, ret)
	result, err := eng.Query(context.Background(), "What is the capital of France?")

	assert.NoError(t, err)
	assert.Equal(t, "Paris is the capital of France.", result.Answer)
	assert.Equal(t, "What is the capital of France?", result.Query)
	assert.Len(t, result.Sources, 2)
	assert.Empty(t, result.Steps)

	// The prompt grounds the question in the retrieved documents
	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "Context:")
	assert.Contains(t, model.prompts[0], "[1] Source: doc-1.txt")
	assert.Contains(t, model.prompts[0], "Paris has been the capital of France since 987.")
	assert.Contains(t, model.prompts[0], "Question: What is the capital of France?")

	assert.Equal(t, []string{"What is the capital of France?"}, ret.queries)
}

func TestSimpleRAG_QueryNoResults(t *testing.T) {
	model := &mockModel{replies: []string{"should never be used"}}
	ret := &mockRetriever{}

	eng := NewSimpleRAG(model, ret)
	result, err := eng.Query(context.Background(), "Anything?")

	assert.NoError(t, err)
	assert.Equal(t, "No relevant information found.", result.Answer)
	assert.Empty(t, result.Sources)
	// The model is not consulted without context
	assert.Equal(t, 0, model.calls)
}

func TestSimpleRAG_QueryRetrieverError(t *testing.T) {
	model := &mockModel{}
	ret := &mockRetriever{err: errors.New("index unavailable")}

	eng := NewSimpleRAG(model, ret)
	result, err := eng.Query(context.Background(), "Anything?")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "retrieve context")
	assert.Contains(t, err.Error(), "index unavailable")
}

func TestSimpleRAG_QueryModelError(t *testing.T) {
	model := &mockModel{err: errors.New("server unreachable")}
	ret := &mockRetriever{results: searchResults("some context")}

	eng := NewSimpleRAG(model, ret)
	_, err := eng.Query(context.Background(), "Anything?")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "generate answer")
}

func TestSimpleRAG_StreamQuery(t *testing.T) {
	model := &mockModel{chunks: []string{"Paris ", "is the ", "capital."}}
	ret := &mockRetriever{results: searchResults("Paris is the capital of France.")}

	eng := NewSimpleRAG(model, ret)
	result, err := eng.StreamQuery(context.Background(), "Capital of France?")

	require.NoError(t, err)
	assert.Len(t, result.Sources, 1)

	answer, err := llms.ReadAll(result.Stream)
	assert.NoError(t, err)
	assert.Equal(t, "Paris is the capital.", answer)
}

func TestSimpleRAG_StreamQueryNoResults(t *testing.T) {
	model := &mockModel{}
	ret := &mockRetriever{}

	eng := NewSimpleRAG(model, ret)
	result, err := eng.StreamQuery(context.Background(), "Anything?")

	require.NoError(t, err)
	assert.Empty(t, result.Sources)

	answer, err := llms.ReadAll(result.Stream)
	assert.NoError(t, err)
	assert.Equal(t, "No relevant information found.", answer)
}

func TestSimpleRAG_Ingest(t *testing.T) {
	embedder := vecstore.NewMockEmbedder(64)
	vs := vecstore.NewMemoryVectorStore(embedder)
	defer vs.Close()

	eng := NewSimpleRAG(&mockModel{}, &mockRetriever{}, WithVectorStore(vs))

	ld := loader.NewStaticLoaderFromTexts([]string{
		"Go is a statically typed language.",
		"Goroutines are lightweight threads.",
	}, map[string]any{"source": "notes.txt"})

	count, err := eng.Ingest(context.Background(), ld)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	stats, err := vs.GetStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.TotalDocuments)
}

func TestSimpleRAG_IngestNoVectorStore(t *testing.T) {
	eng := NewSimpleRAG(&mockModel{}, &mockRetriever{})

	_, err := eng.IngestDocuments(context.Background(), []rag.Document{
		rag.NewDocument("some text", nil),
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no vector store configured")
}

type failingLoader struct{}

func (failingLoader) Load(ctx context.Context) ([]rag.Document, error) {
	return nil, errors.New("file missing")
}

func TestSimpleRAG_IngestLoaderError(t *testing.T) {
	embedder := vecstore.NewMockEmbedder(64)
	vs := vecstore.NewMemoryVectorStore(embedder)
	defer vs.Close()

	eng := NewSimpleRAG(&mockModel{}, &mockRetriever{}, WithVectorStore(vs))

	_, err := eng.Ingest(context.Background(), failingLoader{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "load documents")
}
