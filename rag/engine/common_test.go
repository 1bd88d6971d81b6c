package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
)

// mockModel replays scripted replies in order and records every prompt it
// was asked to complete.
type mockModel struct {
	replies []string
	chunks  []string
	err     error

	calls   int
	prompts []string
}

var _ llms.Model = (*mockModel)(nil)

func (m *mockModel) Call(ctx context.Context, prompt string, opts ...llms.CallOption) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.prompts = append(m.prompts, prompt)
	if m.calls >= len(m.replies) {
		return "", fmt.Errorf("no reply scripted for call %d", m.calls+1)
	}
	reply := m.replies[m.calls]
	m.calls++
	return reply, nil
}

func (m *mockModel) Stream(ctx context.Context, prompt string, opts ...llms.CallOption) (llms.TokenStream, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.prompts = append(m.prompts, prompt)
	return &sliceStream{chunks: m.chunks}, nil
}

// sliceStream yields its chunks one Recv at a time.
type sliceStream struct {
	chunks []string
	pos    int
	closed bool
}

func (s *sliceStream) Recv() (string, error) {
	if s.closed || s.pos >= len(s.chunks) {
		return "", io.EOF
	}
	chunk := s.chunks[s.pos]
	s.pos++
	return chunk, nil
}

func (s *sliceStream) Close() error {
	s.closed = true
	return nil
}

// mockRetriever returns fixed results and records queries.
type mockRetriever struct {
	results []rag.SearchResult
	err     error
	queries []string
}

var _ rag.Retriever = (*mockRetriever)(nil)

func (m *mockRetriever) Retrieve(ctx context.Context, query string) ([]rag.SearchResult, error) {
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

// mockTool records inputs and returns a fixed result.
type mockTool struct {
	name        string
	description string
	result      string
	err         error
	inputs      []string
}

func (t *mockTool) Name() string        { return t.name }
func (t *mockTool) Description() string { return t.description }

func (t *mockTool) Call(ctx context.Context, input string) (string, error) {
	t.inputs = append(t.inputs, input)
	if t.err != nil {
		return "", t.err
	}
	return t.result, nil
}

// searchResults builds descending-score results with source metadata.
func searchResults(contents ...string) []rag.SearchResult {
	results := make([]rag.SearchResult, len(contents))
	for i, content := range contents {
		results[i] = rag.SearchResult{
			Document: rag.Document{
				ID:       fmt.Sprintf("doc-%d", i+1),
				Content:  content,
				Metadata: map[string]any{"source": fmt.Sprintf("doc-%d.txt", i+1)},
			},
			Score: 0.9 - float64(i)*0.1,
		}
	}
	return results
}
