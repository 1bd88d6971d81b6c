package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/tools"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
)

// KnowledgeBaseTool exposes a retriever as an agent tool. The input is a
// search query, either raw text or a JSON object with a "query" field; the
// output lists the matching documents with their sources and scores.
type KnowledgeBaseTool struct {
	retriever   rag.Retriever
	name        string
	description string
}

var _ tools.Tool = (*KnowledgeBaseTool)(nil)

// KnowledgeBaseOption configures a KnowledgeBaseTool.
type KnowledgeBaseOption func(*KnowledgeBaseTool)

// WithToolName overrides the tool name shown to the model.
func WithToolName(name string) KnowledgeBaseOption {
	return func(t *KnowledgeBaseTool) {
		t.name = name
	}
}

// WithToolDescription overrides the description shown to the model.
func WithToolDescription(description string) KnowledgeBaseOption {
	return func(t *KnowledgeBaseTool) {
		t.description = description
	}
}

// NewKnowledgeBaseTool wraps a retriever as a tool.
func NewKnowledgeBaseTool(retriever rag.Retriever, opts ...KnowledgeBaseOption) *KnowledgeBaseTool {
	t := &KnowledgeBaseTool{
		retriever: retriever,
		name:      "Knowledge_Base",
		description: "Searches the ingested document collection. " +
			"Useful for answering questions about the indexed content. " +
			"Input should be a search query.",
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Name returns the name of the tool.
func (t *KnowledgeBaseTool) Name() string {
	return t.name
}

// Description returns the description of the tool.
func (t *KnowledgeBaseTool) Description() string {
	return t.description
}

// Call searches the knowledge base.
func (t *KnowledgeBaseTool) Call(ctx context.Context, input string) (string, error) {
	query := strings.TrimSpace(input)

	// Models sometimes wrap the query in JSON; accept that too.
	if strings.HasPrefix(query, "{") {
		var payload struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal([]byte(query), &payload); err == nil && payload.Query != "" {
			query = payload.Query
		}
	}

	if query == "" {
		return "", fmt.Errorf("empty query")
	}

	results, err := t.retriever.Retrieve(ctx, query)
	if err != nil {
		return "", fmt.Errorf("knowledge base search failed: %w", err)
	}

	if len(results) == 0 {
		return "No results found", nil
	}

	var sb strings.Builder
	for i, result := range results {
		source := "Unknown"
		if s, ok := result.Document.Metadata["source"].(string); ok && s != "" {
			source = s
		}

		sb.WriteString(fmt.Sprintf("%d. Source: %s (score %.2f)\n%s\n\n",
			i+1, source, result.Score, result.Document.Content))
	}

	return sb.String(), nil
}
