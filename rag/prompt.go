package rag

import (
	"fmt"
	"strings"
)

// DefaultSystemPrompt is the system message used when a prompt template
// does not override it.
const DefaultSystemPrompt = "You are a helpful assistant. Answer the question based on the provided context. If you cannot answer based on the context, say so."

// defaultTemplate interpolates the retrieved context and the question.
const defaultTemplate = "Context:\n%s\n\nQuestion: %s\n\nAnswer:"

// PromptTemplate builds the prompt sent to the model from retrieved
// documents and the user's question. Template must contain two %s verbs:
// the first receives the formatted context, the second the question.
type PromptTemplate struct {
	System   string
	Template string
}

// DefaultPromptTemplate returns the standard grounded-answer template.
func DefaultPromptTemplate() *PromptTemplate {
	return &PromptTemplate{
		System:   DefaultSystemPrompt,
		Template: defaultTemplate,
	}
}

// Format renders the prompt for a question over the given documents.
func (t *PromptTemplate) Format(question string, docs []Document) string {
	return fmt.Sprintf(t.Template, FormatContext(docs), question)
}

// FormatContext renders documents as a numbered context block, one entry
// per document with its source when known.
func FormatContext(docs []Document) string {
	parts := make([]string, 0, len(docs))
	for i, doc := range docs {
		source := "Unknown"
		if s, ok := doc.Metadata["source"]; ok {
			source = fmt.Sprintf("%v", s)
		}
		parts = append(parts, fmt.Sprintf("[%d] Source: %s\nContent: %s", i+1, source, doc.Content))
	}
	return strings.Join(parts, "\n\n")
}
