package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatContext(t *testing.T) {
	docs := []Document{
		{Content: "Paris is the capital of France.", Metadata: map[string]any{"source": "geo.txt"}},
		{Content: "France is in Europe."},
	}

	got := FormatContext(docs)
	want := "[1] Source: geo.txt\nContent: Paris is the capital of France.\n\n[2] Source: Unknown\nContent: France is in Europe."
	assert.Equal(t, want, got)
}

func TestFormatContextEmpty(t *testing.T) {
	assert.Equal(t, "", FormatContext(nil))
}

func TestPromptTemplateFormat(t *testing.T) {
	tmpl := DefaultPromptTemplate()
	docs := []Document{{Content: "The sky is blue.", Metadata: map[string]any{"source": "facts"}}}

	got := tmpl.Format("What color is the sky?", docs)
	want := "Context:\n[1] Source: facts\nContent: The sky is blue.\n\nQuestion: What color is the sky?\n\nAnswer:"
	assert.Equal(t, want, got)
	assert.Equal(t, DefaultSystemPrompt, tmpl.System)
}

func TestPromptTemplateCustom(t *testing.T) {
	tmpl := &PromptTemplate{
		System:   "Answer tersely.",
		Template: "Docs: %s | Q: %s",
	}

	got := tmpl.Format("why?", []Document{{Content: "because"}})
	assert.Equal(t, "Docs: [1] Source: Unknown\nContent: because | Q: why?", got)
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("hello", map[string]any{"source": "test"})
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "hello", doc.Content)
	assert.False(t, doc.CreatedAt.IsZero())
	assert.Equal(t, doc.CreatedAt, doc.UpdatedAt)

	other := NewDocument("hello", nil)
	assert.NotEqual(t, doc.ID, other.ID)
}
