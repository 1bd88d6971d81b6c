package loader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
)

// TextLoader loads a plain text file as a single document.
type TextLoader struct {
	filePath string
	metadata map[string]any
}

var _ rag.DocumentLoader = (*TextLoader)(nil)

// TextLoaderOption configures a TextLoader.
type TextLoaderOption func(*TextLoader)

// WithMetadata adds metadata to every loaded document.
func WithMetadata(metadata map[string]any) TextLoaderOption {
	return func(l *TextLoader) {
		maps.Copy(l.metadata, metadata)
	}
}

// NewTextLoader creates a loader for the given text file.
func NewTextLoader(filePath string, opts ...TextLoaderOption) *TextLoader {
	l := &TextLoader{
		filePath: filePath,
		metadata: map[string]any{
			"source": filePath,
			"type":   "text",
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the file and returns it as one document.
func (l *TextLoader) Load(ctx context.Context) ([]rag.Document, error) {
	content, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", l.filePath, err)
	}

	metadata := make(map[string]any, len(l.metadata))
	maps.Copy(metadata, l.metadata)

	return []rag.Document{rag.NewDocument(string(content), metadata)}, nil
}

// TextByParagraphsLoader loads a text file as one document per paragraph.
type TextByParagraphsLoader struct {
	filePath        string
	metadata        map[string]any
	paragraphMarker string
}

var _ rag.DocumentLoader = (*TextByParagraphsLoader)(nil)

// TextByParagraphsLoaderOption configures a TextByParagraphsLoader.
type TextByParagraphsLoaderOption func(*TextByParagraphsLoader)

// WithParagraphMarker sets the string separating paragraphs. Default "\n\n".
func WithParagraphMarker(marker string) TextByParagraphsLoaderOption {
	return func(l *TextByParagraphsLoader) {
		l.paragraphMarker = marker
	}
}

// NewTextByParagraphsLoader creates a paragraph-splitting loader for the
// given text file.
func NewTextByParagraphsLoader(filePath string, opts ...TextByParagraphsLoaderOption) *TextByParagraphsLoader {
	l := &TextByParagraphsLoader{
		filePath: filePath,
		metadata: map[string]any{
			"source": filePath,
			"type":   "text",
		},
		paragraphMarker: "\n\n",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the file and returns one document per non-empty paragraph.
// Paragraph numbers are recorded in metadata.
func (l *TextByParagraphsLoader) Load(ctx context.Context) ([]rag.Document, error) {
	content, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", l.filePath, err)
	}

	var documents []rag.Document
	for i, paragraph := range strings.Split(string(content), l.paragraphMarker) {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		metadata := make(map[string]any, len(l.metadata)+1)
		maps.Copy(metadata, l.metadata)
		metadata["paragraph"] = i

		documents = append(documents, rag.NewDocument(paragraph, metadata))
	}

	return documents, nil
}
