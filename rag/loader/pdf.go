package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/documentloaders"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
)

// PDFLoader loads a PDF file, one document per page.
type PDFLoader struct {
	filePath string
}

var _ rag.DocumentLoader = (*PDFLoader)(nil)

// NewPDFLoader creates a loader for the given PDF file.
func NewPDFLoader(filePath string) *PDFLoader {
	return &PDFLoader{filePath: filePath}
}

// Load parses the PDF and returns one document per page. Page metadata from
// the underlying parser is kept alongside the source path.
func (l *PDFLoader) Load(ctx context.Context) ([]rag.Document, error) {
	f, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", l.filePath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file %s: %w", l.filePath, err)
	}

	pages, err := documentloaders.NewPDF(f, info.Size()).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("parse pdf %s: %w", l.filePath, err)
	}

	documents := rag.FromSchemaDocuments(pages)
	for i := range documents {
		documents[i].Metadata["source"] = l.filePath
		documents[i].Metadata["type"] = "pdf"
	}
	return documents, nil
}
