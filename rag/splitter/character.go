package splitter

import (
	"fmt"
	"strings"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
)

// CharacterTextSplitter splits text on a single separator and packs the
// pieces into chunks. With an empty separator it falls back to fixed-size
// character windows with overlap.
type CharacterTextSplitter struct {
	separator    string
	chunkSize    int
	chunkOverlap int
	lengthFunc   func(string) int
}

var _ rag.TextSplitter = (*CharacterTextSplitter)(nil)

// CharacterTextSplitterOption configures the splitter.
type CharacterTextSplitterOption func(*CharacterTextSplitter)

// WithCharacterSeparator sets the separator. Default "\n".
func WithCharacterSeparator(separator string) CharacterTextSplitterOption {
	return func(s *CharacterTextSplitter) {
		s.separator = separator
	}
}

// WithCharacterChunkSize sets the maximum chunk size. Default 1000.
func WithCharacterChunkSize(size int) CharacterTextSplitterOption {
	return func(s *CharacterTextSplitter) {
		s.chunkSize = size
	}
}

// WithCharacterChunkOverlap sets the overlap used in character-window mode.
// Default 200.
func WithCharacterChunkOverlap(overlap int) CharacterTextSplitterOption {
	return func(s *CharacterTextSplitter) {
		s.chunkOverlap = overlap
	}
}

// NewCharacterTextSplitter creates a splitter that chunks on newlines.
func NewCharacterTextSplitter(opts ...CharacterTextSplitterOption) *CharacterTextSplitter {
	s := &CharacterTextSplitter{
		separator:    "\n",
		chunkSize:    1000,
		chunkOverlap: 200,
		lengthFunc:   func(s string) int { return len(s) },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SplitText splits text into chunks no larger than the chunk size.
func (s *CharacterTextSplitter) SplitText(text string) ([]string, error) {
	if s.chunkOverlap >= s.chunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", s.chunkOverlap, s.chunkSize)
	}
	if s.separator == "" {
		return s.splitByCharacterCount(text), nil
	}
	return s.splitBySeparator(text), nil
}

// SplitDocuments splits each document into chunk documents.
func (s *CharacterTextSplitter) SplitDocuments(docs []rag.Document) ([]rag.Document, error) {
	return chunkDocuments(s.SplitText, docs)
}

func (s *CharacterTextSplitter) splitBySeparator(text string) []string {
	var chunks []string
	var current string

	for _, split := range strings.Split(text, s.separator) {
		if s.lengthFunc(current)+s.lengthFunc(split)+len(s.separator) <= s.chunkSize {
			if current != "" {
				current += s.separator + split
			} else {
				current = split
			}
		} else {
			if current != "" {
				chunks = append(chunks, current)
			}
			current = split
		}
	}

	if current != "" {
		chunks = append(chunks, current)
	}

	return chunks
}

func (s *CharacterTextSplitter) splitByCharacterCount(text string) []string {
	var chunks []string

	for i := 0; i < len(text); i += s.chunkSize - s.chunkOverlap {
		end := i + s.chunkSize
		if end >= len(text) {
			chunks = append(chunks, text[i:])
			break
		}
		chunks = append(chunks, text[i:end])
	}

	return chunks
}
