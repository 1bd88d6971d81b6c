package splitter

import (
	"fmt"
	"strings"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
)

// RecursiveCharacterTextSplitter splits text by trying a list of separators
// in order, falling back to the next one whenever a piece is still larger
// than the chunk size. Related pieces stay together as long as they fit.
type RecursiveCharacterTextSplitter struct {
	separators   []string
	chunkSize    int
	chunkOverlap int
	lengthFunc   func(string) int
}

var _ rag.TextSplitter = (*RecursiveCharacterTextSplitter)(nil)

// RecursiveCharacterTextSplitterOption configures the splitter.
type RecursiveCharacterTextSplitterOption func(*RecursiveCharacterTextSplitter)

// WithChunkSize sets the maximum chunk size. Default 1000.
func WithChunkSize(size int) RecursiveCharacterTextSplitterOption {
	return func(s *RecursiveCharacterTextSplitter) {
		s.chunkSize = size
	}
}

// WithChunkOverlap sets the overlap between consecutive chunks. Default 200.
func WithChunkOverlap(overlap int) RecursiveCharacterTextSplitterOption {
	return func(s *RecursiveCharacterTextSplitter) {
		s.chunkOverlap = overlap
	}
}

// WithSeparators replaces the separator list tried during splitting.
func WithSeparators(separators []string) RecursiveCharacterTextSplitterOption {
	return func(s *RecursiveCharacterTextSplitter) {
		s.separators = separators
	}
}

// WithLengthFunction sets a custom length function, for example a token
// counter instead of byte length.
func WithLengthFunction(fn func(string) int) RecursiveCharacterTextSplitterOption {
	return func(s *RecursiveCharacterTextSplitter) {
		s.lengthFunc = fn
	}
}

// NewRecursiveCharacterTextSplitter creates a splitter with paragraph, line,
// word and character separators.
func NewRecursiveCharacterTextSplitter(opts ...RecursiveCharacterTextSplitterOption) *RecursiveCharacterTextSplitter {
	s := &RecursiveCharacterTextSplitter{
		separators:   []string{"\n\n", "\n", " ", ""},
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
func (s *RecursiveCharacterTextSplitter) SplitText(text string) ([]string, error) {
	if s.chunkOverlap >= s.chunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", s.chunkOverlap, s.chunkSize)
	}
	return s.splitRecursive(text, s.separators), nil
}

// SplitDocuments splits each document into chunk documents.
func (s *RecursiveCharacterTextSplitter) SplitDocuments(docs []rag.Document) ([]rag.Document, error) {
	return chunkDocuments(s.SplitText, docs)
}

func (s *RecursiveCharacterTextSplitter) splitRecursive(text string, separators []string) []string {
	if s.lengthFunc(text) <= s.chunkSize {
		return []string{text}
	}

	if len(separators) == 0 {
		return s.splitByCharacter(text)
	}

	separator := separators[0]
	remaining := separators[1:]

	var splits []string
	if separator == "" {
		splits = s.splitByCharacter(text)
	} else {
		splits = strings.Split(text, separator)
	}

	// Pieces still over the limit get split again with the next separator.
	var good []string
	for _, split := range splits {
		if strings.TrimSpace(split) == "" {
			continue
		}
		if s.lengthFunc(split) <= s.chunkSize {
			good = append(good, split)
		} else {
			good = append(good, s.splitRecursive(split, remaining)...)
		}
	}

	return s.mergeSplits(good)
}

// splitByCharacter is the last resort when no separator produces small
// enough pieces.
func (s *RecursiveCharacterTextSplitter) splitByCharacter(text string) []string {
	var splits []string

	for i := 0; i < len(text); i += s.chunkSize - s.chunkOverlap {
		end := i + s.chunkSize
		if end >= len(text) {
			splits = append(splits, text[i:])
			break
		}
		splits = append(splits, text[i:end])
	}

	return splits
}

// mergeSplits greedily packs consecutive splits into chunks up to the chunk
// size.
func (s *RecursiveCharacterTextSplitter) mergeSplits(splits []string) []string {
	var merged []string
	var current string

	for _, split := range splits {
		if current == "" {
			current = split
			continue
		}

		proposed := current + "\n\n" + split
		if s.lengthFunc(proposed) <= s.chunkSize {
			current = proposed
		} else {
			merged = append(merged, current)
			current = split
		}
	}

	if current != "" {
		merged = append(merged, current)
	}

	if s.chunkOverlap > 0 && len(merged) > 1 {
		merged = s.trimOverlap(merged)
	}

	return merged
}

// trimOverlap removes text from the start of a chunk that duplicates the end
// of the previous chunk, up to the configured overlap.
func (s *RecursiveCharacterTextSplitter) trimOverlap(chunks []string) []string {
	trimmed := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		if i == 0 {
			trimmed = append(trimmed, chunk)
			continue
		}

		if overlap := s.findOverlap(chunks[i-1], chunk); overlap != "" {
			chunk = strings.TrimSpace(strings.TrimPrefix(chunk, overlap))
		}
		trimmed = append(trimmed, chunk)
	}

	return trimmed
}

// findOverlap returns the longest prefix of text2 that also ends text1,
// bounded by the configured overlap.
func (s *RecursiveCharacterTextSplitter) findOverlap(text1, text2 string) string {
	for overlap := min(s.chunkOverlap, len(text1), len(text2)); overlap > 0; overlap-- {
		end := strings.TrimSpace(text1[len(text1)-overlap:])
		start := strings.TrimSpace(text2[:overlap])
		if end == start {
			return text2[:overlap]
		}
	}

	return ""
}
