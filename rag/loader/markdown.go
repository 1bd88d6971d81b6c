package loader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
)

// MarkdownLoader loads a Markdown file and splits it into one document per
// heading section. The markdown is rendered to HTML and sanitized first, so
// raw HTML embedded in the file cannot carry scripts into the corpus.
type MarkdownLoader struct {
	filePath string
}

var _ rag.DocumentLoader = (*MarkdownLoader)(nil)

// NewMarkdownLoader creates a loader for the given Markdown file.
func NewMarkdownLoader(filePath string) *MarkdownLoader {
	return &MarkdownLoader{filePath: filePath}
}

// Load renders the file and returns one document per section. A section is a
// heading plus everything before the next heading; text before the first
// heading forms its own section.
func (l *MarkdownLoader) Load(ctx context.Context) ([]rag.Document, error) {
	source, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", l.filePath, err)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	rendered := markdown.Render(p.Parse(source), html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags,
	}))
	sanitized := bluemonday.UGCPolicy().SanitizeBytes(rendered)

	page, err := goquery.NewDocumentFromReader(bytes.NewReader(sanitized))
	if err != nil {
		return nil, fmt.Errorf("parse rendered markdown: %w", err)
	}

	return l.sections(page), nil
}

type section struct {
	heading string
	blocks  []string
}

func (l *MarkdownLoader) sections(page *goquery.Document) []rag.Document {
	var sections []section
	current := section{}
	flush := func() {
		if current.heading != "" || len(current.blocks) > 0 {
			sections = append(sections, current)
		}
	}

	page.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		if isHeading(goquery.NodeName(s)) {
			flush()
			current = section{heading: strings.TrimSpace(s.Text())}
			return
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			current.blocks = append(current.blocks, text)
		}
	})
	flush()

	documents := make([]rag.Document, 0, len(sections))
	for i, sec := range sections {
		content := strings.Join(sec.blocks, "\n")
		if sec.heading != "" && content != "" {
			content = sec.heading + "\n" + content
		} else if sec.heading != "" {
			content = sec.heading
		}

		metadata := map[string]any{
			"source":  l.filePath,
			"type":    "markdown",
			"section": i,
		}
		if sec.heading != "" {
			metadata["heading"] = sec.heading
		}
		documents = append(documents, rag.NewDocument(content, metadata))
	}
	return documents
}

func isHeading(name string) bool {
	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}
