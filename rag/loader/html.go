package loader

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
)

// HTMLLoader fetches web pages and extracts their readable text. Each URL
// becomes one document with the page URL and title recorded in metadata.
type HTMLLoader struct {
	urls     []string
	client   *http.Client
	selector string
}

var _ rag.DocumentLoader = (*HTMLLoader)(nil)

// HTMLLoaderOption configures an HTMLLoader.
type HTMLLoaderOption func(*HTMLLoader)

// WithHTTPClient sets the HTTP client used to fetch pages.
func WithHTTPClient(client *http.Client) HTMLLoaderOption {
	return func(l *HTMLLoader) {
		l.client = client
	}
}

// WithContentSelector restricts text extraction to the elements matching the
// given CSS selector. Default "body".
func WithContentSelector(selector string) HTMLLoaderOption {
	return func(l *HTMLLoader) {
		l.selector = selector
	}
}

// NewHTMLLoader creates a loader for the given URLs.
func NewHTMLLoader(urls []string, opts ...HTMLLoaderOption) *HTMLLoader {
	l := &HTMLLoader{
		urls:     urls,
		client:   &http.Client{Timeout: 30 * time.Second},
		selector: "body",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches every URL and returns one document per page.
func (l *HTMLLoader) Load(ctx context.Context) ([]rag.Document, error) {
	documents := make([]rag.Document, 0, len(l.urls))
	for _, url := range l.urls {
		doc, err := l.loadURL(ctx, url)
		if err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}
	return documents, nil
}

func (l *HTMLLoader) loadURL(ctx context.Context, url string) (rag.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return rag.Document{}, fmt.Errorf("create request for %s: %w", url, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return rag.Document{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return rag.Document{}, fmt.Errorf("fetch %s: status code %d", url, resp.StatusCode)
	}

	page, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return rag.Document{}, fmt.Errorf("parse %s: %w", url, err)
	}

	page.Find("script, style, noscript, iframe").Remove()

	content := extractText(page.Find(l.selector))
	if content == "" {
		return rag.Document{}, fmt.Errorf("no text content found at %s", url)
	}

	metadata := map[string]any{
		"source": url,
		"type":   "html",
	}
	if title := strings.TrimSpace(page.Find("title").First().Text()); title != "" {
		metadata["title"] = title
	}

	return rag.NewDocument(content, metadata), nil
}

// extractText walks block-level elements so headings and paragraphs keep
// their own lines instead of running together.
func extractText(sel *goquery.Selection) string {
	var blocks []string
	sel.Find("h1, h2, h3, h4, h5, h6, p, li, pre").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) > 0 {
		return strings.Join(blocks, "\n")
	}
	return strings.TrimSpace(sel.Text())
}
