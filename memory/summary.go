package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms"
)

const summaryPrompt = `Condense the following conversation into a short summary. Preserve names, facts and decisions; drop pleasantries.

Current summary:
%s

New messages:
%s

Updated summary:`

// SummaryConfig configures a SummaryMemory.
type SummaryConfig struct {
	// RecentWindowSize is how many of the latest messages stay verbatim.
	// Default 6.
	RecentWindowSize int
	// SummarizeAfter is the message count that triggers folding older
	// messages into the summary. Default 12.
	SummarizeAfter int
}

// SummaryMemory keeps a rolling summary of older turns plus a verbatim
// window of recent ones. Folding goes through a language model, so
// AddMessage can fail and can take as long as a completion call.
// Pros: bounded context that still reflects the whole conversation.
// Cons: summarization costs a model call and may lose detail.
type SummaryMemory struct {
	model   llms.Model
	config  SummaryConfig
	summary string
	recent  []*Message

	totalMessages int
	totalTokens   int

	mu sync.Mutex
}

var _ Memory = (*SummaryMemory)(nil)

// NewSummaryMemory creates a summarizing memory backed by the given model.
func NewSummaryMemory(model llms.Model, config *SummaryConfig) *SummaryMemory {
	cfg := SummaryConfig{RecentWindowSize: 6, SummarizeAfter: 12}
	if config != nil {
		if config.RecentWindowSize > 0 {
			cfg.RecentWindowSize = config.RecentWindowSize
		}
		if config.SummarizeAfter > 0 {
			cfg.SummarizeAfter = config.SummarizeAfter
		}
	}
	if cfg.SummarizeAfter <= cfg.RecentWindowSize {
		cfg.SummarizeAfter = cfg.RecentWindowSize * 2
	}

	return &SummaryMemory{
		model:  model,
		config: cfg,
		recent: make([]*Message, 0),
	}
}

// AddMessage appends a message and folds older history into the summary
// once the trigger size is exceeded.
func (s *SummaryMemory) AddMessage(ctx context.Context, msg *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recent = append(s.recent, msg)
	s.totalMessages++
	s.totalTokens += msg.TokenCount

	if len(s.recent) <= s.config.SummarizeAfter {
		return nil
	}

	cut := len(s.recent) - s.config.RecentWindowSize
	older := s.recent[:cut]

	updated, err := s.model.Call(ctx, fmt.Sprintf(summaryPrompt, s.summary, FormatMessages(older)))
	if err != nil {
		// Keep the unfolded history rather than losing it.
		return fmt.Errorf("summarize conversation: %w", err)
	}

	s.summary = updated
	s.recent = append([]*Message{}, s.recent[cut:]...)
	return nil
}

// GetMessages returns the verbatim recent messages.
func (s *SummaryMemory) GetMessages(ctx context.Context) ([]*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Message, len(s.recent))
	copy(out, s.recent)
	return out, nil
}

// GetContext returns the rolling summary (as a leading system message, when
// present) followed by the recent window; the query is not used.
func (s *SummaryMemory) GetContext(ctx context.Context, query string) ([]*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Message, 0, len(s.recent)+1)
	if s.summary != "" {
		out = append(out, &Message{
			Role:       RoleSystem,
			Content:    "Summary of the conversation so far: " + s.summary,
			TokenCount: EstimateTokens(s.summary),
		})
	}
	out = append(out, s.recent...)
	return out, nil
}

// Summary returns the current rolling summary text.
func (s *SummaryMemory) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// Clear drops the summary and all messages.
func (s *SummaryMemory) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summary = ""
	s.recent = s.recent[:0]
	s.totalMessages = 0
	s.totalTokens = 0
	return nil
}

// GetStats reports cumulative history against what is still active.
func (s *SummaryMemory) GetStats(ctx context.Context) (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := len(s.recent)
	activeTokens := 0
	for _, msg := range s.recent {
		activeTokens += msg.TokenCount
	}
	if s.summary != "" {
		active++
		activeTokens += EstimateTokens(s.summary)
	}

	rate := 1.0
	if s.totalMessages > 0 {
		rate = float64(active) / float64(s.totalMessages)
	}

	return &Stats{
		TotalMessages:   s.totalMessages,
		TotalTokens:     s.totalTokens,
		ActiveMessages:  active,
		ActiveTokens:    activeTokens,
		CompressionRate: rate,
	}, nil
}
