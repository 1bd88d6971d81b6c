package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message roles used throughout the conversation history.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	ID         string         `json:"id"`
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	Timestamp  time.Time      `json:"timestamp"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	TokenCount int            `json:"token_count"`
}

// NewMessage creates a message with a fresh ID, the current timestamp and an
// approximate token count.
func NewMessage(role, content string) *Message {
	return &Message{
		ID:         uuid.NewString(),
		Role:       role,
		Content:    content,
		Timestamp:  time.Now(),
		Metadata:   make(map[string]any),
		TokenCount: EstimateTokens(content),
	}
}

// EstimateTokens approximates the token count of text. Four characters per
// token is close enough for budgeting decisions; exact counts would need the
// model's tokenizer.
func EstimateTokens(text string) int {
	n := len(text) / 4
	if n == 0 && len(text) > 0 {
		n = 1
	}
	return n
}

// Stats describes what a memory currently holds and, for strategies that
// drop or compress history, how much of it is still active.
type Stats struct {
	TotalMessages   int
	TotalTokens     int
	ActiveMessages  int
	ActiveTokens    int
	CompressionRate float64
}

// Memory is a conversation history with a retention strategy. GetContext
// returns the messages worth including in the next prompt; depending on the
// strategy that may be everything, a recent window, or a summary plus the
// recent turns.
type Memory interface {
	AddMessage(ctx context.Context, msg *Message) error
	GetMessages(ctx context.Context) ([]*Message, error)
	GetContext(ctx context.Context, query string) ([]*Message, error)
	Clear(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
}

// FormatMessages renders messages as a plain "role: content" transcript for
// interpolation into a prompt.
func FormatMessages(messages []*Message) string {
	var sb strings.Builder
	for i, msg := range messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(msg.Role)
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
	}
	return sb.String()
}
