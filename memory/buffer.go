package memory

import (
	"context"
	"sync"
)

// BufferMemory keeps the full conversation, optionally capped at a maximum
// number of messages. When the cap is reached the oldest messages are
// dropped first.
// Pros: nothing relevant is ever summarized away below the cap.
// Cons: context grows linearly with conversation length.
type BufferMemory struct {
	messages    []*Message
	maxMessages int
	mu          sync.RWMutex
}

var _ Memory = (*BufferMemory)(nil)

// NewBufferMemory creates a buffer holding at most maxMessages messages.
// A maxMessages of 0 means unbounded.
func NewBufferMemory(maxMessages int) *BufferMemory {
	return &BufferMemory{
		messages:    make([]*Message, 0),
		maxMessages: maxMessages,
	}
}

// AddMessage appends a message, evicting the oldest beyond the cap.
func (b *BufferMemory) AddMessage(ctx context.Context, msg *Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.messages = append(b.messages, msg)
	if b.maxMessages > 0 && len(b.messages) > b.maxMessages {
		b.messages = b.messages[len(b.messages)-b.maxMessages:]
	}
	return nil
}

// GetMessages returns a copy of everything currently held.
func (b *BufferMemory) GetMessages(ctx context.Context) ([]*Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*Message, len(b.messages))
	copy(out, b.messages)
	return out, nil
}

// GetContext returns the whole buffer; the query is not used.
func (b *BufferMemory) GetContext(ctx context.Context, query string) ([]*Message, error) {
	return b.GetMessages(ctx)
}

// LoadMessages replaces the buffer contents, for restoring a persisted
// conversation.
func (b *BufferMemory) LoadMessages(ctx context.Context, messages []*Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.messages = make([]*Message, len(messages))
	copy(b.messages, messages)
	if b.maxMessages > 0 && len(b.messages) > b.maxMessages {
		b.messages = b.messages[len(b.messages)-b.maxMessages:]
	}
	return nil
}

// Clear drops all messages.
func (b *BufferMemory) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.messages = b.messages[:0]
	return nil
}

// GetStats reports buffer usage.
func (b *BufferMemory) GetStats(ctx context.Context) (*Stats, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	totalTokens := 0
	for _, msg := range b.messages {
		totalTokens += msg.TokenCount
	}

	return &Stats{
		TotalMessages:   len(b.messages),
		TotalTokens:     totalTokens,
		ActiveMessages:  len(b.messages),
		ActiveTokens:    totalTokens,
		CompressionRate: 1.0,
	}, nil
}
