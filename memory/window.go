package memory

import (
	"context"
	"sync"
)

// WindowMemory remembers every message but only surfaces the most recent
// windowSize messages as context.
// Pros: bounded prompt size regardless of conversation length.
// Cons: anything outside the window is invisible to the model.
type WindowMemory struct {
	messages   []*Message
	windowSize int
	mu         sync.RWMutex
}

var _ Memory = (*WindowMemory)(nil)

// NewWindowMemory creates a sliding-window memory surfacing the last
// windowSize messages. windowSize must be at least 1; smaller values are
// raised to the default of 10.
func NewWindowMemory(windowSize int) *WindowMemory {
	if windowSize < 1 {
		windowSize = 10
	}
	return &WindowMemory{
		messages:   make([]*Message, 0),
		windowSize: windowSize,
	}
}

// AddMessage appends a message to the history.
func (w *WindowMemory) AddMessage(ctx context.Context, msg *Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.messages = append(w.messages, msg)
	return nil
}

// GetMessages returns the full history, including messages outside the
// window.
func (w *WindowMemory) GetMessages(ctx context.Context) ([]*Message, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*Message, len(w.messages))
	copy(out, w.messages)
	return out, nil
}

// GetContext returns the last windowSize messages; the query is not used.
func (w *WindowMemory) GetContext(ctx context.Context, query string) ([]*Message, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	start := 0
	if len(w.messages) > w.windowSize {
		start = len(w.messages) - w.windowSize
	}

	out := make([]*Message, len(w.messages)-start)
	copy(out, w.messages[start:])
	return out, nil
}

// Clear drops all messages.
func (w *WindowMemory) Clear(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.messages = w.messages[:0]
	return nil
}

// GetStats reports history size against the active window.
func (w *WindowMemory) GetStats(ctx context.Context) (*Stats, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	totalTokens := 0
	for _, msg := range w.messages {
		totalTokens += msg.TokenCount
	}

	active := len(w.messages)
	if active > w.windowSize {
		active = w.windowSize
	}
	activeTokens := 0
	for _, msg := range w.messages[len(w.messages)-active:] {
		activeTokens += msg.TokenCount
	}

	rate := 1.0
	if len(w.messages) > 0 {
		rate = float64(active) / float64(len(w.messages))
	}

	return &Stats{
		TotalMessages:   len(w.messages),
		TotalTokens:     totalTokens,
		ActiveMessages:  active,
		ActiveTokens:    activeTokens,
		CompressionRate: rate,
	}, nil
}
