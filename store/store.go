package store

import (
	"context"
	"time"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/memory"
)

// Conversation is a persisted chat session: the full message history plus
// bookkeeping fields the backends index on.
type Conversation struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Messages  []*memory.Message `json:"messages"`
	Metadata  map[string]any    `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewConversation creates an empty conversation with the given ID.
func NewConversation(id, title string) *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        id,
		Title:     title,
		Messages:  []*memory.Message{},
		Metadata:  make(map[string]any),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ConversationStore defines the interface for conversation persistence
type ConversationStore interface {
	// Save stores a conversation, overwriting any previous version
	Save(ctx context.Context, conversation *Conversation) error

	// Load retrieves a conversation by ID
	Load(ctx context.Context, conversationID string) (*Conversation, error)

	// List returns all stored conversations, oldest update first
	List(ctx context.Context) ([]*Conversation, error)

	// Delete removes a conversation
	Delete(ctx context.Context, conversationID string) error

	// Clear removes all conversations
	Clear(ctx context.Context) error
}
