package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/store"
)

// MemoryConversationStore implements store.ConversationStore with an
// in-process map. Nothing survives a restart; use it for tests and
// short-lived sessions.
type MemoryConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]*store.Conversation
}

// NewMemoryConversationStore creates an empty in-memory conversation store.
func NewMemoryConversationStore() *MemoryConversationStore {
	return &MemoryConversationStore{
		conversations: make(map[string]*store.Conversation),
	}
}

// Save stores a conversation, overwriting any previous version
func (s *MemoryConversationStore) Save(ctx context.Context, conversation *store.Conversation) error {
	if conversation == nil || conversation.ID == "" {
		return fmt.Errorf("conversation must have an ID")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[conversation.ID] = conversation
	return nil
}

// Load retrieves a conversation by ID
func (s *MemoryConversationStore) Load(ctx context.Context, conversationID string) (*store.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conversation, ok := s.conversations[conversationID]
	if !ok {
		return nil, fmt.Errorf("conversation not found: %s", conversationID)
	}
	return conversation, nil
}

// List returns all stored conversations, oldest update first
func (s *MemoryConversationStore) List(ctx context.Context) ([]*store.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conversations := make([]*store.Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		conversations = append(conversations, c)
	}

	sort.Slice(conversations, func(i, j int) bool {
		if conversations[i].UpdatedAt.Equal(conversations[j].UpdatedAt) {
			return conversations[i].ID < conversations[j].ID
		}
		return conversations[i].UpdatedAt.Before(conversations[j].UpdatedAt)
	})

	return conversations, nil
}

// Delete removes a conversation
func (s *MemoryConversationStore) Delete(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, conversationID)
	return nil
}

// Clear removes all conversations
func (s *MemoryConversationStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = make(map[string]*store.Conversation)
	return nil
}
