package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/store"
)

// RedisConversationStore implements store.ConversationStore using Redis
type RedisConversationStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOptions configuration for Redis connection
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "rag:"
	TTL      time.Duration // Expiration for conversations, default 0 (no expiration)
}

// NewRedisConversationStore creates a new Redis conversation store
func NewRedisConversationStore(opts RedisOptions) *RedisConversationStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "rag:"
	}

	return &RedisConversationStore{
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

func (s *RedisConversationStore) conversationKey(id string) string {
	return fmt.Sprintf("%sconversation:%s", s.prefix, id)
}

func (s *RedisConversationStore) indexKey() string {
	return s.prefix + "conversations"
}

// Save stores a conversation, overwriting any previous version
func (s *RedisConversationStore) Save(ctx context.Context, conversation *store.Conversation) error {
	data, err := json.Marshal(conversation)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}

	key := s.conversationKey(conversation.ID)
	pipe := s.client.Pipeline()

	pipe.Set(ctx, key, data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), conversation.ID)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.indexKey(), s.ttl)
	}

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save conversation to redis: %w", err)
	}

	return nil
}

// Load retrieves a conversation by ID
func (s *RedisConversationStore) Load(ctx context.Context, conversationID string) (*store.Conversation, error) {
	key := s.conversationKey(conversationID)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("conversation not found: %s", conversationID)
		}
		return nil, fmt.Errorf("failed to load conversation from redis: %w", err)
	}

	var conversation store.Conversation
	if err := json.Unmarshal(data, &conversation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation: %w", err)
	}

	return &conversation, nil
}

// List returns all stored conversations, oldest update first
func (s *RedisConversationStore) List(ctx context.Context) ([]*store.Conversation, error) {
	conversationIDs, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	if len(conversationIDs) == 0 {
		return []*store.Conversation{}, nil
	}

	var keys []string
	for _, id := range conversationIDs {
		keys = append(keys, s.conversationKey(id))
	}

	// MGet returns nil for keys that expired but are still in the index
	results, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversations: %w", err)
	}

	var conversations []*store.Conversation
	for _, result := range results {
		if result == nil {
			continue
		}

		strData, ok := result.(string)
		if !ok {
			continue
		}

		var conversation store.Conversation
		if err := json.Unmarshal([]byte(strData), &conversation); err != nil {
			continue
		}
		conversations = append(conversations, &conversation)
	}

	// Set members come back in arbitrary order
	sort.Slice(conversations, func(i, j int) bool {
		if conversations[i].UpdatedAt.Equal(conversations[j].UpdatedAt) {
			return conversations[i].ID < conversations[j].ID
		}
		return conversations[i].UpdatedAt.Before(conversations[j].UpdatedAt)
	})

	return conversations, nil
}

// Delete removes a conversation
func (s *RedisConversationStore) Delete(ctx context.Context, conversationID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.conversationKey(conversationID))
	pipe.SRem(ctx, s.indexKey(), conversationID)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}

	return nil
}

// Clear removes all conversations
func (s *RedisConversationStore) Clear(ctx context.Context) error {
	conversationIDs, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to get conversations for clearing: %w", err)
	}

	if len(conversationIDs) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()

	for _, id := range conversationIDs {
		pipe.Del(ctx, s.conversationKey(id))
	}
	pipe.Del(ctx, s.indexKey())

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear conversations: %w", err)
	}

	return nil
}

// Close closes the underlying Redis client
func (s *RedisConversationStore) Close() error {
	return s.client.Close()
}
