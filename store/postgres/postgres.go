package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/memory"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/store"
)

// DBPool defines the interface for database connection pool
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresConversationStore implements store.ConversationStore using PostgreSQL
type PostgresConversationStore struct {
	pool      DBPool
	tableName string
}

// PostgresOptions configuration for Postgres connection
type PostgresOptions struct {
	ConnString string
	TableName  string // Default "conversations"
}

// NewPostgresConversationStore creates a new Postgres conversation store
func NewPostgresConversationStore(ctx context.Context, opts PostgresOptions) (*PostgresConversationStore, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "conversations"
	}

	return &PostgresConversationStore{
		pool:      pool,
		tableName: tableName,
	}, nil
}

// NewPostgresConversationStoreWithPool creates a new Postgres conversation store with an existing pool
// Useful for testing with mocks
func NewPostgresConversationStoreWithPool(pool DBPool, tableName string) *PostgresConversationStore {
	if tableName == "" {
		tableName = "conversations"
	}
	return &PostgresConversationStore{
		pool:      pool,
		tableName: tableName,
	}
}

// InitSchema creates the necessary table if it doesn't exist
func (s *PostgresConversationStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			messages JSONB NOT NULL,
			metadata JSONB,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_updated_at ON %s (updated_at);
	`, s.tableName, s.tableName, s.tableName)

	_, err := s.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresConversationStore) Close() {
	s.pool.Close()
}

// Save stores a conversation, overwriting any previous version. The
// created_at column keeps its original value on overwrite.
func (s *PostgresConversationStore) Save(ctx context.Context, conversation *store.Conversation) error {
	messagesJSON, err := json.Marshal(conversation.Messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}

	metadataJSON, err := json.Marshal(conversation.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, messages, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			messages = EXCLUDED.messages,
			metadata = EXCLUDED.metadata,
			updated_at = EXCLUDED.updated_at
	`, s.tableName)

	_, err = s.pool.Exec(ctx, query,
		conversation.ID,
		conversation.Title,
		messagesJSON,
		metadataJSON,
		conversation.CreatedAt,
		conversation.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}

	return nil
}

// Load retrieves a conversation by ID
func (s *PostgresConversationStore) Load(ctx context.Context, conversationID string) (*store.Conversation, error) {
	query := fmt.Sprintf(`
		SELECT id, title, messages, metadata, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, s.tableName)

	conversation, err := scanConversation(s.pool.QueryRow(ctx, query, conversationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("conversation not found: %s", conversationID)
		}
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	return conversation, nil
}

// List returns all stored conversations, oldest update first
func (s *PostgresConversationStore) List(ctx context.Context) ([]*store.Conversation, error) {
	query := fmt.Sprintf(`
		SELECT id, title, messages, metadata, created_at, updated_at
		FROM %s
		ORDER BY updated_at ASC
	`, s.tableName)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*store.Conversation
	for rows.Next() {
		conversation, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation row: %w", err)
		}
		conversations = append(conversations, conversation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversation rows: %w", err)
	}

	return conversations, nil
}

// Delete removes a conversation
func (s *PostgresConversationStore) Delete(ctx context.Context, conversationID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.tableName)
	_, err := s.pool.Exec(ctx, query, conversationID)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

// Clear removes all conversations
func (s *PostgresConversationStore) Clear(ctx context.Context) error {
	query := fmt.Sprintf("DELETE FROM %s", s.tableName)
	_, err := s.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to clear conversations: %w", err)
	}
	return nil
}

func scanConversation(row pgx.Row) (*store.Conversation, error) {
	var conversation store.Conversation
	var messagesJSON []byte
	var metadataJSON []byte

	err := row.Scan(
		&conversation.ID,
		&conversation.Title,
		&messagesJSON,
		&metadataJSON,
		&conversation.CreatedAt,
		&conversation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(messagesJSON, &conversation.Messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	if conversation.Messages == nil {
		conversation.Messages = []*memory.Message{}
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &conversation.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return &conversation, nil
}
