package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/memory"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/store"
)

// SqliteConversationStore implements store.ConversationStore using SQLite
type SqliteConversationStore struct {
	db        *sql.DB
	tableName string
}

// SqliteOptions configuration for SQLite connection
type SqliteOptions struct {
	Path      string
	TableName string // Default "conversations"
}

// NewSqliteConversationStore creates a new SQLite conversation store
func NewSqliteConversationStore(opts SqliteOptions) (*SqliteConversationStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "conversations"
	}

	st := &SqliteConversationStore{
		db:        db,
		tableName: tableName,
	}

	if err := st.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return st, nil
}

// InitSchema creates the necessary table if it doesn't exist
func (s *SqliteConversationStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			messages TEXT NOT NULL,
			metadata TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_updated_at ON %s (updated_at);
	`, s.tableName, s.tableName, s.tableName)

	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SqliteConversationStore) Close() error {
	return s.db.Close()
}

// Save stores a conversation, overwriting any previous version. The
// created_at column keeps its original value on overwrite.
func (s *SqliteConversationStore) Save(ctx context.Context, conversation *store.Conversation) error {
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
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			messages = excluded.messages,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at
	`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
		conversation.ID,
		conversation.Title,
		string(messagesJSON),
		string(metadataJSON),
		conversation.CreatedAt,
		conversation.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}

	return nil
}

// Load retrieves a conversation by ID
func (s *SqliteConversationStore) Load(ctx context.Context, conversationID string) (*store.Conversation, error) {
	query := fmt.Sprintf(`
		SELECT id, title, messages, metadata, created_at, updated_at
		FROM %s
		WHERE id = ?
	`, s.tableName)

	conversation, err := scanConversation(s.db.QueryRowContext(ctx, query, conversationID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("conversation not found: %s", conversationID)
		}
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	return conversation, nil
}

// List returns all stored conversations, oldest update first
func (s *SqliteConversationStore) List(ctx context.Context) ([]*store.Conversation, error) {
	query := fmt.Sprintf(`
		SELECT id, title, messages, metadata, created_at, updated_at
		FROM %s
		ORDER BY updated_at ASC
	`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query)
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
func (s *SqliteConversationStore) Delete(ctx context.Context, conversationID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.tableName)
	_, err := s.db.ExecContext(ctx, query, conversationID)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

// Clear removes all conversations
func (s *SqliteConversationStore) Clear(ctx context.Context) error {
	query := fmt.Sprintf("DELETE FROM %s", s.tableName)
	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to clear conversations: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversation(row rowScanner) (*store.Conversation, error) {
	var conversation store.Conversation
	var messagesJSON string
	var metadataJSON string

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

	if err := json.Unmarshal([]byte(messagesJSON), &conversation.Messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	if conversation.Messages == nil {
		conversation.Messages = []*memory.Message{}
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal([]byte(metadataJSON), &conversation.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return &conversation, nil
}
