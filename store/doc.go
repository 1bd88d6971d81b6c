// Package store persists conversations across process restarts.
//
// A Conversation is the full message history of one chat session. The
// ConversationStore interface has four implementations, each in its own
// subpackage:
//
//   - store/memory: in-process map, for tests and short-lived sessions
//   - store/redis: Redis with a key prefix, a set index and optional TTL
//   - store/sqlite: single-file SQLite database
//   - store/postgres: PostgreSQL with JSONB message columns
//
// All backends store messages as JSON, so anything a memory.Message holds
// survives the round trip:
//
//	st, err := sqlite.NewSqliteConversationStore(sqlite.SqliteOptions{Path: "chat.db"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer st.Close()
//
//	conv := store.NewConversation("session-1", "Kubernetes questions")
//	conv.Messages = append(conv.Messages, memory.NewMessage(memory.RoleUser, "What is a pod?"))
//	if err := st.Save(ctx, conv); err != nil {
//		log.Fatal(err)
//	}
package store
