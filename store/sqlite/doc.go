// Package sqlite stores conversations in a single-file SQLite database.
//
// The schema is created on first open. Messages and metadata are stored as
// JSON text columns; saving an existing ID updates the row in place and
// keeps its created_at.
//
//	st, err := sqlite.NewSqliteConversationStore(sqlite.SqliteOptions{
//		Path: "chat.db",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer st.Close()
package sqlite
