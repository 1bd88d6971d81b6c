// Package postgres stores conversations in PostgreSQL.
//
// Messages and metadata live in JSONB columns. The store talks to the
// database through the DBPool interface, so tests can substitute a
// pgxmock pool for a real pgxpool:
//
//	st, err := postgres.NewPostgresConversationStore(ctx, postgres.PostgresOptions{
//		ConnString: os.Getenv("DATABASE_URL"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer st.Close()
//	if err := st.InitSchema(ctx); err != nil {
//		log.Fatal(err)
//	}
package postgres
