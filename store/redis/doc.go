// Package redis stores conversations in Redis.
//
// Each conversation is one JSON value under "<prefix>conversation:<id>", with
// a set at "<prefix>conversations" indexing the known IDs. An optional TTL
// expires idle sessions; List skips index entries whose value already
// expired.
//
//	st := redis.NewRedisConversationStore(redis.RedisOptions{
//		Addr: "localhost:6379",
//		TTL:  24 * time.Hour,
//	})
//	defer st.Close()
package redis
