package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
)

// RedisVectorStore persists documents and their embeddings in Redis. Each
// document is stored as JSON under a prefixed key, with a set indexing the
// known IDs. Search loads the indexed documents and scores them in process,
// which suits small and medium corpora; a dedicated vector database can be
// swapped in behind rag.VectorStore when the corpus outgrows it.
type RedisVectorStore struct {
	client   *redis.Client
	embedder rag.Embedder
	prefix   string
}

var _ rag.VectorStore = (*RedisVectorStore)(nil)

// RedisVectorStoreOptions configures the Redis connection and key layout.
type RedisVectorStoreOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // Key prefix, default "rag:"
}

// NewRedisVectorStore connects to Redis and returns a vector store. The
// embedder is used for documents added without an embedding; it may be nil
// when every document arrives pre-embedded.
func NewRedisVectorStore(embedder rag.Embedder, opts RedisVectorStoreOptions) *RedisVectorStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "rag:"
	}

	return &RedisVectorStore{
		client:   client,
		embedder: embedder,
		prefix:   prefix,
	}
}

func (s *RedisVectorStore) docKey(id string) string {
	return fmt.Sprintf("%sdoc:%s", s.prefix, id)
}

func (s *RedisVectorStore) indexKey() string {
	return s.prefix + "docs"
}

// Add stores documents, embedding any that do not carry a vector yet.
func (s *RedisVectorStore) Add(ctx context.Context, docs []rag.Document) error {
	pipe := s.client.Pipeline()

	for _, doc := range docs {
		if len(doc.Embedding) == 0 {
			if s.embedder == nil {
				return fmt.Errorf("document %s has no embedding and no embedder is configured", doc.ID)
			}
			embedding, err := s.embedder.EmbedDocument(ctx, doc.Content)
			if err != nil {
				return fmt.Errorf("failed to embed document %s: %w", doc.ID, err)
			}
			doc.Embedding = embedding
		}

		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal document %s: %w", doc.ID, err)
		}

		pipe.Set(ctx, s.docKey(doc.ID), data, 0)
		pipe.SAdd(ctx, s.indexKey(), doc.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save documents to redis: %w", err)
	}
	return nil
}

// Search returns the k documents most similar to the query embedding.
func (s *RedisVectorStore) Search(ctx context.Context, query []float32, k int) ([]rag.SearchResult, error) {
	return s.SearchWithFilter(ctx, query, k, nil)
}

// SearchWithFilter is Search restricted to documents whose metadata matches
// every key/value pair in filter. Metadata values compare after a JSON round
// trip, so numeric filter values should be float64.
func (s *RedisVectorStore) SearchWithFilter(ctx context.Context, query []float32, k int, filter map[string]any) ([]rag.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	docs, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]rag.SearchResult, 0, len(docs))
	for _, doc := range docs {
		if !matchesFilter(doc, filter) {
			continue
		}
		results = append(results, rag.SearchResult{
			Document: doc,
			Score:    cosineSimilarity32(query, doc.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

func (s *RedisVectorStore) loadAll(ctx context.Context) ([]rag.Document, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.docKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}

	docs := make([]rag.Document, 0, len(values))
	for _, value := range values {
		data, ok := value.(string)
		if !ok {
			// Index entry whose document key is gone; skip it.
			continue
		}
		var doc rag.Document
		if err := json.Unmarshal([]byte(data), &doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Delete removes documents by ID. Unknown IDs are ignored.
func (s *RedisVectorStore) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	members := make([]any, len(ids))
	for i, id := range ids {
		pipe.Del(ctx, s.docKey(id))
		members[i] = id
	}
	pipe.SRem(ctx, s.indexKey(), members...)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}

// GetStats reports the store's size and dimensionality. Dimension comes from
// sampling one stored document.
func (s *RedisVectorStore) GetStats(ctx context.Context) (*rag.VectorStoreStats, error) {
	count, err := s.client.SCard(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}

	stats := &rag.VectorStoreStats{
		TotalDocuments: int(count),
		LastUpdated:    time.Now(),
	}

	if count > 0 {
		if id, err := s.client.SRandMember(ctx, s.indexKey()).Result(); err == nil {
			if data, err := s.client.Get(ctx, s.docKey(id)).Bytes(); err == nil {
				var doc rag.Document
				if json.Unmarshal(data, &doc) == nil {
					stats.Dimension = len(doc.Embedding)
				}
			}
		}
	}

	return stats, nil
}

// Close closes the Redis connection.
func (s *RedisVectorStore) Close() error {
	return s.client.Close()
}
