package main

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the ragchat configuration, loaded from environment
// variables.
type Config struct {
	// Model provider: "instructlab" or "openai".
	Provider string
	// Endpoint overrides the provider's default URL: the full chat
	// completion endpoint for instructlab, the API base URL for openai.
	Endpoint      string
	Model         string
	SystemMessage string
	OpenAIKey     string

	// Retrieval configuration.
	EmbedderType   string // "mock" or "openai"
	EmbedDimension int
	VectorStore    string // "memory" or "redis"
	ChunkSize      int
	ChunkOverlap   int
	TopK           int

	// Redis connection, shared by the redis vector store and the redis
	// session store.
	RedisAddr     string
	RedisPassword string

	// Chat session persistence.
	SessionStore  string // "memory", "sqlite", "redis" or "postgres"
	SqlitePath    string
	PostgresURL   string
	HistoryWindow int

	// Web search for the agent (optional).
	BraveAPIKey string
}

// LoadConfig loads configuration from environment variables with sensible
// defaults.
func LoadConfig() Config {
	return Config{
		Provider:      getEnv("RAGCHAT_PROVIDER", "instructlab"),
		Endpoint:      os.Getenv("RAGCHAT_ENDPOINT"),
		Model:         os.Getenv("RAGCHAT_MODEL"),
		SystemMessage: os.Getenv("RAGCHAT_SYSTEM_MESSAGE"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),

		EmbedderType:   getEnv("RAGCHAT_EMBEDDER", "mock"),
		EmbedDimension: getEnvInt("RAGCHAT_EMBED_DIMENSION", 384),
		VectorStore:    getEnv("RAGCHAT_VECTOR_STORE", "memory"),
		ChunkSize:      getEnvInt("RAGCHAT_CHUNK_SIZE", 1000),
		ChunkOverlap:   getEnvInt("RAGCHAT_CHUNK_OVERLAP", 200),
		TopK:           getEnvInt("RAGCHAT_TOP_K", 4),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SessionStore:  getEnv("RAGCHAT_SESSION_STORE", "memory"),
		SqlitePath:    getEnv("RAGCHAT_SQLITE_PATH", "ragchat.db"),
		PostgresURL:   os.Getenv("DATABASE_URL"),
		HistoryWindow: getEnvInt("RAGCHAT_HISTORY_WINDOW", 10),

		BraveAPIKey: os.Getenv("BRAVE_API_KEY"),
	}
}

// ValidateConfig checks that the configuration is internally consistent.
func ValidateConfig(cfg Config) error {
	switch cfg.Provider {
	case "instructlab", "openai":
	default:
		return fmt.Errorf("unknown provider %q (want instructlab or openai)", cfg.Provider)
	}
	if cfg.Provider == "openai" && cfg.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required with the openai provider")
	}

	switch cfg.EmbedderType {
	case "mock", "openai":
	default:
		return fmt.Errorf("unknown embedder %q (want mock or openai)", cfg.EmbedderType)
	}
	if cfg.EmbedderType == "openai" && cfg.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required with the openai embedder")
	}

	switch cfg.VectorStore {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown vector store %q (want memory or redis)", cfg.VectorStore)
	}

	switch cfg.SessionStore {
	case "memory", "sqlite", "redis", "postgres":
	default:
		return fmt.Errorf("unknown session store %q (want memory, sqlite, redis or postgres)", cfg.SessionStore)
	}
	if cfg.SessionStore == "postgres" && cfg.PostgresURL == "" {
		return fmt.Errorf("DATABASE_URL is required with the postgres session store")
	}

	if cfg.ChunkOverlap >= cfg.ChunkSize {
		return fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", cfg.ChunkOverlap, cfg.ChunkSize)
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default
// value. Unparseable values fall back to the default.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
