// Command ragchat is a terminal client for the three retrieval patterns:
// ingest documents into a vector store, ask one-shot questions (optionally
// through the tool-calling agent) and hold streamed, session-persistent
// conversations.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tmc/langchaingo/embeddings"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/tools"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms/instructlab"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms/openai"
	raglog "github.com/manojjahgirdar/types-of-retrieval-augmented-generation/log"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/memory"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag/engine"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag/loader"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag/retriever"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag/splitter"
	vecstore "github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag/store"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/store"
	memstore "github.com/manojjahgirdar/types-of-retrieval-augmented-generation/store/memory"
	pgstore "github.com/manojjahgirdar/types-of-retrieval-augmented-generation/store/postgres"
	redisstore "github.com/manojjahgirdar/types-of-retrieval-augmented-generation/store/redis"
	sqlitestore "github.com/manojjahgirdar/types-of-retrieval-augmented-generation/store/sqlite"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/tool"
)

func main() {
	mode := flag.String("mode", "", "Mode to run: ingest, ask or chat")
	file := flag.String("file", "", "File path or URL to ingest")
	question := flag.String("question", "", "Question to answer in ask mode")
	session := flag.String("session", "", "Session ID to resume in chat mode")
	agent := flag.Bool("agent", false, "Answer through the tool-calling agent in ask mode")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if *verbose {
		raglog.SetLogLevel(raglog.LogLevelDebug)
	} else {
		raglog.SetLogLevel(raglog.LogLevelWarn)
	}

	cfg := LoadConfig()
	if err := ValidateConfig(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	st := newStyles()

	a, err := newApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	switch *mode {
	case "ingest":
		if *file == "" {
			log.Fatal("-file is required in ingest mode")
		}
		if err := a.runIngest(ctx, st, *file); err != nil {
			log.Fatalf("Ingestion failed: %v", err)
		}

	case "ask":
		if *question == "" {
			log.Fatal("-question is required in ask mode")
		}
		if *file != "" {
			if err := a.runIngest(ctx, st, *file); err != nil {
				log.Fatalf("Ingestion failed: %v", err)
			}
		}
		if err := a.runAsk(ctx, st, *question, *agent); err != nil {
			log.Fatalf("Query failed: %v", err)
		}

	case "chat":
		if *file != "" {
			if err := a.runIngest(ctx, st, *file); err != nil {
				log.Fatalf("Ingestion failed: %v", err)
			}
		}
		if err := a.runChat(ctx, st, *session); err != nil {
			log.Fatalf("Chat failed: %v", err)
		}

	default:
		printUsage()
	}
}

// app bundles the components shared by all modes.
type app struct {
	cfg      Config
	model    llms.Model
	embedder rag.Embedder
	vs       rag.VectorStore
	ret      rag.Retriever
}

func newApp(cfg Config) (*app, error) {
	model, err := buildModel(cfg)
	if err != nil {
		return nil, fmt.Errorf("build model: %w", err)
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("build embedder: %w", err)
	}

	vs := buildVectorStore(cfg, embedder)
	ret := retriever.NewVectorRetriever(vs, embedder, retriever.WithTopK(cfg.TopK))

	return &app{cfg: cfg, model: model, embedder: embedder, vs: vs, ret: ret}, nil
}

func buildModel(cfg Config) (llms.Model, error) {
	switch cfg.Provider {
	case "openai":
		opts := []openai.Option{openai.WithToken(cfg.OpenAIKey)}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		if cfg.Endpoint != "" {
			opts = append(opts, openai.WithBaseURL(cfg.Endpoint))
		}
		if cfg.SystemMessage != "" {
			opts = append(opts, openai.WithSystemMessage(cfg.SystemMessage))
		}
		return openai.New(opts...)

	default:
		var opts []instructlab.Option
		if cfg.Endpoint != "" {
			opts = append(opts, instructlab.WithEndpoint(cfg.Endpoint))
		}
		if cfg.Model != "" {
			opts = append(opts, instructlab.WithModel(instructlab.ModelName(cfg.Model)))
		}
		if cfg.SystemMessage != "" {
			opts = append(opts, instructlab.WithSystemMessage(cfg.SystemMessage))
		}
		return instructlab.New(opts...)
	}
}

func buildEmbedder(cfg Config) (rag.Embedder, error) {
	if cfg.EmbedderType == "openai" {
		llm, err := lcopenai.New(lcopenai.WithToken(cfg.OpenAIKey))
		if err != nil {
			return nil, fmt.Errorf("create openai embeddings client: %w", err)
		}
		emb, err := embeddings.NewEmbedder(llm)
		if err != nil {
			return nil, fmt.Errorf("create openai embedder: %w", err)
		}
		return rag.NewLangChainEmbedder(emb), nil
	}
	return vecstore.NewMockEmbedder(cfg.EmbedDimension), nil
}

func buildVectorStore(cfg Config, embedder rag.Embedder) rag.VectorStore {
	if cfg.VectorStore == "redis" {
		return vecstore.NewRedisVectorStore(embedder, vecstore.RedisVectorStoreOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}
	return vecstore.NewMemoryVectorStore(embedder)
}

func buildConversationStore(ctx context.Context, cfg Config) (store.ConversationStore, error) {
	switch cfg.SessionStore {
	case "sqlite":
		return sqlitestore.NewSqliteConversationStore(sqlitestore.SqliteOptions{Path: cfg.SqlitePath})
	case "redis":
		return redisstore.NewRedisConversationStore(redisstore.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}), nil
	case "postgres":
		return pgstore.NewPostgresConversationStore(ctx, pgstore.PostgresOptions{ConnString: cfg.PostgresURL})
	default:
		return memstore.NewMemoryConversationStore(), nil
	}
}

// loaderFor picks a document loader from the path's shape: URLs load over
// HTTP, everything else dispatches on the file extension.
func loaderFor(path string) rag.DocumentLoader {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return loader.NewHTMLLoader([]string{path})
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return loader.NewPDFLoader(path)
	case ".md", ".markdown":
		return loader.NewMarkdownLoader(path)
	default:
		return loader.NewTextLoader(path)
	}
}

func (a *app) runIngest(ctx context.Context, st styles, path string) error {
	fmt.Println(st.dim.Render(fmt.Sprintf("📂 Ingesting %s ...", path)))

	eng := engine.NewSimpleRAG(a.model, a.ret,
		engine.WithVectorStore(a.vs),
		engine.WithSplitter(splitter.NewRecursiveCharacterTextSplitter(
			splitter.WithChunkSize(a.cfg.ChunkSize),
			splitter.WithChunkOverlap(a.cfg.ChunkOverlap),
		)),
	)

	count, err := eng.Ingest(ctx, loaderFor(path))
	if err != nil {
		return err
	}

	stats, err := a.vs.GetStats(ctx)
	if err != nil {
		return err
	}
	fmt.Println(st.success.Render(fmt.Sprintf("✅ Indexed %d chunks (%d documents in store)", count, stats.TotalDocuments)))
	return nil
}

func (a *app) runAsk(ctx context.Context, st styles, question string, useAgent bool) error {
	if useAgent {
		return a.runAgent(ctx, st, question)
	}

	eng := engine.NewSimpleRAG(a.model, a.ret, engine.WithVectorStore(a.vs))

	result, err := eng.Query(ctx, question)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", st.label.Render("🤖 Answer:"), result.Answer)
	printSources(st, result.Sources)
	fmt.Println(st.dim.Render(fmt.Sprintf("(answered in %s)", result.ResponseTime.Round(time.Millisecond))))
	return nil
}

func (a *app) runAgent(ctx context.Context, st styles, question string) error {
	agentTools := []tools.Tool{tool.NewKnowledgeBaseTool(a.ret)}
	if a.cfg.BraveAPIKey != "" {
		web, err := tool.NewBraveSearch(a.cfg.BraveAPIKey)
		if err != nil {
			return fmt.Errorf("create web search tool: %w", err)
		}
		agentTools = append(agentTools, web)
	}

	eng := engine.NewAgenticRAG(a.model, agentTools)

	result, err := eng.Run(ctx, question)
	if err != nil {
		return err
	}

	for i, step := range result.Steps {
		if step.Action == "" {
			continue
		}
		fmt.Println(st.dim.Render(fmt.Sprintf("[step %d] %s(%s)", i+1, step.Action, step.ActionInput)))
	}
	fmt.Printf("%s %s\n", st.label.Render("🤖 Answer:"), result.Answer)
	fmt.Println(st.dim.Render(fmt.Sprintf("(answered in %s)", result.ResponseTime.Round(time.Millisecond))))
	return nil
}

func (a *app) runChat(ctx context.Context, st styles, sessionID string) error {
	cs, err := buildConversationStore(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("create session store: %w", err)
	}

	opts := []engine.Option{engine.WithConversationStore(cs)}
	if sessionID != "" {
		opts = append(opts, engine.WithSessionID(sessionID))
	}

	eng := engine.NewConversationalRAG(a.model, a.ret,
		memory.NewWindowMemory(a.cfg.HistoryWindow), opts...)

	if sessionID != "" {
		if err := eng.LoadSession(ctx); err != nil {
			fmt.Println(st.dim.Render(fmt.Sprintf("Starting a fresh session: %v", err)))
		} else {
			history, _ := eng.History(ctx)
			fmt.Println(st.dim.Render(fmt.Sprintf("Resumed session with %d messages", len(history))))
		}
	}

	printBanner(st, eng.SessionID())

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(st.user.Render("👤 You: "))
		input, err := reader.ReadString('\n')
		if err != nil {
			// Ctrl-D ends the conversation
			fmt.Println()
			return nil
		}
		input = strings.TrimSpace(input)

		switch strings.ToLower(input) {
		case "":
			continue

		case "exit", "quit":
			fmt.Println(st.dim.Render("👋 Goodbye!"))
			return nil

		case "history":
			a.printHistory(ctx, st, eng)
			continue

		case "stats":
			stats, err := a.vs.GetStats(ctx)
			if err != nil {
				fmt.Println(st.errTxt.Render(fmt.Sprintf("❌ %v", err)))
				continue
			}
			fmt.Printf("📊 Documents: %d | Dimension: %d\n", stats.TotalDocuments, stats.Dimension)
			continue
		}

		fmt.Print(st.label.Render("🤖 Assistant: "))
		result, err := eng.StreamChat(ctx, input)
		if err != nil {
			fmt.Println(st.errTxt.Render(fmt.Sprintf("❌ %v", err)))
			continue
		}

		_, streamErr := printStream(result.Stream)
		fmt.Println()
		if streamErr != nil {
			fmt.Println(st.errTxt.Render(fmt.Sprintf("❌ stream interrupted: %v", streamErr)))
			continue
		}

		printSources(st, result.Sources)
		fmt.Println()
	}
}

// printStream prints tokens as they arrive and returns the assembled answer.
func printStream(s llms.TokenStream) (string, error) {
	defer s.Close()

	var sb strings.Builder
	for {
		token, err := s.Recv()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		fmt.Print(token)
		sb.WriteString(token)
	}
}

func (a *app) printHistory(ctx context.Context, st styles, eng *engine.ConversationalRAG) {
	history, err := eng.History(ctx)
	if err != nil {
		fmt.Println(st.errTxt.Render(fmt.Sprintf("❌ %v", err)))
		return
	}
	if len(history) == 0 {
		fmt.Println(st.dim.Render("(no messages yet)"))
		return
	}
	for _, msg := range history {
		fmt.Printf("%s %s\n", st.dim.Render(msg.Role+":"), msg.Content)
	}
}

func printSources(st styles, sources []rag.SearchResult) {
	if len(sources) == 0 {
		return
	}
	fmt.Println(st.source.Render(fmt.Sprintf("📚 Sources (%d):", len(sources))))
	for i, src := range sources {
		name := "unknown"
		if s, ok := src.Document.Metadata["source"].(string); ok {
			name = s
		}
		fmt.Println(st.source.Render(fmt.Sprintf("   [%d] %s (score %.2f)", i+1, name, src.Score)))
	}
}

func printBanner(st styles, sessionID string) {
	fmt.Println(st.banner.Render("🤖 ragchat — retrieval-augmented chat"))
	fmt.Println(st.dim.Render("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println(st.dim.Render("Type your question, or: 'history', 'stats', 'exit'"))
	fmt.Println(st.dim.Render("Session: " + sessionID))
	fmt.Println(st.dim.Render("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"))
}

// printUsage shows command usage.
func printUsage() {
	fmt.Println("ragchat — chat with your documents from the terminal")
	fmt.Println("\nUsage:")
	fmt.Println("  ragchat -mode <ingest|ask|chat> [options]")
	fmt.Println("\nOptions:")
	fmt.Println("  -mode <mode>       ingest, ask or chat")
	fmt.Println("  -file <path|url>   Document to ingest (pdf, md, txt or URL)")
	fmt.Println("  -question <text>   Question for ask mode")
	fmt.Println("  -session <id>      Session ID to resume in chat mode")
	fmt.Println("  -agent             Use the tool-calling agent in ask mode")
	fmt.Println("  -verbose           Enable debug logging")
	fmt.Println("\nExamples:")
	fmt.Println("  # Index a document into redis, then chat with it")
	fmt.Println("  RAGCHAT_VECTOR_STORE=redis ragchat -mode ingest -file manual.pdf")
	fmt.Println("  RAGCHAT_VECTOR_STORE=redis ragchat -mode chat")
	fmt.Println("\n  # One-shot question over an in-memory index")
	fmt.Println("  ragchat -mode ask -file notes.md -question \"What changed in v2?\"")
	fmt.Println("\n  # Let the agent decide between the knowledge base and web search")
	fmt.Println("  ragchat -mode ask -agent -question \"Latest Go release?\"")
	fmt.Println("\nEnvironment Variables:")
	fmt.Println("  RAGCHAT_PROVIDER            Model provider: instructlab (default) or openai")
	fmt.Println("  RAGCHAT_ENDPOINT            Override the provider endpoint URL")
	fmt.Println("  RAGCHAT_MODEL               Model identifier")
	fmt.Println("  RAGCHAT_SYSTEM_MESSAGE      System message for the model")
	fmt.Println("  OPENAI_API_KEY              Key for the openai provider/embedder")
	fmt.Println("  RAGCHAT_EMBEDDER            Embedder: mock (default) or openai")
	fmt.Println("  RAGCHAT_VECTOR_STORE        Vector store: memory (default) or redis")
	fmt.Println("  RAGCHAT_SESSION_STORE       Sessions: memory, sqlite, redis or postgres")
	fmt.Println("  RAGCHAT_SQLITE_PATH         SQLite file for the sqlite session store")
	fmt.Println("  DATABASE_URL                Connection string for the postgres session store")
	fmt.Println("  REDIS_ADDR                  Redis address (default localhost:6379)")
	fmt.Println("  BRAVE_API_KEY               Enables the agent's web search tool")
}
