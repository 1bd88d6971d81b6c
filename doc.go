// Types of Retrieval-Augmented Generation - RAG patterns in Go
//
// This module implements three retrieval-augmented generation patterns over
// a small, explicit chat-completion client: simple RAG, RAG with
// conversation memory, and agentic RAG. Each pattern is a concrete engine
// type rather than a framework, so the differences between them stay
// visible in the code.
//
// # Quick Start
//
// Install the package:
//
//	go get github.com/manojjahgirdar/types-of-retrieval-augmented-generation
//
// Basic example:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms/instructlab"
//		"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag/engine"
//		"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag/loader"
//		"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag/retriever"
//		"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag/store"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		model, err := instructlab.New()
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		embedder := store.NewMockEmbedder(256)
//		vs := store.NewMemoryVectorStore(embedder)
//		ret := retriever.NewVectorRetriever(vs, embedder)
//
//		eng := engine.NewSimpleRAG(model, ret, engine.WithVectorStore(vs))
//		eng.Ingest(ctx, loader.NewTextLoader("notes.txt"))
//
//		result, err := eng.Query(ctx, "What do my notes say about Go?")
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(result.Answer)
//	}
//
// # The Three Patterns
//
// Simple RAG retrieves the chunks most similar to the question, folds them
// into the prompt and asks the model once. It is stateless: every query
// stands alone.
//
//	eng := engine.NewSimpleRAG(model, ret, engine.WithVectorStore(vs))
//	result, _ := eng.Query(ctx, "What is a pod?")
//
// RAG with memory keeps a conversation going. The chat history is folded
// into every prompt alongside the retrieved context, so follow-up questions
// can say "it" and mean the previous answer. Sessions can be persisted to
// a conversation store and resumed later.
//
//	eng := engine.NewConversationalRAG(model, ret, memory.NewWindowMemory(10),
//		engine.WithConversationStore(sessions),
//		engine.WithSessionID("alice"),
//	)
//	result, _ := eng.Chat(ctx, "When was it released?")
//
// Agentic RAG hands control to the model: each round it decides whether to
// search the knowledge base, call another tool, or answer. Tool outputs are
// fed back as observations until the model settles on a final answer or the
// iteration budget runs out.
//
//	eng := engine.NewAgenticRAG(model, []tools.Tool{
//		tool.NewKnowledgeBaseTool(ret),
//	})
//	result, _ := eng.Run(ctx, "What does the design doc say about rollouts?")
//
// # Package Structure
//
// llms/
// The model interface and its providers
//
// llms.Model is two methods: Call for a blocking completion and Stream for
// a token stream. llms/instructlab talks to an InstructLab chat-completion
// server through a low-level client subpackage; llms/openai covers OpenAI
// and OpenAI-compatible endpoints such as vLLM or watsonx.ai.
//
//	model, _ := instructlab.New(
//		instructlab.WithModel(instructlab.ModelNameGranite7BLab),
//		instructlab.WithSystemMessage("Answer briefly."),
//	)
//	answer, _ := model.Call(ctx, "What is InstructLab?")
//
// rag/
// Retrieval building blocks
//
// Documents, loaders (text, markdown, PDF, HTML), splitters, embedders,
// vector stores (in-memory and Redis), retrievers (top-k, score threshold,
// MMR) and the prompt template. Adapters bridge langchaingo loaders,
// splitters, embedders and vector stores into the same interfaces. The
// engines live in rag/engine.
//
// memory/
// Conversation memory strategies
//
// Buffer (everything, optionally capped), window (last N messages) and
// summary (older turns compressed by the model). All satisfy one Memory
// interface the conversational engine consumes.
//
// store/
// Conversation persistence
//
// One ConversationStore interface with in-memory, Redis, SQLite and
// PostgreSQL backends for saving, listing and resuming chat sessions.
//
//	sessions, _ := sqlite.NewSqliteConversationStore(sqlite.SqliteOptions{
//		Path: "sessions.db",
//	})
//
// tool/
// Tools for the agentic pattern
//
// A knowledge base tool that exposes any retriever to the agent, and a
// Brave web search tool.
//
// adapter/
// Bridges to other AI frameworks: any langchaingo model as a llms.Model,
// and goskills skill packages as agent tools.
//
// log/
// The Logger interface used across the module, with a stdlib-backed
// default and a kataras/golog adapter.
//
// cmd/ragchat
// A terminal client covering all three patterns: ingest documents, ask
// one-shot questions (optionally through the agent) and chat with
// streaming output and persistent sessions.
//
// examples/
// One runnable main per pattern: simple_rag, rag_with_memory and
// agentic_rag.
package typesofrag // import "github.com/manojjahgirdar/types-of-retrieval-augmented-generation"
