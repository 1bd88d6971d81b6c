// Package memory provides conversation memory strategies for chat applications.
//
// This package implements several approaches to managing conversation history,
// from a simple buffer to LLM-backed summarization. It is designed to keep the
// context passed into a model relevant and bounded while preserving the full
// transcript for persistence and display.
//
// # Core Interface
//
// The Memory interface defines the contract that all memory strategies implement:
//
//   - AddMessage: Add a new message to memory
//   - GetMessages: Retrieve the full stored history
//   - GetContext: Retrieve the context to include in the next prompt
//   - Clear: Remove all messages from memory
//   - GetStats: Get statistics about memory usage
//
// # Available Memory Strategies
//
// ## Buffer Memory
// Simple first-in-first-out buffer with an optional size cap:
//
//	buffer := memory.NewBufferMemory(100) // keep the last 100 messages, 0 = unbounded
//	buffer.AddMessage(ctx, memory.NewMessage(memory.RoleUser, "Hello!"))
//	history, _ := buffer.GetContext(ctx, "current query")
//
// ## Window Memory
// Retains the full history but only surfaces the most recent messages as
// context:
//
//	window := memory.NewWindowMemory(10) // last 10 messages in the prompt
//
// ## Summary Memory
// Folds older messages into a running summary using an LLM, keeping prompts
// short in long conversations:
//
//	summ := memory.NewSummaryMemory(model, &memory.SummaryConfig{
//		RecentWindowSize: 6,
//		SummarizeAfter:   12,
//	})
//
// GetContext returns the summary as a leading system message followed by the
// recent window.
//
// # Message Structure
//
// Each message carries:
//
//	type Message struct {
//		ID         string         // Unique identifier
//		Role       string         // "user", "assistant", "system"
//		Content    string         // Message content
//		Timestamp  time.Time      // When created
//		Metadata   map[string]any // Additional metadata
//		TokenCount int            // Approximate token count
//	}
//
// # Memory Statistics
//
// All implementations report usage:
//
//	stats, _ := mem.GetStats(ctx)
//	fmt.Printf("Total messages: %d\n", stats.TotalMessages)
//	fmt.Printf("Active tokens: %d\n", stats.ActiveTokens)
//	fmt.Printf("Compression rate: %.2f\n", stats.CompressionRate)
//
// # Choosing a Strategy
//
//   - Buffer: short conversations, fixed context size
//   - Window: long conversations where only recent turns matter
//   - Summary: long conversations where older information must be preserved
//
// # Thread Safety
//
// All memory implementations are safe for concurrent use from multiple
// goroutines.
package memory
