// Package tool provides tools.Tool implementations for agentic retrieval.
//
// The tools in this package let an agent decide when to consult the
// knowledge base and when to search the web, instead of always stuffing
// retrieved context into the prompt.
//
// # Knowledge Base Tool
//
// Expose an existing retriever as a tool:
//
//	kb := tool.NewKnowledgeBaseTool(retriever,
//		tool.WithToolName("Product_Docs"),
//		tool.WithToolDescription("Searches the product documentation."),
//	)
//
//	result, err := kb.Call(ctx, "how do I configure TLS?")
//
// The tool accepts either a plain query string or a JSON object with a
// "query" field, since models frequently emit the latter.
//
// # Brave Search
//
// Web search backed by the Brave Search API:
//
//	brave, err := tool.NewBraveSearch("", tool.WithBraveCount(5))
//	if err != nil {
//		return err
//	}
//
//	result, err := brave.Call(ctx, "latest Go release notes")
//
// An empty API key falls back to the BRAVE_API_KEY environment variable.
//
// Both tools implement github.com/tmc/langchaingo/tools.Tool and plug
// directly into the agentic engine.
package tool
