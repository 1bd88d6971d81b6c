// Package engine assembles the retrieval building blocks into the three
// classic RAG patterns.
//
// SimpleRAG answers one-shot questions: retrieve, prompt, generate.
//
//	eng := engine.NewSimpleRAG(model, ret, engine.WithVectorStore(vs))
//	eng.Ingest(ctx, loader.NewTextLoader("notes.txt"))
//	result, err := eng.Query(ctx, "What do my notes say about Go?")
//
// ConversationalRAG adds memory: the conversation so far is folded into
// every prompt, and with a conversation store the session survives restarts.
//
//	eng := engine.NewConversationalRAG(model, ret, memory.NewWindowMemory(10),
//		engine.WithConversationStore(st),
//		engine.WithSessionID("alice"),
//	)
//	result, err := eng.Chat(ctx, "What did I just ask you?")
//
// AgenticRAG hands control to the model: per round it decides to call a
// tool or answer, and tool outputs flow back as observations.
//
//	web, err := tool.NewBraveSearch("")
//	if err != nil {
//		return err
//	}
//	eng := engine.NewAgenticRAG(model, []tools.Tool{
//		tool.NewKnowledgeBaseTool(ret),
//		web,
//	})
//	result, err := eng.Run(ctx, "Compare our docs with current upstream news.")
package engine
