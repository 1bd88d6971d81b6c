// Package rag provides the building blocks for retrieval-augmented
// generation: documents, loaders, splitters, embedders, vector stores,
// retrievers and the prompt template that grounds a model's answer in
// retrieved context.
//
// # Components
//
// Documents flow through a pipeline of small interfaces:
//
//	type DocumentLoader interface {
//		Load(ctx context.Context) ([]Document, error)
//	}
//
//	type TextSplitter interface {
//		SplitText(text string) ([]string, error)
//		SplitDocuments(docs []Document) ([]Document, error)
//	}
//
//	type Embedder interface {
//		EmbedDocument(ctx context.Context, text string) ([]float32, error)
//		EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
//		GetDimension() int
//	}
//
//	type Retriever interface {
//		Retrieve(ctx context.Context, query string) ([]SearchResult, error)
//	}
//
// Concrete implementations live in the subpackages: rag/loader for file,
// HTML and Markdown loaders, rag/splitter for chunking, rag/store for
// vector stores, rag/retriever for retrieval strategies and rag/engine
// for the assembled RAG patterns.
//
// # Quick Start
//
//	emb := store.NewMockEmbedder(64)
//	vs := store.NewMemoryVectorStore(emb)
//	ret := retriever.NewVectorRetriever(vs, emb)
//
//	eng := engine.NewSimpleRAG(model, ret, engine.WithVectorStore(vs))
//	eng.Ingest(ctx, loader.NewTextLoader("notes.txt"))
//	result, _ := eng.Query(ctx, "What do my notes say about Go?")
//
// # LangChain Interop
//
// Adapters bridge langchaingo components into this package's interfaces:
// document loaders (NewLangChainLoader), text splitters
// (NewLangChainSplitter), embedders (NewLangChainEmbedder) and vector
// stores used as retrievers (NewLangChainRetriever).
//
// # Prompting
//
// PromptTemplate renders retrieved documents and the question into the
// prompt sent to a model:
//
//	Context:
//	[1] Source: notes.txt
//	Content: ...
//
//	Question: ...
//
//	Answer:
package rag
