// Package adapter bridges third-party AI frameworks to this repository's
// abstractions.
//
// LangChainModel wraps any langchaingo model as a llms.Model, so the RAG
// engines can run against every provider langchaingo supports without the
// repository growing a client per vendor:
//
//	base, err := lcopenai.New(lcopenai.WithModel("gpt-4o-mini"))
//	if err != nil {
//		return err
//	}
//	model := adapter.NewLangChainModel(base,
//		adapter.WithSystemMessage("You answer using only the given context."),
//	)
//
//	engine := engine.NewSimpleRAG(model, retriever)
//
// The goskills subpackage adapts skill packages into agent tools.
package adapter
