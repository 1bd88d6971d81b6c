// Package splitter provides text splitters that chunk documents for
// embedding and retrieval. For token-based splitting, wrap a langchaingo
// splitter with rag.NewLangChainSplitter.
package splitter

import (
	"fmt"
	"maps"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
)

// chunkDocuments runs split over each document and rebuilds the results as
// chunk documents. Chunks keep the parent's metadata plus their position.
func chunkDocuments(split func(string) ([]string, error), docs []rag.Document) ([]rag.Document, error) {
	chunks := make([]rag.Document, 0, len(docs))

	for _, doc := range docs {
		textChunks, err := split(doc.Content)
		if err != nil {
			return nil, fmt.Errorf("split document %s: %w", doc.ID, err)
		}

		for i, chunk := range textChunks {
			metadata := make(map[string]any, len(doc.Metadata)+3)
			maps.Copy(metadata, doc.Metadata)
			metadata["chunk_index"] = i
			metadata["chunk_total"] = len(textChunks)
			metadata["parent_id"] = doc.ID

			chunks = append(chunks, rag.Document{
				ID:        fmt.Sprintf("%s_chunk_%d", doc.ID, i),
				Content:   chunk,
				Metadata:  metadata,
				CreatedAt: doc.CreatedAt,
				UpdatedAt: doc.UpdatedAt,
			})
		}
	}

	return chunks, nil
}
