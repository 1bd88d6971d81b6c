package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockEmbedder(t *testing.T) {
	ctx := context.Background()
	e := NewMockEmbedder(4)
	assert.Equal(t, 4, e.GetDimension())

	emb, err := e.EmbedDocument(ctx, "test")
	assert.NoError(t, err)
	assert.Len(t, emb, 4)

	// Deterministic: same text, same vector
	again, err := e.EmbedDocument(ctx, "test")
	assert.NoError(t, err)
	assert.Equal(t, emb, again)

	other, err := e.EmbedDocument(ctx, "different text")
	assert.NoError(t, err)
	assert.NotEqual(t, emb, other)

	// Unit length
	var norm float64
	for _, v := range emb {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, norm, 1e-5)

	embs, err := e.EmbedDocuments(ctx, []string{"test1", "test2"})
	assert.NoError(t, err)
	assert.Len(t, embs, 2)
}
