package loader

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPDFLoaderMissingFile(t *testing.T) {
	ctx := context.Background()
	loader := NewPDFLoader(filepath.Join(t.TempDir(), "missing.pdf"))
	_, err := loader.Load(ctx)
	assert.Error(t, err)
	assert.ErrorContains(t, err, "open file")
}
