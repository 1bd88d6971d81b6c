package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"

	chatmem "github.com/manojjahgirdar/types-of-retrieval-augmented-generation/memory"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/store"
)

func TestRedisConversationStore(t *testing.T) {
	// Start miniredis
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	// Create store
	st := NewRedisConversationStore(RedisOptions{
		Addr: mr.Addr(),
	})
	defer st.Close()

	ctx := context.Background()

	// Create conversation
	conv := store.NewConversation("conv-1", "Kubernetes questions")
	conv.Messages = append(conv.Messages,
		chatmem.NewMessage(chatmem.RoleUser, "What is a pod?"),
		chatmem.NewMessage(chatmem.RoleAssistant, "A pod is the smallest deployable unit."),
	)
	conv.Metadata["user_id"] = "alice@example.com"

	// Test Save
	err = st.Save(ctx, conv)
	assert.NoError(t, err)

	// Test Load
	loaded, err := st.Load(ctx, "conv-1")
	assert.NoError(t, err)
	assert.Equal(t, conv.ID, loaded.ID)
	assert.Equal(t, conv.Title, loaded.Title)
	assert.Len(t, loaded.Messages, 2)
	assert.Equal(t, chatmem.RoleUser, loaded.Messages[0].Role)
	assert.Equal(t, "A pod is the smallest deployable unit.", loaded.Messages[1].Content)
	assert.Equal(t, "alice@example.com", loaded.Metadata["user_id"])

	// Test List
	list, err := st.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, conv.ID, list[0].ID)

	// Test Delete
	err = st.Delete(ctx, "conv-1")
	assert.NoError(t, err)

	_, err = st.Load(ctx, "conv-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "conversation not found")

	list, err = st.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 0)

	// Test Clear
	// Add multiple conversations
	st.Save(ctx, store.NewConversation("conv-2", ""))
	st.Save(ctx, store.NewConversation("conv-3", ""))

	list, err = st.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 2)

	err = st.Clear(ctx)
	assert.NoError(t, err)

	list, err = st.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 0)
}

func TestRedisConversationStore_ListOrder(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	st := NewRedisConversationStore(RedisOptions{Addr: mr.Addr()})
	defer st.Close()

	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// Save newest first to prove List sorts by UpdatedAt
	for i, id := range []string{"conv-c", "conv-a", "conv-b"} {
		conv := store.NewConversation(id, "")
		switch i {
		case 0:
			conv.UpdatedAt = base.Add(2 * time.Hour)
		case 1:
			conv.UpdatedAt = base
		case 2:
			conv.UpdatedAt = base.Add(time.Hour)
		}
		assert.NoError(t, st.Save(ctx, conv))
	}

	list, err := st.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, "conv-a", list[0].ID)
	assert.Equal(t, "conv-b", list[1].ID)
	assert.Equal(t, "conv-c", list[2].ID)
}

func TestRedisConversationStore_TTL(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	st := NewRedisConversationStore(RedisOptions{
		Addr: mr.Addr(),
		TTL:  time.Minute,
	})
	defer st.Close()

	ctx := context.Background()

	err = st.Save(ctx, store.NewConversation("conv-ttl", ""))
	assert.NoError(t, err)

	_, err = st.Load(ctx, "conv-ttl")
	assert.NoError(t, err)

	// Expire the keys
	mr.FastForward(2 * time.Minute)

	_, err = st.Load(ctx, "conv-ttl")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "conversation not found")

	// Expired entries are skipped even if the index still held them
	list, err := st.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 0)
}

func TestRedisConversationStore_CustomPrefix(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	st := NewRedisConversationStore(RedisOptions{
		Addr:   mr.Addr(),
		Prefix: "myapp:",
	})
	defer st.Close()

	ctx := context.Background()
	assert.NoError(t, st.Save(ctx, store.NewConversation("conv-1", "")))

	// Keys live under the configured prefix
	assert.True(t, mr.Exists("myapp:conversation:conv-1"))
	assert.True(t, mr.Exists("myapp:conversations"))
}
