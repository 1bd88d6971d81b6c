package adapter

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lcllms "github.com/tmc/langchaingo/llms"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms"
)

type mockLLM struct {
	response string
	chunks   []string
	err      error
	choices  []*lcllms.ContentChoice

	lastMessages []lcllms.MessageContent
	lastOpts     lcllms.CallOptions
}

func (m *mockLLM) GenerateContent(ctx context.Context, messages []lcllms.MessageContent, options ...lcllms.CallOption) (*lcllms.ContentResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.lastMessages = messages

	opts := lcllms.CallOptions{}
	for _, o := range options {
		o(&opts)
	}
	m.lastOpts = opts

	if m.err != nil {
		return nil, m.err
	}

	if opts.StreamingFunc != nil {
		for _, chunk := range m.chunks {
			if err := opts.StreamingFunc(ctx, []byte(chunk)); err != nil {
				return nil, err
			}
		}
	}

	if m.choices != nil {
		return &lcllms.ContentResponse{Choices: m.choices}, nil
	}
	return &lcllms.ContentResponse{
		Choices: []*lcllms.ContentChoice{{Content: m.response}},
	}, nil
}

func (m *mockLLM) Call(ctx context.Context, prompt string, options ...lcllms.CallOption) (string, error) {
	return m.response, m.err
}

func messageText(t *testing.T, message lcllms.MessageContent) string {
	t.Helper()
	require.NotEmpty(t, message.Parts)
	text, ok := message.Parts[0].(lcllms.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestLangChainModel_Call(t *testing.T) {
	mock := &mockLLM{response: "Hello! How can I help you?"}
	model := NewLangChainModel(mock)

	result, err := model.Call(context.Background(), "Hello, world!")
	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I help you?", result)

	require.Len(t, mock.lastMessages, 1)
	assert.Equal(t, lcllms.ChatMessageTypeHuman, mock.lastMessages[0].Role)
	assert.Equal(t, "Hello, world!", messageText(t, mock.lastMessages[0]))
}

func TestLangChainModel_CallWithSystemMessage(t *testing.T) {
	mock := &mockLLM{response: "OK"}
	model := NewLangChainModel(mock, WithSystemMessage("You are terse."))

	_, err := model.Call(context.Background(), "Hi")
	require.NoError(t, err)

	require.Len(t, mock.lastMessages, 2)
	assert.Equal(t, lcllms.ChatMessageTypeSystem, mock.lastMessages[0].Role)
	assert.Equal(t, "You are terse.", messageText(t, mock.lastMessages[0]))
	assert.Equal(t, lcllms.ChatMessageTypeHuman, mock.lastMessages[1].Role)
	assert.Equal(t, "Hi", messageText(t, mock.lastMessages[1]))
}

func TestLangChainModel_CallStopWords(t *testing.T) {
	mock := &mockLLM{response: "partial"}
	model := NewLangChainModel(mock)

	_, err := model.Call(context.Background(), "count up", llms.WithStopWords([]string{"five"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"five"}, mock.lastOpts.StopWords)
}

func TestLangChainModel_CallError(t *testing.T) {
	mock := &mockLLM{err: errors.New("rate limited")}
	model := NewLangChainModel(mock)

	_, err := model.Call(context.Background(), "Hi")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "langchain model")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestLangChainModel_CallEmptyChoices(t *testing.T) {
	mock := &mockLLM{choices: []*lcllms.ContentChoice{}}
	model := NewLangChainModel(mock)

	_, err := model.Call(context.Background(), "Hi")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestLangChainModel_Stream(t *testing.T) {
	mock := &mockLLM{chunks: []string{"Hel", "lo", "!"}}
	model := NewLangChainModel(mock)

	stream, err := model.Stream(context.Background(), "Say hello")
	require.NoError(t, err)

	var fragments []string
	for {
		fragment, err := stream.Recv()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		fragments = append(fragments, fragment)
	}
	require.NoError(t, stream.Close())

	assert.Equal(t, []string{"Hel", "lo", "!"}, fragments)
}

func TestLangChainModel_StreamReadAll(t *testing.T) {
	mock := &mockLLM{chunks: []string{"to", "kens"}}
	model := NewLangChainModel(mock)

	stream, err := model.Stream(context.Background(), "Go")
	require.NoError(t, err)

	content, err := llms.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "tokens", content)
}

func TestLangChainModel_StreamObserver(t *testing.T) {
	mock := &mockLLM{chunks: []string{"a", "b"}}
	model := NewLangChainModel(mock)

	var observed []string
	stream, err := model.Stream(context.Background(), "Go",
		llms.WithStreamingFunc(func(_ context.Context, fragment string) error {
			observed = append(observed, fragment)
			return nil
		}))
	require.NoError(t, err)

	content, err := llms.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "ab", content)
	assert.Equal(t, []string{"a", "b"}, observed)
}

func TestLangChainModel_StreamObserverAbort(t *testing.T) {
	mock := &mockLLM{chunks: []string{"a", "b"}}
	model := NewLangChainModel(mock)

	stream, err := model.Stream(context.Background(), "Go",
		llms.WithStreamingFunc(func(_ context.Context, _ string) error {
			return errors.New("observer gave up")
		}))
	require.NoError(t, err)
	defer stream.Close()

	_, err = stream.Recv()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "streaming callback")
	assert.Contains(t, err.Error(), "observer gave up")
}

func TestLangChainModel_StreamModelError(t *testing.T) {
	mock := &mockLLM{err: errors.New("connection reset")}
	model := NewLangChainModel(mock)

	stream, err := model.Stream(context.Background(), "Go")
	require.NoError(t, err)
	defer stream.Close()

	_, err = stream.Recv()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestLangChainModel_StreamCloseEarly(t *testing.T) {
	mock := &mockLLM{chunks: []string{"one", "two", "three"}}
	model := NewLangChainModel(mock)

	stream, err := model.Stream(context.Background(), "Go")
	require.NoError(t, err)

	fragment, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "one", fragment)

	require.NoError(t, stream.Close())

	_, err = stream.Recv()
	assert.Equal(t, io.EOF, err)
}
