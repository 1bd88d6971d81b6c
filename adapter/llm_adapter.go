package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	lcllms "github.com/tmc/langchaingo/llms"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms"
)

// ErrEmptyResponse is returned when the wrapped model produces no content
// choices.
var ErrEmptyResponse = errors.New("adapter: no content in model response")

// LangChainModel wraps a langchaingo model as a llms.Model, so any provider
// langchaingo supports can drive the RAG engines.
type LangChainModel struct {
	llm           lcllms.Model
	systemMessage string
}

var _ llms.Model = (*LangChainModel)(nil)

// LangChainModelOption configures a LangChainModel.
type LangChainModelOption func(*LangChainModel)

// WithSystemMessage prepends a system message to every call.
func WithSystemMessage(message string) LangChainModelOption {
	return func(m *LangChainModel) {
		m.systemMessage = message
	}
}

// NewLangChainModel wraps a langchaingo model.
func NewLangChainModel(llm lcllms.Model, opts ...LangChainModelOption) *LangChainModel {
	m := &LangChainModel{llm: llm}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Call sends the prompt and blocks until the complete reply is available.
func (m *LangChainModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	opts := &llms.CallOptions{}
	for _, opt := range options {
		opt(opts)
	}

	var lcOpts []lcllms.CallOption
	if len(opts.StopWords) > 0 {
		lcOpts = append(lcOpts, lcllms.WithStopWords(opts.StopWords))
	}

	resp, err := m.llm.GenerateContent(ctx, m.messages(prompt), lcOpts...)
	if err != nil {
		return "", fmt.Errorf("langchain model: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Content, nil
}

// Stream sends the prompt and returns a stream of reply fragments. The
// wrapped model pushes fragments through a callback, so generation runs in a
// background goroutine and errors from the model surface on Recv.
func (m *LangChainModel) Stream(ctx context.Context, prompt string, options ...llms.CallOption) (llms.TokenStream, error) {
	opts := &llms.CallOptions{}
	for _, opt := range options {
		opt(opts)
	}

	var lcOpts []lcllms.CallOption
	if len(opts.StopWords) > 0 {
		lcOpts = append(lcOpts, lcllms.WithStopWords(opts.StopWords))
	}

	stream := newPushStream()
	lcOpts = append(lcOpts, lcllms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
		fragment := string(chunk)
		if opts.StreamingFunc != nil {
			if err := opts.StreamingFunc(ctx, fragment); err != nil {
				return fmt.Errorf("streaming callback: %w", err)
			}
		}
		return stream.push(ctx, fragment)
	}))

	go func() {
		_, err := m.llm.GenerateContent(ctx, m.messages(prompt), lcOpts...)
		if err != nil {
			err = fmt.Errorf("langchain model: %w", err)
		}
		stream.finish(err)
	}()

	return stream, nil
}

func (m *LangChainModel) messages(prompt string) []lcllms.MessageContent {
	if m.systemMessage == "" {
		return []lcllms.MessageContent{
			lcllms.TextParts(lcllms.ChatMessageTypeHuman, prompt),
		}
	}
	return []lcllms.MessageContent{
		lcllms.TextParts(lcllms.ChatMessageTypeSystem, m.systemMessage),
		lcllms.TextParts(lcllms.ChatMessageTypeHuman, prompt),
	}
}

var errStreamClosed = errors.New("adapter: stream closed")

// pushStream adapts a push-style streaming callback to the pull-style
// TokenStream. The generating goroutine pushes fragments; the consumer pulls
// them with Recv. Closing the stream aborts the generation.
type pushStream struct {
	fragments chan string
	done      chan struct{}
	closeOnce sync.Once

	// err is the terminal generation error. Written once by finish before
	// fragments is closed, read by Recv only after it observes the close.
	err error
}

func newPushStream() *pushStream {
	return &pushStream{
		fragments: make(chan string),
		done:      make(chan struct{}),
	}
}

func (s *pushStream) push(ctx context.Context, fragment string) error {
	select {
	case s.fragments <- fragment:
		return nil
	case <-s.done:
		return errStreamClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *pushStream) finish(err error) {
	select {
	case <-s.done:
		// The consumer closed the stream on purpose; the abort is not a
		// generation failure.
		err = nil
	default:
	}
	s.err = err
	close(s.fragments)
}

func (s *pushStream) Recv() (string, error) {
	// A closed stream reports EOF even when the generator still has a
	// fragment in flight.
	select {
	case <-s.done:
		return "", io.EOF
	default:
	}

	select {
	case fragment, ok := <-s.fragments:
		if !ok {
			if s.err != nil {
				return "", s.err
			}
			return "", io.EOF
		}
		return fragment, nil
	case <-s.done:
		return "", io.EOF
	}
}

func (s *pushStream) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	return nil
}
