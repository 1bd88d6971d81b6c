// Package instructlab provides a llms.Model backed by a locally served
// InstructLab model. The server speaks an OpenAI-shaped chat completion
// protocol for synchronous calls and newline-delimited JSON for streaming.
package instructlab

import (
	"context"
	"errors"
	"fmt"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms/instructlab/client"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/log"
)

var (
	// ErrStopWordsNotSupported is returned, before any request is issued,
	// when a call carries stop words. The server has no stop parameter, and
	// dropping them silently would change generation semantics.
	ErrStopWordsNotSupported = errors.New("instructlab: stop words are not supported")
)

// typeTag identifies this model variant in caller-side logging and dispatch.
const typeTag = "instructlab"

// Config is the read-only configuration of an LLM. All three fields are
// fixed at construction time.
type Config struct {
	Endpoint      string
	Model         string
	SystemMessage string
}

// LLM is a chat model served by a local InstructLab server.
type LLM struct {
	client *client.Client
	config Config
	logger log.Logger
}

var _ llms.Model = (*LLM)(nil)

// New returns an LLM for a locally served InstructLab model.
//
// Example:
//
//	llm, err := instructlab.New(
//		instructlab.WithEndpoint("http://localhost:8000/v1/chat/completions"),
//		instructlab.WithModel(instructlab.ModelNameMerlinite7BLab),
//		instructlab.WithSystemMessage("You answer using only the given context."),
//	)
func New(opts ...Option) (*LLM, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	clientOpts := []client.Option{
		client.WithEndpoint(options.endpoint),
	}
	if options.httpClient != nil {
		clientOpts = append(clientOpts, client.WithHTTPClient(options.httpClient))
	}

	c, err := client.New(clientOpts...)
	if err != nil {
		return nil, err
	}

	return &LLM{
		client: c,
		config: Config{
			Endpoint:      options.endpoint,
			Model:         string(options.model),
			SystemMessage: options.systemMessage,
		},
		logger: options.logger,
	}, nil
}

// Call sends the prompt and blocks until the complete reply is available.
func (o *LLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	opts := &llms.CallOptions{}
	for _, opt := range options {
		opt(opts)
	}

	if len(opts.StopWords) > 0 {
		return "", ErrStopWordsNotSupported
	}

	o.logger.Debug("instructlab: completion request, model=%s", o.config.Model)

	resp, err := o.client.CreateChatCompletion(ctx, o.chatRequest(prompt))
	if err != nil {
		o.logger.Error("instructlab: completion failed: %v", err)
		return "", err
	}

	return resp.Content()
}

// Stream sends the prompt and returns a stream of reply fragments. When a
// StreamingFunc is registered it observes every fragment, in order, before
// Recv hands the fragment to the caller.
func (o *LLM) Stream(ctx context.Context, prompt string, options ...llms.CallOption) (llms.TokenStream, error) {
	opts := &llms.CallOptions{}
	for _, opt := range options {
		opt(opts)
	}

	if len(opts.StopWords) > 0 {
		return nil, ErrStopWordsNotSupported
	}

	o.logger.Debug("instructlab: streaming request, model=%s", o.config.Model)

	stream, err := o.client.CreateChatCompletionStream(ctx, o.chatRequest(prompt))
	if err != nil {
		o.logger.Error("instructlab: streaming request failed: %v", err)
		return nil, err
	}

	if opts.StreamingFunc == nil {
		return stream, nil
	}
	return &observedStream{ctx: ctx, inner: stream, observe: opts.StreamingFunc}, nil
}

// Config returns a copy of the client configuration.
func (o *LLM) Config() Config {
	return o.config
}

// Type returns the fixed type tag for this model variant.
func (o *LLM) Type() string {
	return typeTag
}

func (o *LLM) chatRequest(prompt string) *client.ChatRequest {
	return &client.ChatRequest{
		Model: o.config.Model,
		Messages: []client.Message{
			{Role: "system", Content: o.config.SystemMessage},
			{Role: "user", Content: prompt},
		},
	}
}

// observedStream invokes the registered observer for each fragment before
// yielding it. The context is the one the call was issued with; the observer
// sees it so it can stop the stream by returning an error.
type observedStream struct {
	ctx     context.Context
	inner   *client.ChatStream
	observe func(ctx context.Context, fragment string) error
}

func (s *observedStream) Recv() (string, error) {
	fragment, err := s.inner.Recv()
	if err != nil {
		return "", err
	}
	if err := s.observe(s.ctx, fragment); err != nil {
		return "", fmt.Errorf("streaming callback: %w", err)
	}
	return fragment, nil
}

func (s *observedStream) Close() error {
	return s.inner.Close()
}
