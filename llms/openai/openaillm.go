// Package openai provides a llms.Model backed by an OpenAI-compatible hosted
// endpoint, for running the same RAG pipelines against a remote model
// instead of a local InstructLab server.
package openai

import (
	"context"
	"errors"
	"net/http"
	"os"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/log"
)

var (
	ErrNotSetAuth    = errors.New("openai: API key not set")
	ErrEmptyResponse = errors.New("openai: no completion choices in response")
)

const typeTag = "openai"

// LLM is a chat model behind an OpenAI-compatible API. Unlike the
// instructlab provider it honors stop words by passing them through.
type LLM struct {
	client        *goopenai.Client
	model         string
	systemMessage string
	logger        log.Logger
}

var _ llms.Model = (*LLM)(nil)

type options struct {
	token         string
	baseURL       string
	model         string
	systemMessage string
	httpClient    *http.Client
	logger        log.Logger
}

// Option is a function that configures an LLM.
type Option func(*options)

// WithToken sets the API key. Defaults to the OPENAI_API_KEY environment
// variable.
func WithToken(token string) Option {
	return func(opts *options) {
		opts.token = token
	}
}

// WithBaseURL points the client at a different OpenAI-compatible endpoint,
// such as a vLLM or watsonx.ai deployment.
func WithBaseURL(baseURL string) Option {
	return func(opts *options) {
		opts.baseURL = baseURL
	}
}

// WithModel sets the model identifier sent with every request.
func WithModel(model string) Option {
	return func(opts *options) {
		opts.model = model
	}
}

// WithSystemMessage sets the system message sent as the first message of
// every request.
func WithSystemMessage(message string) Option {
	return func(opts *options) {
		opts.systemMessage = message
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(opts *options) {
		opts.httpClient = httpClient
	}
}

// WithLogger sets the logger. Defaults to the package-level logger.
func WithLogger(logger log.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// New returns an LLM for an OpenAI-compatible endpoint.
func New(opts ...Option) (*LLM, error) {
	options := &options{
		token:         os.Getenv("OPENAI_API_KEY"),
		model:         goopenai.GPT3Dot5Turbo,
		systemMessage: "You are a helpful AI assistant.",
		logger:        log.GetDefaultLogger(),
	}
	for _, opt := range opts {
		opt(options)
	}

	if options.token == "" {
		return nil, ErrNotSetAuth
	}

	cfg := goopenai.DefaultConfig(options.token)
	if options.baseURL != "" {
		cfg.BaseURL = options.baseURL
	}
	if options.httpClient != nil {
		cfg.HTTPClient = options.httpClient
	}

	return &LLM{
		client:        goopenai.NewClientWithConfig(cfg),
		model:         options.model,
		systemMessage: options.systemMessage,
		logger:        options.logger,
	}, nil
}

// Call sends the prompt and blocks until the complete reply is available.
func (o *LLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	opts := &llms.CallOptions{}
	for _, opt := range options {
		opt(opts)
	}

	o.logger.Debug("openai: completion request, model=%s", o.model)

	resp, err := o.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:    o.model,
		Messages: o.chatMessages(prompt),
		Stop:     opts.StopWords,
	})
	if err != nil {
		o.logger.Error("openai: completion failed: %v", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

// Stream sends the prompt and returns a stream of reply fragments.
func (o *LLM) Stream(ctx context.Context, prompt string, options ...llms.CallOption) (llms.TokenStream, error) {
	opts := &llms.CallOptions{}
	for _, opt := range options {
		opt(opts)
	}

	o.logger.Debug("openai: streaming request, model=%s", o.model)

	stream, err := o.client.CreateChatCompletionStream(ctx, goopenai.ChatCompletionRequest{
		Model:    o.model,
		Messages: o.chatMessages(prompt),
		Stop:     opts.StopWords,
		Stream:   true,
	})
	if err != nil {
		o.logger.Error("openai: streaming request failed: %v", err)
		return nil, err
	}

	return &tokenStream{ctx: ctx, inner: stream, observe: opts.StreamingFunc}, nil
}

// Type returns the fixed type tag for this model variant.
func (o *LLM) Type() string {
	return typeTag
}

func (o *LLM) chatMessages(prompt string) []goopenai.ChatCompletionMessage {
	return []goopenai.ChatCompletionMessage{
		{Role: goopenai.ChatMessageRoleSystem, Content: o.systemMessage},
		{Role: goopenai.ChatMessageRoleUser, Content: prompt},
	}
}

// tokenStream adapts the go-openai SSE stream to llms.TokenStream. Chunks
// without choices are skipped rather than yielded.
type tokenStream struct {
	ctx     context.Context
	inner   *goopenai.ChatCompletionStream
	observe func(ctx context.Context, fragment string) error
}

var _ llms.TokenStream = (*tokenStream)(nil)

func (s *tokenStream) Recv() (string, error) {
	for {
		resp, err := s.inner.Recv()
		if err != nil {
			// io.EOF passes through untouched as the end-of-stream marker.
			return "", err
		}
		if len(resp.Choices) == 0 {
			continue
		}

		fragment := resp.Choices[0].Delta.Content
		if s.observe != nil {
			if err := s.observe(s.ctx, fragment); err != nil {
				return "", err
			}
		}
		return fragment, nil
	}
}

func (s *tokenStream) Close() error {
	return s.inner.Close()
}
