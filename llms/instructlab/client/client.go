// Package client implements the low-level HTTP protocol spoken by an
// InstructLab-style chat completion server: one JSON POST per call, answered
// either by a complete OpenAI-shaped body or by a stream of newline-delimited
// JSON fragments.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrEmptyResponse is returned when a 200 response carries no choices.
	ErrEmptyResponse = errors.New("no completion choices in response")
)

// DefaultEndpoint is where a locally served InstructLab model listens.
const DefaultEndpoint = "http://localhost:8000/v1/chat/completions"

// RequestError is returned when the server answers with a status other than
// 200. It carries the numeric status code; the response body is discarded
// without being parsed.
type RequestError struct {
	StatusCode int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("chat request failed with status code %d", e.StatusCode)
}

// Client is a minimal client for the chat completion endpoint. It performs
// exactly one outbound request per method call and keeps no state between
// calls, so a single Client can back many invocations.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option is a function that configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	endpoint   string
	httpClient *http.Client
}

// WithEndpoint sets the full URL of the chat completion endpoint.
func WithEndpoint(endpoint string) Option {
	return func(opts *clientOptions) {
		opts.endpoint = endpoint
	}
}

// WithHTTPClient sets the HTTP client used for both the synchronous and the
// streaming path. The default client carries no response timeout: streaming
// responses stay open for the lifetime of the stream, and deadlines belong
// on the caller's context.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *clientOptions) {
		opts.httpClient = client
	}
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	options := &clientOptions{
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.endpoint == "" {
		return nil, errors.New("endpoint not set")
	}

	return &Client{
		endpoint:   options.endpoint,
		httpClient: options.httpClient,
	}, nil
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the chat completion endpoint. The
// model identifier and messages are sent verbatim.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// ChatResponse represents a synchronous response from the chat completion
// endpoint. Fields beyond the first choice's message content are decoded
// when present and otherwise left at their zero values.
type ChatResponse struct {
	ID      string   `json:"id,omitempty"`
	Object  string   `json:"object,omitempty"`
	Created int64    `json:"created,omitempty"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage,omitempty"`
}

// Choice represents one completion choice in the response.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// Usage represents token usage information.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Content returns the text of the first choice.
func (r *ChatResponse) Content() (string, error) {
	if len(r.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return r.Choices[0].Message.Content, nil
}

// CreateChatCompletion sends a chat completion request and blocks until the
// complete response body has been read. The connection is released before
// the method returns, on every path.
func (c *Client) CreateChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	resp, err := c.post(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &RequestError{StatusCode: resp.StatusCode}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var result ChatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &result, nil
}

// CreateChatCompletionStream sends the same request with the connection held
// open and returns a ChatStream reading fragments from it. A non-200 status
// fails here, before any fragment is produced. The caller owns the stream
// and must Close it to release the connection.
func (c *Client) CreateChatCompletionStream(ctx context.Context, req *ChatRequest) (*ChatStream, error) {
	resp, err := c.post(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &RequestError{StatusCode: resp.StatusCode}
	}

	return newChatStream(resp), nil
}

func (c *Client) post(ctx context.Context, req *ChatRequest) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	return resp, nil
}
