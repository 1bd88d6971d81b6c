package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms"
)

// TestLLM_Create tests LLM creation with various options.
func TestLLM_Create(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{
			name:    "no token",
			opts:    []Option{},
			wantErr: true,
		},
		{
			name: "with token",
			opts: []Option{
				WithToken("test-key"),
			},
			wantErr: false,
		},
		{
			name: "with token and custom base url",
			opts: []Option{
				WithToken("test-key"),
				WithBaseURL("https://example.com/v1"),
				WithModel("granite-13b-chat-v2"),
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm, err := New(tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && llm == nil {
				t.Error("New() returned nil LLM")
			}
		})
	}
}

// TestLLM_CallStopWordsPassThrough tests that stop words reach the request
// body instead of failing the call.
func TestLLM_CallStopWordsPassThrough(t *testing.T) {
	var gotReq goopenai.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"fine"}}]}`))
	}))
	defer server.Close()

	llm, err := New(
		WithToken("test-key"),
		WithBaseURL(server.URL+"/v1"),
		WithModel("test-model"),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	result, err := llm.Call(context.Background(), "hello", llms.WithStopWords([]string{"\nObservation:"}))
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result != "fine" {
		t.Errorf("Expected 'fine', got %q", result)
	}

	if len(gotReq.Stop) != 1 || gotReq.Stop[0] != "\nObservation:" {
		t.Errorf("Stop words not passed through: %v", gotReq.Stop)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[1].Content != "hello" {
		t.Errorf("Unexpected messages: %+v", gotReq.Messages)
	}
}

// TestLLM_Stream tests the SSE stream adaptation.
func TestLLM_Stream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: {\"choices\":[{\"index\":0,\"delta\":{\"content\":\"a\"}}]}\n\n"))
		w.Write([]byte("data: {\"choices\":[{\"index\":0,\"delta\":{\"content\":\"b\"}}]}\n\n"))
		w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	llm, err := New(
		WithToken("test-key"),
		WithBaseURL(server.URL+"/v1"),
		WithModel("test-model"),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	var observed []string
	stream, err := llm.Stream(context.Background(), "x",
		llms.WithStreamingFunc(func(ctx context.Context, fragment string) error {
			observed = append(observed, fragment)
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}

	full, err := llms.ReadAll(stream)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if full != "ab" {
		t.Errorf("Expected 'ab', got %q", full)
	}
	if len(observed) != 2 {
		t.Errorf("Observer saw %v", observed)
	}
}

// TestLLM_Type tests the type tag.
func TestLLM_Type(t *testing.T) {
	llm, err := New(WithToken("test-key"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if llm.Type() != "openai" {
		t.Errorf("Unexpected type tag: %s", llm.Type())
	}
}

// TestLLM_Call_RealAPI tests against the real API.
// Skipped if OPENAI_API_KEY is not set.
func TestLLM_Call_RealAPI(t *testing.T) {
	if os.Getenv("OPENAI_API_KEY") == "" {
		t.Skip("OPENAI_API_KEY not set")
	}

	llm, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	result, err := llm.Call(context.Background(), "Say hello in one word.")
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result == "" {
		t.Error("Empty result")
	}
	t.Logf("Result: %s", result)

	stream, err := llm.Stream(context.Background(), "Count from 1 to 3.")
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	defer stream.Close()

	for {
		fragment, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Recv failed: %v", err)
		}
		t.Logf("Fragment: %q", fragment)
	}
}

// TestLLM_EmptyChoices tests the empty-response guard.
func TestLLM_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	llm, err := New(WithToken("test-key"), WithBaseURL(server.URL+"/v1"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = llm.Call(context.Background(), "x")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got %v", err)
	}
}
