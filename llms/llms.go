// Package llms defines the small language-model abstraction shared by the
// RAG engines in this repository.
//
// A Model produces a reply for a single prompt, either as one complete
// string (Call) or as a lazy stream of text fragments (Stream). Providers
// live in subpackages: instructlab talks to a local InstructLab-style
// inference server, openai talks to OpenAI-compatible hosted endpoints.
package llms

import (
	"context"
	"io"
	"strings"
)

// Model is a chat-completion language model.
//
// Implementations send exactly one HTTP request per invocation and hold no
// mutable state across calls, so a Model is safe to share.
type Model interface {
	// Call sends the prompt and blocks until the complete reply is available.
	Call(ctx context.Context, prompt string, opts ...CallOption) (string, error)

	// Stream sends the prompt and returns a stream of reply fragments. The
	// stream is finite and non-restartable: once Recv returns io.EOF the
	// call is over, and a new Stream call is needed to stream again. The
	// caller owns the stream and must Close it.
	Stream(ctx context.Context, prompt string, opts ...CallOption) (TokenStream, error)
}

// TokenStream is a lazy sequence of reply fragments backed by a single open
// connection.
type TokenStream interface {
	// Recv returns the next fragment. It returns io.EOF when the server has
	// closed the connection and no fragments remain.
	Recv() (string, error)

	// Close releases the underlying connection. Safe to call more than once.
	Close() error
}

// ReadAll drains the stream into one string and closes it. It returns
// whatever was received before the first error, if any.
func ReadAll(s TokenStream) (string, error) {
	defer s.Close()

	var sb strings.Builder
	for {
		fragment, err := s.Recv()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(fragment)
	}
}
