package llms

import "context"

// CallOptions holds the per-call settings a Model understands. Providers
// that cannot honor a setting must fail before any network I/O rather than
// silently drop it.
type CallOptions struct {
	// StopWords are substrings at which generation should stop. Support is
	// provider-dependent: the instructlab provider rejects them, the openai
	// provider passes them through.
	StopWords []string

	// StreamingFunc observes fragments during a streaming call. It is
	// invoked once per fragment, in order, before the fragment is handed to
	// the caller. A non-nil error aborts the stream.
	StreamingFunc func(ctx context.Context, fragment string) error
}

// CallOption configures a single Call or Stream invocation.
type CallOption func(*CallOptions)

// WithStopWords sets stop substrings for this call.
func WithStopWords(words []string) CallOption {
	return func(o *CallOptions) {
		o.StopWords = words
	}
}

// WithStreamingFunc registers a per-fragment observer for this call.
func WithStreamingFunc(f func(ctx context.Context, fragment string) error) CallOption {
	return func(o *CallOptions) {
		o.StreamingFunc = f
	}
}
