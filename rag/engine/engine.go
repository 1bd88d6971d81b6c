package engine

import (
	"io"
	"time"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/log"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/store"
)

// noRelevantInformation is the canned answer when retrieval comes back empty
// and there is no conversation history to fall back on.
const noRelevantInformation = "No relevant information found."

// defaultMaxIterations bounds the agentic loop.
const defaultMaxIterations = 20

// Result is the outcome of a single engine query.
type Result struct {
	// Query is the question as asked.
	Query string
	// Answer is the model's reply.
	Answer string
	// Sources are the retrieved documents the answer was grounded on,
	// ordered by descending relevance. Empty for the agentic engine, whose
	// evidence arrives through tool observations instead.
	Sources []rag.SearchResult
	// Steps records the agentic engine's thought/action/observation rounds.
	// Empty for the other engines.
	Steps []AgentStep
	// ResponseTime is the wall-clock duration of the whole query.
	ResponseTime time.Duration
}

// AgentStep is one round of the agentic loop.
type AgentStep struct {
	Thought     string
	Action      string
	ActionInput string
	Observation string
	// FinalAnswer is set on the closing step instead of an action.
	FinalAnswer string
}

// StreamResult is the outcome of a streaming query: the sources are known up
// front, the answer arrives through Stream. The caller owns the stream and
// must Close it.
type StreamResult struct {
	Query   string
	Sources []rag.SearchResult
	Stream  llms.TokenStream
}

// options collects the knobs shared by the engines. Each engine reads the
// subset that applies to it.
type options struct {
	prompt        *rag.PromptTemplate
	logger        log.Logger
	splitter      rag.TextSplitter
	vectorStore   rag.VectorStore
	convStore     store.ConversationStore
	sessionID     string
	maxIterations int
}

func defaultOptions() options {
	return options{
		prompt:        rag.DefaultPromptTemplate(),
		logger:        log.GetDefaultLogger(),
		maxIterations: defaultMaxIterations,
	}
}

// Option configures an engine.
type Option func(*options)

// WithPromptTemplate overrides the prompt template used to ground answers.
func WithPromptTemplate(t *rag.PromptTemplate) Option {
	return func(o *options) {
		if t != nil {
			o.prompt = t
		}
	}
}

// WithLogger sets the logger. Defaults to the package-level logger.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSplitter sets the text splitter used during ingestion. Defaults to a
// recursive character splitter.
func WithSplitter(s rag.TextSplitter) Option {
	return func(o *options) {
		o.splitter = s
	}
}

// WithVectorStore provides the vector store documents are ingested into.
// Engines constructed without one can still answer queries through their
// retriever but refuse to ingest.
func WithVectorStore(vs rag.VectorStore) Option {
	return func(o *options) {
		o.vectorStore = vs
	}
}

// WithConversationStore enables conversation persistence: after every
// exchange the full history is saved under the session ID.
func WithConversationStore(cs store.ConversationStore) Option {
	return func(o *options) {
		o.convStore = cs
	}
}

// WithSessionID fixes the session ID used for conversation persistence.
// Defaults to a random UUID per engine instance.
func WithSessionID(id string) Option {
	return func(o *options) {
		o.sessionID = id
	}
}

// WithMaxIterations bounds the agentic engine's tool-calling loop.
// Defaults to 20.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

// documentsOf extracts the documents from search results for prompt
// formatting.
func documentsOf(results []rag.SearchResult) []rag.Document {
	docs := make([]rag.Document, len(results))
	for i, result := range results {
		docs[i] = result.Document
	}
	return docs
}

// staticStream yields one pre-computed fragment and then io.EOF. Used when
// an engine answers without calling the model, so streaming callers see the
// same shape either way.
type staticStream struct {
	text string
	done bool
}

func (s *staticStream) Recv() (string, error) {
	if s.done || s.text == "" {
		return "", io.EOF
	}
	s.done = true
	return s.text, nil
}

func (s *staticStream) Close() error {
	s.done = true
	return nil
}
