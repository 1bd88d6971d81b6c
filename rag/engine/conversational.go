package engine

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/log"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/memory"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/rag"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/store"
)

// conversationalTemplate folds retrieved context and the conversation so far
// into one prompt.
const conversationalTemplate = "Context:\n%s\n\nConversation so far:\n%s\n\nQuestion: %s\n\nAnswer:"

// maxDerivedTitleLen caps session titles derived from the first message.
const maxDerivedTitleLen = 64

// ConversationalRAG is retrieval-augmented generation with memory: every
// exchange is recorded, and the history the memory strategy considers
// relevant is folded into the next prompt alongside retrieved context. One
// engine instance is one conversation session.
//
// With a conversation store configured, the history is persisted after every
// exchange and previous sessions can be resumed with LoadSession.
type ConversationalRAG struct {
	model     llms.Model
	retriever rag.Retriever
	memory    memory.Memory
	convStore store.ConversationStore
	sessionID string
	title     string
	startedAt time.Time
	logger    log.Logger
}

// NewConversationalRAG creates a conversational engine. A nil memory
// defaults to an unbounded buffer.
func NewConversationalRAG(model llms.Model, ret rag.Retriever, mem memory.Memory, opts ...Option) *ConversationalRAG {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if mem == nil {
		mem = memory.NewBufferMemory(0)
	}
	if o.sessionID == "" {
		o.sessionID = uuid.NewString()
	}

	return &ConversationalRAG{
		model:     model,
		retriever: ret,
		memory:    mem,
		convStore: o.convStore,
		sessionID: o.sessionID,
		startedAt: time.Now(),
		logger:    o.logger,
	}
}

// SessionID returns the ID the conversation is persisted under.
func (e *ConversationalRAG) SessionID() string {
	return e.sessionID
}

// Chat answers a message in the context of the conversation so far, then
// records the exchange. Unlike SimpleRAG it always consults the model:
// with no retrieved documents the history alone may carry the answer.
func (e *ConversationalRAG) Chat(ctx context.Context, message string, opts ...llms.CallOption) (*Result, error) {
	start := time.Now()

	history, err := e.memory.GetContext(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("recall history: %w", err)
	}

	results, err := e.retriever.Retrieve(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	e.logger.Debug("conversational rag: %d documents, %d history messages for %q",
		len(results), len(history), message)

	answer, err := e.model.Call(ctx, buildConversationalPrompt(message, history, results), opts...)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	e.remember(ctx, message, answer)

	return &Result{
		Query:        message,
		Answer:       answer,
		Sources:      results,
		ResponseTime: time.Since(start),
	}, nil
}

// StreamChat is Chat with a streamed answer. The exchange is recorded once
// the stream has been fully drained; a stream closed early is not recorded.
func (e *ConversationalRAG) StreamChat(ctx context.Context, message string, opts ...llms.CallOption) (*StreamResult, error) {
	history, err := e.memory.GetContext(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("recall history: %w", err)
	}

	results, err := e.retriever.Retrieve(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}

	stream, err := e.model.Stream(ctx, buildConversationalPrompt(message, history, results), opts...)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &StreamResult{
		Query:   message,
		Sources: results,
		Stream: &recordingStream{
			inner:   stream,
			engine:  e,
			ctx:     ctx,
			message: message,
		},
	}, nil
}

// History returns every message recorded in this session so far.
func (e *ConversationalRAG) History(ctx context.Context) ([]*memory.Message, error) {
	return e.memory.GetMessages(ctx)
}

// LoadSession replays a previously persisted conversation into memory,
// replacing whatever the session held. The caller decides what a not-found
// session means; typically it starts a fresh one.
func (e *ConversationalRAG) LoadSession(ctx context.Context) error {
	if e.convStore == nil {
		return fmt.Errorf("no conversation store configured")
	}

	conv, err := e.convStore.Load(ctx, e.sessionID)
	if err != nil {
		return err
	}

	if err := e.memory.Clear(ctx); err != nil {
		return fmt.Errorf("clear memory: %w", err)
	}
	for _, msg := range conv.Messages {
		if err := e.memory.AddMessage(ctx, msg); err != nil {
			return fmt.Errorf("replay message: %w", err)
		}
	}

	e.startedAt = conv.CreatedAt
	e.title = conv.Title
	e.logger.Info("conversational rag: resumed session %s with %d messages",
		e.sessionID, len(conv.Messages))
	return nil
}

// remember records an exchange in memory and, when configured, persists the
// conversation. The answer already reached the caller, so failures here are
// logged rather than returned.
func (e *ConversationalRAG) remember(ctx context.Context, message, answer string) {
	if e.title == "" {
		e.title = deriveTitle(message)
	}

	if err := e.memory.AddMessage(ctx, memory.NewMessage(memory.RoleUser, message)); err != nil {
		e.logger.Warn("conversational rag: failed to record user message: %v", err)
	}
	if err := e.memory.AddMessage(ctx, memory.NewMessage(memory.RoleAssistant, answer)); err != nil {
		e.logger.Warn("conversational rag: failed to record assistant message: %v", err)
	}

	if e.convStore == nil {
		return
	}

	msgs, err := e.memory.GetMessages(ctx)
	if err != nil {
		e.logger.Warn("conversational rag: failed to read history for persistence: %v", err)
		return
	}

	conv := &store.Conversation{
		ID:        e.sessionID,
		Title:     e.title,
		Messages:  msgs,
		CreatedAt: e.startedAt,
		UpdatedAt: time.Now(),
	}
	if err := e.convStore.Save(ctx, conv); err != nil {
		e.logger.Warn("conversational rag: failed to persist session %s: %v", e.sessionID, err)
	}
}

// buildConversationalPrompt renders context, history and the question. Both
// blocks get a placeholder when empty so the model is not left guessing
// what a blank section means.
func buildConversationalPrompt(question string, history []*memory.Message, results []rag.SearchResult) string {
	contextBlock := rag.FormatContext(documentsOf(results))
	if contextBlock == "" {
		contextBlock = "(no relevant documents)"
	}

	historyBlock := memory.FormatMessages(history)
	if historyBlock == "" {
		historyBlock = "(start of conversation)"
	}

	return fmt.Sprintf(conversationalTemplate, contextBlock, historyBlock, question)
}

func deriveTitle(message string) string {
	title := strings.TrimSpace(message)
	if runes := []rune(title); len(runes) > maxDerivedTitleLen {
		title = string(runes[:maxDerivedTitleLen])
	}
	return title
}

// recordingStream records the exchange once the wrapped stream reaches EOF.
type recordingStream struct {
	inner   llms.TokenStream
	engine  *ConversationalRAG
	ctx     context.Context
	message string

	answer   strings.Builder
	recorded bool
}

func (s *recordingStream) Recv() (string, error) {
	fragment, err := s.inner.Recv()
	if err == io.EOF && !s.recorded {
		s.recorded = true
		s.engine.remember(s.ctx, s.message, s.answer.String())
	}
	if err != nil {
		return "", err
	}

	s.answer.WriteString(fragment)
	return fragment, nil
}

func (s *recordingStream) Close() error {
	// Closing before EOF abandons the exchange; a Recv after Close must not
	// record the partial answer.
	s.recorded = true
	return s.inner.Close()
}
