package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/tools"

	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/llms"
	"github.com/manojjahgirdar/types-of-retrieval-augmented-generation/log"
)

// agentPromptFormat is the ReAct-style instruction header. The verb lines
// teach the model the loop protocol; the tools block tells it what it can
// call. %s receives the tool list.
const agentPromptFormat = `You are a helpful assistant. Use the provided tools to answer the user's question.
Follow this format:
1. Thought: what should I do next?
2. Action: the action to take (should be one of the provided tools)
3. Action Input: the input to the action
4. Observation: the result of the action
5. ... (repeat Thought/Action/Action Input/Observation as needed)
6. Final Answer: the final answer to the user's question

When you have enough information to answer the user's question, provide the Final Answer without using any tools.

Available tools:
%s`

// maxIterationsMessage is returned when the loop runs out of rounds.
const maxIterationsMessage = "Maximum iterations reached. Please try a simpler query."

// AgenticRAG answers questions by letting the model drive a tool loop: each
// round the model either calls a tool (knowledge base search, web search,
// skills) or produces the final answer. Tool outputs are fed back as
// observations for the next round.
type AgenticRAG struct {
	model         llms.Model
	tools         []tools.Tool
	maxIterations int
	logger        log.Logger
}

// NewAgenticRAG creates an agentic engine over the given model and tools.
func NewAgenticRAG(model llms.Model, agentTools []tools.Tool, opts ...Option) *AgenticRAG {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &AgenticRAG{
		model:         model,
		tools:         agentTools,
		maxIterations: o.maxIterations,
		logger:        o.logger,
	}
}

// Run executes the tool loop for a question. It returns the final answer
// together with every intermediate step; when the iteration budget runs out
// before the model settles on an answer, the answer says so.
func (e *AgenticRAG) Run(ctx context.Context, question string, opts ...llms.CallOption) (*Result, error) {
	start := time.Now()
	header := fmt.Sprintf(agentPromptFormat, e.toolList())

	var scratchpad strings.Builder
	fmt.Fprintf(&scratchpad, "Question: %s\n", question)

	var steps []AgentStep
	for i := 0; i < e.maxIterations; i++ {
		prompt := header + "\n\n" + scratchpad.String() + "Thought:"

		reply, err := e.model.Call(ctx, prompt, opts...)
		if err != nil {
			return nil, fmt.Errorf("agent step %d: %w", i+1, err)
		}

		step := parseReply(reply)
		if step.isFinal {
			e.logger.Debug("agentic rag: final answer after %d steps", len(steps))
			steps = append(steps, AgentStep{
				Thought:     step.thought,
				FinalAnswer: step.finalAnswer,
			})
			return &Result{
				Query:        question,
				Answer:       step.finalAnswer,
				Steps:        steps,
				ResponseTime: time.Since(start),
			}, nil
		}

		observation := e.callTool(ctx, step.action, step.actionInput)
		e.logger.Debug("agentic rag: step %d action=%q input=%q", i+1, step.action, step.actionInput)

		steps = append(steps, AgentStep{
			Thought:     step.thought,
			Action:      step.action,
			ActionInput: step.actionInput,
			Observation: observation,
		})

		fmt.Fprintf(&scratchpad, "Thought: %s\nAction: %s\nAction Input: %s\nObservation: %s\n",
			step.thought, step.action, step.actionInput, observation)
	}

	e.logger.Warn("agentic rag: gave up after %d iterations", e.maxIterations)
	return &Result{
		Query:        question,
		Answer:       maxIterationsMessage,
		Steps:        steps,
		ResponseTime: time.Since(start),
	}, nil
}

// callTool runs the named tool and renders its output, or an error, as the
// observation text fed back to the model.
func (e *AgenticRAG) callTool(ctx context.Context, name, input string) string {
	tool := e.lookupTool(name)
	if tool == nil {
		names := make([]string, len(e.tools))
		for i, t := range e.tools {
			names[i] = t.Name()
		}
		return fmt.Sprintf("Error: unknown tool %q. Available tools: %s", name, strings.Join(names, ", "))
	}

	result, err := tool.Call(ctx, input)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return result
}

func (e *AgenticRAG) lookupTool(name string) tools.Tool {
	for _, t := range e.tools {
		if t.Name() == name {
			return t
		}
	}
	for _, t := range e.tools {
		if strings.EqualFold(t.Name(), name) {
			return t
		}
	}
	return nil
}

func (e *AgenticRAG) toolList() string {
	var sb strings.Builder
	for _, t := range e.tools {
		fmt.Fprintf(&sb, "- %s: %s\n", t.Name(), t.Description())
	}
	return strings.TrimRight(sb.String(), "\n")
}

// parsedStep is one model reply broken into its ReAct parts.
type parsedStep struct {
	thought     string
	action      string
	actionInput string
	finalAnswer string
	isFinal     bool
}

// parseReply extracts the next step from a model reply. The reply continues
// our "Thought:" cue, so it usually starts mid-thought and then names an
// action or gives the final answer.
func parseReply(reply string) parsedStep {
	// Models sometimes keep going and invent their own observation;
	// everything from the first one is discarded.
	if idx := strings.Index(reply, "Observation:"); idx >= 0 {
		reply = reply[:idx]
	}

	var p parsedStep

	if idx := strings.Index(reply, "Final Answer:"); idx >= 0 {
		p.isFinal = true
		p.thought = cleanThought(reply[:idx])
		p.finalAnswer = strings.TrimSpace(reply[idx+len("Final Answer:"):])
		return p
	}

	actionIdx := strings.Index(reply, "Action:")
	if actionIdx < 0 {
		// No recognizable structure; take the whole reply as the answer.
		p.isFinal = true
		p.finalAnswer = strings.TrimSpace(reply)
		return p
	}

	p.thought = cleanThought(reply[:actionIdx])

	rest := reply[actionIdx+len("Action:"):]
	if idx := strings.Index(rest, "Action Input:"); idx >= 0 {
		p.action = strings.TrimSpace(rest[:idx])
		p.actionInput = stripQuotes(strings.TrimSpace(rest[idx+len("Action Input:"):]))
	} else {
		// Action without input; keep only the first line in case the model
		// rambled on.
		p.action, _, _ = strings.Cut(strings.TrimSpace(rest), "\n")
		p.action = strings.TrimSpace(p.action)
	}

	return p
}

func cleanThought(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Thought:")
	return strings.TrimSpace(s)
}

// stripQuotes removes one pair of matching wrapping quotes, which models
// often add around tool inputs.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
