package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/tools"
)

func TestAgenticRAG_Run(t *testing.T) {
	kb := &mockTool{
		name:        "Knowledge_Base",
		description: "Search the indexed documents.",
		result:      "Pods are the smallest deployable units.",
	}
	model := &mockModel{replies: []string{
		" I should search the knowledge base.\nAction: Knowledge_Base\nAction Input: \"pod definition\"",
		" I now know the answer.\nFinal Answer: A pod is the smallest deployable unit in Kubernetes.",
	}}

	eng := NewAgenticRAG(model, []tools.Tool{kb})
	result, err := eng.Run(context.Background(), "What is a pod?")

	require.NoError(t, err)
	assert.Equal(t, "A pod is the smallest deployable unit in Kubernetes.", result.Answer)
	assert.Equal(t, "What is a pod?", result.Query)

	require.Len(t, result.Steps, 2)
	assert.Equal(t, "I should search the knowledge base.", result.Steps[0].Thought)
	assert.Equal(t, "Knowledge_Base", result.Steps[0].Action)
	assert.Equal(t, "pod definition", result.Steps[0].ActionInput)
	assert.Equal(t, "Pods are the smallest deployable units.", result.Steps[0].Observation)
	assert.Equal(t, "I now know the answer.", result.Steps[1].Thought)
	assert.Equal(t, "A pod is the smallest deployable unit in Kubernetes.", result.Steps[1].FinalAnswer)

	// The wrapping quotes are stripped before the tool sees the input
	assert.Equal(t, []string{"pod definition"}, kb.inputs)

	require.Len(t, model.prompts, 2)
	assert.Contains(t, model.prompts[0], "Available tools:")
	assert.Contains(t, model.prompts[0], "- Knowledge_Base: Search the indexed documents.")
	assert.Contains(t, model.prompts[0], "Question: What is a pod?")
	// The second round sees the first round's observation
	assert.Contains(t, model.prompts[1], "Observation: Pods are the smallest deployable units.")
}

func TestAgenticRAG_RunDirectAnswer(t *testing.T) {
	kb := &mockTool{name: "Knowledge_Base", description: "Search."}
	model := &mockModel{replies: []string{
		" This needs no tools.\nFinal Answer: Paris.",
	}}

	eng := NewAgenticRAG(model, []tools.Tool{kb})
	result, err := eng.Run(context.Background(), "Capital of France?")

	require.NoError(t, err)
	assert.Equal(t, "Paris.", result.Answer)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "This needs no tools.", result.Steps[0].Thought)
	assert.Empty(t, kb.inputs)
}

func TestAgenticRAG_RunUnstructuredReply(t *testing.T) {
	model := &mockModel{replies: []string{
		"The answer is just prose without any of the expected markers.",
	}}

	eng := NewAgenticRAG(model, nil)
	result, err := eng.Run(context.Background(), "Anything?")

	require.NoError(t, err)
	assert.Equal(t, "The answer is just prose without any of the expected markers.", result.Answer)
}

func TestAgenticRAG_RunUnknownTool(t *testing.T) {
	kb := &mockTool{name: "Knowledge_Base", description: "Search."}
	model := &mockModel{replies: []string{
		" Let me look this up.\nAction: Database_Lookup\nAction Input: users",
		"Final Answer: I could not look that up.",
	}}

	eng := NewAgenticRAG(model, []tools.Tool{kb})
	result, err := eng.Run(context.Background(), "How many users?")

	require.NoError(t, err)
	require.Len(t, result.Steps, 2)
	assert.Contains(t, result.Steps[0].Observation, `unknown tool "Database_Lookup"`)
	assert.Contains(t, result.Steps[0].Observation, "Knowledge_Base")
}

func TestAgenticRAG_RunToolError(t *testing.T) {
	kb := &mockTool{
		name:        "Knowledge_Base",
		description: "Search.",
		err:         errors.New("search backend down"),
	}
	model := &mockModel{replies: []string{
		"Action: Knowledge_Base\nAction Input: pods",
		"Final Answer: The knowledge base is unavailable.",
	}}

	eng := NewAgenticRAG(model, []tools.Tool{kb})
	result, err := eng.Run(context.Background(), "What is a pod?")

	// Tool failures become observations, not errors
	require.NoError(t, err)
	assert.Equal(t, "Error: search backend down", result.Steps[0].Observation)
	assert.Equal(t, "The knowledge base is unavailable.", result.Answer)
}

func TestAgenticRAG_RunMaxIterations(t *testing.T) {
	kb := &mockTool{name: "Knowledge_Base", description: "Search.", result: "nothing useful"}
	model := &mockModel{replies: []string{
		"Action: Knowledge_Base\nAction Input: first try",
		"Action: Knowledge_Base\nAction Input: second try",
	}}

	eng := NewAgenticRAG(model, []tools.Tool{kb}, WithMaxIterations(2))
	result, err := eng.Run(context.Background(), "Unanswerable?")

	require.NoError(t, err)
	assert.Equal(t, "Maximum iterations reached. Please try a simpler query.", result.Answer)
	assert.Len(t, result.Steps, 2)
	assert.Len(t, kb.inputs, 2)
}

func TestAgenticRAG_RunModelError(t *testing.T) {
	model := &mockModel{err: errors.New("server unreachable")}

	eng := NewAgenticRAG(model, nil)
	_, err := eng.Run(context.Background(), "Anything?")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "agent step 1")
}

func TestAgenticRAG_RunCaseInsensitiveTool(t *testing.T) {
	kb := &mockTool{name: "Knowledge_Base", description: "Search.", result: "found it"}
	model := &mockModel{replies: []string{
		"Action: knowledge_base\nAction Input: pods",
		"Final Answer: Done.",
	}}

	eng := NewAgenticRAG(model, []tools.Tool{kb})
	result, err := eng.Run(context.Background(), "What is a pod?")

	require.NoError(t, err)
	assert.Equal(t, "found it", result.Steps[0].Observation)
	assert.Equal(t, []string{"pods"}, kb.inputs)
}

func TestParseReply(t *testing.T) {
	t.Run("action with quoted input", func(t *testing.T) {
		p := parseReply(" I should search.\nAction: Web_Search\nAction Input: \"golang generics\"")
		assert.False(t, p.isFinal)
		assert.Equal(t, "I should search.", p.thought)
		assert.Equal(t, "Web_Search", p.action)
		assert.Equal(t, "golang generics", p.actionInput)
	})

	t.Run("single quoted input", func(t *testing.T) {
		p := parseReply("Action: Web_Search\nAction Input: 'golang generics'")
		assert.Equal(t, "golang generics", p.actionInput)
	})

	t.Run("final answer", func(t *testing.T) {
		p := parseReply(" I am done.\nFinal Answer: forty-two")
		assert.True(t, p.isFinal)
		assert.Equal(t, "I am done.", p.thought)
		assert.Equal(t, "forty-two", p.finalAnswer)
	})

	t.Run("unstructured reply becomes the answer", func(t *testing.T) {
		p := parseReply("  just some prose  ")
		assert.True(t, p.isFinal)
		assert.Equal(t, "just some prose", p.finalAnswer)
	})

	t.Run("hallucinated observation is discarded", func(t *testing.T) {
		p := parseReply("Action: Web_Search\nAction Input: pods\nObservation: I found that pods are great.\nFinal Answer: made up")
		assert.False(t, p.isFinal)
		assert.Equal(t, "Web_Search", p.action)
		assert.Equal(t, "pods", p.actionInput)
	})

	t.Run("action without input", func(t *testing.T) {
		p := parseReply("Thought: list everything\nAction: List_Documents\nand then some rambling")
		assert.Equal(t, "list everything", p.thought)
		assert.Equal(t, "List_Documents", p.action)
		assert.Empty(t, p.actionInput)
	})
}
