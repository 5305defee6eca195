package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type scriptedLLM struct {
	responses []string
	err       error
	prompts   []string
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

func chatOnce(t *testing.T, response string) (*Completion, error) {
	t.Helper()
	adapter := NewJSONToolAdapter(&scriptedLLM{responses: []string{response}})
	return adapter.Chat(context.Background(), "system", []Message{{Role: RoleUser, Content: "q"}}, nil)
}

func TestAdapterToolDecision(t *testing.T) {
	c, err := chatOnce(t, `{"action":"tool","thought":"need facts","tool":"keyword_search","arguments":{"keyword":"perovskite"}}`)
	assert.NoError(t, err)
	assert.Len(t, c.ToolCalls, 1)
	assert.Equal(t, "keyword_search", c.ToolCalls[0].Name)
	assert.JSONEq(t, `{"keyword":"perovskite"}`, c.ToolCalls[0].Arguments)
	assert.Equal(t, "need facts", c.Text)
}

func TestAdapterFinalDecision(t *testing.T) {
	c, err := chatOnce(t, `{"action":"final","answer":"The bandgap is 1.55 eV."}`)
	assert.NoError(t, err)
	assert.Empty(t, c.ToolCalls)
	assert.Equal(t, "The bandgap is 1.55 eV.", c.Text)
}

func TestAdapterJSONInsideMarkdownFence(t *testing.T) {
	c, err := chatOnce(t, "Here you go:\n```json\n{\"action\":\"final\",\"answer\":\"ok\"}\n```\n")
	assert.NoError(t, err)
	assert.Equal(t, "ok", c.Text)
}

func TestAdapterLeadingProseBeforeJSON(t *testing.T) {
	c, err := chatOnce(t, `Let me think about it. {"action":"tool","tool":"get_absorbers","arguments":{}}`)
	assert.NoError(t, err)
	assert.Len(t, c.ToolCalls, 1)
	assert.Equal(t, "get_absorbers", c.ToolCalls[0].Name)
}

func TestAdapterPlainTextBecomesFinalAnswer(t *testing.T) {
	c, err := chatOnce(t, "The record efficiency is 33.9%.")
	assert.NoError(t, err)
	assert.Empty(t, c.ToolCalls)
	assert.Equal(t, "The record efficiency is 33.9%.", c.Text)
}

func TestAdapterMalformedJSONIsUpstreamError(t *testing.T) {
	_, err := chatOnce(t, `{"action":"tool","tool":`)
	var ue *UpstreamError
	assert.True(t, errors.As(err, &ue))
}

func TestAdapterUnknownActionIsUpstreamError(t *testing.T) {
	_, err := chatOnce(t, `{"action":"sing","answer":"la"}`)
	var ue *UpstreamError
	assert.True(t, errors.As(err, &ue))
}

func TestAdapterToolWithoutNameIsUpstreamError(t *testing.T) {
	_, err := chatOnce(t, `{"action":"tool","arguments":{"x":1}}`)
	var ue *UpstreamError
	assert.True(t, errors.As(err, &ue))
}

func TestAdapterMissingArgumentsDefaultsToEmptyObject(t *testing.T) {
	c, err := chatOnce(t, `{"action":"tool","tool":"get_architectures"}`)
	assert.NoError(t, err)
	assert.Equal(t, "{}", c.ToolCalls[0].Arguments)
}

func TestAdapterPropagatesGenerateError(t *testing.T) {
	boom := errors.New("connection refused")
	adapter := NewJSONToolAdapter(&scriptedLLM{err: boom})
	_, err := adapter.Chat(context.Background(), "system", []Message{{Role: RoleUser, Content: "q"}}, nil)
	assert.ErrorIs(t, err, boom)
}

func TestAsToolClient(t *testing.T) {
	// A text-only client gets wrapped.
	inner := &scriptedLLM{responses: []string{`{"action":"final","answer":"ok"}`}}
	tc := AsToolClient(inner)
	c, err := tc.Chat(context.Background(), "system", []Message{{Role: RoleUser, Content: "q"}}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "ok", c.Text)

	// A client that already supports tool calls passes through untouched.
	assert.Equal(t, tc, AsToolClient(tc))
}

func TestAdapterPromptCarriesToolsAndTranscript(t *testing.T) {
	inner := &scriptedLLM{responses: []string{`{"action":"final","answer":"done"}`}}
	adapter := NewJSONToolAdapter(inner)

	tools := []ToolSpec{{
		Name:        "keyword_search",
		Description: "Full-text search.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"keyword": map[string]interface{}{"type": "string", "description": "Search term"},
			},
		},
	}}
	msgs := []Message{
		{Role: RoleUser, Content: "What defects matter?"},
		{Role: RoleAssistant, Content: "checking", ToolCalls: []ToolCall{{ID: "1", Name: "keyword_search", Arguments: `{"keyword":"defect"}`}}},
		{Role: RoleTool, ToolCallID: "1", ToolName: "keyword_search", Content: `[{"name":"Iodide Vacancy"}]`},
	}

	_, err := adapter.Chat(context.Background(), "be grounded", msgs, tools)
	assert.NoError(t, err)

	prompt := inner.prompts[0]
	assert.Contains(t, prompt, "be grounded")
	assert.Contains(t, prompt, "keyword_search: Full-text search.")
	assert.Contains(t, prompt, "Question: What defects matter?")
	assert.Contains(t, prompt, "Observation: [{\"name\":\"Iodide Vacancy\"}]")
}
