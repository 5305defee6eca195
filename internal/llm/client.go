package llm

import (
	"context"
	"fmt"
)

// UpstreamError wraps any failure (including timeouts) of a provider call.
// It is recoverable at the request level and never retried automatically.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm upstream error (%s): %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// LLMClient is the plain one-shot completion interface.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Message roles for the neutral transcript format. Each provider client maps
// these onto its own wire types.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one transcript turn in provider-neutral form.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall // assistant turns that requested tools
	ToolCallID string     // tool turns: which call this result answers
	ToolName   string     // tool turns: which tool produced the result
}

// ToolSpec describes one callable tool. Parameters is a JSON-schema object.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// ToolCall is a structured tool request emitted by the model. Arguments is
// the raw JSON object string.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Completion is the structured result of one Chat turn: either final text,
// or one or more tool calls.
type Completion struct {
	Text      string
	ToolCalls []ToolCall
}

// ToolClient extends LLMClient with structured tool calling. Agents never
// parse free text themselves; providers without native tool support are
// wrapped by NewJSONToolAdapter.
type ToolClient interface {
	LLMClient
	Chat(ctx context.Context, system string, msgs []Message, tools []ToolSpec) (*Completion, error)
}

// AsToolClient returns the client itself when it supports structured tool
// calls, otherwise the JSON adapter around it.
func AsToolClient(client LLMClient) ToolClient {
	if tc, ok := client.(ToolClient); ok {
		return tc
	}
	return NewJSONToolAdapter(client)
}
