package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// jsonToolAdapter turns any plain completion client into a ToolClient by
// asking the model for a one-object JSON decision and parsing it. This is
// the single boundary where free text becomes structure; everything behind
// Chat stays structured.
type jsonToolAdapter struct {
	client LLMClient
}

// NewJSONToolAdapter wraps a text-only client. Used for local models
// (Ollama) and any custom LLMClient that has no native tool calling.
func NewJSONToolAdapter(client LLMClient) ToolClient {
	return &jsonToolAdapter{client: client}
}

func (a *jsonToolAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	return a.client.Generate(ctx, prompt)
}

type jsonDecision struct {
	Action    string          `json:"action"`
	Tool      string          `json:"tool,omitempty"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Answer    string          `json:"answer,omitempty"`
	Thought   string          `json:"thought,omitempty"`
}

func (a *jsonToolAdapter) Chat(ctx context.Context, system string, msgs []Message, tools []ToolSpec) (*Completion, error) {
	prompt := buildDecisionPrompt(system, msgs, tools)

	raw, err := a.client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	decision, perr := ParseJSON[jsonDecision](raw)
	if perr != nil {
		// No JSON at all: the model just answered. Treat the text as final.
		if strings.Contains(perr.Error(), "no JSON object found") {
			return &Completion{Text: strings.TrimSpace(raw)}, nil
		}
		return nil, &UpstreamError{Provider: "json-adapter", Err: perr}
	}

	switch decision.Action {
	case "tool":
		if decision.Tool == "" {
			return nil, &UpstreamError{Provider: "json-adapter",
				Err: fmt.Errorf("tool action without a tool name")}
		}
		args := string(decision.Arguments)
		if args == "" {
			args = "{}"
		}
		return &Completion{
			Text: decision.Thought,
			ToolCalls: []ToolCall{{
				ID:        fmt.Sprintf("call-%d", len(msgs)),
				Name:      decision.Tool,
				Arguments: args,
			}},
		}, nil
	case "final":
		return &Completion{Text: decision.Answer}, nil
	default:
		return nil, &UpstreamError{Provider: "json-adapter",
			Err: fmt.Errorf("unknown decision action %q", decision.Action)}
	}
}

func buildDecisionPrompt(system string, msgs []Message, tools []ToolSpec) string {
	var b strings.Builder
	b.WriteString(system)
	b.WriteString("\n\nAvailable tools:\n")
	for _, t := range tools {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)
		if props, ok := t.Parameters["properties"].(map[string]interface{}); ok && len(props) > 0 {
			for name, raw := range props {
				desc := ""
				if pm, ok := raw.(map[string]interface{}); ok {
					desc, _ = pm["description"].(string)
				}
				fmt.Fprintf(&b, "    %s: %s\n", name, desc)
			}
		}
	}

	b.WriteString("\nTranscript so far:\n")
	for _, m := range msgs {
		switch m.Role {
		case RoleAssistant:
			if m.Content != "" {
				fmt.Fprintf(&b, "Thought: %s\n", m.Content)
			}
			for _, tc := range m.ToolCalls {
				fmt.Fprintf(&b, "Action: %s(%s)\n", tc.Name, tc.Arguments)
			}
		case RoleTool:
			fmt.Fprintf(&b, "Observation: %s\n", m.Content)
		default:
			fmt.Fprintf(&b, "Question: %s\n", m.Content)
		}
	}

	b.WriteString(`
Respond with EXACTLY ONE JSON object and nothing else. Either
{"action":"tool","thought":"...","tool":"<tool name>","arguments":{...}}
to call a tool, or
{"action":"final","answer":"..."}
to give your final answer.`)
	return b.String()
}
