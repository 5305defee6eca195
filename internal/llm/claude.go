package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

type ClaudeClient struct {
	client *anthropic.Client
	model  string
}

func NewClaudeClient(apiKey string, model string, baseURL string) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}

	client := anthropic.NewClient(apiKey, opts...)

	return &ClaudeClient{
		client: client,
		model:  model,
	}
}

func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(prompt),
				},
			},
		},
		MaxTokens: 2000,
	})
	if err != nil {
		return "", &UpstreamError{Provider: "claude", Err: err}
	}

	if len(resp.Content) > 0 && resp.Content[0].Text != nil {
		return *resp.Content[0].Text, nil
	}
	return "", &UpstreamError{Provider: "claude", Err: fmt.Errorf("no response content")}
}

func (c *ClaudeClient) Chat(ctx context.Context, system string, msgs []Message, tools []ToolSpec) (*Completion, error) {
	req := anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		System:    system,
		MaxTokens: 2000,
	}

	for _, t := range tools {
		req.Tools = append(req.Tools, anthropic.ToolDefinition{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.Parameters,
		})
	}

	for _, m := range msgs {
		switch m.Role {
		case RoleAssistant:
			var content []anthropic.MessageContent
			if m.Content != "" {
				content = append(content, anthropic.NewTextMessageContent(m.Content))
			}
			for _, tc := range m.ToolCalls {
				content = append(content, anthropic.NewToolUseMessageContent(
					tc.ID, tc.Name, json.RawMessage(tc.Arguments)))
			}
			req.Messages = append(req.Messages, anthropic.Message{
				Role:    anthropic.RoleAssistant,
				Content: content,
			})
		case RoleTool:
			// Tool results travel as user-role tool_result blocks.
			req.Messages = append(req.Messages, anthropic.Message{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewToolResultMessageContent(m.ToolCallID, m.Content, false),
				},
			})
		default:
			req.Messages = append(req.Messages, anthropic.Message{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(m.Content),
				},
			})
		}
	}

	resp, err := c.client.CreateMessages(ctx, req)
	if err != nil {
		return nil, &UpstreamError{Provider: "claude", Err: err}
	}

	out := &Completion{}
	for _, block := range resp.Content {
		switch block.Type {
		case anthropic.MessagesContentTypeText:
			if block.Text != nil {
				out.Text += *block.Text
			}
		case anthropic.MessagesContentTypeToolUse:
			if block.MessageContentToolUse == nil {
				continue
			}
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				ID:        block.MessageContentToolUse.ID,
				Name:      block.MessageContentToolUse.Name,
				Arguments: string(block.MessageContentToolUse.Input),
			})
		}
	}
	if out.Text == "" && len(out.ToolCalls) == 0 {
		return nil, &UpstreamError{Provider: "claude", Err: fmt.Errorf("no response content")}
	}
	return out, nil
}
