package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey string, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &UpstreamError{Provider: "gemini", Err: err}
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				return string(txt), nil
			}
		}
	}

	return "", &UpstreamError{Provider: "gemini", Err: fmt.Errorf("no response candidates or content")}
}

func (c *GeminiClient) Chat(ctx context.Context, system string, msgs []Message, tools []ToolSpec) (*Completion, error) {
	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	if len(tools) > 0 {
		gt := &genai.Tool{}
		for _, t := range tools {
			gt.FunctionDeclarations = append(gt.FunctionDeclarations, &genai.FunctionDeclaration{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  toGenaiSchema(t.Parameters),
			})
		}
		model.Tools = []*genai.Tool{gt}
	}

	if len(msgs) == 0 {
		return nil, &UpstreamError{Provider: "gemini", Err: fmt.Errorf("empty transcript")}
	}

	session := model.StartChat()
	for _, m := range msgs[:len(msgs)-1] {
		session.History = append(session.History, toGenaiContent(m))
	}

	last := msgs[len(msgs)-1]
	resp, err := session.SendMessage(ctx, toGenaiContent(last).Parts...)
	if err != nil {
		return nil, &UpstreamError{Provider: "gemini", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, &UpstreamError{Provider: "gemini", Err: fmt.Errorf("no response candidates")}
	}

	out := &Completion{}
	for i, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			out.Text += string(p)
		case genai.FunctionCall:
			args, err := json.Marshal(p.Args)
			if err != nil {
				args = []byte("{}")
			}
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				ID:        fmt.Sprintf("%s-%d", p.Name, i),
				Name:      p.Name,
				Arguments: string(args),
			})
		}
	}
	return out, nil
}

func toGenaiContent(m Message) *genai.Content {
	content := &genai.Content{}
	switch m.Role {
	case RoleAssistant:
		content.Role = "model"
		if m.Content != "" {
			content.Parts = append(content.Parts, genai.Text(m.Content))
		}
		for _, tc := range m.ToolCalls {
			var args map[string]interface{}
			_ = json.Unmarshal([]byte(tc.Arguments), &args)
			content.Parts = append(content.Parts, genai.FunctionCall{Name: tc.Name, Args: args})
		}
	case RoleTool:
		content.Role = "function"
		content.Parts = append(content.Parts, genai.FunctionResponse{
			Name:     m.ToolName,
			Response: map[string]interface{}{"result": m.Content},
		})
	default:
		content.Role = "user"
		content.Parts = append(content.Parts, genai.Text(m.Content))
	}
	return content
}

// toGenaiSchema converts a JSON-schema object map into the genai schema type.
// Only the subset the tool catalog uses (flat string parameters) is mapped.
func toGenaiSchema(params map[string]interface{}) *genai.Schema {
	schema := &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}}
	props, _ := params["properties"].(map[string]interface{})
	for name, raw := range props {
		prop := &genai.Schema{Type: genai.TypeString}
		if pm, ok := raw.(map[string]interface{}); ok {
			if desc, ok := pm["description"].(string); ok {
				prop.Description = desc
			}
		}
		schema.Properties[name] = prop
	}
	if req, ok := params["required"].([]string); ok {
		schema.Required = req
	} else if reqAny, ok := params["required"].([]interface{}); ok {
		for _, r := range reqAny {
			if s, ok := r.(string); ok {
				schema.Required = append(schema.Required, s)
			}
		}
	}
	return schema
}
