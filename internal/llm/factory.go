package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/solargraph/internal/config"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// NewClient builds the configured provider client. Every returned client
// supports structured tool calls; providers without native support are
// wrapped in the JSON adapter.
func NewClient(ctx context.Context, cfg config.LLMConfig) (ToolClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "groq":
		// Groq speaks the OpenAI wire protocol, tool calls included.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = groqBaseURL
		}
		return NewOpenAIClient(cfg.APIKey, cfg.Model, baseURL), nil

	case "claude":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)

	case "ollama":
		// Ollama exposes an OpenAI-compatible endpoint, but local models are
		// unreliable with native tool calls, so route decisions through the
		// JSON adapter.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = strings.TrimRight(baseURL, "/") + "/v1"
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama" // dummy, the server ignores it
		}
		return NewJSONToolAdapter(NewOpenAIClient(apiKey, cfg.Model, baseURL)), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
