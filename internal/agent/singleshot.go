package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/agenthands/solargraph/internal/cache"
	"github.com/agenthands/solargraph/internal/config"
	"github.com/agenthands/solargraph/internal/llm"
	"github.com/agenthands/solargraph/internal/query"
)

// SingleShot answers a question with one grounded LLM call: build a context
// block from the graph, ask once, cache the answer.
type SingleShot struct {
	engine          *query.Engine
	cache           *cache.Cache
	client          llm.LLMClient
	maxContextChars int
}

func NewSingleShot(engine *query.Engine, c *cache.Cache, client llm.LLMClient, cfg config.AgentConfig) *SingleShot {
	maxChars := cfg.MaxContextChars
	if maxChars <= 0 {
		maxChars = 6000
	}
	return &SingleShot{
		engine:          engine,
		cache:           c,
		client:          client,
		maxContextChars: maxChars,
	}
}

// Answer returns a grounded answer for the question.
//
// Lookup order: cache first, then a fresh context build plus one LLM call.
// An empty context short-circuits to a fixed not-found answer, and neither
// that nor an upstream failure is ever written to the cache.
func (s *SingleShot) Answer(ctx context.Context, question string) (string, error) {
	if answer, ok := s.cache.Get(question); ok {
		log.Printf("single-shot cache HIT: %.70s", question)
		return answer, nil
	}

	kgContext := s.engine.BuildContext(question, s.maxContextChars)
	if strings.TrimSpace(kgContext) == "" {
		return NotFoundAnswer, nil
	}

	prompt := fmt.Sprintf("%s\n\n<KNOWLEDGE_GRAPH_CONTEXT>\n%s\n</KNOWLEDGE_GRAPH_CONTEXT>\n\nQuestion: %s",
		singleShotSystemPrompt, kgContext, question)

	answer, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	s.cache.Put(question, answer)
	return answer, nil
}
