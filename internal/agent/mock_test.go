package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agenthands/solargraph/internal/cache"
	"github.com/agenthands/solargraph/internal/graph"
	"github.com/agenthands/solargraph/internal/llm"
	"github.com/agenthands/solargraph/internal/query"
)

// scriptedToolClient plays back a fixed sequence of Chat turns. The last
// turn repeats if the loop asks for more.
type scriptedToolClient struct {
	turns    []chatTurn
	chatN    int
	chats    [][]llm.Message
	prompts  []string
	genText  string
	genErr   error
	genCalls int
}

type chatTurn struct {
	completion *llm.Completion
	err        error
}

func (s *scriptedToolClient) Generate(ctx context.Context, prompt string) (string, error) {
	s.genCalls++
	s.prompts = append(s.prompts, prompt)
	return s.genText, s.genErr
}

func (s *scriptedToolClient) Chat(ctx context.Context, system string, msgs []llm.Message, tools []llm.ToolSpec) (*llm.Completion, error) {
	copied := make([]llm.Message, len(msgs))
	copy(copied, msgs)
	s.chats = append(s.chats, copied)

	i := s.chatN
	if i >= len(s.turns) {
		i = len(s.turns) - 1
	}
	s.chatN++
	turn := s.turns[i]
	return turn.completion, turn.err
}

func toolTurn(name, args string) chatTurn {
	return chatTurn{completion: &llm.Completion{
		Text:      "checking the graph",
		ToolCalls: []llm.ToolCall{{ID: "tc-1", Name: name, Arguments: args}},
	}}
}

func finalTurn(text string) chatTurn {
	return chatTurn{completion: &llm.Completion{Text: text}}
}

func newTestEngine(t *testing.T) *query.Engine {
	t.Helper()
	return query.NewEngine(graph.NewStore(graph.SeedTriples()))
}

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.Open(cache.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}
