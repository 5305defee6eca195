package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/solargraph/internal/config"
)

func TestSingleShotAnswersAndCaches(t *testing.T) {
	client := &scriptedToolClient{genText: "MAPbI3 has a bandgap of 1.55 eV."}
	s := NewSingleShot(newTestEngine(t), newTestCache(t), client, config.AgentConfig{})

	first, err := s.Answer(context.Background(), "What is the bandgap of MAPbI3?")
	require.NoError(t, err)
	assert.Contains(t, first, "1.55")

	second, err := s.Answer(context.Background(), "What is the bandgap of MAPbI3?")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.genCalls, "second call must be served from cache")
}

func TestSingleShotNormalizesCacheKey(t *testing.T) {
	client := &scriptedToolClient{genText: "grounded answer"}
	s := NewSingleShot(newTestEngine(t), newTestCache(t), client, config.AgentConfig{})

	_, err := s.Answer(context.Background(), "What absorbers exist?")
	require.NoError(t, err)
	_, err = s.Answer(context.Background(), "  WHAT ABSORBERS EXIST?  ")
	require.NoError(t, err)
	assert.Equal(t, 1, client.genCalls)
}

func TestSingleShotPromptIsGrounded(t *testing.T) {
	client := &scriptedToolClient{genText: "ok"}
	s := NewSingleShot(newTestEngine(t), newTestCache(t), client, config.AgentConfig{})

	_, err := s.Answer(context.Background(), "Which absorber has the lowest bandgap?")
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "<KNOWLEDGE_GRAPH_CONTEXT>")
	assert.Contains(t, prompt, "</KNOWLEDGE_GRAPH_CONTEXT>")
	assert.Contains(t, prompt, "Question: Which absorber has the lowest bandgap?")
	assert.Contains(t, prompt, "c-Si")
}

func TestSingleShotUpstreamErrorIsNotCached(t *testing.T) {
	boom := errors.New("rate limited")
	client := &scriptedToolClient{genErr: boom}
	s := NewSingleShot(newTestEngine(t), newTestCache(t), client, config.AgentConfig{})

	_, err := s.Answer(context.Background(), "What is PCE?")
	assert.ErrorIs(t, err, boom)

	// Once the upstream recovers, the same question reaches the LLM again.
	client.genErr = nil
	client.genText = "recovered"
	answer, err := s.Answer(context.Background(), "What is PCE?")
	require.NoError(t, err)
	assert.Equal(t, "recovered", answer)
	assert.Equal(t, 2, client.genCalls)
}

func TestSingleShotContextIsBounded(t *testing.T) {
	client := &scriptedToolClient{genText: "ok"}
	s := NewSingleShot(newTestEngine(t), newTestCache(t), client, config.AgentConfig{MaxContextChars: 400})

	_, err := s.Answer(context.Background(), "Tell me about absorbers and architectures and defects")
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	assert.Less(t, len(client.prompts[0]), len(singleShotSystemPrompt)+700)
}
