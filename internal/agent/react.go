package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agenthands/solargraph/internal/cache"
	"github.com/agenthands/solargraph/internal/config"
	"github.com/agenthands/solargraph/internal/graph"
	"github.com/agenthands/solargraph/internal/llm"
	"github.com/agenthands/solargraph/internal/query"
)

// Response is one ReAct answer together with its audit trail.
type Response struct {
	Answer     string  `json:"answer"`
	Provenance *Record `json:"provenance"`
}

// ReAct runs the think/act/observe loop: the model picks graph tools until
// it signals a final answer or the iteration ceiling stops it.
type ReAct struct {
	engine  *query.Engine
	toolbox *Toolbox
	cache   *cache.Cache
	client  llm.ToolClient

	maxIterations       int
	maxObservationChars int

	// Injectable for deterministic tests.
	UUIDGenerator func() string
	Now           func() time.Time
}

func NewReAct(engine *query.Engine, c *cache.Cache, client llm.ToolClient, cfg config.AgentConfig) *ReAct {
	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = 6
	}
	maxObs := cfg.MaxObservationChars
	if maxObs <= 0 {
		maxObs = 2000
	}
	return &ReAct{
		engine:              engine,
		toolbox:             NewToolbox(engine),
		cache:               c,
		client:              client,
		maxIterations:       maxIter,
		maxObservationChars: maxObs,
		UUIDGenerator:       func() string { return uuid.New().String() },
		Now:                 time.Now,
	}
}

// Answer runs the loop for one question.
//
// Only answers the model completed on its own ("done") are cached. A cache
// hit rebuilds provenance from the stored answer text instead of replaying
// the loop. An upstream failure before any step has completed propagates as
// an error; after partial progress it degrades to a best-effort answer.
func (a *ReAct) Answer(ctx context.Context, question string) (*Response, error) {
	if answer, ok := a.cache.Get(question); ok {
		log.Printf("react cache HIT: %.70s", question)
		rec := buildRecord(a.UUIDGenerator(), question, answer, a.engine,
			nil, nil, nil, 0, StatusDone, true, a.Now())
		return &Response{Answer: answer, Provenance: rec}, nil
	}

	log.Printf("react loop starting: %.70s", question)
	msgs := []llm.Message{{Role: llm.RoleUser, Content: question}}

	var (
		steps        []Step
		loopTriples  []graph.Triple
		loopEntities []string
		iterations   int
	)

	finish := func(answer, status string) *Response {
		rec := buildRecord(a.UUIDGenerator(), question, answer, a.engine,
			steps, loopTriples, loopEntities, iterations, status, false, a.Now())
		if status == StatusDone {
			a.cache.Put(question, answer)
		}
		return &Response{Answer: answer, Provenance: rec}
	}

	for iterations < a.maxIterations {
		iterations++
		log.Printf("react iteration %d", iterations)

		completion, err := a.client.Chat(ctx, reactSystemPrompt, msgs, a.toolbox.Specs())
		if err != nil {
			if len(steps) == 0 {
				return nil, err
			}
			log.Printf("react degraded after %d steps: %v", len(steps), err)
			return finish(a.finalize(ctx, question, steps), StatusDegraded), nil
		}

		if len(completion.ToolCalls) == 0 {
			answer := completion.Text
			if answer == "" {
				answer = "No answer generated."
			}
			return finish(answer, StatusDone), nil
		}

		msgs = append(msgs, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   completion.Text,
			ToolCalls: completion.ToolCalls,
		})

		for _, tc := range completion.ToolCalls {
			log.Printf("tool call: %s(%.80s)", tc.Name, tc.Arguments)
			observation := a.observe(tc.Name, tc.Arguments, &loopTriples, &loopEntities)
			steps = append(steps, Step{
				Iteration:   iterations,
				Thought:     completion.Text,
				Tool:        tc.Name,
				Arguments:   tc.Arguments,
				Observation: observation,
			})
			msgs = append(msgs, llm.Message{
				Role:       llm.RoleTool,
				Content:    observation,
				ToolCallID: tc.ID,
				ToolName:   tc.Name,
			})
		}
	}

	log.Printf("react iteration ceiling reached: %.70s", question)
	return finish(a.finalize(ctx, question, steps), StatusExhausted), nil
}

// observe executes one tool call and serializes the result. Tool failures
// become observations so the model can correct course; they never abort
// the loop.
func (a *ReAct) observe(name, rawArgs string, triples *[]graph.Triple, entities *[]string) string {
	res, err := a.toolbox.Invoke(name, rawArgs)
	if err != nil {
		log.Printf("tool error [%s]: %v", name, err)
		payload, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(payload)
	}

	*triples = append(*triples, res.Triples...)
	*entities = append(*entities, res.Entities...)

	payload, err := json.Marshal(res.Rows)
	if err != nil {
		return `{"error":"unserializable result"}`
	}
	obs := string(payload)
	if len(obs) > a.maxObservationChars {
		obs = obs[:a.maxObservationChars] + "... (truncated)"
	}
	return obs
}

// finalize asks for a best-effort answer over the transcript when the loop
// could not complete normally. Its output is never cached.
func (a *ReAct) finalize(ctx context.Context, question string, steps []Step) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\n", question)
	for _, s := range steps {
		if s.Thought != "" {
			fmt.Fprintf(&b, "Thought: %s\n", s.Thought)
		}
		fmt.Fprintf(&b, "Action: %s(%s)\nObservation: %s\n\n", s.Tool, s.Arguments, s.Observation)
	}
	b.WriteString(finalizeInstruction)

	answer, err := a.client.Generate(ctx, b.String())
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			log.Printf("react finalize error: %v", err)
		}
		return "I was unable to produce a complete answer for this question."
	}
	return answer
}
