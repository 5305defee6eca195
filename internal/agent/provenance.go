package agent

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/agenthands/solargraph/internal/graph"
	"github.com/agenthands/solargraph/internal/query"
)

const (
	maxCitedEntities     = 15
	maxSupportingTriples = 25
)

// Record statuses. Only "done" answers are eligible for caching.
const (
	StatusDone      = "done"
	StatusExhausted = "exhausted"
	StatusDegraded  = "degraded"
)

// Step is one completed think/act/observe cycle of the loop.
type Step struct {
	Iteration   int    `json:"iteration"`
	Thought     string `json:"thought,omitempty"`
	Tool        string `json:"tool"`
	Arguments   string `json:"arguments"`
	Observation string `json:"observation"`
}

// Record is the audit trail of one answer: the reasoning steps taken, the
// entities the answer cites and the graph facts that back them. Built once
// when the answer is final and immutable afterwards.
type Record struct {
	ID                string         `json:"query_id"`
	Query             string         `json:"query_text"`
	Timestamp         time.Time      `json:"timestamp_utc"`
	Steps             []Step         `json:"steps"`
	CitedEntities     []string       `json:"cited_entities"`
	SupportingTriples []graph.Triple `json:"supporting_triples"`
	Iterations        int            `json:"agent_iterations"`
	Status            string         `json:"status"`
	Cached            bool           `json:"cached"`
}

// ToMarkdown renders the record for display under an answer.
func (r *Record) ToMarkdown() string {
	var b strings.Builder
	b.WriteString("### Provenance Record\n")
	id := r.ID
	if len(id) > 16 {
		id = id[:16]
	}
	fmt.Fprintf(&b, "- **Query ID:** `%s`\n", id)
	fmt.Fprintf(&b, "- **Timestamp:** %s\n", r.Timestamp.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Agent iterations:** %d\n", r.Iterations)
	fmt.Fprintf(&b, "- **Status:** %s\n", r.Status)
	if r.Cached {
		b.WriteString("- **Served from cache:** Yes\n")
	} else {
		b.WriteString("- **Served from cache:** No\n")
	}
	if len(r.CitedEntities) > 0 {
		b.WriteString("\n**Cited Entities:**\n")
		for _, e := range r.CitedEntities {
			fmt.Fprintf(&b, "- `%s`\n", e)
		}
	}
	if len(r.SupportingTriples) > 0 {
		b.WriteString("\n**Supporting Knowledge Graph Triples:**\n")
		b.WriteString("| Subject | Predicate | Object |\n|---|---|---|\n")
		for _, t := range r.SupportingTriples {
			fmt.Fprintf(&b, "| %s | *%s* | %s |\n", t.Subject, t.Predicate, t.Object)
		}
	}
	if len(r.Steps) > 0 {
		b.WriteString("\n**Tools Invoked:**\n")
		for _, s := range r.Steps {
			fmt.Fprintf(&b, "- iteration %d: `%s(%s)`\n", s.Iteration, s.Tool, s.Arguments)
		}
	}
	return b.String()
}

// abbrevRe pulls a parenthesized abbreviation out of a display name, so that
// "PERC (Passivated Emitter and Rear Cell)" is also cited when an answer
// says just "PERC".
var abbrevRe = regexp.MustCompile(`\(([^)]{2,20})\)`)

func abbrevOf(name string) string {
	m := abbrevRe.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// citedIn scans the answer text for known entity names. A name counts as
// cited when it appears verbatim (case-insensitive), when its parenthesized
// abbreviation does, or when the short form before the parenthesis does
// ("PERC" cites "PERC (Passivated Emitter and Rear Cell)").
func citedIn(answer string, store *graph.Store) []string {
	lower := strings.ToLower(answer)
	var cited []string
	for _, ent := range store.Entities() {
		if ent.Name == "" {
			continue
		}
		name := strings.ToLower(ent.Name)
		if strings.Contains(lower, name) {
			cited = append(cited, ent.Name)
			continue
		}
		if ab := abbrevOf(ent.Name); ab != "" && strings.Contains(lower, ab) {
			cited = append(cited, ent.Name)
			continue
		}
		if head, _, ok := strings.Cut(name, " ("); ok && head != "" && strings.Contains(lower, head) {
			cited = append(cited, ent.Name)
		}
	}
	return cited
}

// buildRecord finalizes the provenance for an answer. Entity names detected
// in the answer text come first; entities touched during the loop follow.
// Every cited entity gets at least one anchoring triple in the supporting
// set before the remainder of the budget is filled, so each citation stays
// traceable to a fact.
func buildRecord(id, question, answer string, engine *query.Engine,
	steps []Step, loopTriples []graph.Triple, loopEntities []string,
	iterations int, status string, cached bool, now time.Time) *Record {

	store := engine.Store()

	seenCited := map[string]bool{}
	var cited []string
	addCited := func(name string) {
		if name == "" || seenCited[name] || len(cited) >= maxCitedEntities {
			return
		}
		seenCited[name] = true
		cited = append(cited, name)
	}
	for _, name := range citedIn(answer, store) {
		addCited(name)
	}
	for _, eid := range loopEntities {
		if ent, ok := store.Entity(eid); ok {
			addCited(ent.Name)
		}
	}

	seenTriple := map[graph.Triple]bool{}
	var triples []graph.Triple
	addTriple := func(t graph.Triple) bool {
		if seenTriple[t] || len(triples) >= maxSupportingTriples {
			return false
		}
		seenTriple[t] = true
		triples = append(triples, t)
		return true
	}

	// One anchor triple per cited entity first.
	detailsFor := map[string][]graph.Triple{}
	for _, name := range cited {
		detailsFor[name] = engine.EntityDetails(name).Triples
		if len(detailsFor[name]) > 0 {
			addTriple(detailsFor[name][0])
		}
	}
	for _, t := range loopTriples {
		addTriple(t)
	}
	for _, name := range cited {
		for _, t := range detailsFor[name] {
			addTriple(t)
		}
	}

	return &Record{
		ID:                id,
		Query:             question,
		Timestamp:         now.UTC(),
		Steps:             steps,
		CitedEntities:     cited,
		SupportingTriples: triples,
		Iterations:        iterations,
		Status:            status,
		Cached:            cached,
	}
}
