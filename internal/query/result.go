package query

import (
	"fmt"

	"github.com/agenthands/solargraph/internal/graph"
)

// InvalidParameterError reports a query argument the engine does not
// recognize, e.g. an unknown entity class. It never reflects an empty result.
type InvalidParameterError struct {
	Param string
	Value string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Param, e.Value)
}

// Row is one result row, keyed the way it is serialized over the API.
type Row map[string]string

// Result is the output of a single engine operation. Triples and Entities
// record which facts the rows were derived from so agents can build
// provenance; both are empty-but-valid when nothing matched.
type Result struct {
	Rows     []Row          `json:"rows"`
	Triples  []graph.Triple `json:"-"`
	Entities []string       `json:"-"`
}

func (r *Result) addEntity(id string) {
	for _, e := range r.Entities {
		if e == id {
			return
		}
	}
	r.Entities = append(r.Entities, id)
}

func (r *Result) addTriple(t graph.Triple) {
	for _, have := range r.Triples {
		if have == t {
			return
		}
	}
	r.Triples = append(r.Triples, t)
}

// Empty reports whether the operation matched nothing.
func (r *Result) Empty() bool { return len(r.Rows) == 0 }
