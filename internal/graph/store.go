package graph

import (
	"fmt"
	"strings"
)

// LoadError means the snapshot exists but cannot be used. Startup must not
// continue without a loaded graph; callers may fall back to Rebuild.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("graph snapshot %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store holds the knowledge graph. It is built once from a triple list and
// never mutated afterwards, so concurrent readers need no locking.
type Store struct {
	triples []Triple

	entities map[string]*Entity
	order    []string            // entity IDs in insertion order
	byClass  map[string][]string // class -> entity IDs, insertion order
	byName   map[string]string   // lowercased pv:name -> entity ID
	outgoing map[string][]Triple
	incoming map[string][]Triple
}

// NewStore indexes the given triples. Triple order is preserved everywhere;
// it is the tie-breaker the query layer relies on.
func NewStore(triples []Triple) *Store {
	s := &Store{
		triples:  triples,
		entities: make(map[string]*Entity),
		byClass:  make(map[string][]string),
		byName:   make(map[string]string),
		outgoing: make(map[string][]Triple),
		incoming: make(map[string][]Triple),
	}

	for _, t := range triples {
		s.outgoing[t.Subject] = append(s.outgoing[t.Subject], t)
		if !t.Literal {
			s.incoming[t.Object] = append(s.incoming[t.Object], t)
		}

		e := s.entities[t.Subject]
		if e == nil {
			e = &Entity{ID: t.Subject}
			s.entities[t.Subject] = e
			s.order = append(s.order, t.Subject)
		}

		switch t.Predicate {
		case PredType:
			e.Class = strings.TrimPrefix(t.Object, ClassPrefix)
			s.byClass[e.Class] = append(s.byClass[e.Class], t.Subject)
		case PredName:
			e.Name = t.Object
			s.byName[strings.ToLower(t.Object)] = t.Subject
		case PredDescription:
			e.Description = t.Object
		default:
			if t.Literal {
				if e.Attributes == nil {
					e.Attributes = make(map[string]string)
				}
				e.Attributes[t.Predicate] = t.Object
			}
		}
	}

	return s
}

// Len returns the number of triples in the graph.
func (s *Store) Len() int { return len(s.triples) }

// Triples returns every triple in insertion order. Callers must not modify
// the returned slice.
func (s *Store) Triples() []Triple { return s.triples }

// Entity looks up an entity by its identifier.
func (s *Store) Entity(id string) (*Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// EntityByName looks up an entity by its pv:name, case-insensitively.
func (s *Store) EntityByName(name string) (*Entity, bool) {
	id, ok := s.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return s.entities[id], true
}

// Entities returns all entities in insertion order.
func (s *Store) Entities() []*Entity {
	out := make([]*Entity, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entities[id])
	}
	return out
}

// EntitiesOf returns the entities of one class in insertion order. Unknown
// classes yield an empty slice, never an error; validation belongs to the
// query layer.
func (s *Store) EntitiesOf(class string) []*Entity {
	ids := s.byClass[class]
	out := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.entities[id])
	}
	return out
}

// HasClass reports whether at least one entity of the class exists.
func (s *Store) HasClass(class string) bool {
	return len(s.byClass[class]) > 0
}

// Classes returns the distinct entity classes in first-seen order.
func (s *Store) Classes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range s.order {
		c := s.entities[id].Class
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Outgoing returns the triples whose subject is the given entity.
func (s *Store) Outgoing(id string) []Triple { return s.outgoing[id] }

// Incoming returns the non-literal triples whose object is the given entity.
func (s *Store) Incoming(id string) []Triple { return s.incoming[id] }

// CountOf returns the number of entities of a class.
func (s *Store) CountOf(class string) int { return len(s.byClass[class]) }
