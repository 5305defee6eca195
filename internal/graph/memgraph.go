package graph

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MemgraphSource loads the triple set out of a Memgraph/Neo4j instance
// instead of the JSON snapshot file. Nodes are expected to carry id, class,
// name and description properties plus any literal attributes; relationships
// become non-literal triples named after their type.
type MemgraphSource struct {
	Driver neo4j.DriverWithContext
}

func NewMemgraphSource(uri, username, password string) (*MemgraphSource, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Connected to Memgraph")
	return &MemgraphSource{Driver: driver}, nil
}

func (s *MemgraphSource) Close(ctx context.Context) error {
	return s.Driver.Close(ctx)
}

const (
	nodeQuery = `
		MATCH (n:Entity)
		RETURN n.id AS id, n.class AS class, properties(n) AS props
		ORDER BY id(n)
	`
	edgeQuery = `
		MATCH (a:Entity)-[r]->(b:Entity)
		RETURN a.id AS subject, type(r) AS predicate, b.id AS object
		ORDER BY id(r)
	`
)

// Triples streams the whole graph into a triple list. The result feeds
// NewStore exactly like a file snapshot does.
func (s *MemgraphSource) Triples(ctx context.Context) ([]Triple, error) {
	var ts []Triple

	nodes, err := neo4j.ExecuteQuery(ctx, s.Driver, nodeQuery, nil, neo4j.EagerResultTransformer)
	if err != nil {
		return nil, fmt.Errorf("failed to read entity nodes: %w", err)
	}
	for _, rec := range nodes.Records {
		id, _ := rec.Get("id")
		class, _ := rec.Get("class")
		props, _ := rec.Get("props")

		subject, ok := id.(string)
		if !ok || subject == "" {
			continue
		}
		if c, ok := class.(string); ok && c != "" {
			ts = append(ts, Triple{Subject: subject, Predicate: PredType, Object: ClassPrefix + c})
		}
		if pm, ok := props.(map[string]interface{}); ok {
			for key, val := range pm {
				switch key {
				case "id", "class":
					continue
				}
				sv := fmt.Sprintf("%v", val)
				pred := "pv:" + key
				switch key {
				case "name":
					pred = PredName
				case "description":
					pred = PredDescription
				}
				ts = append(ts, Triple{Subject: subject, Predicate: pred, Object: sv, Literal: true})
			}
		}
	}

	edges, err := neo4j.ExecuteQuery(ctx, s.Driver, edgeQuery, nil, neo4j.EagerResultTransformer)
	if err != nil {
		return nil, fmt.Errorf("failed to read relationships: %w", err)
	}
	for _, rec := range edges.Records {
		subject, _ := rec.Get("subject")
		predicate, _ := rec.Get("predicate")
		object, _ := rec.Get("object")

		sv, sok := subject.(string)
		pv, pok := predicate.(string)
		ov, ook := object.(string)
		if !sok || !pok || !ook {
			continue
		}
		ts = append(ts, Triple{Subject: sv, Predicate: "pv:" + pv, Object: ov})
	}

	if len(ts) == 0 {
		return nil, fmt.Errorf("memgraph returned no triples")
	}
	return ts, nil
}

// LoadFromMemgraph builds a Store from a live Memgraph instance at startup.
func LoadFromMemgraph(ctx context.Context, uri, username, password string) (*Store, error) {
	src, err := NewMemgraphSource(uri, username, password)
	if err != nil {
		return nil, &LoadError{Path: uri, Err: err}
	}
	defer src.Close(ctx)

	triples, err := src.Triples(ctx)
	if err != nil {
		return nil, &LoadError{Path: uri, Err: err}
	}

	log.Printf("Graph loaded from Memgraph (%d triples)", len(triples))
	return NewStore(triples), nil
}
