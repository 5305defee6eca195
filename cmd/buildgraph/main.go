// Command buildgraph rebuilds the knowledge graph snapshot from the seed
// ontology, or exports the current contents of a Memgraph instance when
// MEMGRAPH_URI is set.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/agenthands/solargraph/internal/graph"
)

func main() {
	out := flag.String("out", "data/graph.json", "snapshot path to write")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	var (
		store *graph.Store
		err   error
	)
	if uri := os.Getenv("MEMGRAPH_URI"); uri != "" {
		log.Printf("Exporting graph from %s", uri)
		store, err = graph.LoadFromMemgraph(context.Background(), uri,
			os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"))
	} else {
		log.Println("Rebuilding graph from the seed ontology")
		store = graph.NewStore(graph.SeedTriples())
	}
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}

	if err := graph.Save(*out, store.Triples()); err != nil {
		log.Fatalf("Failed to write snapshot: %v", err)
	}

	log.Printf("Snapshot written to %s: %d triples, %d entities",
		*out, store.Len(), len(store.Entities()))
	for _, class := range store.Classes() {
		log.Printf("  %-26s %d", class, store.CountOf(class))
	}
}
