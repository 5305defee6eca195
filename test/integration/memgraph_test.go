//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/solargraph/internal/graph"
	"github.com/agenthands/solargraph/internal/query"
)

// Requires a running Memgraph with the PV ontology loaded.
func TestMemgraphBackedStore(t *testing.T) {
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}
	user := os.Getenv("MEMGRAPH_USER")
	pwd := os.Getenv("MEMGRAPH_PASSWORD")

	ctx := context.Background()
	store, err := graph.LoadFromMemgraph(ctx, uri, user, pwd)
	require.NoError(t, err)
	assert.Greater(t, store.Len(), 0)

	engine := query.NewEngine(store)
	summary := engine.GraphSummary()
	t.Logf("Graph summary: %v", summary)
	assert.Greater(t, summary["total_triples"], 0)
}
