package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/solargraph/internal/query"
)

func TestToolboxSpecsCoverCatalog(t *testing.T) {
	tb := NewToolbox(newTestEngine(t))

	names := map[string]bool{}
	for _, spec := range tb.Specs() {
		names[spec.Name] = true
		assert.NotEmpty(t, spec.Description)
		assert.Equal(t, "object", spec.Parameters["type"])
	}

	for _, want := range []string{
		"entities_by_type", "keyword_search", "entity_details",
		"get_absorbers", "get_architectures", "get_defects",
		"get_relationships", "materials_for_architecture",
		"fabrication_for_material", "compatible_materials", "graph_summary",
	} {
		assert.True(t, names[want], "missing tool %s", want)
	}
}

func TestToolboxUnknownToolIsTypedError(t *testing.T) {
	tb := NewToolbox(newTestEngine(t))

	_, err := tb.Invoke("sparql_query", `{"query":"SELECT *"}`)
	var tie *ToolInvocationError
	require.True(t, errors.As(err, &tie))
	assert.Equal(t, "sparql_query", tie.Tool)
}

func TestToolboxMalformedArguments(t *testing.T) {
	tb := NewToolbox(newTestEngine(t))

	_, err := tb.Invoke("keyword_search", `{"keyword":`)
	var tie *ToolInvocationError
	require.True(t, errors.As(err, &tie))
}

func TestToolboxInvalidTypeWrapsEngineError(t *testing.T) {
	tb := NewToolbox(newTestEngine(t))

	_, err := tb.Invoke("entities_by_type", `{"entity_type":"starship"}`)
	var tie *ToolInvocationError
	require.True(t, errors.As(err, &tie))
	var ipe *query.InvalidParameterError
	assert.True(t, errors.As(err, &ipe))
}

func TestToolboxKeywordSearch(t *testing.T) {
	tb := NewToolbox(newTestEngine(t))

	res, err := tb.Invoke("keyword_search", `{"keyword":"perovskite"}`)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Rows)
	assert.NotEmpty(t, res.Entities)
}

func TestToolboxNoArgToolIgnoresMissingArguments(t *testing.T) {
	tb := NewToolbox(newTestEngine(t))

	res, err := tb.Invoke("get_absorbers", "")
	require.NoError(t, err)
	assert.Equal(t, "c-Si", res.Rows[0]["name"]) // bandgap ascending
}

func TestToolboxNonStringArgumentIsCoerced(t *testing.T) {
	tb := NewToolbox(newTestEngine(t))

	res, err := tb.Invoke("keyword_search", `{"keyword":61215}`)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Rows) // matches IEC 61215
}

func TestToolboxGraphSummary(t *testing.T) {
	tb := NewToolbox(newTestEngine(t))

	res, err := tb.Invoke("graph_summary", "{}")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Contains(t, res.Rows[0], "total_triples")
}
