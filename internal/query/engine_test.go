package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/solargraph/internal/graph"
)

func seedEngine() *Engine {
	return NewEngine(graph.NewStore(graph.SeedTriples()))
}

func TestEntitiesByTypeAliases(t *testing.T) {
	e := seedEngine()

	for _, alias := range []string{"absorber", "Absorbers", "ABSORBER", "semiconductors"} {
		res, err := e.EntitiesByType(alias)
		assert.NoError(t, err, alias)
		assert.Len(t, res.Rows, 6, alias)
	}

	res, err := e.EntitiesByType("defects")
	assert.NoError(t, err)
	assert.Equal(t, "Iodide Vacancy", res.Rows[0]["name"])
	assert.NotEmpty(t, res.Entities)
	assert.NotEmpty(t, res.Triples)
}

func TestEntitiesByTypeUnknownIsInvalidParameter(t *testing.T) {
	e := seedEngine()

	_, err := e.EntitiesByType("banana")
	var ip *InvalidParameterError
	assert.True(t, errors.As(err, &ip))
	assert.Equal(t, "entity_type", ip.Param)
}

func TestSearchByKeyword(t *testing.T) {
	e := seedEngine()

	res := e.SearchByKeyword("perovskite")
	names := make([]string, 0, len(res.Rows))
	for _, r := range res.Rows {
		names = append(names, r["name"])
	}
	assert.Contains(t, names, "MAPbI3")
	assert.Contains(t, names, "FAPbI3")
	// First match follows graph insertion order.
	assert.Equal(t, "MAPbI3", names[0])

	// Literal attribute values are searched too.
	res = e.SearchByKeyword("chalcopyrite")
	assert.Len(t, res.Rows, 1)
	assert.Equal(t, "CIGS", res.Rows[0]["name"])

	// Empty result, never an error.
	assert.True(t, e.SearchByKeyword("graphene").Empty())
	assert.True(t, e.SearchByKeyword("").Empty())
}

func TestAbsorbersSortedByBandgap(t *testing.T) {
	e := seedEngine()

	res := e.Absorbers()
	assert.Len(t, res.Rows, 6)
	assert.Equal(t, "c-Si", res.Rows[0]["name"])
	assert.Equal(t, "1.12", res.Rows[0]["bandgap_eV"])
	assert.Equal(t, "MAPbI3", res.Rows[5]["name"])

	// Supporting triples include the bandgap facts.
	assert.Contains(t, res.Triples, graph.Triple{
		Subject: "pv:MAPbI3", Predicate: "pv:bandgap_eV", Object: "1.55", Literal: true,
	})
}

func TestCellArchitecturesSortedByEfficiency(t *testing.T) {
	e := seedEngine()

	res := e.CellArchitectures()
	assert.Equal(t, "Perovskite-Silicon Tandem", res.Rows[0]["name"])
	assert.Equal(t, "33.9", res.Rows[0]["efficiency_pct"])
}

func TestDefectsAndImpacts(t *testing.T) {
	e := seedEngine()

	res := e.DefectsAndImpacts()
	byName := map[string]Row{}
	for _, r := range res.Rows {
		byName[r["name"]] = r
	}
	assert.Equal(t, "Fill Factor, PCE", byName["Ion Migration"]["affects"])
	assert.Equal(t, "Voc", byName["Iodide Vacancy"]["affects"])
}

func TestEntityDetails(t *testing.T) {
	e := seedEngine()

	res := e.EntityDetails("MAPbI3")
	assert.False(t, res.Empty())

	var sawBandgap, sawDefect bool
	for _, r := range res.Rows {
		if r["predicate"] == "bandgap_eV" && r["value"] == "1.55" {
			sawBandgap = true
		}
		if r["predicate"] == "hasDefect" && r["object"] == "Ion Migration" {
			sawDefect = true
		}
	}
	assert.True(t, sawBandgap)
	assert.True(t, sawDefect)

	// Unknown entity: empty result, no error.
	assert.True(t, e.EntityDetails("Unobtainium").Empty())
}

func TestMaterialsForArchitecture(t *testing.T) {
	e := seedEngine()

	res := e.MaterialsForArchitecture("n-i-p Planar Perovskite")
	names := make([]string, 0, len(res.Rows))
	for _, r := range res.Rows {
		names = append(names, r["name"])
	}
	assert.Contains(t, names, "MAPbI3")
	assert.Contains(t, names, "Spiro-OMeTAD")
	assert.Contains(t, names, "SnO2")
}

func TestFabricationForMaterial(t *testing.T) {
	e := seedEngine()

	res := e.FabricationForMaterial("c-Si")
	assert.Len(t, res.Rows, 1)
	assert.Equal(t, "Czochralski Growth", res.Rows[0]["process"])
	assert.Equal(t, "1414", res.Rows[0]["temp_C"])
}

func TestRelationshipsAndSummary(t *testing.T) {
	e := seedEngine()

	rels := e.Relationships()
	assert.False(t, rels.Empty())
	for _, r := range rels.Rows {
		assert.NotEmpty(t, r["subject"])
		assert.NotEmpty(t, r["predicate"])
		assert.NotEmpty(t, r["object"])
	}

	summary := e.GraphSummary()
	assert.Equal(t, 6, summary["Absorber"])
	assert.Equal(t, 4, summary["Defect"])
	assert.Greater(t, summary["total_triples"], 100)
}
