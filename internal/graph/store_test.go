package graph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStoreIndexes(t *testing.T) {
	s := NewStore(SeedTriples())

	e, ok := s.Entity("pv:MAPbI3")
	assert.True(t, ok)
	assert.Equal(t, "MAPbI3", e.Name)
	assert.Equal(t, "Absorber", e.Class)
	assert.Equal(t, "1.55", e.Attr("pv:bandgap_eV"))

	byName, ok := s.EntityByName("mapbi3")
	assert.True(t, ok)
	assert.Equal(t, e, byName)

	absorbers := s.EntitiesOf("Absorber")
	assert.Len(t, absorbers, 6)
	// Insertion order is preserved
	assert.Equal(t, "MAPbI3", absorbers[0].Name)
	assert.Equal(t, "GaAs", absorbers[5].Name)

	assert.True(t, s.HasClass("Defect"))
	assert.False(t, s.HasClass("Banana"))
	assert.Equal(t, 6, s.CountOf("CellArchitecture"))
}

func TestStoreTraversal(t *testing.T) {
	s := NewStore(SeedTriples())

	var defects []string
	for _, tr := range s.Outgoing("pv:MAPbI3") {
		if tr.Predicate == "pv:hasDefect" {
			defects = append(defects, tr.Object)
		}
	}
	assert.Equal(t, []string{"pv:IodideVacancy", "pv:IonMigration"}, defects)

	var usedIn []string
	for _, tr := range s.Incoming("pv:NIPPlanar") {
		if tr.Predicate == "pv:usedIn" {
			usedIn = append(usedIn, tr.Subject)
		}
	}
	assert.Contains(t, usedIn, "pv:MAPbI3")
	assert.Contains(t, usedIn, "pv:SpiroOMeTAD")
}

func TestStoreUnknownClassIsEmptyNotError(t *testing.T) {
	s := NewStore(SeedTriples())
	assert.Empty(t, s.EntitiesOf("NoSuchClass"))
}

func TestLoadMissingSnapshotRebuildsFromSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")

	s, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, len(SeedTriples()), s.Len())

	// The rebuild must have persisted a snapshot for the next start.
	_, err = os.Stat(path)
	assert.NoError(t, err)

	again, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, s.Len(), again.Len())
}

func TestLoadCorruptSnapshotIsLoadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	var le *LoadError
	assert.True(t, errors.As(err, &le))

	// Rebuild recovers from the seed facts.
	s, err := Rebuild(path)
	assert.NoError(t, err)
	assert.Greater(t, s.Len(), 0)
}

func TestLoadEmptySnapshotIsLoadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	assert.NoError(t, os.WriteFile(path, []byte(`{"triples":[]}`), 0o644))

	_, err := Load(path)
	var le *LoadError
	assert.True(t, errors.As(err, &le))
}
