package graph

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type snapshot struct {
	Triples []Triple `json:"triples"`
}

// Load reads the graph snapshot at path. A missing snapshot is rebuilt from
// the embedded seed ontology and written back for the next start; an
// unreadable or corrupt snapshot is a LoadError.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("Snapshot %s not found, rebuilding from seed ontology", path)
		return Rebuild(path)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("corrupt snapshot: %w", err)}
	}
	if len(snap.Triples) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("snapshot contains no triples")}
	}

	log.Printf("Graph loaded from %s (%d triples)", path, len(snap.Triples))
	return NewStore(snap.Triples), nil
}

// Rebuild writes a fresh snapshot from the seed ontology and returns the
// resulting store. Failure to persist is non-fatal; the in-memory graph is
// still usable.
func Rebuild(path string) (*Store, error) {
	triples := SeedTriples()
	if err := Save(path, triples); err != nil {
		log.Printf("Warning: could not persist snapshot to %s: %v", path, err)
	}
	return NewStore(triples), nil
}

// Save serializes the triple list to path as JSON, creating the parent
// directory if needed.
func Save(path string, triples []Triple) error {
	data, err := json.MarshalIndent(snapshot{Triples: triples}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
