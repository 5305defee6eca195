package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agenthands/solargraph/internal/graph"
)

// classAliases maps user-facing type words to ontology classes. Lookups are
// lowercased first, so the table stays lowercase.
var classAliases = map[string]string{
	"absorber":         "Absorber",
	"absorbers":        "Absorber",
	"material":         "Absorber",
	"materials":        "Absorber",
	"semiconductor":    "Absorber",
	"semiconductors":   "Absorber",
	"transport":        "TransportLayer",
	"transport layer":  "TransportLayer",
	"transportlayer":   "TransportLayer",
	"electrode":        "Electrode",
	"electrodes":       "Electrode",
	"encapsulant":      "Encapsulant",
	"architecture":     "CellArchitecture",
	"architectures":    "CellArchitecture",
	"cell":             "CellArchitecture",
	"cells":            "CellArchitecture",
	"cellarchitecture": "CellArchitecture",
	"process":          "FabricationProcess",
	"processes":        "FabricationProcess",
	"fabrication":      "FabricationProcess",
	"characterisation": "CharacterisationTechnique",
	"characterization": "CharacterisationTechnique",
	"technique":        "CharacterisationTechnique",
	"defect":           "Defect",
	"defects":          "Defect",
	"metric":           "PerformanceMetric",
	"metrics":          "PerformanceMetric",
	"performance":      "PerformanceMetric",
	"degradation":      "DegradationMechanism",
	"institution":      "Institution",
	"institutions":     "Institution",
	"researcher":       "Researcher",
	"researchers":      "Researcher",
	"standard":         "StandardTest",
	"test":             "StandardTest",
}

// Engine is the fixed catalog of read operations over the graph store.
type Engine struct {
	store *graph.Store
}

func NewEngine(store *graph.Store) *Engine {
	return &Engine{store: store}
}

// Store exposes the underlying graph for provenance lookups.
func (e *Engine) Store() *graph.Store { return e.store }

// NormalizeClass resolves a user-supplied type word to an ontology class.
func (e *Engine) NormalizeClass(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if cls, ok := classAliases[v]; ok {
		return cls, nil
	}
	for _, cls := range e.store.Classes() {
		if strings.ToLower(cls) == v {
			return cls, nil
		}
	}
	return "", &InvalidParameterError{Param: "entity_type", Value: value}
}

func localName(predicate string) string {
	return strings.TrimPrefix(predicate, graph.ClassPrefix)
}

func (e *Engine) typeTriple(id string) (graph.Triple, bool) {
	for _, t := range e.store.Outgoing(id) {
		if t.Predicate == graph.PredType {
			return t, true
		}
	}
	return graph.Triple{}, false
}

func (e *Engine) collectEntity(res *Result, ent *graph.Entity, literalPreds ...string) {
	res.addEntity(ent.ID)
	if tt, ok := e.typeTriple(ent.ID); ok {
		res.addTriple(tt)
	}
	for _, t := range e.store.Outgoing(ent.ID) {
		for _, p := range literalPreds {
			if t.Predicate == p {
				res.addTriple(t)
			}
		}
	}
}

// AllEntities lists every entity with its class and description.
func (e *Engine) AllEntities() *Result {
	res := &Result{}
	for _, ent := range e.store.Entities() {
		if ent.Class == "" || ent.Name == "" {
			continue
		}
		res.Rows = append(res.Rows, Row{
			"name":        ent.Name,
			"type":        ent.Class,
			"description": ent.Description,
		})
		e.collectEntity(res, ent)
	}
	return res
}

// EntitiesByType lists the entities of one class. The class argument is
// validated against the alias table; unknown values are InvalidParameterError.
func (e *Engine) EntitiesByType(entityType string) (*Result, error) {
	cls, err := e.NormalizeClass(entityType)
	if err != nil {
		return nil, err
	}
	res := &Result{}
	for _, ent := range e.store.EntitiesOf(cls) {
		res.Rows = append(res.Rows, Row{
			"name":        ent.Name,
			"description": ent.Description,
		})
		e.collectEntity(res, ent)
	}
	return res, nil
}

// SearchByKeyword matches the keyword case-insensitively against entity
// names, descriptions and literal attribute values. Ties keep graph
// insertion order.
func (e *Engine) SearchByKeyword(keyword string) *Result {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	res := &Result{}
	if kw == "" {
		return res
	}
	for _, ent := range e.store.Entities() {
		if ent.Class == "" {
			continue
		}
		matched := strings.Contains(strings.ToLower(ent.Name), kw) ||
			strings.Contains(strings.ToLower(ent.Description), kw)
		if !matched {
			for _, v := range ent.Attributes {
				if strings.Contains(strings.ToLower(v), kw) {
					matched = true
					break
				}
			}
		}
		if matched {
			res.Rows = append(res.Rows, Row{
				"name":        ent.Name,
				"type":        ent.Class,
				"description": ent.Description,
			})
			e.collectEntity(res, ent)
		}
	}
	return res
}

// EntityDetails returns every property and relationship of a named entity.
// An unknown name yields an empty result, not an error.
func (e *Engine) EntityDetails(name string) *Result {
	res := &Result{}
	ent, ok := e.store.EntityByName(name)
	if !ok {
		return res
	}
	res.addEntity(ent.ID)
	for _, t := range e.store.Outgoing(ent.ID) {
		if t.Predicate == graph.PredName {
			continue
		}
		row := Row{"predicate": localName(t.Predicate)}
		if t.Literal {
			row["value"] = t.Object
		} else if obj, ok := e.store.Entity(t.Object); ok {
			row["object"] = obj.Name
			res.addEntity(obj.ID)
		} else {
			row["object"] = localName(t.Object)
		}
		res.Rows = append(res.Rows, row)
		res.addTriple(t)
	}
	return res
}

// Absorbers lists absorber materials with bandgap and crystal structure,
// sorted by bandgap ascending.
func (e *Engine) Absorbers() *Result {
	res := &Result{}
	ents := append([]*graph.Entity(nil), e.store.EntitiesOf("Absorber")...)
	sort.SliceStable(ents, func(i, j int) bool {
		bi, _ := strconv.ParseFloat(ents[i].Attr("pv:bandgap_eV"), 64)
		bj, _ := strconv.ParseFloat(ents[j].Attr("pv:bandgap_eV"), 64)
		return bi < bj
	})
	for _, ent := range ents {
		res.Rows = append(res.Rows, Row{
			"name":              ent.Name,
			"description":       ent.Description,
			"bandgap_eV":        ent.Attr("pv:bandgap_eV"),
			"crystal_structure": ent.Attr("pv:crystalStructure"),
		})
		e.collectEntity(res, ent, "pv:bandgap_eV", "pv:crystalStructure")
	}
	return res
}

// CellArchitectures lists architectures sorted by record efficiency, best first.
func (e *Engine) CellArchitectures() *Result {
	res := &Result{}
	ents := append([]*graph.Entity(nil), e.store.EntitiesOf("CellArchitecture")...)
	sort.SliceStable(ents, func(i, j int) bool {
		ei, _ := strconv.ParseFloat(ents[i].Attr("pv:recordEfficiency_pct"), 64)
		ej, _ := strconv.ParseFloat(ents[j].Attr("pv:recordEfficiency_pct"), 64)
		return ei > ej
	})
	for _, ent := range ents {
		res.Rows = append(res.Rows, Row{
			"name":           ent.Name,
			"description":    ent.Description,
			"efficiency_pct": ent.Attr("pv:recordEfficiency_pct"),
		})
		e.collectEntity(res, ent, "pv:recordEfficiency_pct")
	}
	return res
}

// DefectsAndImpacts lists defects together with the performance metrics they
// affect.
func (e *Engine) DefectsAndImpacts() *Result {
	res := &Result{}
	for _, ent := range e.store.EntitiesOf("Defect") {
		row := Row{
			"name":        ent.Name,
			"description": ent.Description,
		}
		var affected []string
		for _, t := range e.store.Outgoing(ent.ID) {
			if t.Predicate != "pv:affectsMetric" {
				continue
			}
			if m, ok := e.store.Entity(t.Object); ok {
				affected = append(affected, m.Name)
				res.addEntity(m.ID)
			}
			res.addTriple(t)
		}
		row["affects"] = strings.Join(affected, ", ")
		res.Rows = append(res.Rows, row)
		e.collectEntity(res, ent)
	}
	return res
}

// Relationships lists every entity-to-entity edge in the graph.
func (e *Engine) Relationships() *Result {
	res := &Result{}
	for _, t := range e.store.Triples() {
		if t.Literal || t.Predicate == graph.PredType {
			continue
		}
		subj, sok := e.store.Entity(t.Subject)
		obj, ook := e.store.Entity(t.Object)
		if !sok || !ook {
			continue
		}
		res.Rows = append(res.Rows, Row{
			"subject":   subj.Name,
			"predicate": localName(t.Predicate),
			"object":    obj.Name,
		})
		res.addTriple(t)
		res.addEntity(subj.ID)
		res.addEntity(obj.ID)
	}
	return res
}

// MaterialsForArchitecture lists the materials used in a named architecture.
func (e *Engine) MaterialsForArchitecture(archName string) *Result {
	res := &Result{}
	arch, ok := e.store.EntityByName(archName)
	if !ok {
		return res
	}
	res.addEntity(arch.ID)
	for _, t := range e.store.Incoming(arch.ID) {
		if t.Predicate != "pv:usedIn" {
			continue
		}
		mat, ok := e.store.Entity(t.Subject)
		if !ok {
			continue
		}
		res.Rows = append(res.Rows, Row{
			"name":        mat.Name,
			"type":        mat.Class,
			"description": mat.Description,
		})
		res.addTriple(t)
		res.addEntity(mat.ID)
	}
	return res
}

// FabricationForMaterial lists the processes a named material is made by.
func (e *Engine) FabricationForMaterial(materialName string) *Result {
	res := &Result{}
	mat, ok := e.store.EntityByName(materialName)
	if !ok {
		return res
	}
	res.addEntity(mat.ID)
	for _, t := range e.store.Outgoing(mat.ID) {
		if t.Predicate != "pv:fabricatedBy" {
			continue
		}
		proc, ok := e.store.Entity(t.Object)
		if !ok {
			continue
		}
		res.Rows = append(res.Rows, Row{
			"process":     proc.Name,
			"description": proc.Description,
			"temp_C":      proc.Attr("pv:deposition_temp_C"),
		})
		res.addTriple(t)
		res.addEntity(proc.ID)
	}
	return res
}

// CompatibleMaterials lists materials declared compatible with the named one.
func (e *Engine) CompatibleMaterials(materialName string) *Result {
	res := &Result{}
	mat, ok := e.store.EntityByName(materialName)
	if !ok {
		return res
	}
	res.addEntity(mat.ID)
	for _, t := range e.store.Outgoing(mat.ID) {
		if t.Predicate != "pv:compatibleWith" {
			continue
		}
		comp, ok := e.store.Entity(t.Object)
		if !ok {
			continue
		}
		res.Rows = append(res.Rows, Row{
			"name":        comp.Name,
			"description": comp.Description,
		})
		res.addTriple(t)
		res.addEntity(comp.ID)
	}
	return res
}

// GraphSummary returns per-class entity counts plus the total triple count.
func (e *Engine) GraphSummary() map[string]int {
	summary := map[string]int{"total_triples": e.store.Len()}
	for _, cls := range e.store.Classes() {
		summary[cls] = e.store.CountOf(cls)
	}
	return summary
}
