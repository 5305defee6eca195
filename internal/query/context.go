package query

import (
	"fmt"
	"sort"
	"strings"
)

// Keyword buckets that imply interest in a class even when the class word
// itself is absent from the question.
var domainHints = []struct {
	words   []string
	classes []string
}{
	{[]string{"perovskite", "mapbi3", "fapbi3", "silicon", "cigs", "cdte", "gaas", "bandgap", "absorber"},
		[]string{"Absorber"}},
	{[]string{"efficiency", "record", "pce", "voc", "jsc", "fill factor"},
		[]string{"PerformanceMetric", "CellArchitecture"}},
	{[]string{"degrade", "stability", "moisture", "thermal", "uv"},
		[]string{"DegradationMechanism", "Defect"}},
	{[]string{"ito", "spiro", "ptaa", "tio2", "sno2", "c60", "fullerene"},
		[]string{"TransportLayer", "Electrode"}},
	{[]string{"spin coat", "sputtering", "evaporation", "czochralski", "pecvd", "anneal"},
		[]string{"FabricationProcess"}},
	{[]string{"xrd", "sem", "tem", "trpl", "eqe", "photoluminescence"},
		[]string{"CharacterisationTechnique"}},
	{[]string{"nrel", "fraunhofer", "epfl", "oxford"},
		[]string{"Institution"}},
	{[]string{"tandem", "perc", "topcon", "shj", "n-i-p", "p-i-n"},
		[]string{"CellArchitecture"}},
	{[]string{"gratzel", "snaith", "miyasaka", "researcher"},
		[]string{"Researcher"}},
}

// BuildContext assembles a plain-text knowledge block for the single-shot
// agent by matching the question against class words and domain keywords,
// falling back to named-entity details and finally a graph overview. The
// output is truncated to maxChars.
func (e *Engine) BuildContext(question string, maxChars int) string {
	q := strings.ToLower(question)
	var lines []string

	matched := make(map[string]bool)
	for alias, cls := range classAliases {
		if strings.Contains(q, alias) {
			matched[cls] = true
		}
	}
	for _, hint := range domainHints {
		for _, w := range hint.words {
			if strings.Contains(q, w) {
				for _, cls := range hint.classes {
					matched[cls] = true
				}
				break
			}
		}
	}

	classes := make([]string, 0, len(matched))
	for cls := range matched {
		classes = append(classes, cls)
	}
	sort.Strings(classes)

	for _, cls := range classes {
		switch cls {
		case "Absorber":
			if res := e.Absorbers(); !res.Empty() {
				lines = append(lines, "\n## Absorber Materials")
				for _, r := range res.Rows {
					lines = append(lines, fmt.Sprintf("- %s | Bandgap: %s eV | Crystal: %s | %s",
						r["name"], orNA(r["bandgap_eV"]), orNA(r["crystal_structure"]), r["description"]))
				}
			}
		case "CellArchitecture":
			if res := e.CellArchitectures(); !res.Empty() {
				lines = append(lines, "\n## Cell Architectures by Record Efficiency")
				for _, r := range res.Rows {
					lines = append(lines, fmt.Sprintf("- %s: %s%% record PCE - %s",
						r["name"], orNA(r["efficiency_pct"]), r["description"]))
				}
			}
		case "Defect":
			if res := e.DefectsAndImpacts(); !res.Empty() {
				lines = append(lines, "\n## Defects and Performance Impacts")
				for _, r := range res.Rows {
					line := fmt.Sprintf("- %s: %s", r["name"], r["description"])
					if r["affects"] != "" {
						line += fmt.Sprintf(" (affects: %s)", r["affects"])
					}
					lines = append(lines, line)
				}
			}
		default:
			res, err := e.EntitiesByType(cls)
			if err != nil || res.Empty() {
				continue
			}
			lines = append(lines, fmt.Sprintf("\n## %s entries", cls))
			for _, r := range res.Rows {
				lines = append(lines, fmt.Sprintf("- %s: %s", r["name"], orNA(r["description"])))
			}
		}
	}

	if strings.Contains(q, "relationship") || strings.Contains(q, "related") ||
		strings.Contains(q, "compatible") || strings.Contains(q, "used in") ||
		strings.Contains(q, "connect") {
		if res := e.Relationships(); !res.Empty() {
			lines = append(lines, "\n## Relationships")
			for _, r := range res.Rows {
				lines = append(lines, fmt.Sprintf("- %s → [%s] → %s", r["subject"], r["predicate"], r["object"]))
			}
		}
	}

	// Entity-name fallback: dump details of any entity named in the question.
	if len(lines) == 0 {
		for _, ent := range e.store.Entities() {
			if ent.Name == "" || !strings.Contains(q, strings.ToLower(ent.Name)) {
				continue
			}
			details := e.EntityDetails(ent.Name)
			lines = append(lines, fmt.Sprintf("\n## %s (%s)", ent.Name, ent.Class))
			if ent.Description != "" {
				lines = append(lines, "Description: "+ent.Description)
			}
			for _, r := range details.Rows {
				if r["predicate"] == "description" {
					continue
				}
				v := r["object"]
				if v == "" {
					v = r["value"]
				}
				lines = append(lines, fmt.Sprintf("- %s: %s", r["predicate"], v))
			}
		}
	}

	// Ultimate fallback: a graph overview.
	if len(lines) == 0 {
		lines = append(lines, "## PV Solar Knowledge Graph Overview")
		summary := e.GraphSummary()
		keys := make([]string, 0, len(summary))
		for k := range summary {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("- %s: %d", k, summary[k]))
		}
		for _, r := range e.CellArchitectures().Rows {
			lines = append(lines, fmt.Sprintf("- %s: %s%%", r["name"], orNA(r["efficiency_pct"])))
		}
	}

	out := strings.Join(lines, "\n")
	if maxChars > 0 && len(out) > maxChars {
		out = out[:maxChars]
	}
	return strings.TrimSpace(out)
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
