package agent

import (
	"encoding/json"
	"fmt"

	"github.com/agenthands/solargraph/internal/llm"
	"github.com/agenthands/solargraph/internal/query"
)

// ToolInvocationError means the model asked for a tool that does not exist
// or passed arguments that could not be used. The ReAct loop records it as
// an observation instead of aborting.
type ToolInvocationError struct {
	Tool string
	Err  error
}

func (e *ToolInvocationError) Error() string {
	return fmt.Sprintf("tool %q: %v", e.Tool, e.Err)
}

func (e *ToolInvocationError) Unwrap() error { return e.Err }

// Tool binds one Query Engine operation to a name the model can call.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
	Run         func(args map[string]string) (*query.Result, error)
}

// Toolbox is the closed tool catalog over the Query Engine. The set is
// fixed at construction; dispatch is by name through a lookup table.
type Toolbox struct {
	tools  []Tool
	byName map[string]*Tool
}

func stringParams(params ...[2]string) map[string]interface{} {
	props := map[string]interface{}{}
	var required []string
	for _, p := range params {
		props[p[0]] = map[string]interface{}{"type": "string", "description": p[1]}
		required = append(required, p[0])
	}
	schema := map[string]interface{}{"type": "object", "properties": props}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func NewToolbox(engine *query.Engine) *Toolbox {
	tools := []Tool{
		{
			Name:        "entities_by_type",
			Description: "List all entities of one type, e.g. 'absorber', 'defect', 'architecture', 'institution'.",
			Parameters:  stringParams([2]string{"entity_type", "The entity type to list."}),
			Run: func(args map[string]string) (*query.Result, error) {
				return engine.EntitiesByType(args["entity_type"])
			},
		},
		{
			Name:        "keyword_search",
			Description: "Full-text search across all entity names, descriptions and property values.",
			Parameters:  stringParams([2]string{"keyword", "Search term, e.g. 'perovskite', 'defect', 'silicon'."}),
			Run: func(args map[string]string) (*query.Result, error) {
				return engine.SearchByKeyword(args["keyword"]), nil
			},
		},
		{
			Name:        "entity_details",
			Description: "Get all properties and relationships of a named entity.",
			Parameters:  stringParams([2]string{"entity_name", "The entity name, e.g. 'MAPbI3' or 'PERC (Passivated Emitter and Rear Cell)'."}),
			Run: func(args map[string]string) (*query.Result, error) {
				return engine.EntityDetails(args["entity_name"]), nil
			},
		},
		{
			Name:        "get_absorbers",
			Description: "Get all absorber materials with bandgap energies and crystal structures.",
			Parameters:  stringParams(),
			Run: func(map[string]string) (*query.Result, error) {
				return engine.Absorbers(), nil
			},
		},
		{
			Name:        "get_architectures",
			Description: "Get all cell architectures with record power conversion efficiencies, best first.",
			Parameters:  stringParams(),
			Run: func(map[string]string) (*query.Result, error) {
				return engine.CellArchitectures(), nil
			},
		},
		{
			Name:        "get_defects",
			Description: "Get all defects and which performance metrics (PCE, Voc, FF) they impact.",
			Parameters:  stringParams(),
			Run: func(map[string]string) (*query.Result, error) {
				return engine.DefectsAndImpacts(), nil
			},
		},
		{
			Name:        "get_relationships",
			Description: "Get all subject-predicate-object relationships in the knowledge graph.",
			Parameters:  stringParams(),
			Run: func(map[string]string) (*query.Result, error) {
				return engine.Relationships(), nil
			},
		},
		{
			Name:        "materials_for_architecture",
			Description: "List the materials used in a named cell architecture.",
			Parameters:  stringParams([2]string{"architecture", "The architecture name."}),
			Run: func(args map[string]string) (*query.Result, error) {
				return engine.MaterialsForArchitecture(args["architecture"]), nil
			},
		},
		{
			Name:        "fabrication_for_material",
			Description: "List the fabrication processes for a named material, with deposition temperatures.",
			Parameters:  stringParams([2]string{"material", "The material name."}),
			Run: func(args map[string]string) (*query.Result, error) {
				return engine.FabricationForMaterial(args["material"]), nil
			},
		},
		{
			Name:        "compatible_materials",
			Description: "List the materials known to be compatible with a named material.",
			Parameters:  stringParams([2]string{"material", "The material name."}),
			Run: func(args map[string]string) (*query.Result, error) {
				return engine.CompatibleMaterials(args["material"]), nil
			},
		},
		{
			Name:        "graph_summary",
			Description: "Get entity counts per type and the total number of facts in the graph.",
			Parameters:  stringParams(),
			Run: func(map[string]string) (*query.Result, error) {
				res := &query.Result{}
				summary := engine.GraphSummary()
				row := query.Row{}
				for k, v := range summary {
					row[k] = fmt.Sprintf("%d", v)
				}
				res.Rows = append(res.Rows, row)
				return res, nil
			},
		},
	}

	tb := &Toolbox{tools: tools, byName: make(map[string]*Tool, len(tools))}
	for i := range tb.tools {
		tb.byName[tb.tools[i].Name] = &tb.tools[i]
	}
	return tb
}

// Specs renders the catalog for the LLM boundary.
func (tb *Toolbox) Specs() []llm.ToolSpec {
	specs := make([]llm.ToolSpec, 0, len(tb.tools))
	for _, t := range tb.tools {
		specs = append(specs, llm.ToolSpec{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		})
	}
	return specs
}

// Invoke dispatches a tool call. Unknown names and unparseable arguments are
// ToolInvocationError; parameter validation errors from the engine pass
// through wrapped so the loop can feed them back as observations.
func (tb *Toolbox) Invoke(name string, rawArgs string) (*query.Result, error) {
	tool, ok := tb.byName[name]
	if !ok {
		return nil, &ToolInvocationError{Tool: name, Err: fmt.Errorf("unknown tool")}
	}

	args := map[string]string{}
	if rawArgs != "" {
		var anyArgs map[string]interface{}
		if err := json.Unmarshal([]byte(rawArgs), &anyArgs); err != nil {
			return nil, &ToolInvocationError{Tool: name, Err: fmt.Errorf("malformed arguments: %w", err)}
		}
		for k, v := range anyArgs {
			args[k] = fmt.Sprintf("%v", v)
		}
	}

	res, err := tool.Run(args)
	if err != nil {
		return nil, &ToolInvocationError{Tool: name, Err: err}
	}
	return res, nil
}
