package graph

// Core RDF-style vocabulary. Entity identifiers and class names carry the
// pv: prefix of the photovoltaic ontology; predicate names are stored with
// their prefix and compared as-is.
const (
	PredType        = "rdf:type"
	PredName        = "pv:name"
	PredDescription = "pv:description"

	ClassPrefix = "pv:"
)

// Triple is a single subject-predicate-object fact. Literal marks objects
// that are data values rather than references to other entities.
type Triple struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
	Literal   bool   `json:"literal,omitempty"`
}

// Entity is the materialized view of one subject: its class, display name,
// description and literal attributes, assembled from the triples that
// mention it.
type Entity struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Class       string            `json:"class"`
	Description string            `json:"description,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// Attr returns a literal attribute value, or "" when absent.
func (e *Entity) Attr(predicate string) string {
	if e.Attributes == nil {
		return ""
	}
	return e.Attributes[predicate]
}
