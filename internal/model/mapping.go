package model

// Confidence ranks how strongly two artifacts are believed to correspond.
// The zero value is ConfidenceNone and higher values are stronger.
type Confidence int

const (
	// ConfidenceNone means no counterpart was found.
	ConfidenceNone Confidence = iota
	// ConfidenceImport means the relation was detected from a source-text reference.
	ConfidenceImport
	// ConfidenceInferred means the relation was inferred from partial name overlap.
	ConfidenceInferred
	// ConfidenceExact means the names match exactly.
	ConfidenceExact
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceExact:
		return "exact"
	case ConfidenceInferred:
		return "inferred"
	case ConfidenceImport:
		return "import"
	case ConfidenceNone:
		return "none"
	}

	return "unknown"
}

// MarshalText renders the confidence by name in JSON and YAML output.
func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ContractMapping pairs a contract with at most one implementation.
type ContractMapping struct {
	Contract       FileRecord  `json:"contract" yaml:"contract"`
	Implementation *FileRecord `json:"implementation,omitempty" yaml:"implementation,omitempty"`
	Confidence     Confidence  `json:"confidence" yaml:"confidence"`
}

// Found reports whether an implementation was matched.
func (cm ContractMapping) Found() bool {
	return cm.Implementation != nil && cm.Confidence != ConfidenceNone
}

// ModuleMatch is an HTTP module credited to a bounded context.
type ModuleMatch struct {
	Module     string     `json:"module" yaml:"module"`
	Confidence Confidence `json:"confidence" yaml:"confidence"`
}

// ContextMapping lists the HTTP modules mapped to one bounded context.
type ContextMapping struct {
	Context  string        `json:"context" yaml:"context"`
	Entities []string      `json:"entities,omitempty" yaml:"entities,omitempty"`
	Modules  []ModuleMatch `json:"modules" yaml:"modules"`
}
