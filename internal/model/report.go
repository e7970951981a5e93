package model

// Section names one part of a report.
type Section string

const (
	// SectionTree is the folder structure.
	SectionTree Section = "tree"
	// SectionContexts is the bounded context to HTTP module map.
	SectionContexts Section = "contexts"
	// SectionContracts is the contract to implementation map.
	SectionContracts Section = "contracts"
	// SectionModules is the module dependency hierarchy.
	SectionModules Section = "modules"
	// SectionCoverage is the test coverage structural map.
	SectionCoverage Section = "coverage"
	// SectionEmpty is the empty directory summary.
	SectionEmpty Section = "empty"
)

// AllSections lists every section in report order.
func AllSections() []Section {
	return []Section{
		SectionTree,
		SectionContexts,
		SectionContracts,
		SectionModules,
		SectionCoverage,
		SectionEmpty,
	}
}

// Report holds the results of one scan. Sections that were not requested are
// left at their zero value.
type Report struct {
	Root       string              `json:"root" yaml:"root"`
	Sections   []Section           `json:"sections" yaml:"sections"`
	Tree       *DirNode            `json:"tree,omitempty" yaml:"tree,omitempty"`
	Contexts   []ContextMapping    `json:"contexts,omitempty" yaml:"contexts,omitempty"`
	Contracts  []ContractMapping   `json:"contracts,omitempty" yaml:"contracts,omitempty"`
	Modules    []ModuleDeclaration `json:"modules,omitempty" yaml:"modules,omitempty"`
	ModuleTree *ModuleNode         `json:"module_tree,omitempty" yaml:"module_tree,omitempty"`
	Coverage   *Coverage           `json:"coverage,omitempty" yaml:"coverage,omitempty"`
	EmptyDirs  []Path              `json:"empty_dirs,omitempty" yaml:"empty_dirs,omitempty"`
}

// Has reports whether the section was requested.
func (r Report) Has(section Section) bool {
	for _, s := range r.Sections {
		if s == section {
			return true
		}
	}

	return false
}
