package model

// Provider is one entry of a module's provider list. A plain provider only has
// a Token; a binding override also carries the concrete UseClass.
type Provider struct {
	Token    string `json:"token" yaml:"token"`
	UseClass string `json:"use_class,omitempty" yaml:"use_class,omitempty"`
}

// IsBinding reports whether the provider binds a token to a concrete class.
func (p Provider) IsBinding() bool {
	return p.UseClass != ""
}

func (p Provider) String() string {
	if p.IsBinding() {
		return p.Token + " → " + p.UseClass
	}

	return p.Token
}

// ModuleDeclaration is the structural content of one module-declaring file.
type ModuleDeclaration struct {
	Name        string     `json:"name" yaml:"name"`
	ClassName   string     `json:"class_name,omitempty" yaml:"class_name,omitempty"`
	Path        Path       `json:"path" yaml:"path"`
	Shared      bool       `json:"shared,omitempty" yaml:"shared,omitempty"`
	Imports     []string   `json:"imports,omitempty" yaml:"imports,omitempty"`
	Providers   []Provider `json:"providers,omitempty" yaml:"providers,omitempty"`
	Controllers []string   `json:"controllers,omitempty" yaml:"controllers,omitempty"`
	Exports     []string   `json:"exports,omitempty" yaml:"exports,omitempty"`
	Contexts    []string   `json:"contexts,omitempty" yaml:"contexts,omitempty"`
}

// IsEmpty reports whether no declaration content was extracted.
func (d ModuleDeclaration) IsEmpty() bool {
	return len(d.Imports) == 0 &&
		len(d.Providers) == 0 &&
		len(d.Controllers) == 0 &&
		len(d.Exports) == 0 &&
		len(d.Contexts) == 0
}

// ModuleNode is a node of the module dependency tree.
type ModuleNode struct {
	Name     string        `json:"name" yaml:"name"`
	Path     Path          `json:"path,omitempty" yaml:"path,omitempty"`
	Circular bool          `json:"circular,omitempty" yaml:"circular,omitempty"`
	Children []*ModuleNode `json:"children,omitempty" yaml:"children,omitempty"`
}
