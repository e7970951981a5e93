// Package model defines the data structures produced by a layermap scan.
package model

// Path represents a file system path. Paths stored in records are relative to
// the scanned root and slash-separated.
type Path string

// ArtifactKind identifies the class of a collected file.
type ArtifactKind int

const (
	// KindContract is an abstract capability declared in the domain layer.
	KindContract ArtifactKind = iota
	// KindImplementation is a concrete realization living in the infra layer.
	KindImplementation
	// KindEntity is a domain entity.
	KindEntity
	// KindUseCase is an application use-case.
	KindUseCase
	// KindController is an HTTP controller.
	KindController
	// KindService is an HTTP-layer service.
	KindService
	// KindUnitTest is a unit test file.
	KindUnitTest
	// KindE2ETest is an end-to-end test file.
	KindE2ETest
	// KindModule is a module-declaring file.
	KindModule
)

var artifactKindNames = [...]string{
	KindContract:       "contract",
	KindImplementation: "implementation",
	KindEntity:         "entity",
	KindUseCase:        "use-case",
	KindController:     "controller",
	KindService:        "service",
	KindUnitTest:       "unit-test",
	KindE2ETest:        "e2e-test",
	KindModule:         "module",
}

func (k ArtifactKind) String() string {
	if k < 0 || int(k) >= len(artifactKindNames) {
		return "unknown"
	}

	return artifactKindNames[k]
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k ArtifactKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Role is the role tag carried by a file name segment such as ".controller.".
type Role int

const (
	// RoleNone means the file name carries no recognized role segment.
	RoleNone Role = iota
	// RoleUseCase marks ".use-case." files.
	RoleUseCase
	// RoleController marks ".controller." files.
	RoleController
	// RoleService marks ".service." files.
	RoleService
)

func (r Role) String() string {
	switch r {
	case RoleUseCase:
		return "use-case"
	case RoleController:
		return "controller"
	case RoleService:
		return "service"
	case RoleNone:
		return "none"
	}

	return "unknown"
}

// MarshalText renders the role by name in JSON and YAML output.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// FileRecord is a classified file found during a scan.
type FileRecord struct {
	Name     string       `json:"name" yaml:"name"`
	Path     Path         `json:"path" yaml:"path"`
	BaseName string       `json:"base_name" yaml:"base_name"`
	Kind     ArtifactKind `json:"kind" yaml:"kind"`
	Role     Role         `json:"role" yaml:"role"`
}

// Entry is one item yielded by a directory walk.
type Entry struct {
	Path  Path // absolute or root-joined path
	Rel   Path // slash-separated path relative to the walk root
	Name  string
	Depth int // 1 for direct children of the root
	IsDir bool
}

// DirNode is a node in the printed directory tree.
type DirNode struct {
	Name     string     `json:"name" yaml:"name"`
	Path     Path       `json:"path" yaml:"path"`
	IsDir    bool       `json:"is_dir" yaml:"is_dir"`
	Empty    bool       `json:"empty,omitempty" yaml:"empty,omitempty"`
	Children []*DirNode `json:"children,omitempty" yaml:"children,omitempty"`
}
