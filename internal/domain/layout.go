package domain

import (
	"regexp"
	"strings"

	m "layermap.dev/pkg/layermap/internal/model"
)

// DefaultExcludes are directory names pruned from every traversal.
var DefaultExcludes = []string{
	".git", "node_modules", "__pycache__", ".next", "dist", "build",
	".vscode", ".idea", "data", ".gemini", ".claude", "coverage",
}

// DefaultImplementationPrefixes are technology prefixes stripped from
// implementation names before comparing them with contracts.
var DefaultImplementationPrefixes = []string{"prisma-", "memory-", "redis-", "mongo-"}

// File-name conventions of the analyzed project.
const (
	moduleKeyword = "@Module"

	moduleSuffix     = ".module.ts"
	entitySuffix     = ".entity.ts"
	repositorySuffix = ".repository.ts"
	providerSuffix   = ".provider.ts"
	useCaseSuffix    = ".use-case.ts"
	controllerSuffix = ".controller.ts"
	serviceSuffix    = ".service.ts"
	unitTestSuffix   = ".spec.ts"
	e2eTestSuffix    = ".e2e-spec.ts"

	testsDirName = "__tests__"
	e2eSegment   = "e2e"
	servicesDir  = "services"
)

// Layout describes where the layers of the analyzed project live. Layer
// directories are relative to Source, which is relative to the scan root.
type Layout struct {
	Source     string
	Domain     string
	HTTP       string
	Infra      string
	Shared     string
	EntityDir  string // relative to a bounded context directory
	RootModule string

	Exclude                m.ExcludeSet
	ImplementationPrefixes []string
}

// DefaultLayout returns the conventional src/{domain,http,infra} layout.
func DefaultLayout() Layout {
	return Layout{
		Source:                 "src",
		Domain:                 "domain",
		HTTP:                   "http",
		Infra:                  "infra",
		Shared:                 "@shared",
		EntityDir:              "enterprise/entities",
		RootModule:             "app",
		Exclude:                m.NewExcludeSet(DefaultExcludes...),
		ImplementationPrefixes: append([]string(nil), DefaultImplementationPrefixes...),
	}
}

// layerDirs returns the path segments of a layer below the scan root.
func (l Layout) layerDirs(layer string) []string {
	segments := splitSegments(l.Source)
	if layer == "" {
		return segments
	}

	return append(segments, splitSegments(layer)...)
}

func splitSegments(p string) []string {
	var out []string

	for _, segment := range strings.Split(p, "/") {
		if segment == "" || segment == "." {
			continue
		}

		out = append(out, segment)
	}

	return out
}

// Normalizer strips an ordered list of suffixes from a file name until none
// applies. More specific suffixes must come first. Stripping to a fixpoint
// makes Normalize idempotent.
type Normalizer struct {
	suffixes []string
}

// NewNormalizer builds a Normalizer trying suffixes in the given order.
func NewNormalizer(suffixes ...string) Normalizer {
	return Normalizer{suffixes: append([]string(nil), suffixes...)}
}

// Normalize returns the comparable subject of name. A suffix is never
// stripped when it is the whole remaining name.
func (n Normalizer) Normalize(name string) string {
	for {
		stripped := false

		for _, suffix := range n.suffixes {
			if len(name) > len(suffix) && strings.HasSuffix(name, suffix) {
				name = name[:len(name)-len(suffix)]
				stripped = true

				break
			}
		}

		if !stripped {
			return name
		}
	}
}

var (
	sourceNormalizer   = NewNormalizer(useCaseSuffix, controllerSuffix, serviceSuffix, entitySuffix, ".vo.ts")
	contractNormalizer = NewNormalizer(repositorySuffix, providerSuffix)
	unitTestNormalizer = NewNormalizer(e2eTestSuffix, unitTestSuffix, ".use-case", ".controller", ".service")
	e2eTestNormalizer  = NewNormalizer(e2eTestSuffix, unitTestSuffix, ".controller")
	entityNormalizer   = NewNormalizer(entitySuffix)
	moduleNormalizer   = NewNormalizer(moduleSuffix)
)

// Rule selects one artifact class from a layer.
type Rule struct {
	Kind       m.ArtifactKind
	Layer      string
	Pattern    *regexp.Regexp
	Normalizer Normalizer
}

// Rules for the production classes whose test coverage is mapped.
var (
	UseCaseRule = Rule{
		Kind:       m.KindUseCase,
		Pattern:    regexp.MustCompile(`\.use-case\.ts$`),
		Normalizer: sourceNormalizer,
	}
	ControllerRule = Rule{
		Kind:       m.KindController,
		Pattern:    regexp.MustCompile(`\.controller\.ts$`),
		Normalizer: sourceNormalizer,
	}
	ServiceRule = Rule{
		Kind:       m.KindService,
		Pattern:    regexp.MustCompile(`\.service\.ts$`),
		Normalizer: sourceNormalizer,
	}
	contractPattern = regexp.MustCompile(`\.(repository|provider)\.ts$`)
)

// InLayer returns a copy of the rule scoped to layer.
func (r Rule) InLayer(layer string) Rule {
	r.Layer = layer
	return r
}

func isTestFile(name string) bool {
	return strings.HasSuffix(name, unitTestSuffix) || strings.HasSuffix(name, e2eTestSuffix)
}

// RoleOf infers the role tag carried by a file name.
func RoleOf(name string) m.Role {
	switch {
	case strings.Contains(name, ".use-case."):
		return m.RoleUseCase
	case strings.Contains(name, ".controller."):
		return m.RoleController
	case strings.Contains(name, ".service."):
		return m.RoleService
	default:
		return m.RoleNone
	}
}

// contractType is "repository" or "provider" for contract-shaped names.
func contractType(name string) string {
	switch {
	case strings.HasSuffix(name, repositorySuffix):
		return "repository"
	case strings.HasSuffix(name, providerSuffix):
		return "provider"
	default:
		return ""
	}
}
