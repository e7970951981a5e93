package domain

import (
	"log/slog"
	"path"
	"slices"
	"strings"
	"unicode/utf8"

	"layermap.dev/pkg/layermap/internal/adapter"
	m "layermap.dev/pkg/layermap/internal/model"
)

// Classifier collects typed file records from the layers of a project.
type Classifier struct {
	fs        adapter.SourceFSAdapter
	layout    Layout
	extractor Extractor
}

// NewClassifier returns a Classifier reading through fs.
func NewClassifier(fs adapter.SourceFSAdapter, layout Layout) *Classifier {
	return &Classifier{
		fs:        fs,
		layout:    layout,
		extractor: NewExtractor(layout.Shared),
	}
}

// layerPath returns the on-disk directory of layer and its root-relative prefix.
func (c *Classifier) layerPath(root m.Path, layer string) (m.Path, string) {
	segments := c.layout.layerDirs(layer)
	return c.fs.JoinPath(append([]string{string(root)}, segments...)...), strings.Join(segments, "/")
}

// Collect walks the rule's layer and returns the production files it selects.
// Test files and `__tests__` directories are skipped.
func (c *Classifier) Collect(root m.Path, rule Rule) []m.FileRecord {
	dir, prefix := c.layerPath(root, rule.Layer)
	exclude := c.layout.Exclude.With(testsDirName)

	var records []m.FileRecord

	for entry := range c.fs.Walk(dir, exclude) {
		if entry.IsDir || isTestFile(entry.Name) || !rule.Pattern.MatchString(entry.Name) {
			continue
		}

		records = append(records, m.FileRecord{
			Name:     entry.Name,
			Path:     m.Path(path.Join(prefix, string(entry.Rel))),
			BaseName: rule.Normalizer.Normalize(entry.Name),
			Kind:     rule.Kind,
			Role:     RoleOf(entry.Name),
		})
	}

	slog.Debug("Collected files", "kind", rule.Kind, "layer", rule.Layer, "count", len(records))

	return records
}

// CollectContracts returns the repository and provider contracts of the
// domain layer.
func (c *Classifier) CollectContracts(root m.Path) []m.FileRecord {
	return c.collectContractShaped(root, c.layout.Domain, m.KindContract)
}

// CollectImplementations returns the repository and provider implementations
// of the infra layer.
func (c *Classifier) CollectImplementations(root m.Path) []m.FileRecord {
	return c.collectContractShaped(root, c.layout.Infra, m.KindImplementation)
}

func (c *Classifier) collectContractShaped(root m.Path, layer string, kind m.ArtifactKind) []m.FileRecord {
	dir, prefix := c.layerPath(root, layer)

	var records []m.FileRecord

	for entry := range c.fs.Walk(dir, c.layout.Exclude) {
		if entry.IsDir || !contractPattern.MatchString(entry.Name) {
			continue
		}

		records = append(records, m.FileRecord{
			Name:     entry.Name,
			Path:     m.Path(path.Join(prefix, string(entry.Rel))),
			BaseName: contractNormalizer.Normalize(entry.Name),
			Kind:     kind,
		})
	}

	return records
}

// CollectTests returns every unit and end-to-end test below the source
// directory. A test is end-to-end when its name ends in `.e2e-spec.ts` or a
// directory on its path is named `e2e`.
func (c *Classifier) CollectTests(root m.Path) []m.FileRecord {
	dir, prefix := c.layerPath(root, "")

	var tests []m.FileRecord

	for entry := range c.fs.Walk(dir, c.layout.Exclude) {
		if entry.IsDir || !isTestFile(entry.Name) {
			continue
		}

		record := m.FileRecord{
			Name:     entry.Name,
			Path:     m.Path(path.Join(prefix, string(entry.Rel))),
			BaseName: unitTestNormalizer.Normalize(entry.Name),
			Kind:     m.KindUnitTest,
			Role:     RoleOf(entry.Name),
		}

		if isE2ETest(string(entry.Rel)) {
			record.Kind = m.KindE2ETest
			record.BaseName = e2eTestNormalizer.Normalize(entry.Name)
		}

		tests = append(tests, record)
	}

	return tests
}

func isE2ETest(rel string) bool {
	if strings.HasSuffix(rel, e2eTestSuffix) {
		return true
	}

	segments := strings.Split(rel, "/")
	for _, segment := range segments[:len(segments)-1] {
		if segment == e2eSegment {
			return true
		}
	}

	return false
}

// SplitTests separates unit tests from end-to-end tests.
func SplitTests(tests []m.FileRecord) (unit, e2e []m.FileRecord) {
	for _, test := range tests {
		if test.Kind == m.KindE2ETest {
			e2e = append(e2e, test)
			continue
		}

		unit = append(unit, test)
	}

	return unit, e2e
}

// BoundedContexts lists the bounded context directories of the domain layer.
func (c *Classifier) BoundedContexts(root m.Path) []string {
	return c.childDirs(root, c.layout.Domain)
}

// HTTPModules lists the module directories of the HTTP layer.
func (c *Classifier) HTTPModules(root m.Path) []string {
	return c.childDirs(root, c.layout.HTTP)
}

func (c *Classifier) childDirs(root m.Path, layer string) []string {
	dir, _ := c.layerPath(root, layer)

	names, err := c.fs.ListDirs(dir, c.layout.Exclude)
	if err != nil {
		slog.Debug("Layer directory not listed", "path", dir, "error", err)
		return nil
	}

	var out []string

	for _, name := range names {
		if name == c.layout.Shared {
			continue
		}

		out = append(out, name)
	}

	return out
}

// EntityNames returns the normalized entity names of one bounded context.
func (c *Classifier) EntityNames(root m.Path, context string) []string {
	segments := append([]string{string(root)}, c.layout.layerDirs(c.layout.Domain)...)
	segments = append(segments, context)
	segments = append(segments, splitSegments(c.layout.EntityDir)...)
	dir := c.fs.JoinPath(segments...)

	files, err := c.fs.ListFiles(dir)
	if err != nil {
		if !adapter.IsNotExist(err) {
			slog.Debug("Entity directory not listed", "path", dir, "error", err)
		}

		return nil
	}

	var entities []string

	for _, name := range files {
		if strings.HasSuffix(name, entitySuffix) {
			entities = append(entities, entityNormalizer.Normalize(name))
		}
	}

	return entities
}

// ServiceTexts returns the contents of the `.service.ts` files directly in
// the services directory of an HTTP module. Unreadable files are skipped.
func (c *Classifier) ServiceTexts(root m.Path, module string) []string {
	segments := append([]string{string(root)}, c.layout.layerDirs(c.layout.HTTP)...)
	dir := c.fs.JoinPath(append(segments, module, servicesDir)...)

	files, err := c.fs.ListFiles(dir)
	if err != nil {
		return nil
	}

	var texts []string

	for _, name := range files {
		if !strings.HasSuffix(name, serviceSuffix) {
			continue
		}

		content, err := c.fs.ReadFile(c.fs.JoinPath(string(dir), name))
		if err != nil {
			slog.Debug("Skipping unreadable service file", "module", module, "file", name, "error", err)
			continue
		}

		if !utf8.Valid(content) {
			slog.Debug("Skipping service file that is not UTF-8", "module", module, "file", name)
			continue
		}

		texts = append(texts, string(content))
	}

	return texts
}

// CollectModules extracts every module declaration found in the HTTP layer.
// Unreadable files and files that are not valid UTF-8 are skipped.
func (c *Classifier) CollectModules(root m.Path) []m.ModuleDeclaration {
	dir, prefix := c.layerPath(root, c.layout.HTTP)

	var decls []m.ModuleDeclaration

	for entry := range c.fs.Walk(dir, c.layout.Exclude) {
		if entry.IsDir || !strings.HasSuffix(entry.Name, moduleSuffix) {
			continue
		}

		content, err := c.fs.ReadFile(entry.Path)
		if err != nil {
			slog.Debug("Skipping unreadable module file", "path", entry.Path, "error", err)
			continue
		}

		if !utf8.Valid(content) {
			slog.Debug("Skipping module file that is not UTF-8", "path", entry.Path)
			continue
		}

		decl := c.extractor.Extract(string(content))
		decl.Name = moduleNormalizer.Normalize(entry.Name)
		decl.Path = m.Path(path.Join(prefix, string(entry.Rel)))
		decl.Shared = slices.Contains(strings.Split(string(entry.Rel), "/"), c.layout.Shared)

		decls = append(decls, decl)
	}

	return decls
}
