// Package domain maps the architecture of a layered NestJS project: its
// bounded contexts, contracts, module graph and structural test coverage.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"layermap.dev/pkg/layermap/internal/adapter"
	m "layermap.dev/pkg/layermap/internal/model"
)

var (
	// ErrRootNotFound is returned when the scan root does not exist.
	ErrRootNotFound = errors.New("root directory not found")
	// ErrRootNotDir is returned when the scan root is not a directory.
	ErrRootNotDir = errors.New("root is not a directory")
)

// ScanArgs selects what one scan computes.
type ScanArgs struct {
	Root     m.Path
	Sections []m.Section // empty means every section
	Exclude  []string    // directory names pruned on top of the layout's
}

// Analyzer scans a project root and assembles a report.
type Analyzer interface {
	Scan(ctx context.Context, args ScanArgs) (m.Report, error)
}

type analyzer struct {
	fs         adapter.SourceFSAdapter
	layout     Layout
	classifier *Classifier
}

// NewAnalyzer constructs an Analyzer reading the project through fs.
func NewAnalyzer(fs adapter.SourceFSAdapter, layout Layout) Analyzer {
	return &analyzer{
		fs:         fs,
		layout:     layout,
		classifier: NewClassifier(fs, layout),
	}
}

func (a *analyzer) Scan(ctx context.Context, args ScanArgs) (m.Report, error) {
	root := args.Root
	if root == "" {
		root = "."
	}

	if err := a.checkRoot(root); err != nil {
		return m.Report{}, err
	}

	report := m.Report{
		Root:     rootName(root),
		Sections: requestedSections(args.Sections),
	}

	slog.Info("Scanning project", "root", root, "sections", report.Sections)

	run := a.withExcludes(args.Exclude)

	for _, section := range report.Sections {
		if err := ctx.Err(); err != nil {
			return m.Report{}, fmt.Errorf("scan interrupted before %s: %w", section, err)
		}

		slog.Debug("Building section", "section", section)
		run.buildSection(root, section, &report)
	}

	return report, nil
}

// withExcludes returns an analyzer whose layout also prunes names.
func (a *analyzer) withExcludes(names []string) *analyzer {
	if len(names) == 0 {
		return a
	}

	layout := a.layout
	layout.Exclude = layout.Exclude.With(names...)

	return &analyzer{fs: a.fs, layout: layout, classifier: NewClassifier(a.fs, layout)}
}

func (a *analyzer) checkRoot(root m.Path) error {
	info, err := a.fs.FileInfo(root)
	if err != nil {
		if adapter.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}

		return fmt.Errorf("failed to stat root %s: %w", root, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrRootNotDir, root)
	}

	return nil
}

func (a *analyzer) buildSection(root m.Path, section m.Section, report *m.Report) {
	c := a.classifier

	switch section {
	case m.SectionTree:
		report.Tree = BuildDirTree(a.fs, root, a.layout.Exclude)
	case m.SectionContexts:
		report.Contexts = MapContexts(
			c.BoundedContexts(root),
			c.HTTPModules(root),
			func(name string) []string { return c.EntityNames(root, name) },
			func(module string) []string { return c.ServiceTexts(root, module) },
		)
	case m.SectionContracts:
		report.Contracts = MatchContracts(
			c.CollectContracts(root),
			c.CollectImplementations(root),
			a.layout.ImplementationPrefixes,
		)
	case m.SectionModules:
		decls := c.CollectModules(root)
		report.Modules = SortModules(decls, a.layout.RootModule)
		report.ModuleTree = BuildModuleTree(a.layout.RootModule, decls)

		if circular := CircularNodes(report.ModuleTree); circular > 0 {
			slog.Warn("Circular module imports found", "count", circular)
		}
	case m.SectionCoverage:
		report.Coverage = a.coverage(root)
	case m.SectionEmpty:
		report.EmptyDirs = EmptyDirs(a.fs, root, a.layout)
	}
}

// coverage maps use-cases and services to unit tests and controllers to
// end-to-end tests.
func (a *analyzer) coverage(root m.Path) *m.Coverage {
	c := a.classifier
	unit, e2e := SplitTests(c.CollectTests(root))

	useCases := MatchTests(c.Collect(root, UseCaseRule.InLayer(a.layout.Domain)), unit)
	controllers := MatchTests(c.Collect(root, ControllerRule.InLayer(a.layout.HTTP)), e2e)
	services := MatchTests(c.Collect(root, ServiceRule.InLayer(a.layout.HTTP)), unit)

	overall := m.Summarize(useCases, controllers, services)

	return &m.Coverage{
		UseCases:    m.CoverageTable{Class: m.KindUseCase, Results: useCases, Summary: m.Summarize(useCases)},
		Controllers: m.CoverageTable{Class: m.KindController, Results: controllers, Summary: m.Summarize(controllers)},
		Services:    m.CoverageTable{Class: m.KindService, Results: services, Summary: m.Summarize(services)},
		Overall:     overall,
		Grade:       overall.Grade(),
	}
}

// requestedSections returns the known sections of requested in report order.
func requestedSections(requested []m.Section) []m.Section {
	all := m.AllSections()
	if len(requested) == 0 {
		return all
	}

	sections := make([]m.Section, 0, len(requested))

	for _, section := range all {
		if slices.Contains(requested, section) {
			sections = append(sections, section)
		}
	}

	return sections
}

func rootName(root m.Path) string {
	abs, err := filepath.Abs(string(root))
	if err != nil {
		return filepath.Base(string(root))
	}

	return filepath.Base(abs)
}
