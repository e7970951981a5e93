package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "layermap.dev/pkg/layermap/internal/model"
)

// SimpleUI implements UI by printing plain text to the command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayReport prints every requested section of the report.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report, _ ...DisplayOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", RenderText(report))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

const (
	headerWidth  = 60
	progressBars = 20
)

var sectionTitles = map[m.Section]string{
	m.SectionTree:      "📁 FOLDER STRUCTURE",
	m.SectionContexts:  "🗺️  BOUNDED CONTEXTS → HTTP MODULES",
	m.SectionContracts: "🔗 CONTRACTS → IMPLEMENTATIONS",
	m.SectionModules:   "🏗️  MODULE DEPENDENCIES",
	m.SectionCoverage:  "🧪 TEST COVERAGE STRUCTURAL MAP",
	m.SectionEmpty:     "📭 EMPTY DIRECTORIES",
}

// RenderText renders the requested sections of report in order.
func RenderText(report m.Report) string {
	var b strings.Builder

	for _, section := range report.Sections {
		writeSectionHeader(&b, sectionTitles[section])

		switch section {
		case m.SectionTree:
			writeDirTree(&b, report.Root, report.Tree)
		case m.SectionContexts:
			writeContexts(&b, report.Contexts)
		case m.SectionContracts:
			writeContracts(&b, report.Contracts)
		case m.SectionModules:
			writeModules(&b, report.Modules, report.ModuleTree)
		case m.SectionCoverage:
			writeCoverage(&b, report.Coverage)
		case m.SectionEmpty:
			writeEmptyDirs(&b, report.EmptyDirs)
		}
	}

	return b.String()
}

func writeSectionHeader(b *strings.Builder, title string) {
	rule := strings.Repeat("=", headerWidth)
	fmt.Fprintf(b, "\n%s\n  %s\n%s\n\n", rule, title, rule)
}

func writeDirTree(b *strings.Builder, rootName string, tree *m.DirNode) {
	if tree == nil {
		b.WriteString("  Nothing to show.\n")
		return
	}

	if rootName == "" {
		rootName = tree.Name
	}

	fmt.Fprintf(b, "📁 %s/\n", rootName)
	writeDirChildren(b, tree.Children, "")
}

func writeDirChildren(b *strings.Builder, children []*m.DirNode, prefix string) {
	for i, child := range children {
		last := i == len(children)-1

		if !child.IsDir {
			fmt.Fprintf(b, "%s%s📄 %s\n", prefix, connector(last), child.Name)
			continue
		}

		marker := ""
		if child.Empty {
			marker = " (empty)"
		}

		fmt.Fprintf(b, "%s%s📂 %s/%s\n", prefix, connector(last), child.Name, marker)
		writeDirChildren(b, child.Children, prefix+indent(last))
	}
}

func connector(last bool) string {
	if last {
		return "└── "
	}

	return "├── "
}

func indent(last bool) string {
	if last {
		return "    "
	}

	return "│   "
}

func newTable(buf *bytes.Buffer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	return table
}

func confidenceIcon(confidence m.Confidence) string {
	switch confidence {
	case m.ConfidenceExact:
		return "✅"
	case m.ConfidenceInferred:
		return "🔍"
	case m.ConfidenceImport:
		return "📎"
	case m.ConfidenceNone:
		return "❌"
	}

	return "❓"
}

func writeContexts(b *strings.Builder, mappings []m.ContextMapping) {
	if len(mappings) == 0 {
		b.WriteString("  No bounded contexts found.\n")
		return
	}

	var buf bytes.Buffer

	table := newTable(&buf, []string{"Context", "Entities", "HTTP Module", "Match"})

	for _, mapping := range mappings {
		entities := strings.Join(mapping.Entities, ", ")

		if len(mapping.Modules) == 0 {
			table.Append([]string{mapping.Context, entities, "⚠️  no HTTP module mapped", ""})
			continue
		}

		for i, match := range mapping.Modules {
			name := mapping.Context
			if i > 0 {
				name, entities = "", ""
			}

			table.Append([]string{
				name,
				entities,
				"http/" + match.Module + "/",
				confidenceIcon(match.Confidence) + " " + match.Confidence.String(),
			})
		}
	}

	table.Render()
	b.WriteString(buf.String())

	b.WriteString("\n  Legend:\n")
	b.WriteString("    ✅ exact    = module name matches context\n")
	b.WriteString("    🔍 inferred = inferred from entity names\n")
	b.WriteString("    📎 import   = detected via code imports\n")
}

func writeContracts(b *strings.Builder, mappings []m.ContractMapping) {
	if len(mappings) == 0 {
		b.WriteString("  No contracts found.\n")
		return
	}

	var buf bytes.Buffer

	table := newTable(&buf, []string{"Contract", "Implementation", "Match"})
	found := 0

	for _, mapping := range mappings {
		impl := "❌ implementation not found"
		if mapping.Found() {
			found++
			impl = string(mapping.Implementation.Path)
		}

		table.Append([]string{
			string(mapping.Contract.Path),
			impl,
			mapping.Confidence.String(),
		})
	}

	table.Render()
	b.WriteString(buf.String())

	fmt.Fprintf(b, "\n  Implemented %d/%d\n", found, len(mappings))
}

func writeModules(b *strings.Builder, decls []m.ModuleDeclaration, tree *m.ModuleNode) {
	if len(decls) == 0 {
		b.WriteString("  No modules found.\n")
		return
	}

	rootPath := m.Path("")
	if tree != nil {
		rootPath = tree.Path
	}

	for _, decl := range decls {
		icon := "📁"

		switch {
		case decl.Path == rootPath:
			icon = "📦"
		case decl.Shared:
			icon = "🔧"
		}

		fmt.Fprintf(b, "  %s %s.module.ts\n", icon, decl.Name)
		fmt.Fprintf(b, "      path: %s\n", decl.Path)
		writeModuleList(b, "imports", decl.Imports)
		writeModuleList(b, "controllers", decl.Controllers)

		if len(decl.Providers) > 0 {
			b.WriteString("      ├── providers:\n")

			for _, provider := range decl.Providers {
				fmt.Fprintf(b, "      │       • %s\n", provider)
			}
		}

		writeModuleList(b, "exports", decl.Exports)

		if len(decl.Contexts) > 0 {
			fmt.Fprintf(b, "      └── uses bounded contexts: %s\n", strings.Join(decl.Contexts, ", "))
		}

		b.WriteString("\n")
	}

	b.WriteString("  📊 MODULE HIERARCHY TREE\n")
	b.WriteString("  " + strings.Repeat("─", 25) + "\n")

	if tree == nil {
		b.WriteString("  Root module not found.\n")
		return
	}

	writeModuleNodes(b, []*m.ModuleNode{tree}, "  ", moduleLabels(decls))
}

// moduleLabels names tree nodes by path. Modules sharing a name also carry
// their class name, or their path when the class is unknown.
func moduleLabels(decls []m.ModuleDeclaration) map[m.Path]string {
	count := make(map[string]int, len(decls))
	for _, decl := range decls {
		count[decl.Name]++
	}

	labels := make(map[m.Path]string, len(decls))

	for _, decl := range decls {
		label := decl.Name + ".module"

		if count[decl.Name] > 1 {
			detail := decl.ClassName
			if detail == "" {
				detail = string(decl.Path)
			}

			label += " (" + detail + ")"
		}

		labels[decl.Path] = label
	}

	return labels
}

func writeModuleList(b *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}

	fmt.Fprintf(b, "      ├── %s: %s\n", label, strings.Join(values, ", "))
}

func writeModuleNodes(b *strings.Builder, nodes []*m.ModuleNode, prefix string, labels map[m.Path]string) {
	for i, node := range nodes {
		last := i == len(nodes)-1

		label, ok := labels[node.Path]
		if !ok {
			label = node.Name + ".module"
		}

		if node.Circular {
			fmt.Fprintf(b, "%s%s%s ↺ (circular reference)\n", prefix, connector(last), label)
			continue
		}

		fmt.Fprintf(b, "%s%s%s\n", prefix, connector(last), label)
		writeModuleNodes(b, node.Children, prefix+indent(last), labels)
	}
}

func writeCoverage(b *strings.Builder, coverage *m.Coverage) {
	if coverage == nil {
		b.WriteString("  Nothing to show.\n")
		return
	}

	writeCoverageTable(b, "📋 USE CASES → UNIT TESTS", "use cases", "(no test found)", coverage.UseCases)
	writeCoverageTable(b, "📋 CONTROLLERS → E2E TESTS", "controllers", "(no e2e test found)", coverage.Controllers)
	writeCoverageTable(b, "📋 SERVICES → UNIT TESTS", "services", "(no test found)", coverage.Services)

	b.WriteString("  📊 OVERALL SUMMARY\n")
	b.WriteString("  " + strings.Repeat("─", 18) + "\n")

	overall := coverage.Overall
	if overall.Total == 0 {
		b.WriteString("  No testable source files found.\n")
		return
	}

	fmt.Fprintf(b, "  [%s] %.0f%%\n", progressBar(overall.Percent), overall.Percent)
	fmt.Fprintf(b, "  %d/%d files have tests\n", overall.Covered, overall.Total)
	fmt.Fprintf(b, "  %s\n", gradeMessage(coverage.Grade))
}

func writeCoverageTable(b *strings.Builder, title, plural, missing string, table m.CoverageTable) {
	fmt.Fprintf(b, "  %s\n", title)
	b.WriteString("  " + strings.Repeat("─", 25) + "\n")

	if len(table.Results) == 0 {
		fmt.Fprintf(b, "  No %s found.\n\n", plural)
		return
	}

	var buf bytes.Buffer

	tw := newTable(&buf, []string{"", "Source", "Test", "Match"})

	for _, result := range table.Results {
		test := missing
		if result.Covered() {
			test = result.Test.Name
		}

		tw.Append([]string{
			confidenceIcon(result.Confidence),
			result.Source.Name,
			test,
			result.Confidence.String(),
		})
	}

	tw.Render()
	b.WriteString(buf.String())

	summary := table.Summary
	fmt.Fprintf(b, "\n  Coverage %d/%d (%.0f%%)\n\n", summary.Covered, summary.Total, summary.Percent)
}

func progressBar(percent float64) string {
	filled := int(percent / (100 / progressBars))
	if filled > progressBars {
		filled = progressBars
	}

	return strings.Repeat("█", filled) + strings.Repeat("░", progressBars-filled)
}

func gradeMessage(grade m.CoverageGrade) string {
	switch grade {
	case m.GradeComplete:
		return "🎉 All source files have tests!"
	case m.GradeGood:
		return "👍 Good coverage, few files missing tests."
	case m.GradeModerate:
		return "⚠️  Moderate coverage, consider adding more tests."
	case m.GradeLow:
		return "🚨 Low coverage, many files need tests."
	case m.GradeNone:
		return "No testable source files found."
	}

	return ""
}

func writeEmptyDirs(b *strings.Builder, dirs []m.Path) {
	if len(dirs) == 0 {
		b.WriteString("  ✅ No empty directories found in main layers.\n")
		return
	}

	for _, dir := range dirs {
		fmt.Fprintf(b, "  📂 %s/ (empty)\n", dir)
	}
}
