package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"layermap.dev/pkg/layermap/internal/controller"
	"layermap.dev/pkg/layermap/internal/domain"
	m "layermap.dev/pkg/layermap/internal/model"
)

const rootArgHelp = `ROOT is the project directory to analyze (default: current directory).`

var sectionsFlag []string

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [root]",
		Short: "Print the full architecture report",
		Long: `Print every section of the architecture report, or only those named with
--section, in report order.

` + rootArgHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args, parseSections(sectionsFlag))
		},
	}

	cmd.Flags().StringSliceVarP(&sectionsFlag, "section", "s", nil, "sections to include (tree, contexts, contracts, modules, coverage, empty)")

	return cmd
}

// newSectionCmd builds a command printing a single report section.
func newSectionCmd(section m.Section, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(section) + " [root]",
		Short: short,
		Long:  short + ".\n\n" + rootArgHelp,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args, []m.Section{section})
		},
	}
}

func sectionCmds() []*cobra.Command {
	return []*cobra.Command{
		newSectionCmd(m.SectionTree, "Print the folder structure"),
		newSectionCmd(m.SectionContexts, "Map bounded contexts to HTTP modules"),
		newSectionCmd(m.SectionContracts, "Map contracts to their implementations"),
		newSectionCmd(m.SectionModules, "Print module declarations and the import hierarchy"),
		newSectionCmd(m.SectionCoverage, "Map use cases, controllers and services to their tests"),
		newSectionCmd(m.SectionEmpty, "List empty directories in the main layers"),
	}
}

func runReport(cmd *cobra.Command, args []string, sections []m.Section) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	format, err := controller.ParseFormat(viper.GetString(formatConfigKey))
	if err != nil {
		return err
	}

	return workflow.Report(cmd.Context(), domain.ReportArgs{
		Root:     m.Path(root),
		Sections: sections,
		Exclude:  excludeFromConfig(),
		Format:   format,
		Save:     m.Path(saveFlag),
	})
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sectionCmds()...)
}
