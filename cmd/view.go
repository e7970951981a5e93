package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"layermap.dev/pkg/layermap/internal/controller"
	"layermap.dev/pkg/layermap/internal/domain"
	m "layermap.dev/pkg/layermap/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <snapshot>",
		Short: "View a previously saved report snapshot",
		Long: `View a report snapshot written with --save, without scanning the project
again. Files ending in .yaml or .yml are read as YAML, anything else as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := controller.ParseFormat(viper.GetString(formatConfigKey))
			if err != nil {
				return err
			}

			return workflow.View(cmd.Context(), domain.ViewArgs{
				Report: m.Path(args[0]),
				Format: format,
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
