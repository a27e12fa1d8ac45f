package cli

import (
	"github.com/spf13/cobra"

	"github.com/arglab/toulmin/internal/diagnostics"
)

var diagnosticsCmd = &cobra.Command{
	Use:   "diagnostics <graph.json>",
	Short: "Report cycles, connectivity, degrees, and axiom warnings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(args[0])
		if err != nil {
			return err
		}
		return printJSON(diagnostics.Analyze(g))
	},
}

func init() {
	rootCmd.AddCommand(diagnosticsCmd)
}
