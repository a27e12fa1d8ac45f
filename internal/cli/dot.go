package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arglab/toulmin/internal/viz"
)

var dotOutput string

var dotCmd = &cobra.Command{
	Use:   "dot <graph.json>",
	Short: "Render a graph as Graphviz DOT",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(args[0])
		if err != nil {
			return err
		}
		rendered := viz.ToDOT(g) + "\n"
		if dotOutput == "" {
			fmt.Print(rendered)
			return nil
		}
		if err := os.WriteFile(dotOutput, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("writing DOT file: %w", err)
		}
		return nil
	},
}

func init() {
	dotCmd.Flags().StringVarP(&dotOutput, "output", "o", "", "write DOT to file instead of stdout")
	rootCmd.AddCommand(dotCmd)
}
