package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arglab/toulmin/internal/graphio"
)

var validateCmd = &cobra.Command{
	Use:   "validate <graph.json>",
	Short: "Check a graph file against the structural schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading graph: %w", err)
		}
		if err := graphio.ValidatePayload(data); err != nil {
			return err
		}
		fmt.Printf("%s is valid.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
