package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arglab/toulmin/internal/cache"
	"github.com/arglab/toulmin/internal/reasoner"
)

var (
	reasonTask     string
	reasonCacheDir string
	reasonCacheTTL time.Duration
	reasonNoCache  bool
)

var reasonCmd = &cobra.Command{
	Use:   "reason <graph.json>",
	Short: "Answer an acceptability query over the graph",
	Long: fmt.Sprintf(`Run one reasoning task against the graph's attack structure.

Available tasks:
  %s

The aba_dispute_trees task reads an assumption-based framework from the
graph metadata under %q.`,
		strings.Join(reasoner.Tasks(), "\n  "), reasoner.ABAMetadataKey),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(args[0])
		if err != nil {
			return err
		}

		outcome, err := reasoner.New(buildStore(), reasonCacheTTL).Run(g, reasonTask)
		if err != nil {
			return err
		}
		return printJSON(outcome)
	},
}

// buildStore selects the result cache: memory by default, memory+disk
// when a cache directory is configured, none with --no-cache
func buildStore() cache.Store {
	if reasonNoCache {
		return nil
	}
	if reasonCacheDir != "" {
		return cache.NewLayeredStore(reasonCacheTTL, reasonCacheDir, reasonCacheTTL)
	}
	return cache.NewMemoryStore(reasonCacheTTL, 10*time.Minute)
}

func init() {
	reasonCmd.Flags().StringVar(&reasonTask, "task", reasoner.TaskGroundedExtension, "reasoning task to run")
	reasonCmd.Flags().StringVar(&reasonCacheDir, "cache-dir", "", "persist results under this directory")
	reasonCmd.Flags().DurationVar(&reasonCacheTTL, "cache-ttl", time.Hour, "how long cached results stay valid")
	reasonCmd.Flags().BoolVar(&reasonNoCache, "no-cache", false, "disable result caching")
	rootCmd.AddCommand(reasonCmd)
}
