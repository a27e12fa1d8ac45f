package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arglab/toulmin/internal/critique"
	"github.com/arglab/toulmin/internal/graphio"
	"github.com/arglab/toulmin/internal/llm"
	"github.com/arglab/toulmin/internal/worker"
)

var (
	critiquePatterns    string
	critiqueApplyGates  bool
	critiqueOutput      string
	critiqueFragility   bool
	critiqueAssumptions int
)

var critiqueCmd = &cobra.Command{
	Use:   "critique <graph.json>",
	Short: "Detect reasoning anti-patterns and optionally act on gates",
	Long: `Scan a graph against the critique pattern bank: circular
reasoning, self-attack, unstated warrants, unsupported conclusions,
redundancy, and contradiction.

With --apply-gates, matched gate actions are applied to the graph's
relations and the mutated graph is written back out. With
--suggest-assumptions N, a configured LLM provider proposes up to N
implicit assumptions per relation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraph(args[0])
		if err != nil {
			return err
		}

		bank := critique.LoadBankOrDefault(critiquePatterns)
		matches := critique.DetectPatterns(g, bank)

		output := map[string]any{"matches": matches}

		if critiqueApplyGates {
			critique.ApplyGateActions(g, matches)
			target := critiqueOutput
			if target == "" {
				target = args[0]
			}
			if err := graphio.Save(target, g); err != nil {
				return fmt.Errorf("writing graph: %w", err)
			}
			output["applied_to"] = target
		}

		if critiqueFragility {
			output["fragility"] = critique.AnalyzeWarrantFragility(g)
		}

		if critiqueAssumptions > 0 {
			cfg := llmConfigFromViper()
			provider, err := llm.NewProvider(cfg)
			if err != nil {
				return err
			}
			if provider == nil {
				return fmt.Errorf("no LLM provider configured; set llm.provider in config or TOULMIN_LLM_PROVIDER")
			}
			limiter := worker.NewLimiter(cfg.RequestsPerSecond, 0)
			suggester := llm.NewAssumptionSuggester(provider, limiter)
			output["assumptions"] = critique.SuggestMissingAssumptions(cmd.Context(), g, suggester, critiqueAssumptions)
		}

		return printJSON(output)
	},
}

// llmConfigFromViper reads the llm.* configuration keys
func llmConfigFromViper() llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = viper.GetString("llm.provider")
	cfg.Model = viper.GetString("llm.model")
	cfg.APIKey = viper.GetString("llm.api_key")
	cfg.BaseURL = viper.GetString("llm.base_url")
	if timeout := viper.GetInt("llm.timeout"); timeout > 0 {
		cfg.Timeout = timeout
	}
	if rps := viper.GetFloat64("llm.requests_per_second"); rps > 0 {
		cfg.RequestsPerSecond = rps
	}
	return cfg
}

func init() {
	critiqueCmd.Flags().StringVar(&critiquePatterns, "patterns", "", "YAML pattern bank (default: built-in patterns)")
	critiqueCmd.Flags().BoolVar(&critiqueApplyGates, "apply-gates", false, "apply matched gate actions to the graph")
	critiqueCmd.Flags().StringVarP(&critiqueOutput, "output", "o", "", "where to write the mutated graph (default: in place)")
	critiqueCmd.Flags().BoolVar(&critiqueFragility, "fragility", false, "include warrant fragility analysis")
	critiqueCmd.Flags().IntVar(&critiqueAssumptions, "suggest-assumptions", 0, "suggest up to N implicit assumptions per relation via LLM")
	rootCmd.AddCommand(critiqueCmd)
}
