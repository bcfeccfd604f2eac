package main

import (
	"fmt"

	"github.com/inkwell-ai/inkwell/internal/orchestration"
	"github.com/inkwell-ai/inkwell/internal/reporting"
	"github.com/spf13/cobra"
)

func newGenerateCommand() *cobra.Command {
	var missingOnly bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate articles with every configured provider",
		Long: `Generate an article for every (provider, prompt) pair.

Each record is written to the generation store as soon as it completes,
so an interrupted run can be resumed. Re-running regenerates and
replaces existing records unless --missing-only is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			runner := orchestration.NewGenerationRunner(cfg,
				orchestration.WithMissingOnly(missingOnly))

			table, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			reporting.WriteUsage(cmd.OutOrStdout(), table)
			fmt.Fprintf(cmd.OutOrStdout(), "\nResults saved to %s\n", cfg.GenerationStorePath())
			return nil
		},
	}

	cmd.Flags().BoolVar(&missingOnly, "missing-only", false, "Only generate records missing from the store")

	return cmd
}
