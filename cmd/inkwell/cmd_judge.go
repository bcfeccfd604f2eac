package main

import (
	"fmt"

	"github.com/inkwell-ai/inkwell/internal/orchestration"
	"github.com/spf13/cobra"
)

func newJudgeCommand() *cobra.Command {
	var missingOnly bool

	cmd := &cobra.Command{
		Use:   "judge",
		Short: "Score analyzed articles with cross-family judges",
		Long: `Score every analyzed article for accuracy, safety, factuality, and tone.

Each model's articles are judged by a model from a different capability
family. Judgments are persisted one at a time, with a configurable delay
between judge calls (judge_delay_ms).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			runner, err := orchestration.NewJudgeRunner(cfg,
				orchestration.WithJudgeMissingOnly(missingOnly))
			if err != nil {
				return err
			}

			if _, err := runner.Run(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Results saved to %s\n", cfg.JudgmentStorePath())
			return nil
		},
	}

	cmd.Flags().BoolVar(&missingOnly, "missing-only", false, "Only judge records missing from the store")

	return cmd
}
