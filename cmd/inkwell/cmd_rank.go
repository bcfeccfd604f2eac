package main

import (
	"fmt"

	"github.com/inkwell-ai/inkwell/internal/models"
	"github.com/inkwell-ai/inkwell/internal/ranking"
	"github.com/inkwell-ai/inkwell/internal/reporting"
	"github.com/inkwell-ai/inkwell/internal/store"
	"github.com/spf13/cobra"
)

func newRankCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Compute weighted scores and pick the winner",
		Long: `Rank the judged articles: normalize each metric across the whole
dataset, apply the configured weights (latency and cost inverted, since
lower is better), average per model, and declare the winner.

The full result (bounds, scores, winner, weights) is written as a
snapshot so score provenance survives reweighting experiments.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			table, err := store.Load[models.JudgmentRecord](cfg.JudgmentStorePath())
			if err != nil {
				return err
			}

			result, err := ranking.Rank(table, cfg.Weights)
			if err != nil {
				return err
			}

			if err := store.SaveSnapshot(cfg.ContestResultPath(), result); err != nil {
				return err
			}

			reporting.WriteSummary(cmd.OutOrStdout(), result)
			fmt.Fprintf(cmd.OutOrStdout(), "\nResults saved to %s\n", cfg.ContestResultPath())
			return nil
		},
	}

	return cmd
}
