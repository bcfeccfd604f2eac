package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/inkwell-ai/inkwell/internal/models"
	"github.com/inkwell-ai/inkwell/internal/reporting"
	"github.com/spf13/cobra"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the contest result as markdown and HTML",
		Long: `Render the saved contest result as a markdown report and an HTML
version, written next to the result snapshot. Run rank first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			result, err := loadContestResult(cfg.ContestResultPath())
			if err != nil {
				return err
			}

			mdPath, htmlPath, err := reporting.WriteFiles(cfg.ResultsDir, result, time.Now())
			if err != nil {
				return err
			}

			reporting.WriteScoreTable(cmd.OutOrStdout(), result)
			fmt.Fprintf(cmd.OutOrStdout(), "\nReports written:\n  %s\n  %s\n", mdPath, htmlPath)
			return nil
		},
	}

	return cmd
}

func loadContestResult(path string) (*models.ContestResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no contest result at %s, run rank first", path)
		}
		return nil, err
	}

	var result models.ContestResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parsing contest result %s: %w", path, err)
	}
	return &result, nil
}
