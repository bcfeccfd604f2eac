package main

import (
	"fmt"
	"time"

	"github.com/inkwell-ai/inkwell/internal/analysis"
	"github.com/inkwell-ai/inkwell/internal/orchestration"
	"github.com/spf13/cobra"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		missingOnly  bool
		workers      int
		probeTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze generated articles for length and broken links",
		Long: `Count words and probe cited URLs for every generated article.

Word counts exclude markdown link syntax and raw URLs. Each article's
URLs are probed concurrently with HEAD requests; unreachable ones are
recorded as broken links.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			runner := orchestration.NewAnalysisRunner(cfg,
				orchestration.WithLinkChecker(analysis.NewHTTPLinkChecker(probeTimeout)),
				orchestration.WithProbeWorkers(workers),
				orchestration.WithAnalysisMissingOnly(missingOnly))

			if _, err := runner.Run(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Results saved to %s\n", cfg.AnalysisStorePath())
			return nil
		},
	}

	cmd.Flags().BoolVar(&missingOnly, "missing-only", false, "Only analyze records missing from the store")
	cmd.Flags().IntVar(&workers, "workers", analysis.DefaultProbeWorkers, "Concurrent URL probes per article")
	cmd.Flags().DurationVar(&probeTimeout, "probe-timeout", analysis.DefaultProbeTimeout, "Timeout for each URL probe")

	return cmd
}
