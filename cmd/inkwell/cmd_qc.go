package main

import (
	"fmt"
	"time"

	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/inkwell-ai/inkwell/internal/engine"
	"github.com/inkwell-ai/inkwell/internal/models"
	"github.com/inkwell-ai/inkwell/internal/qc"
	"github.com/inkwell-ai/inkwell/internal/retrypolicy"
	"github.com/spf13/cobra"
)

func newQCCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qc",
		Short: "Run the live quality-control revise loop",
		Long: `Draft an article, have a checker from another capability family render
an APPROVED/REJECTED verdict, and revise once using the checker's tip.

The terminal state (approved, approved_revised, rejected_revised, or
rejected_no_revision) is saved as a timestamped snapshot under the
qc_results directory. Exits nonzero when the final article was not
approved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			drafterProvider, err := qcDrafterProvider(cfg)
			if err != nil {
				return err
			}
			checkerSpec, err := qcCheckerSpec(cfg, drafterProvider.Family)
			if err != nil {
				return err
			}
			if err := config.RequireCredentials(drafterProvider.Family, checkerSpec.Family); err != nil {
				return err
			}

			drafter, err := engine.New(drafterProvider)
			if err != nil {
				return err
			}

			checkerGen, err := engine.New(config.Provider{
				ID:            checkerSpec.Model,
				Family:        checkerSpec.Family,
				Model:         checkerSpec.Model,
				WordsPerToken: 1,
				Params:        checkerSpec.Params,
			})
			if err != nil {
				return err
			}
			checker, err := qc.NewChecker(checkerGen)
			if err != nil {
				return err
			}

			runner := &qc.Runner{
				Drafter:    drafter,
				Checker:    checker,
				Prompt:     cfg.QC.Prompt,
				ResultsDir: cfg.QCResultsPath(),
				Retry:      retrypolicy.Exponential(3, time.Second),
			}

			outcome, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Status: %s\nSnapshot: %s\n", outcome.Snapshot.Status, outcome.Path)

			switch outcome.Snapshot.Status {
			case models.QCRejectedRevised, models.QCRejectedNoRevision:
				return &QCRejectedError{Message: fmt.Sprintf("article not approved (%s)", outcome.Snapshot.Status)}
			}
			return nil
		},
	}

	return cmd
}

// qcDrafterProvider resolves the drafting provider: the configured
// qc.provider ID, or the first roster provider when unset.
func qcDrafterProvider(cfg *config.Config) (config.Provider, error) {
	if cfg.QC.Provider != "" {
		provider, ok := cfg.ProviderByID(cfg.QC.Provider)
		if !ok {
			return config.Provider{}, fmt.Errorf("qc provider %q not found in roster", cfg.QC.Provider)
		}
		return provider, nil
	}
	if len(cfg.Providers) == 0 {
		return config.Provider{}, fmt.Errorf("no providers configured")
	}
	return cfg.Providers[0], nil
}

// qcCheckerSpec resolves the checking judge: the configured
// checker_family, or the first judge from a different family than the
// drafter, or failing that the first judge.
func qcCheckerSpec(cfg *config.Config, drafterFamily string) (config.JudgeSpec, error) {
	if len(cfg.Judges) == 0 {
		return config.JudgeSpec{}, fmt.Errorf("no judges configured")
	}
	if cfg.QC.CheckerFamily != "" {
		for _, spec := range cfg.Judges {
			if spec.Family == cfg.QC.CheckerFamily {
				return spec, nil
			}
		}
		return config.JudgeSpec{}, fmt.Errorf("no judge with family %q in roster", cfg.QC.CheckerFamily)
	}
	for _, spec := range cfg.Judges {
		if spec.Family != drafterFamily {
			return spec, nil
		}
	}
	return cfg.Judges[0], nil
}
