package main

import (
	"fmt"

	"github.com/inkwell-ai/inkwell/internal/artifacts"
	"github.com/spf13/cobra"
)

func newArchiveCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Pack the results directory into a compressed tarball",
		Long: `Pack the results directory into a zstd compressed tarball, suitable
for attaching to a run record or publishing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			out := output
			if out == "" {
				out = cfg.ResultsDir + ".tar.zst"
			}

			if err := artifacts.Archive(cfg.ResultsDir, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archive written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Archive path (default: <results_dir>.tar.zst)")

	return cmd
}
