package main

import (
	"fmt"
	"time"

	"github.com/inkwell-ai/inkwell/internal/artifacts"
	"github.com/spf13/cobra"
)

func newPublishCommand() *cobra.Command {
	var (
		accountURL string
		container  string
		prefix     string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload contest results to Azure Blob storage",
		Long: `Upload every file in the results directory to an Azure Blob container.

Authentication uses the default Azure credential chain (environment
variables, managed identity, or az login).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if prefix == "" {
				prefix = fmt.Sprintf("contest-%s", time.Now().Format("20060102-150405"))
			}

			publisher, err := artifacts.NewPublisher(accountURL, container)
			if err != nil {
				return err
			}

			if err := publisher.UploadDir(cmd.Context(), cfg.ResultsDir, prefix); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %s to %s/%s/%s\n", cfg.ResultsDir, accountURL, container, prefix)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountURL, "account-url", "", "Storage account URL, e.g. https://myaccount.blob.core.windows.net")
	cmd.Flags().StringVar(&container, "container", "inkwell-results", "Destination blob container")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Blob name prefix (default: contest-<timestamp>)")
	_ = cmd.MarkFlagRequired("account-url")

	return cmd
}
