package main

import (
	"fmt"
	"os"

	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/inkwell-ai/inkwell/internal/wizard"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInitCommand() *cobra.Command {
	var (
		interactive bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter configuration file",
		Long: `Create a starter inkwell.yaml.

Use --interactive to run a guided wizard that collects the provider and
judge roster. Otherwise a commented default configuration is written
with the standard prompt set and weights.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
			}

			var content string
			if interactive {
				spec, err := wizard.RunConfigWizard(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				content, err = wizard.GenerateConfigYAML(spec)
				if err != nil {
					return err
				}
			} else {
				data, err := yaml.Marshal(defaultInitConfig())
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				content = string(data)
			}

			if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", configPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run guided configuration wizard")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}

// defaultInitConfig is the non-interactive starter: defaults plus an
// example roster the user is expected to edit.
func defaultInitConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Providers = []config.Provider{
		{
			ID:         "claude-sonnet-4-5",
			Family:     config.FamilyAnthropic,
			InputRate:  3.0,
			OutputRate: 15.0,
		},
		{
			ID:            "gemini-2.5-flash",
			Family:        config.FamilyGemini,
			InputRate:     0.30,
			OutputRate:    2.50,
			WordsPerToken: 0.75,
		},
	}
	cfg.Judges = []config.JudgeSpec{
		{Family: config.FamilyGemini, Model: "gemini-2.5-flash"},
		{Family: config.FamilyAnthropic, Model: "claude-sonnet-4-5"},
	}
	return cfg
}
