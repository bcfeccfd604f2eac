package main

import (
	"log/slog"

	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

// configPath is shared by every subcommand via the persistent flag.
var configPath string

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inkwell",
		Short: "Inkwell - run LLM content contests",
		Long: `Inkwell pits LLM providers against each other on a fixed prompt set.

It runs a four-stage pipeline (generate, analyze, judge, rank) over
resumable JSON stores, plus a standalone quality-control revise loop.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFile, "Path to the contest configuration file")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newAnalyzeCommand())
	cmd.AddCommand(newJudgeCommand())
	cmd.AddCommand(newRankCommand())
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newQCCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newArchiveCommand())
	cmd.AddCommand(newPublishCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}
