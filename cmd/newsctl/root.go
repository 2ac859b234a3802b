package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hoanghai1803/newslens/internal/config"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:           "newsctl",
	Short:         "News entity extraction and trend analysis",
	Long:          "newsctl extracts named entities from text and ranks trending entities and topics across news feeds.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "config.toml", "path to config file")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(trendingCmd)
	rootCmd.AddCommand(topicsCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
