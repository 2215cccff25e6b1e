package main

import (
	"github.com/spf13/cobra"

	"github.com/vclens/vclens/internal/api"
	"github.com/vclens/vclens/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "vclens",
	Short: "Contract analysis service backed by a hosted language model",
	Long: `vclens accepts PDF and DOCX contracts, extracts their text, and asks a
hosted language model for the key commercial terms, returned as JSON.

The service provides:
  - Batch contract upload and detail extraction
  - Follow-up questions against an uploaded contract
  - A record of every model call for traceability`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.vclens/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "vclens home directory (default: ~/.vclens)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
