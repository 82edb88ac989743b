package main

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "validarfc",
	Short: "validarfc - RFC validation service",
	Long: `validarfc checks Mexican RFC tax identifiers against their lexical shape,
records every attempt in an append-only history and serves both over HTTP.

Running without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (environment variables override it)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
