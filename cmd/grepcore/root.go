package main

import (
	"github.com/spf13/cobra"
)

var (
	noColor    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "grepcore",
	Short: "grepcore - high-throughput literal and regex line matcher",
	Long: `grepcore searches files and directories for literal strings, multi-pattern
sets, or regular expressions, using a chunked parallel driver over an
algorithm selected per pattern.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML defaults file (pkg/config); unset flags fall back to its values")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
