// Package main is the entry point for the linkpatrol CLI.
//
// linkpatrol can be run either as a library (SDK) or as a standalone binary.
// This CLI provides the standalone binary approach: pages come from command
// line arguments or a YAML config file, and results are rendered as a table,
// CSV, or JSON.
//
// Usage:
//
//	linkpatrol check https://example.com/       # Check one page
//	linkpatrol check -c config.yaml             # Check pages from a config file
//	linkpatrol validate -c config.yaml          # Validate configuration
//	linkpatrol version                          # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "linkpatrol",
	Short: "A concurrent broken link checker",
	Long: `linkpatrol validates the hyperlinks on a set of web pages and reports
the ones that are broken, redirected, or erroring.

Pages are checked concurrently; links within each page are checked
sequentially with a politeness delay. Clean links are never reported.

Quick start:
  linkpatrol check https://example.com/ https://example.com/docs

Or with a config file (linkpatrol.yaml):
  pages:
    - https://example.com/
    - https://example.com/docs
  timeout: 15s
  output:
    format: csv
    path: issues.csv

  linkpatrol check -c linkpatrol.yaml`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this linkpatrol binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("linkpatrol %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
