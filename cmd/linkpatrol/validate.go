package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/linkpatrol/config"
)

// validateCmd validates a config file without running a check.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a linkpatrol configuration file without checking any pages.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  linkpatrol validate -c config.yaml
  linkpatrol validate --config /etc/linkpatrol/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Pages:       %d\n", len(cfg.Pages))
	fmt.Printf("  Timeout:     %s\n", cfg.Timeout.Duration())
	fmt.Printf("  Max workers: %d\n", cfg.MaxWorkers)
	fmt.Printf("  Link delay:  %s\n", cfg.LinkDelay.Duration())
	fmt.Printf("  Output:      %s", cfg.Output.Format)
	if cfg.Output.Path != "" {
		fmt.Printf(" -> %s", cfg.Output.Path)
	}
	fmt.Println()

	return nil
}
