package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/linkpatrol"
	"github.com/jpalmerr/linkpatrol/config"
	"github.com/jpalmerr/linkpatrol/report"
)

// CLI guardrails. The library accepts any positive timeout and any number of
// pages; the CLI clamps to ranges that keep an interactive run sane.
const (
	minCheckTimeout = 5 * time.Second
	maxCheckTimeout = 30 * time.Second
	maxCheckPages   = 100
)

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// checkCmd runs a link check over the given pages.
var checkCmd = &cobra.Command{
	Use:   "check [url...]",
	Short: "Check pages for broken links",
	Long: `Check the hyperlinks on one or more pages and report the problematic ones.

Pages come from command line arguments or from a YAML config file (-c).
Results go to stdout (or --output) as a table, CSV, or JSON; a summary
line and progress go to stderr.

Exit codes:
  0 - Run completed (issues may still have been found; check the output)
  1 - Usage error or the run could not start

Example:
  linkpatrol check https://example.com/
  linkpatrol check -c config.yaml --format json
  linkpatrol check https://example.com/ -f csv -o issues.csv`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("config", "c", "", "path to config file")
	checkCmd.Flags().Duration("timeout", 10*time.Second, "per-request timeout (clamped to 5s-30s)")
	checkCmd.Flags().Int("workers", 5, "maximum pages checked concurrently")
	checkCmd.Flags().Duration("delay", 100*time.Millisecond, "delay between link checks within a page")
	checkCmd.Flags().String("user-agent", "", "override the User-Agent header")
	checkCmd.Flags().StringP("format", "f", "", "output format: table, csv, or json (default table)")
	checkCmd.Flags().StringP("output", "o", "", "write results to file instead of stdout")
	checkCmd.Flags().BoolP("quiet", "q", false, "suppress progress lines")
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	// presentation-layer guardrails; the library itself is not clamped
	if clamped := clampTimeout(cfg.Timeout.Duration()); clamped != cfg.Timeout.Duration() {
		logger.Warn("timeout clamped",
			"requested", cfg.Timeout.Duration().String(),
			"using", clamped.String(),
		)
		cfg.Timeout = config.Duration(clamped)
	}
	if capped := capPages(cfg.Pages, maxCheckPages); len(capped) != len(cfg.Pages) {
		logger.Warn("page list truncated",
			"requested", len(cfg.Pages),
			"using", len(capped),
		)
		cfg.Pages = capped
	}

	opts := config.BuildOptions(cfg)
	opts = append(opts, linkpatrol.WithLogger(logger))

	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet {
		opts = append(opts, linkpatrol.WithProgress(func(completed, total int, pageURL string) {
			fmt.Fprintf(os.Stderr, "checked %d/%d: %s\n", completed, total, pageURL)
		}))
	}

	checker, err := linkpatrol.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create checker: %w", err)
	}
	defer checker.Close()

	// cancel on SIGINT/SIGTERM; a cancelled run reports what it gathered
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	issues, err := checker.Run(ctx)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if err := renderIssues(cfg.Output, issues); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, report.Summarize(issues).String())
	return nil
}

// resolveConfig builds the effective config from a config file, command line
// arguments, and flags. Explicitly set flags override file values.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	if configFile != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("pages cannot be given both as arguments and via --config")
		}
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		if len(args) == 0 {
			return nil, fmt.Errorf("no pages to check: pass URLs as arguments or use --config")
		}
		timeout, _ := cmd.Flags().GetDuration("timeout")
		workers, _ := cmd.Flags().GetInt("workers")
		delay, _ := cmd.Flags().GetDuration("delay")
		cfg = &config.Config{
			Pages:      args,
			Timeout:    config.Duration(timeout),
			MaxWorkers: workers,
			LinkDelay:  config.Duration(delay),
			Output:     config.OutputConfig{Format: config.FormatTable},
		}
	}

	// flags that override the file when explicitly set
	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		cfg.Timeout = config.Duration(timeout)
	}
	if cmd.Flags().Changed("workers") {
		workers, _ := cmd.Flags().GetInt("workers")
		cfg.MaxWorkers = workers
	}
	if cmd.Flags().Changed("delay") {
		delay, _ := cmd.Flags().GetDuration("delay")
		cfg.LinkDelay = config.Duration(delay)
	}
	if ua, _ := cmd.Flags().GetString("user-agent"); ua != "" {
		cfg.UserAgent = ua
	}
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		switch format {
		case config.FormatTable, config.FormatCSV, config.FormatJSON:
			cfg.Output.Format = format
		default:
			return nil, fmt.Errorf("unknown format %q (expected table, csv, or json)", format)
		}
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = config.FormatTable
	}
	if outputPath, _ := cmd.Flags().GetString("output"); outputPath != "" {
		cfg.Output.Path = outputPath
	}

	return cfg, nil
}

// clampTimeout bounds a timeout to the CLI's allowed range.
func clampTimeout(d time.Duration) time.Duration {
	if d < minCheckTimeout {
		return minCheckTimeout
	}
	if d > maxCheckTimeout {
		return maxCheckTimeout
	}
	return d
}

// capPages truncates a page list to at most n entries.
func capPages(pages []string, n int) []string {
	if len(pages) <= n {
		return pages
	}
	return pages[:n]
}

// renderIssues writes issues in the configured format to the configured
// destination (stdout when no path is set).
func renderIssues(out config.OutputConfig, issues []linkpatrol.LinkIssue) error {
	var w io.Writer = os.Stdout
	if out.Path != "" {
		file, err := os.Create(out.Path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = file.Close() }()
		w = file
	}

	switch out.Format {
	case config.FormatCSV:
		return report.WriteCSV(w, issues)
	case config.FormatJSON:
		return report.WriteJSON(w, issues)
	default:
		if len(issues) == 0 {
			fmt.Fprintln(w, "No issues found.")
			return nil
		}
		report.WriteTable(w, issues)
		return nil
	}
}
