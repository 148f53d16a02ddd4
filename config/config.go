// Package config provides YAML configuration parsing for linkpatrol.
//
// This package enables running linkpatrol as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	pages:
//	  - https://example.com/
//	  - https://example.com/docs
//
//	timeout: 15s
//	max_workers: 3
//	link_delay: 200ms
//
//	output:
//	  format: csv
//	  path: issues.csv
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// maxLinkDelay guards against configs that would make a run crawl.
// A multi-second pause between every link is almost always a typo.
const maxLinkDelay = 10 * time.Second

// Output formats accepted in the output section.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// Config is the root configuration structure for linkpatrol.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Pages lists the page URLs whose links are checked.
	// Values support environment variable substitution: ${VAR} or ${VAR:-default}
	Pages []string `yaml:"pages"`

	// Timeout is the per-request timeout.
	// Accepts duration strings like "10s", "1m", "500ms". Defaults to 10s.
	Timeout Duration `yaml:"timeout"`

	// MaxWorkers bounds how many pages are checked concurrently.
	// A run never uses more workers than it has pages. Defaults to 5.
	MaxWorkers int `yaml:"max_workers"`

	// LinkDelay is the politeness delay between link checks within a page.
	// Defaults to 100ms. Zero disables pacing.
	LinkDelay Duration `yaml:"link_delay"`

	// UserAgent overrides the User-Agent header sent on every request.
	// Values support environment variable substitution.
	UserAgent string `yaml:"user_agent"`

	// Output controls how results are rendered.
	Output OutputConfig `yaml:"output"`
}

// OutputConfig controls result rendering for the standalone binary.
type OutputConfig struct {
	// Format is one of "table", "csv", or "json". Defaults to "table".
	Format string `yaml:"format"`

	// Path is the file results are written to. Empty means stdout.
	Path string `yaml:"path"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		// submatches[2] is ":-..." (non-empty if default syntax was used)
		// submatches[3] is the actual default value (may be empty for ${VAR:-})
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before parsing.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in page URLs and the user agent.
// Defaults are applied for Timeout (10s), MaxWorkers (5), LinkDelay (100ms),
// and Output.Format ("table").
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = Duration(10 * time.Second)
	}
	if cfg.MaxWorkers == 0 {
		cfg.MaxWorkers = 5
	}
	if cfg.LinkDelay == 0 {
		cfg.LinkDelay = Duration(100 * time.Millisecond)
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatTable
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if len(c.Pages) == 0 {
		return errors.New("at least one page must be defined")
	}

	for i, page := range c.Pages {
		expanded, err := expandEnvVars(page)
		if err != nil {
			return fmt.Errorf("pages[%d]: %w", i, err)
		}
		c.Pages[i] = expanded

		parsedURL, err := url.Parse(expanded)
		if err != nil {
			return fmt.Errorf("pages[%d]: invalid url: %w", i, err)
		}
		if parsedURL.Scheme == "" {
			return fmt.Errorf("pages[%d] (%s): url must have a scheme (http:// or https://)", i, expanded)
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("pages[%d] (%s): url scheme must be http or https, got %q", i, expanded, parsedURL.Scheme)
		}
	}

	if c.Timeout.Duration() <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout.Duration())
	}

	if c.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be at least 1, got %d", c.MaxWorkers)
	}

	if c.LinkDelay.Duration() < 0 {
		return fmt.Errorf("link_delay cannot be negative, got %s", c.LinkDelay.Duration())
	}
	if c.LinkDelay.Duration() > maxLinkDelay {
		return fmt.Errorf("link_delay must not exceed %s, got %s", maxLinkDelay, c.LinkDelay.Duration())
	}

	if c.UserAgent != "" {
		expanded, err := expandEnvVars(c.UserAgent)
		if err != nil {
			return fmt.Errorf("user_agent: %w", err)
		}
		c.UserAgent = expanded
	}

	switch c.Output.Format {
	case FormatTable, FormatCSV, FormatJSON:
	default:
		return fmt.Errorf("output.format must be %q, %q, or %q, got %q",
			FormatTable, FormatCSV, FormatJSON, c.Output.Format)
	}

	return nil
}
