package config

import (
	"github.com/jpalmerr/linkpatrol"
)

// BuildOptions converts parsed configuration into SDK options for
// [linkpatrol.New].
//
// Only fields the config actually sets produce options, so SDK defaults
// still apply for anything omitted from the file. The returned slice can be
// extended with programmatic options (logger, progress callbacks) before
// constructing the checker:
//
//	opts := config.BuildOptions(cfg)
//	opts = append(opts, linkpatrol.WithLogger(logger))
//	checker, err := linkpatrol.New(opts...)
func BuildOptions(cfg *Config) []linkpatrol.Option {
	opts := []linkpatrol.Option{
		linkpatrol.WithPages(cfg.Pages...),
	}

	if cfg.Timeout != 0 {
		opts = append(opts, linkpatrol.WithTimeout(cfg.Timeout.Duration()))
	}

	if cfg.MaxWorkers != 0 {
		opts = append(opts, linkpatrol.WithMaxWorkers(cfg.MaxWorkers))
	}

	// zero is a meaningful value (pacing disabled), so always pass it through
	opts = append(opts, linkpatrol.WithLinkDelay(cfg.LinkDelay.Duration()))

	if cfg.UserAgent != "" {
		opts = append(opts, linkpatrol.WithUserAgent(cfg.UserAgent))
	}

	return opts
}
