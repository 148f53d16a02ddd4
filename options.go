package linkpatrol

import (
	"errors"
	"log/slog"
	"time"
)

// checkerConfig holds mutable state during Checker construction.
type checkerConfig struct {
	pages       []string
	timeout     time.Duration
	maxWorkers  int
	linkDelay   time.Duration
	userAgent   string
	logger      *slog.Logger
	progressFns []ProgressFunc
}

// Option is a function that configures a [Checker] instance during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithPage], [WithPages], [WithTimeout], [WithMaxWorkers],
// [WithLinkDelay], [WithUserAgent], [WithLogger], [WithProgress].
type Option func(*checkerConfig) error

// WithPage adds a single page URL to the check list.
//
// Can be called multiple times to add multiple pages. At least one page
// must be configured for [New] to succeed.
//
// Example:
//
//	checker, err := linkpatrol.New(
//	    linkpatrol.WithPage("https://example.com/"),
//	    linkpatrol.WithPage("https://example.com/about"),
//	)
func WithPage(pageURL string) Option {
	return func(cfg *checkerConfig) error {
		cfg.pages = append(cfg.pages, pageURL)
		return nil
	}
}

// WithPages adds multiple page URLs to the check list.
//
// This is a convenience function for adding several pages at once.
// Equivalent to calling [WithPage] multiple times.
//
// Example:
//
//	checker, err := linkpatrol.New(
//	    linkpatrol.WithPages("https://example.com/", "https://example.com/docs"),
//	)
func WithPages(pageURLs ...string) Option {
	return func(cfg *checkerConfig) error {
		cfg.pages = append(cfg.pages, pageURLs...)
		return nil
	}
}

// WithTimeout sets the per-request timeout.
//
// The timeout applies independently to each HTTP request the checker makes:
// the page fetch, each HEAD probe, and each GET retry. It is not a whole-run
// deadline. Defaults to 10 seconds if not specified.
//
// Example:
//
//	checker, err := linkpatrol.New(
//	    linkpatrol.WithPages(urls...),
//	    linkpatrol.WithTimeout(15 * time.Second),
//	)
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *checkerConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithMaxWorkers sets the upper bound on concurrently checked pages.
//
// A run never uses more workers than it has pages, so the effective pool
// size is min(n, page count). Links within a single page are always checked
// sequentially regardless of this setting. Defaults to 5 if not specified.
//
// Example:
//
//	checker, err := linkpatrol.New(
//	    linkpatrol.WithPages(urls...),
//	    linkpatrol.WithMaxWorkers(3),
//	)
//
// Returns an error if the value is zero or negative.
func WithMaxWorkers(n int) Option {
	return func(cfg *checkerConfig) error {
		if n <= 0 {
			return errors.New("max workers must be positive")
		}
		cfg.maxWorkers = n
		return nil
	}
}

// WithLinkDelay sets the politeness delay between successive link checks
// within a single page.
//
// The delay paces requests against the link targets so that a page with many
// links does not hammer its destinations. Zero disables pacing entirely.
// Defaults to 100 milliseconds if not specified.
//
// Returns an error if the duration is negative.
func WithLinkDelay(d time.Duration) Option {
	return func(cfg *checkerConfig) error {
		if d < 0 {
			return errors.New("link delay cannot be negative")
		}
		cfg.linkDelay = d
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
//
// Some servers answer differently (or not at all) to unidentified clients,
// so the default is a mainstream browser string. Override it to identify
// your tool explicitly.
//
// Returns an error if the string is empty.
func WithUserAgent(ua string) Option {
	return func(cfg *checkerConfig) error {
		if ua == "" {
			return errors.New("user agent cannot be empty")
		}
		cfg.userAgent = ua
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Checker instance.
//
// This allows consumers to control where logs are written and in what
// format. If not specified, [slog.Default] is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	checker, err := linkpatrol.New(
//	    linkpatrol.WithPages(urls...),
//	    linkpatrol.WithLogger(logger),
//	)
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *checkerConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithProgress registers a function to be called each time a page completes.
//
// Multiple callbacks may be registered by calling WithProgress multiple
// times; they execute in registration order.
//
// IMPORTANT: Callbacks must be non-blocking. Long-running operations should
// dispatch work to a separate goroutine. Blocking callbacks will delay
// subsequent result processing.
//
// Callbacks are invoked synchronously from a single goroutine. Panics within
// callbacks are recovered and logged; they do not abort the run.
//
// Example:
//
//	checker, err := linkpatrol.New(
//	    linkpatrol.WithPages(urls...),
//	    linkpatrol.WithProgress(func(completed, total int, pageURL string) {
//	        log.Printf("checked %d/%d: %s", completed, total, pageURL)
//	    }),
//	)
//
// Nil callbacks are silently ignored.
func WithProgress(fn ProgressFunc) Option {
	return func(cfg *checkerConfig) error {
		if fn == nil {
			return nil // no-op for nil callback (safe to call)
		}
		cfg.progressFns = append(cfg.progressFns, fn)
		return nil
	}
}
