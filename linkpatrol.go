package linkpatrol

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jpalmerr/linkpatrol/internal/fetcher"
	"github.com/jpalmerr/linkpatrol/internal/resolver"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxWorkers = 5
	defaultLinkDelay  = 100 * time.Millisecond

	// Some servers answer differently to unidentified clients, so the
	// default presents as a mainstream browser. Override with [WithUserAgent].
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Checker is the main orchestrator for validating the links on a set of pages.
//
// Checker fetches each configured page, extracts its hyperlinks, probes every
// link target, and reports the problematic ones as [LinkIssue] values. It is
// created using [New] with functional options and executed with [Checker.Run].
//
// The typical lifecycle is:
//
//	checker, err := linkpatrol.New(linkpatrol.WithPages(urls...))
//	if err != nil {
//	    slog.Error("failed to create checker", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	issues, err := checker.Run(ctx) // blocks until every page is checked
//
// A Checker is reusable: Run may be called multiple times, sequentially or
// concurrently.
type Checker struct {
	pages       []string
	timeout     time.Duration
	maxWorkers  int
	linkDelay   time.Duration
	userAgent   string
	logger      *slog.Logger
	progressFns []ProgressFunc

	fetcher  *fetcher.Fetcher
	resolver *resolver.Resolver
}

// New creates a new [Checker] instance with the given options.
//
// At least one page must be configured via [WithPage] or [WithPages], and
// every page URL must parse with an http or https scheme. Other options have
// sensible defaults:
//   - Per-request timeout: 10 seconds
//   - Max concurrent pages: 5
//   - Delay between link checks on a page: 100 milliseconds
//
// Returns an error if no pages are configured or if any option is invalid.
//
// Example:
//
//	checker, err := linkpatrol.New(
//	    linkpatrol.WithPages("https://example.com/", "https://example.com/docs"),
//	    linkpatrol.WithTimeout(15 * time.Second),
//	)
func New(opts ...Option) (*Checker, error) {
	cfg := &checkerConfig{
		timeout:    defaultTimeout,
		maxWorkers: defaultMaxWorkers,
		linkDelay:  defaultLinkDelay,
		userAgent:  defaultUserAgent,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if len(cfg.pages) == 0 {
		return nil, errors.New("at least one page URL is required")
	}

	for i, pageURL := range cfg.pages {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			return nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return nil, fmt.Errorf("page URL %q must use http or https (position %d)", pageURL, i)
		}
		if parsed.Host == "" {
			return nil, fmt.Errorf("page URL %q has no host", pageURL)
		}
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Checker{
		pages:       cfg.pages,
		timeout:     cfg.timeout,
		maxWorkers:  cfg.maxWorkers,
		linkDelay:   cfg.linkDelay,
		userAgent:   cfg.userAgent,
		logger:      logger,
		progressFns: cfg.progressFns,
		fetcher:     fetcher.New(cfg.userAgent, cfg.timeout),
		resolver:    resolver.New(cfg.userAgent, cfg.timeout),
	}, nil
}

// pageResult carries one page's issues from a worker to the aggregator.
type pageResult struct {
	pageURL string
	issues  []LinkIssue
}

// Run checks every configured page and returns the aggregated issues.
//
// Run is a blocking call. Pages are distributed across a worker pool of
// min(maxWorkers, page count) goroutines; within each page, links are
// checked sequentially with the configured politeness delay. Issues
// aggregate in page-completion order; within one page they stay in
// discovery order.
//
// Per-page failures (unreachable page, malformed HTML, a panicking check)
// are logged and contribute zero issues — they never abort the run. Progress
// callbacks fire exactly once per completed page, serialized on a single
// goroutine.
//
// Cancelling ctx stops new work promptly; pages not yet checked complete
// with no issues. Run then returns whatever was gathered, with a nil error.
// An empty result and a nil error means every link was clean.
func (c *Checker) Run(ctx context.Context) ([]LinkIssue, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	total := len(c.pages)
	workers := min(c.maxWorkers, total)

	c.logger.Info("link check starting", "page_count", total, "workers", workers)

	jobs := make(chan string, total)
	results := make(chan pageResult, total)

	g, groupCtx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			for pageURL := range jobs {
				if groupCtx.Err() != nil {
					c.logger.Warn("page check skipped", "page", pageURL, "error", groupCtx.Err().Error())
					results <- pageResult{pageURL: pageURL}
					continue
				}
				results <- pageResult{
					pageURL: pageURL,
					issues:  c.checkPageSafe(groupCtx, pageURL),
				}
			}
			return nil
		})
	}

	for _, pageURL := range c.pages {
		jobs <- pageURL
	}
	close(jobs)

	go func() {
		_ = g.Wait() // workers never return errors; failures are per-page
		close(results)
	}()

	var issues []LinkIssue
	completed := 0
	for result := range results {
		completed++
		issues = append(issues, result.issues...)

		for _, fn := range c.progressFns {
			c.invokeProgressSafe(fn, completed, total, result.pageURL)
		}

		c.logger.Debug("page check completed",
			"page", result.pageURL,
			"issues", len(result.issues),
			"completed", completed,
			"total", total,
		)
	}

	c.logger.Info("link check finished", "page_count", total, "issue_count", len(issues))
	return issues, nil
}

// checkPageSafe runs checkPage with panic recovery. A panicking page check
// is logged with a correlation ID and contributes zero issues.
func (c *Checker) checkPageSafe(ctx context.Context, pageURL string) (issues []LinkIssue) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			c.logger.Error("page check panic",
				"correlation_id", correlationID,
				"page", pageURL,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			issues = nil
		}
	}()
	return c.checkPage(ctx, pageURL)
}

// checkPage extracts a page's links and probes them sequentially, spacing
// successive probes with the politeness limiter. Returns the page's issues
// in discovery order.
func (c *Checker) checkPage(ctx context.Context, pageURL string) []LinkIssue {
	links, err := c.fetcher.PageLinks(ctx, pageURL)
	if err != nil {
		c.logger.Warn("page fetch failed", "page", pageURL, "error", err.Error())
		return nil
	}
	if len(links) == 0 {
		return nil
	}

	// rate.Every(0) disables pacing entirely
	limiter := rate.NewLimiter(rate.Every(c.linkDelay), 1)

	var issues []LinkIssue
	for _, link := range links {
		if err := limiter.Wait(ctx); err != nil {
			return issues // context cancelled mid-page
		}

		outcome := c.resolver.Check(ctx, link.ResolvedURL)
		problem, issueType := Classify(outcome.StatusCode, outcome.FailureReason)
		if !problem {
			continue
		}

		issues = append(issues, LinkIssue{
			SourcePage:     pageURL,
			LinkURL:        link.Href,
			AnchorText:     truncateRunes(link.AnchorText, maxAnchorTextLen),
			StatusCode:     outcome.StatusCode,
			Type:           issueType,
			RedirectTarget: outcome.RedirectTarget,
			ErrorMessage:   outcome.FailureReason,
		})
	}
	return issues
}

// invokeProgressSafe calls a progress callback with panic recovery.
// Panics are logged with a correlation ID but do not propagate.
func (c *Checker) invokeProgressSafe(fn ProgressFunc, completed, total int, pageURL string) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			c.logger.Error("progress callback panicked",
				"correlation_id", correlationID,
				"page", pageURL,
				"panic", fmt.Sprintf("%v", r),
			)
		}
	}()
	fn(completed, total, pageURL)
}

// Pages returns a copy of the configured page URLs.
//
// The returned slice is a copy; modifying it does not affect the Checker.
func (c *Checker) Pages() []string {
	cp := make([]string, len(c.pages))
	copy(cp, c.pages)
	return cp
}

// Timeout returns the configured per-request timeout.
func (c *Checker) Timeout() time.Duration {
	return c.timeout
}

// MaxWorkers returns the configured upper bound on concurrently checked pages.
func (c *Checker) MaxWorkers() int {
	return c.maxWorkers
}

// LinkDelay returns the configured delay between link checks within a page.
func (c *Checker) LinkDelay() time.Duration {
	return c.linkDelay
}

// Close releases the idle connections held by the Checker's HTTP clients.
//
// Safe to call multiple times. After Close, the Checker remains usable but
// new connections will be established as needed.
func (c *Checker) Close() {
	c.fetcher.Close()
	c.resolver.Close()
}
