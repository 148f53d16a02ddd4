// Package linkpatrol validates the hyperlinks found on a set of web pages,
// reporting the links that are broken, redirected, or erroring.
//
// linkpatrol is designed as an SDK-first library: supply the pages to check,
// run the checker, and receive a slice of [LinkIssue] values describing every
// problematic link. Clean links are never reported. It follows functional
// programming principles with immutable types, pure functions, and composable
// configuration via the functional options pattern.
//
// # Quick Start
//
// Create a checker and run it with graceful shutdown:
//
//	checker, _ := linkpatrol.New(
//	    linkpatrol.WithPages("https://example.com/", "https://example.com/docs"),
//	)
//
//	// Set up graceful shutdown on SIGINT/SIGTERM
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	issues, err := checker.Run(ctx) // blocks until every page is checked
//
// # Configuration
//
// linkpatrol uses the functional options pattern for configuration:
//
//	checker, err := linkpatrol.New(
//	    linkpatrol.WithPages(urls...),
//	    linkpatrol.WithTimeout(15 * time.Second),
//	    linkpatrol.WithMaxWorkers(3),
//	    linkpatrol.WithLinkDelay(200 * time.Millisecond),
//	    linkpatrol.WithProgress(func(completed, total int, pageURL string) {
//	        log.Printf("checked %d/%d: %s", completed, total, pageURL)
//	    }),
//	)
//
// # Checking Model
//
// Each page is processed independently: its HTML is fetched and parsed, every
// navigable anchor is extracted in document order, and each link target is
// probed with a HEAD request (with a GET retry when the server rejects HEAD).
// Redirects are never followed — a 301 is reported as a redirect, not
// silently resolved. Links within one page are checked sequentially with a
// politeness delay; pages are checked concurrently across a bounded worker
// pool.
//
// A probe outcome becomes an issue according to [Classify]: transport
// failures and unreadable statuses are errors, 404 and other 4xx/5xx
// statuses are broken, and 301/302/303/307/308 are redirects.
//
// # Architecture
//
// linkpatrol consists of several internal packages (under internal/):
//
//   - internal/fetcher: page retrieval and HTML link extraction
//   - internal/resolver: per-URL HEAD/GET status probes
//
// The companion packages config and report support the linkpatrol CLI:
// YAML configuration loading and issue presentation (summary, filtering,
// CSV/JSON export, terminal tables). The internal packages are not part of
// the public API and may change without notice.
package linkpatrol
