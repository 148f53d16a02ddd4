package linkpatrol

// IssueType categorizes why a link was flagged.
//
// IssueType is a string type that can hold one of three predefined values:
// [IssueBroken], [IssueRedirect], or [IssueError]. Using a string type allows
// for easy serialization and human-readable output while maintaining type
// safety through the defined constants.
type IssueType string

const (
	// IssueBroken indicates the link target returned a client or server
	// error status (404, 410, 5xx, and any other status of 400 or above).
	IssueBroken IssueType = "broken"

	// IssueRedirect indicates the link target answered with one of the
	// reportable redirect statuses: 301, 302, 303, 307, or 308.
	IssueRedirect IssueType = "redirect"

	// IssueError indicates the check failed at the transport level
	// (timeout, DNS failure, connection refused) before an HTTP status
	// could be observed, or the status could not be interpreted.
	IssueError IssueType = "error"
)

// String returns the string representation of the issue type.
// This implements the fmt.Stringer interface.
func (t IssueType) String() string {
	return string(t)
}

// maxAnchorTextLen caps the anchor text carried on an issue, in runes.
const maxAnchorTextLen = 100

// LinkIssue describes a single problematic link found on a checked page.
//
// LinkIssue is immutable after creation. Clean links never produce a
// LinkIssue; a run's result is the concatenation of every page's issues in
// page-completion order.
type LinkIssue struct {
	// SourcePage is the URL of the page the link was found on.
	SourcePage string

	// LinkURL is the reference exactly as written in the page markup
	// (the original href), not the resolved absolute URL.
	LinkURL string

	// AnchorText is the link's visible text, trimmed and truncated to 100
	// runes. Never empty: links without text carry a placeholder.
	AnchorText string

	// StatusCode is the HTTP status observed for the link target.
	// Zero when the check failed before a status was received.
	StatusCode int

	// Type categorizes the problem: broken, redirect, or error.
	Type IssueType

	// RedirectTarget is the Location header of a redirect response.
	// Empty unless Type is [IssueRedirect] and the server sent one.
	RedirectTarget string

	// ErrorMessage describes a transport-level failure ("Timeout",
	// "Connection Error", ...). Empty when an HTTP status was observed.
	ErrorMessage string
}

// ProgressFunc receives a notification each time a page finishes checking.
//
// completed is the number of pages finished so far, total the number of pages
// in the run, and pageURL the page that just completed. Callbacks are invoked
// exactly once per page, from a single goroutine, in completion order.
//
// # Panic Safety
//
// ProgressFunc callbacks are called within a panic recovery boundary. If a
// callback panics, the panic is logged with a correlation ID and the run
// continues. A misbehaving callback cannot abort a check run.
type ProgressFunc func(completed, total int, pageURL string)

// truncateRunes shortens s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
