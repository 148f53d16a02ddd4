package linkpatrol

import "net/http"

// redirectCodes enumerates the statuses reported as redirects. 300 and 304
// are deliberately absent: they fall through and are treated as clean.
var redirectCodes = map[int]bool{
	http.StatusMovedPermanently:  true, // 301
	http.StatusFound:             true, // 302
	http.StatusSeeOther:          true, // 303
	http.StatusTemporaryRedirect: true, // 307
	http.StatusPermanentRedirect: true, // 308
}

// Classify decides whether a check outcome is a problem and, if so, which
// [IssueType] it is.
//
// statusCode is the HTTP status observed for the link target (0 when no
// status was received) and failureReason a non-empty string when the check
// failed at the transport level. Rules apply in order; the first match wins:
//
//  1. failureReason non-empty → error (regardless of statusCode)
//  2. 404 → broken
//  3. 301, 302, 303, 307, 308 → redirect
//  4. any status ≥ 400 → broken
//  5. 0 → error
//  6. anything else → clean (ok is false, issueType is empty)
//
// Classify is a pure function: same inputs, same outputs, no side effects.
func Classify(statusCode int, failureReason string) (problem bool, issueType IssueType) {
	switch {
	case failureReason != "":
		return true, IssueError
	case statusCode == http.StatusNotFound:
		return true, IssueBroken
	case redirectCodes[statusCode]:
		return true, IssueRedirect
	case statusCode >= 400:
		return true, IssueBroken
	case statusCode == 0:
		return true, IssueError
	default:
		return false, ""
	}
}
