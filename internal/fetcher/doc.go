// Package fetcher retrieves pages and extracts their hyperlinks for linkpatrol.
//
// This package is internal to linkpatrol. It fetches a page over HTTP,
// parses the HTML, and returns every navigable anchor reference in document
// order, with relative references resolved against the page URL.
//
// The main components are:
//
//   - [Fetcher]: pooled HTTP client wrapper that fetches and parses pages
//   - [LinkRef]: a single extracted anchor reference
//   - [ExtractLinks]: the pure extraction step, usable against any HTML
//
// Users of the linkpatrol library should not need to interact with this
// package directly. Configuration is done through the main linkpatrol
// package.
package fetcher
