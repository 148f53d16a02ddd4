// Package resolver probes individual link targets for linkpatrol.
//
// This package is internal to linkpatrol and performs the per-URL HTTP
// probe: a HEAD request first, one GET retry when the server answers 405,
// and no redirect following so that redirect statuses are reported rather
// than silently resolved.
//
// The main components are:
//
//   - [Resolver]: pooled HTTP client wrapper with per-request timeouts
//   - [Outcome]: normalized result of probing a single URL
//
// Users of the linkpatrol library should not need to interact with this
// package directly. Configuration is done through the main linkpatrol
// package.
package resolver
