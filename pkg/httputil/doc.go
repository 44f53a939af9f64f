// Package httputil fetches upstream releases pages.
//
// # Overview
//
// [Client] issues one GET per [Client.Fetch] call with the tabs User-Agent
// and returns the body as text. It does not retry: the caller decides
// whether a failed attempt is worth repeating, because a page that loads
// but lacks the version element deserves the same treatment as a page that
// failed to load.
//
// # Caching
//
// A [cache.Cache] may be supplied to keep fetched pages for a while. This
// is mostly useful while writing a selector for a new upstream:
//
//	c := httputil.NewClient(fileCache, 10*time.Minute)
//	page, err := c.Fetch(ctx, "https://ftp.gnu.org/gnu/bash/?C=M;O=D")
//
// Pass [cache.NullCache] to always go to the network.
//
// # Errors
//
// Every failure (connection error, timeout, non-2xx status, oversized
// body) is reported with code TRANSPORT.
package httputil
