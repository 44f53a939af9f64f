// Package tracker resolves the latest upstream version of tracked packages.
//
// For each [Package] a [Tracker] runs a small state machine:
//
//	start ──(empty upstream)──────────────────────────────► failed
//	  │
//	  ▼
//	attempt: fetch page → resolve selector → extract → normalize
//	  │  success ───────────────────────────────────────► resolved
//	  │  NO_SELECTOR / INVALID_QUERY ───────────────────► failed
//	  │  TRANSPORT / NO_MATCH / VERSION_NOT_FOUND
//	  ▼
//	retry ──(budget spent: GENERIC_FAILURE)─────────────► failed
//	  │
//	  └──(sleep fixed delay)──► attempt
//
// The defaults are 7 attempts with 1337ms between them. Pages that render
// their release list lazily often come back without the version element on
// the first try, which is why extraction and normalization failures are
// retried as well as network failures.
//
// [Tracker.ResolveAll] runs one pipeline per package concurrently. The
// selector table is shared read-only; outcomes are returned in input order,
// though completion order is arbitrary.
package tracker
