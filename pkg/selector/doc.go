// Package selector maps upstream URLs to the CSS query that locates the
// version element on their releases page.
//
// A [Table] is an ordered list of [Rule] values evaluated first-match-wins.
// Tables are immutable once built and may be shared across goroutines
// without locking. The built-in rules cover the upstream hosts tabs knows
// about; more can be supplied in a TOML rules file without code changes:
//
//	replace_defaults = false
//
//	[[rule]]
//	name    = "kernel"
//	pattern = 'kernel\.org/pub/linux/kernel/v\d+\.x/$'
//	query   = "pre > a:last-of-type"
//
// Rules from a file are evaluated before the defaults unless
// replace_defaults is set.
//
// An explicit per-package selector always wins over the table; see
// [Table.Resolve].
package selector
