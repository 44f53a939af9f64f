package selector

// Built-in rules. Patterns are written so that no two of them can match the
// same URL; the mirror listing rule still comes first because a savannah or
// ftp mirror URL may carry the sort query.
var defaultRules = []Rule{
	// Apache-style directory listing sorted by modification time, newest first
	// (ftp.gnu.org and its mirrors).
	MustCompile("mtime-listing",
		`/\?C=M;O=D$`,
		"body > table:nth-child(2) > tbody:nth-child(1) > tr:nth-child(4) > td:nth-child(2) > a:nth-child(1)"),

	MustCompile("github-tags",
		`^https?://github\.com/[^/]+/[^/]+/tags`,
		"div.Box-row:nth-child(1) > div:nth-child(1) > div:nth-child(1) > div:nth-child(1) > div:nth-child(1) > h2:nth-child(1) > a:nth-child(1)"),

	MustCompile("github-releases",
		`^https?://github\.com/[^/]+/[^/]+/releases`,
		"section h2.sr-only"),

	MustCompile("gitlab-tags",
		`^https?://gitlab\.com/.+/-/tags`,
		"ul.content-list > li:nth-child(1) .item-title"),

	MustCompile("codeberg-tags",
		`^https?://codeberg\.org/[^/]+/[^/]+/tags`,
		"#tags-table > tbody > tr:nth-child(1) .tag-list-row-link"),

	MustCompile("sourceforge",
		`^https?://sourceforge\.net/projects/[^/]+/files`,
		"#files_list > tbody > tr:nth-child(1) > th > a > span"),

	MustCompile("pypi",
		`^https?://pypi\.org/project/`,
		".package-header__name"),

	MustCompile("savannah",
		`^https?://download\.savannah\.(non)?gnu\.org/releases/[^?]*$`,
		".list > tbody:nth-child(1) > tr:nth-child(15) > td:nth-child(1) > a:nth-child(1)"),

	MustCompile("archlinux",
		`^https?://archlinux\.org/packages/`,
		"#pkgdetails > h2:nth-child(1)"),

	MustCompile("repology",
		`^https?://repology\.org/project/[^/]+/versions`,
		".version-newest"),
}

var defaultTable = NewTable(defaultRules...)

// Default returns the built-in rule table.
func Default() *Table {
	return defaultTable
}
