package selector

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/tabs/pkg/errors"
)

// Rule pairs a URL pattern with the query used on pages it matches.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Query   string
}

// Compile builds a Rule whose pattern matches case-insensitively anywhere in
// the URL.
func Compile(name, pattern, query string) (Rule, error) {
	if strings.TrimSpace(query) == "" {
		return Rule{}, errors.New(errors.ErrCodeInvalidConfig, "rule %q: empty query", name)
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return Rule{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "rule %q: bad pattern", name)
	}
	return Rule{Name: name, Pattern: re, Query: query}, nil
}

// MustCompile is like [Compile] but panics on error. Intended for
// package-level rule tables.
func MustCompile(name, pattern, query string) Rule {
	r, err := Compile(name, pattern, query)
	if err != nil {
		panic(err)
	}
	return r
}

// Table is an ordered, immutable list of rules.
type Table struct {
	rules []Rule
}

// NewTable returns a table evaluating rules in the given order.
func NewTable(rules ...Rule) *Table {
	return &Table{rules: append([]Rule(nil), rules...)}
}

// With returns a new table whose rules are evaluated before t's.
func (t *Table) With(rules ...Rule) *Table {
	out := make([]Rule, 0, len(rules)+len(t.rules))
	out = append(out, rules...)
	out = append(out, t.rules...)
	return &Table{rules: out}
}

// Rules returns a copy of the table's rules in evaluation order.
func (t *Table) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Len returns the number of rules.
func (t *Table) Len() int { return len(t.rules) }

// Match returns the first rule whose pattern matches upstream.
func (t *Table) Match(upstream string) (Rule, bool) {
	for _, r := range t.rules {
		if r.Pattern.MatchString(upstream) {
			return r, true
		}
	}
	return Rule{}, false
}

// Resolve returns the query to apply to the page at upstream.
//
// A non-empty override is returned verbatim; it is not validated here and
// a malformed override surfaces later as an INVALID_QUERY extraction error.
// Otherwise the first matching rule's query is returned, or a NO_SELECTOR
// error if no rule matches.
func (t *Table) Resolve(upstream, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if r, ok := t.Match(upstream); ok {
		return r.Query, nil
	}
	return "", errors.New(errors.ErrCodeNoSelector, "no selector found for %s", upstream)
}

// String renders the rule for listings.
func (r Rule) String() string {
	return fmt.Sprintf("%s\t%s\t%s", r.Name, strings.TrimPrefix(r.Pattern.String(), "(?i)"), r.Query)
}
