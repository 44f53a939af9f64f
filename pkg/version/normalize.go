// Package version turns scraped release text into canonical version tokens
// and orders them.
package version

import (
	"regexp"
	"strings"

	"github.com/matzehuels/tabs/pkg/errors"
)

var numericRE = regexp.MustCompile(`\d+(\.\d+)*`)

// Normalize extracts the canonical version token from raw element text.
//
// The steps run in a fixed order:
//  1. lower-case raw
//  2. remove every occurrence of the lower-cased package name
//  3. replace "_" with "-" and remove the hyphenated alias of the name
//  4. strip one leading "v"
//  5. strip one leading "-"
//  6. keep the first dotted-numeric run (digits separated by dots)
//
// It fails with VERSION_NOT_FOUND when step 6 finds nothing.
func Normalize(raw, name string) (string, error) {
	s := strings.ToLower(raw)

	name = strings.ToLower(strings.TrimSpace(name))
	if name != "" {
		s = strings.TrimSpace(strings.ReplaceAll(s, name, ""))
	}

	s = strings.ReplaceAll(s, "_", "-")
	if alias := strings.ReplaceAll(name, "_", "-"); alias != "" && alias != name {
		s = strings.TrimSpace(strings.ReplaceAll(s, alias, ""))
	}

	s = strings.TrimPrefix(s, "v")
	s = strings.TrimPrefix(s, "-")

	v := numericRE.FindString(s)
	if v == "" {
		return "", errors.New(errors.ErrCodeVersionNotFound, "no version in %q", raw)
	}
	return v, nil
}
