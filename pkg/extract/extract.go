// Package extract locates the version element in a releases page.
package extract

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/matzehuels/tabs/pkg/errors"
)

// Extract applies the CSS query to the HTML document and returns the text
// of the first matching element, trimmed of surrounding whitespace.
//
// The text is taken from the element's first descendant text node that is
// not blank, so markup like <a>\n  <span>v1.2</span></a> yields "v1.2".
// A query that does not compile fails with INVALID_QUERY; no matching
// element, or a match without text, fails with NO_MATCH.
func Extract(page, query string) (string, error) {
	return extractFrom(strings.NewReader(page), query)
}

func extractFrom(r io.Reader, query string) (string, error) {
	sel, err := cascadia.Compile(query)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidQuery, err, "invalid query %q", query)
	}

	// The HTML parser recovers from any markup; it only fails when reading
	// the input does.
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "read document")
	}

	match := doc.FindMatcher(sel).First()
	if match.Length() == 0 {
		return "", errors.New(errors.ErrCodeNoMatch, "no element matches %q", query)
	}

	if text, ok := firstText(match.Nodes[0]); ok {
		return text, nil
	}
	return "", errors.New(errors.ErrCodeNoMatch, "element matching %q has no text", query)
}

func firstText(n *html.Node) (string, bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if s := strings.TrimSpace(c.Data); s != "" {
				return s, true
			}
		case html.ElementNode:
			if s, ok := firstText(c); ok {
				return s, true
			}
		}
	}
	return "", false
}
