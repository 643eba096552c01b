// Package htmltext strips markup out of text fields that providers return
// with embedded HTML (DuckDuckGo related topics, some RSS descriptions).
package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strip returns the plain text of an HTML fragment with whitespace
// collapsed. Input without markup passes through unchanged apart from
// whitespace normalization.
func Strip(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapse(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapse(s)
	}
	return collapse(doc.Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
