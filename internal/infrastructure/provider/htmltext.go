package provider

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// cleanInline strips markup from short fields such as titles and descriptions.
func cleanInline(raw string) string {
	if !strings.ContainsAny(raw, "<&") {
		return collapseSpace(raw)
	}
	return collapseSpace(html.UnescapeString(strictPolicy.Sanitize(raw)))
}

// cleanBody reduces an HTML body to its readable text.
func cleanBody(raw string) string {
	if !strings.Contains(raw, "<") {
		return collapseSpace(html.UnescapeString(raw))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return cleanInline(raw)
	}

	doc.Find("script, style, noscript").Remove()
	// keep sentence boundaries between block elements
	doc.Find("p, div, br, li, h1, h2, h3, h4, h5, h6, blockquote").AfterHtml("\n")

	return collapseSpace(doc.Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
