package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML removes markup from s and trims the result. Input without tags is only trimmed.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}
