package normalize

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

var (
	tagRe = regexp.MustCompile(`<[^>]+>`)
	// \s is ASCII-only; \p{Z} picks up NBSP and the other Unicode
	// separators that entity decoding produces.
	whitespaceRe = regexp.MustCompile(`[\s\p{Z}]+`)
)

// CleanText prepares scraped text for downstream NLP stages: HTML tags
// are stripped, entities decoded, Unicode normalized to NFC, and
// whitespace collapsed to single spaces.
func CleanText(s string) string {
	if s == "" {
		return ""
	}

	if strings.ContainsRune(s, '<') {
		s = stripHTML(s)
	}
	s = html.UnescapeString(s)
	s = norm.NFC.String(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// stripHTML extracts the text content of an HTML fragment. Block-level
// boundaries become spaces so adjacent list items do not fuse into one
// token.
func stripHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		// Fall back to a plain tag scrub when the fragment is too
		// malformed for the parser.
		return tagRe.ReplaceAllString(s, " ")
	}

	doc.Find("br, p, li, div, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})
	return doc.Text()
}
