package keywords

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/jobminer/internal/types"
)

// Matcher tags text against curated keywords using one compiled
// OR-pattern per category. Compiling per category instead of per
// keyword is what keeps tagging linear in the text length; the naive
// per-keyword nested loop is orders of magnitude slower on real
// batches.
type Matcher struct {
	patterns map[types.KeywordCategory]*regexp.Regexp
	// canonical maps category + folded match text back to the keyword.
	canonical map[types.KeywordCategory]map[string]types.Keyword
}

// NewMatcher compiles the per-category patterns for the given curated
// keywords.
func NewMatcher(keywords []types.Keyword) (*Matcher, error) {
	byCategory := make(map[types.KeywordCategory][]types.Keyword)
	for _, kw := range keywords {
		if err := kw.Validate(); err != nil {
			return nil, err
		}
		byCategory[kw.Category] = append(byCategory[kw.Category], kw)
	}

	m := &Matcher{
		patterns:  make(map[types.KeywordCategory]*regexp.Regexp),
		canonical: make(map[types.KeywordCategory]map[string]types.Keyword),
	}
	for cat, kws := range byCategory {
		alternatives := make([]string, 0, len(kws))
		fold := make(map[string]types.Keyword, len(kws))
		for _, kw := range kws {
			alternatives = append(alternatives, termPattern(kw.Text))
			fold[foldMatch(kw.Text)] = kw
		}

		pattern, err := regexp.Compile("(?i)(?:" + strings.Join(alternatives, "|") + ")")
		if err != nil {
			return nil, fmt.Errorf("compiling %s pattern: %w", cat, err)
		}
		m.patterns[cat] = pattern
		m.canonical[cat] = fold
	}
	return m, nil
}

// termPattern builds the regex alternative for one keyword. Word
// boundaries guard purely alphanumeric edges ("Python" must not match
// inside "Pythonic"); terms whose edge is a symbol ("C++", ".NET",
// "C#") get no boundary on that side because \b would never hold
// there. Internal whitespace tolerates irregular spacing.
func termPattern(term string) string {
	parts := strings.Fields(term)
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = regexp.QuoteMeta(p)
	}
	body := strings.Join(escaped, `[\s\p{Z}]+`)

	if startsWithWordChar(term) {
		body = `\b` + body
	}
	if endsWithWordChar(term) {
		body += `\b`
	}
	return body
}

func startsWithWordChar(s string) bool {
	if s == "" {
		return false
	}
	return isWordChar(rune(s[0]))
}

func endsWithWordChar(s string) bool {
	if s == "" {
		return false
	}
	return isWordChar(rune(s[len(s)-1]))
}

func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// foldMatch normalizes matched text for canonical lookup: lowercase
// with internal whitespace collapsed.
func foldMatch(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Match returns the keywords of every category found in the text,
// keyed by category, each with its occurrence count.
func (m *Matcher) Match(text string) map[types.KeywordCategory]map[string]int {
	if text == "" {
		return nil
	}

	out := make(map[types.KeywordCategory]map[string]int)
	for cat, pattern := range m.patterns {
		for _, hit := range pattern.FindAllString(text, -1) {
			kw, ok := m.canonical[cat][foldMatch(hit)]
			if !ok {
				continue
			}
			if out[cat] == nil {
				out[cat] = make(map[string]int)
			}
			out[cat][kw.Text]++
		}
	}
	return out
}

// Keyword resolves a canonical keyword by category and text.
func (m *Matcher) Keyword(cat types.KeywordCategory, text string) (types.Keyword, bool) {
	kw, ok := m.canonical[cat][foldMatch(text)]
	return kw, ok
}
