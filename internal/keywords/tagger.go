package keywords

import (
	"sort"

	"github.com/jonathan/jobminer/internal/types"
)

// TagStats summarizes one tagging pass. Coverage is the fraction of
// taggable jobs that received at least one keyword; the matching
// patterns are expected to keep it above ~0.80 on real batches.
type TagStats struct {
	In       int     `json:"in"`
	Tagged   int     `json:"tagged"`
	Skipped  int     `json:"skipped"`
	Coverage float64 `json:"coverage"`
}

// Tag matches every record's text against the compiled category
// patterns, writes the keyword sets onto the records, and returns the
// job↔keyword join rows. Relevance is the keyword's share of all
// keyword occurrences in that record. Records without a title are
// skipped, mirroring their exclusion from fuzzy dedup.
func Tag(records []types.JobRecord, m *Matcher) ([]types.JobKeyword, TagStats) {
	stats := TagStats{In: len(records)}
	var joins []types.JobKeyword

	for i := range records {
		rec := &records[i]
		if rec.MissingTitle {
			stats.Skipped++
			continue
		}

		matches := m.Match(rec.Title + " " + rec.Description)
		if len(matches) == 0 {
			rec.Keywords = nil
			rec.KeywordsByCategory = nil
			continue
		}

		total := 0
		for _, byText := range matches {
			for _, count := range byText {
				total += count
			}
		}

		rec.Keywords = rec.Keywords[:0]
		rec.KeywordsByCategory = make(map[string][]string, len(matches))
		for _, cat := range types.AllKeywordCategories {
			byText, ok := matches[cat]
			if !ok {
				continue
			}

			texts := make([]string, 0, len(byText))
			for text := range byText {
				texts = append(texts, text)
			}
			sort.Strings(texts)

			rec.Keywords = append(rec.Keywords, texts...)
			rec.KeywordsByCategory[string(cat)] = texts
			for _, text := range texts {
				kw, _ := m.Keyword(cat, text)
				joins = append(joins, types.JobKeyword{
					JobID:          rec.JobID,
					KeywordID:      kw.KeywordID,
					RelevanceScore: float64(byText[text]) / float64(total),
				})
			}
		}
		stats.Tagged++
	}

	taggable := stats.In - stats.Skipped
	if taggable > 0 {
		stats.Coverage = float64(stats.Tagged) / float64(taggable)
	}
	return joins, stats
}
