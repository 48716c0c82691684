// Package keywords derives a curated keyword list per category from
// clustered vocabulary terms and tags jobs whose text matches them.
package keywords

import (
	"sort"
	"strings"

	"github.com/jonathan/jobminer/internal/types"
)

// TermCluster is one cluster of vocabulary terms produced by running
// the clusterer over term embeddings (not job embeddings).
type TermCluster struct {
	ClusterID int      `json:"cluster_id"`
	Terms     []string `json:"terms"`
}

// CurationConfig maps term clusters to keyword categories. Clusters
// absent from Assignments are discarded as noise — pronoun, filler,
// and company-name clusters measurably degrade matching precision and
// must not pass through.
type CurationConfig struct {
	// Assignments maps a term-cluster id to its category.
	Assignments map[int]types.KeywordCategory
	// Cert filters candidate certification tokens; see CertFilter.
	Cert CertFilter
	// DropTerms removes individual filler terms that survive inside
	// an otherwise clean cluster.
	DropTerms map[string]bool
}

// Curate turns assigned term clusters into canonical keywords. Text is
// deduplicated within a category (first cluster wins); certification
// candidates additionally pass the acronym/blocklist filter. Keyword
// IDs are assigned in deterministic order.
func Curate(clusters []TermCluster, cfg CurationConfig) []types.Keyword {
	type catText struct {
		cat  types.KeywordCategory
		text string
	}
	seen := make(map[catText]bool)
	var out []types.Keyword

	sorted := append([]TermCluster(nil), clusters...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ClusterID < sorted[j].ClusterID })

	for _, tc := range sorted {
		cat, ok := cfg.Assignments[tc.ClusterID]
		if !ok || !cat.Valid() {
			continue
		}

		terms := append([]string(nil), tc.Terms...)
		sort.Strings(terms)
		for _, term := range terms {
			text := strings.TrimSpace(term)
			if text == "" || cfg.DropTerms[strings.ToLower(text)] {
				continue
			}
			if cat == types.CategoryCertification && !cfg.Cert.Accept(text) {
				continue
			}
			key := catText{cat: cat, text: strings.ToLower(text)}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, types.Keyword{
				KeywordID:       len(out) + 1,
				Text:            text,
				Category:        cat,
				SourceClusterID: tc.ClusterID,
			})
		}
	}
	return out
}
