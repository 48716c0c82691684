package dedup

import (
	"math"
	"strings"

	"github.com/jonathan/jobminer/internal/types"
)

// ngram bounds for the character-level fuzzy representation.
const (
	minGram = 3
	maxGram = 5
)

// compositeKey builds the weighted fuzzy-matching key for a record.
// Title and company are double-weighted by repetition so their n-grams
// dominate the location's. The canonical city stands in for the raw
// location when available, so spelling variants of one place agree.
func compositeKey(rec *types.JobRecord) string {
	title := strings.ToLower(rec.Title)
	company := strings.ToLower(rec.Company)
	location := strings.ToLower(rec.City)
	if location == "" {
		location = strings.ToLower(rec.Location)
	}
	return strings.Join([]string{title, title, company, company, location}, " ")
}

// ngramCounts produces character n-gram (3..5) term frequencies for s.
func ngramCounts(s string) map[string]float64 {
	counts := make(map[string]float64)
	runes := []rune(s)
	for n := minGram; n <= maxGram; n++ {
		for i := 0; i+n <= len(runes); i++ {
			counts[string(runes[i:i+n])]++
		}
	}
	return counts
}

// ngramIndex holds fitted IDF weights and per-record normalized TF-IDF
// vectors for one fuzzy-matching block.
type ngramIndex struct {
	vectors []map[string]float64
}

// buildNgramIndex fits IDF weights over the composite keys of the given
// records and produces one L2-normalized TF-IDF vector per record.
func buildNgramIndex(keys []string) *ngramIndex {
	df := make(map[string]int)
	tfs := make([]map[string]float64, len(keys))
	for i, key := range keys {
		tf := ngramCounts(key)
		tfs[i] = tf
		for gram := range tf {
			df[gram]++
		}
	}

	n := float64(len(keys))
	idx := &ngramIndex{vectors: make([]map[string]float64, len(keys))}
	for i, tf := range tfs {
		vec := make(map[string]float64, len(tf))
		var norm float64
		for gram, count := range tf {
			w := count * (math.Log((n+1)/(float64(df[gram])+1)) + 1)
			vec[gram] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for gram := range vec {
				vec[gram] /= norm
			}
		}
		idx.vectors[i] = vec
	}
	return idx
}

// cosine returns the cosine similarity of two normalized sparse
// vectors. Iterates the smaller map.
func cosine(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for gram, wa := range a {
		if wb, ok := b[gram]; ok {
			dot += wa * wb
		}
	}
	return dot
}
