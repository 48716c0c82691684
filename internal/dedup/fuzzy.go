package dedup

import (
	"context"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobminer/internal/types"
)

// maxFuzzyShards caps the worker count for the fuzzy pass when
// Options.Shards is unset.
const maxFuzzyShards = 8

// candidatePair is one above-threshold pair found inside a block,
// expressed in global record indices.
type candidatePair struct {
	a, b int
}

// fuzzyPass finds near-duplicate records via character n-gram TF-IDF
// cosine similarity over weighted composite keys, closes candidate
// pairs transitively with union-find, and keeps one survivor per
// group.
//
// The pairwise comparison is O(n²), so records are blocked by the
// first letter of the company (falling back to the title) and only
// within-block pairs are compared. The trade-off: duplicates whose
// company strings differ in their first folded rune are invisible to
// this pass, which costs some recall but bounds the work to the sum of
// squared block sizes. Such pairs are still caught by the exact and
// temporal passes when their key fields agree. Blocks are scored in
// parallel; the union-find merge runs single-threaded afterwards
// because it mutates shared group state.
func fuzzyPass(ctx context.Context, records []types.JobRecord, opts Options) ([]types.JobRecord, []AuditEntry, error) {
	blocks := make(map[rune][]int)
	for i := range records {
		// Titleless records carry no meaningful fuzzy key and only
		// participate in the exact pass.
		if records[i].Title == "" {
			continue
		}
		blocks[blockKey(&records[i])] = append(blocks[blockKey(&records[i])], i)
	}

	shards := opts.Shards
	if shards <= 0 {
		shards = maxFuzzyShards
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(shards)

	var mu sync.Mutex
	var pairs []candidatePair

	for _, block := range blocks {
		if len(block) < 2 {
			continue
		}
		block := block
		g.Go(func() error {
			found := scoreBlock(records, block, opts.Threshold)
			if len(found) > 0 {
				mu.Lock()
				pairs = append(pairs, found...)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	// Single-threaded merge: union-find group state is shared.
	ds := NewDisjointSet(len(records))
	for _, p := range pairs {
		ds.Union(p.a, p.b)
	}

	return resolveGroups(records, ds)
}

// blockKey returns the first folded letter of the company, or of the
// title when the company is empty.
func blockKey(rec *types.JobRecord) rune {
	s := rec.Company
	if s == "" {
		s = rec.Title
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0
	}
	return unicode.ToLower(r)
}

// scoreBlock compares all pairs within one block and returns those at
// or above the similarity threshold.
func scoreBlock(records []types.JobRecord, block []int, threshold float64) []candidatePair {
	keys := make([]string, len(block))
	for i, idx := range block {
		keys[i] = compositeKey(&records[idx])
	}
	index := buildNgramIndex(keys)

	var found []candidatePair
	for i := 0; i < len(block); i++ {
		for j := i + 1; j < len(block); j++ {
			if cosine(index.vectors[i], index.vectors[j]) >= threshold {
				found = append(found, candidatePair{a: block[i], b: block[j]})
			}
		}
	}
	return found
}

// resolveGroups picks a survivor per duplicate group and drops the
// rest, preserving input order among survivors.
func resolveGroups(records []types.JobRecord, ds *DisjointSet) ([]types.JobRecord, []AuditEntry, error) {
	removed := make(map[int]string) // index -> survivor job id
	for _, members := range ds.Groups() {
		winner := selectSurvivor(records, members)
		for _, m := range members {
			if m != winner {
				removed[m] = records[winner].JobID
			}
		}
	}

	out := records[:0:0]
	var audit []AuditEntry
	for i, rec := range records {
		if survivorID, dropped := removed[i]; dropped {
			audit = append(audit, AuditEntry{RemovedID: rec.JobID, SurvivorID: survivorID, Pass: PassFuzzy})
			continue
		}
		out = append(out, rec)
	}
	return out, audit, nil
}
