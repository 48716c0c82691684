package dedup

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/jobminer/internal/types"
)

// DefaultThreshold is the fuzzy cosine similarity above which a pair is
// a candidate duplicate. Inherited from the source analysis; tunable.
const DefaultThreshold = 0.85

// Options configures a deduplication run.
type Options struct {
	// Threshold is the fuzzy cosine similarity cut-off. Zero means
	// DefaultThreshold.
	Threshold float64
	// Shards bounds the number of parallel workers for the fuzzy
	// pass. Zero means one worker per block up to a small cap.
	Shards int
}

// Pass names the deduplication pass that removed a record.
type Pass string

const (
	PassExact    Pass = "exact"
	PassFuzzy    Pass = "fuzzy"
	PassTemporal Pass = "temporal"
)

// AuditEntry records one removed duplicate and the record it collapsed
// into.
type AuditEntry struct {
	RemovedID  string `json:"removed_id"`
	SurvivorID string `json:"survivor_id"`
	Pass       Pass   `json:"pass"`
}

// Stats summarizes one deduplication run for the stage report.
type Stats struct {
	In              int `json:"in"`
	Out             int `json:"out"`
	ExactRemoved    int `json:"exact_removed"`
	FuzzyRemoved    int `json:"fuzzy_removed"`
	TemporalRemoved int `json:"temporal_removed"`
}

// Result is the outcome of a deduplication run.
type Result struct {
	Records []types.JobRecord
	Audit   []AuditEntry
	Stats   Stats
}

// Run executes the three deduplication passes in order: exact, fuzzy,
// temporal. The input order is preserved for surviving records.
func Run(ctx context.Context, records []types.JobRecord, opts Options) (*Result, error) {
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Threshold < 0 || opts.Threshold > 1 {
		return nil, fmt.Errorf("fuzzy threshold %.3f out of range [0,1]", opts.Threshold)
	}

	res := &Result{Stats: Stats{In: len(records)}}

	records, exactAudit := exactPass(records)
	res.Audit = append(res.Audit, exactAudit...)
	res.Stats.ExactRemoved = len(exactAudit)

	records, fuzzyAudit, err := fuzzyPass(ctx, records, opts)
	if err != nil {
		return nil, err
	}
	res.Audit = append(res.Audit, fuzzyAudit...)
	res.Stats.FuzzyRemoved = len(fuzzyAudit)

	records, temporalAudit := temporalPass(records)
	res.Audit = append(res.Audit, temporalAudit...)
	res.Stats.TemporalRemoved = len(temporalAudit)

	res.Records = records
	res.Stats.Out = len(records)
	return res, nil
}

// exactKey joins the fields whose byte-identity defines an exact
// duplicate.
func exactKey(rec *types.JobRecord) string {
	return strings.Join([]string{rec.Title, rec.Company, rec.Location, rec.Description}, "\x1f")
}

// exactPass collapses records identical on (title, company, location,
// description), keeping the first-seen record.
func exactPass(records []types.JobRecord) ([]types.JobRecord, []AuditEntry) {
	seen := make(map[string]string, len(records))
	out := records[:0:0]
	var audit []AuditEntry

	for _, rec := range records {
		key := exactKey(&rec)
		if survivorID, dup := seen[key]; dup {
			audit = append(audit, AuditEntry{RemovedID: rec.JobID, SurvivorID: survivorID, Pass: PassExact})
			continue
		}
		seen[key] = rec.JobID
		out = append(out, rec)
	}
	return out, audit
}

// temporalKey joins the fields whose identity defines a repost.
func temporalKey(rec *types.JobRecord) string {
	return strings.Join([]string{rec.Title, rec.Company, rec.Location}, "\x1f")
}

// temporalPass collapses reposts: records sharing (title, company,
// location) exactly where a strictly latest posted date exists. This
// catches reposts whose description was edited between postings. A
// record is removed only when another record of its key is strictly
// newer; equal dates and all-undated groups have no ordering and keep
// every record. Undated records lose to any dated one.
func temporalPass(records []types.JobRecord) ([]types.JobRecord, []AuditEntry) {
	groups := make(map[string][]int, len(records))
	for i, rec := range records {
		key := temporalKey(&rec)
		groups[key] = append(groups[key], i)
	}

	keep := make(map[int]bool, len(records))
	survivorOf := make(map[int]int)
	for _, idxs := range groups {
		var maxDate *time.Time
		for _, i := range idxs {
			if d := records[i].PostedDate; d != nil && (maxDate == nil || d.After(*maxDate)) {
				maxDate = d
			}
		}
		if maxDate == nil {
			// No dated record in the group, nothing to order by.
			for _, i := range idxs {
				keep[i] = true
			}
			continue
		}

		survivor := -1
		for _, i := range idxs {
			if d := records[i].PostedDate; d != nil && d.Equal(*maxDate) {
				// Every record tied on the latest date survives; the
				// first-ingested of them is the audit survivor for the
				// removed ones.
				keep[i] = true
				if survivor == -1 {
					survivor = i
				}
			}
		}
		for _, i := range idxs {
			if !keep[i] {
				survivorOf[i] = survivor
			}
		}
	}

	out := records[:0:0]
	var audit []AuditEntry
	for i, rec := range records {
		if keep[i] {
			out = append(out, rec)
			continue
		}
		survivor := records[survivorOf[i]]
		audit = append(audit, AuditEntry{RemovedID: rec.JobID, SurvivorID: survivor.JobID, Pass: PassTemporal})
	}
	sort.Slice(audit, func(i, j int) bool { return audit[i].RemovedID < audit[j].RemovedID })
	return out, audit
}

// postedAfter reports whether a was posted after b. A dated record
// beats an undated one; full ties keep the earlier-ingested record.
func postedAfter(a, b *types.JobRecord) bool {
	switch {
	case a.PostedDate == nil:
		return false
	case b.PostedDate == nil:
		return true
	case a.PostedDate.Equal(*b.PostedDate):
		return false
	default:
		return a.PostedDate.After(*b.PostedDate)
	}
}
