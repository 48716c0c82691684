package dedup

import "github.com/jonathan/jobminer/internal/types"

// selectSurvivor picks the representative record of a duplicate group.
// Members are scored by field completeness and description length;
// ties break by most recent posted date, then by original ingestion
// order, so the outcome is deterministic.
func selectSurvivor(records []types.JobRecord, members []int) int {
	best := members[0]
	for _, m := range members[1:] {
		if survivorBeats(&records[m], &records[best]) {
			best = m
		}
	}
	return best
}

// survivorBeats reports whether candidate a should replace the current
// best b.
func survivorBeats(a, b *types.JobRecord) bool {
	af, bf := a.NonNullFieldCount(), b.NonNullFieldCount()
	if af != bf {
		return af > bf
	}
	if len(a.Description) != len(b.Description) {
		return len(a.Description) > len(b.Description)
	}
	if postedAfter(a, b) {
		return true
	}
	if postedAfter(b, a) {
		return false
	}
	return a.IngestOrder < b.IngestOrder
}
