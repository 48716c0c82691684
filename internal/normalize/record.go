package normalize

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobminer/internal/types"
)

// Options configures batch normalization.
type Options struct {
	// Now anchors relative date expressions ("3 days ago").
	Now time.Time
	// DropInvalid removes records that fail the minimum-viability
	// check (empty title) instead of retaining them flagged.
	DropInvalid bool
}

// Stats summarizes one normalization pass for the stage report.
type Stats struct {
	In      int `json:"in"`
	Out     int `json:"out"`
	Dropped int `json:"dropped"`
	Flagged int `json:"flagged"`
}

// Record normalizes one raw collector record into a JobRecord.
// Sub-parsers never fail; unparseable salary, date, and location
// fields simply stay absent.
func Record(jobID string, raw types.RawRecord, order int, now time.Time) types.JobRecord {
	rec := types.JobRecord{
		JobID:          jobID,
		Title:          CleanText(raw.Title),
		Company:        CleanText(raw.Company),
		Description:    CleanText(raw.Description),
		EmploymentType: CleanText(raw.EmploymentType),
		IngestOrder:    order,
	}

	sal := ParseSalary(raw.Salary)
	rec.SalaryMin = sal.Min
	rec.SalaryMax = sal.Max
	rec.SalaryAvg = sal.Avg
	rec.Currency = sal.Currency

	rec.PostedDate = ParseDate(raw.PostedDate, now)

	loc := ParseLocation(CleanText(raw.Location))
	rec.Location = loc.Raw
	rec.City = loc.City
	rec.State = loc.State
	rec.Country = loc.Country

	rec.AddSourceTag(raw.Source)
	rec.MissingTitle = rec.Title == ""
	return rec
}

// Renormalize re-applies text and location normalization to an already
// built JobRecord in place. Running it on normalized input is a no-op,
// which keeps re-ingestion of checkpointed artifacts safe.
func Renormalize(rec *types.JobRecord) {
	rec.Title = CleanText(rec.Title)
	rec.Company = CleanText(rec.Company)
	rec.Description = CleanText(rec.Description)
	rec.EmploymentType = CleanText(rec.EmploymentType)

	loc := ParseLocation(CleanText(rec.Location))
	rec.Location = loc.Raw
	if rec.City == "" {
		rec.City = loc.City
	}
	if rec.State == "" {
		rec.State = loc.State
	}
	if rec.Country == "" {
		rec.Country = loc.Country
	}
	rec.MissingTitle = rec.Title == ""
}

// Batch normalizes a batch of raw records, assigning stable job IDs in
// ingestion order. Records failing the minimum-viability check are
// flagged and retained unless opts.DropInvalid is set.
func Batch(raws []types.RawRecord, opts Options) ([]types.JobRecord, Stats) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	stats := Stats{In: len(raws)}
	out := make([]types.JobRecord, 0, len(raws))
	for i, raw := range raws {
		rec := Record(uuid.NewString(), raw, i, now)
		if rec.MissingTitle {
			if opts.DropInvalid {
				stats.Dropped++
				continue
			}
			stats.Flagged++
		}
		out = append(out, rec)
	}
	stats.Out = len(out)
	return out, stats
}
