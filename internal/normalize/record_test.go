package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobminer/internal/types"
)

func TestRecord_FullNormalization(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	raw := types.RawRecord{
		Title:       "<b>Senior Data Engineer</b>",
		Company:     "Acme  GmbH",
		Location:    "München",
		Salary:      "55k-70k",
		Description: "<p>Build pipelines &amp; dashboards</p>",
		PostedDate:  "3 days ago",
		Source:      "stepstone",
	}

	rec := Record("job_001", raw, 0, now)

	assert.Equal(t, "Senior Data Engineer", rec.Title)
	assert.Equal(t, "Acme GmbH", rec.Company)
	assert.Equal(t, "Munich", rec.City)
	require.NotNil(t, rec.SalaryMin)
	assert.Equal(t, 55000.0, *rec.SalaryMin)
	assert.Equal(t, 70000.0, *rec.SalaryMax)
	assert.Contains(t, rec.Description, "pipelines & dashboards")
	require.NotNil(t, rec.PostedDate)
	assert.True(t, rec.PostedDate.Equal(now.AddDate(0, 0, -3)))
	assert.Equal(t, []string{"stepstone"}, rec.SourceTags)
	assert.False(t, rec.MissingTitle)
	assert.NoError(t, rec.Validate())
}

func TestRenormalize_Idempotent(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	raw := types.RawRecord{
		Title:       "Data   Scientist",
		Company:     "Beta AG",
		Location:    "Köln, Deutschland",
		Description: "<p>ML &amp; stats</p>",
	}
	rec := Record("job_001", raw, 0, now)
	before := rec

	Renormalize(&rec)
	assert.Equal(t, before, rec)

	Renormalize(&rec)
	assert.Equal(t, before, rec)
}

func TestBatch_FlagsAndDrops(t *testing.T) {
	raws := []types.RawRecord{
		{Title: "Analyst"},
		{Description: "no title here"},
		{Title: "Engineer"},
	}

	recs, stats := Batch(raws, Options{Now: time.Now()})
	assert.Equal(t, 3, stats.In)
	assert.Equal(t, 3, stats.Out)
	assert.Equal(t, 1, stats.Flagged)
	assert.Equal(t, 0, stats.Dropped)
	require.Len(t, recs, 3)
	assert.True(t, recs[1].MissingTitle)
	assert.Equal(t, 1, recs[1].IngestOrder)

	recs, stats = Batch(raws, Options{Now: time.Now(), DropInvalid: true})
	assert.Equal(t, 2, stats.Out)
	assert.Equal(t, 1, stats.Dropped)
	require.Len(t, recs, 2)
}

func TestBatch_AssignsUniqueIDs(t *testing.T) {
	raws := []types.RawRecord{{Title: "A"}, {Title: "B"}}
	recs, _ := Batch(raws, Options{Now: time.Now()})
	require.Len(t, recs, 2)
	assert.NotEmpty(t, recs[0].JobID)
	assert.NotEqual(t, recs[0].JobID, recs[1].JobID)
}
