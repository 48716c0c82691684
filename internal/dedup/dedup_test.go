package dedup

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobminer/internal/types"
)

func timePtr(t time.Time) *time.Time { return &t }

func job(id, title, company, location, description string, order int) types.JobRecord {
	return types.JobRecord{
		JobID:       id,
		Title:       title,
		Company:     company,
		Location:    location,
		Description: description,
		IngestOrder: order,
	}
}

func TestExactPass_CollapsesIdenticalRecords(t *testing.T) {
	records := []types.JobRecord{
		job("a", "Data Scientist", "Acme", "Berlin", "desc", 0),
		job("b", "Data Scientist", "Acme", "Berlin", "desc", 1),
		job("c", "Data Engineer", "Acme", "Berlin", "desc", 2),
	}

	out, audit := exactPass(records)
	require.Len(t, out, 2)
	require.Len(t, audit, 1)
	assert.Equal(t, "b", audit[0].RemovedID)
	assert.Equal(t, "a", audit[0].SurvivorID)
	assert.Equal(t, PassExact, audit[0].Pass)
}

func TestTemporalPass_KeepsLatestRepost(t *testing.T) {
	jan10 := timePtr(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	jan20 := timePtr(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))

	old := job("old", "Data Scientist", "Acme", "Berlin", "original text", 0)
	old.PostedDate = jan10
	repost := job("new", "Data Scientist", "Acme", "Berlin", "edited text", 1)
	repost.PostedDate = jan20

	out, audit := temporalPass([]types.JobRecord{old, repost})
	require.Len(t, out, 1)
	assert.Equal(t, "new", out[0].JobID)
	require.Len(t, audit, 1)
	assert.Equal(t, "old", audit[0].RemovedID)
	assert.Equal(t, "new", audit[0].SurvivorID)
}

func TestTemporalPass_UndatedLosesToDated(t *testing.T) {
	dated := job("dated", "Analyst", "Beta", "Hamburg", "x", 0)
	dated.PostedDate = timePtr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	undated := job("undated", "Analyst", "Beta", "Hamburg", "y", 1)

	out, _ := temporalPass([]types.JobRecord{undated, dated})
	require.Len(t, out, 1)
	assert.Equal(t, "dated", out[0].JobID)
}

func TestTemporalPass_EqualDatesAllSurvive(t *testing.T) {
	feb1 := timePtr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	a := job("a", "Analyst", "Beta", "Hamburg", "first wording", 0)
	a.PostedDate = feb1
	b := job("b", "Analyst", "Beta", "Hamburg", "second wording", 1)
	b.PostedDate = feb1

	out, audit := temporalPass([]types.JobRecord{a, b})
	require.Len(t, out, 2)
	assert.Empty(t, audit)
}

func TestTemporalPass_AllUndatedAllSurvive(t *testing.T) {
	a := job("a", "Analyst", "Beta", "Hamburg", "first wording", 0)
	b := job("b", "Analyst", "Beta", "Hamburg", "second wording", 1)

	out, audit := temporalPass([]types.JobRecord{a, b})
	require.Len(t, out, 2)
	assert.Empty(t, audit)
}

func TestFuzzyPass_NearDuplicateCityVariants(t *testing.T) {
	desc := strings.Repeat("We build data products for European retail clients. ", 10)

	a := job("a", "Data Scientist", "Acme GmbH", "München", desc, 0)
	a.City = "Munich"
	a.PostedDate = timePtr(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))

	b := job("b", "Data Scientist", "Acme GmbH", "Munich", desc+"Two extra sentences here. Benefits included.", 1)
	b.City = "Munich"
	b.PostedDate = timePtr(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))

	res, err := Run(context.Background(), []types.JobRecord{a, b}, Options{})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	// B wins: more complete description and later posted date.
	assert.Equal(t, "b", res.Records[0].JobID)
	assert.Equal(t, "Munich", res.Records[0].City)
	require.Len(t, res.Audit, 1)
	assert.Equal(t, "a", res.Audit[0].RemovedID)
	assert.Equal(t, PassFuzzy, res.Audit[0].Pass)
}

func TestFuzzyPass_DissimilarRecordsSurvive(t *testing.T) {
	a := job("a", "Embedded Firmware Engineer", "Autowerk AG", "Stuttgart", "C and Rust on bare metal", 0)
	b := job("b", "HR Business Partner", "Acme GmbH", "Berlin", "People operations", 1)

	res, err := Run(context.Background(), []types.JobRecord{a, b}, Options{})
	require.NoError(t, err)
	assert.Len(t, res.Records, 2)
	assert.Empty(t, res.Audit)
}

func TestFuzzyPass_TitlelessBypassesFuzzy(t *testing.T) {
	a := job("a", "", "Acme GmbH", "Berlin", "desc one", 0)
	b := job("b", "", "Acme GmbH", "Berlin", "desc two", 1)

	res, err := Run(context.Background(), []types.JobRecord{a, b}, Options{})
	require.NoError(t, err)
	// Different descriptions, so not exact duplicates either; but the
	// temporal pass still collapses them on (title, company, location).
	// Titleless records must never enter the fuzzy pass itself.
	for _, entry := range res.Audit {
		assert.NotEqual(t, PassFuzzy, entry.Pass)
	}
}

func TestSurvivorCompleteness(t *testing.T) {
	min := 50000.0
	sparse := job("sparse", "Data Scientist", "Acme GmbH", "Berlin", "short", 0)
	rich := job("rich", "Data Scientist", "Acme GmbH", "Berlin", "a considerably longer description", 1)
	rich.SalaryMin = &min
	rich.EmploymentType = "Full-time"

	winner := selectSurvivor([]types.JobRecord{sparse, rich}, []int{0, 1})
	assert.Equal(t, 1, winner)

	// The survivor's non-null field count dominates every member.
	records := []types.JobRecord{sparse, rich}
	for _, m := range []int{0, 1} {
		assert.GreaterOrEqual(t, records[winner].NonNullFieldCount(), records[m].NonNullFieldCount())
	}
}

func TestSurvivorTieBreak_IngestOrder(t *testing.T) {
	a := job("a", "Analyst", "Beta", "Hamburg", "same", 3)
	b := job("b", "Analyst", "Beta", "Hamburg", "same", 7)

	winner := selectSurvivor([]types.JobRecord{a, b}, []int{0, 1})
	assert.Equal(t, 0, winner, "earlier ingestion order wins a full tie")
}

func TestRun_ThresholdValidation(t *testing.T) {
	_, err := Run(context.Background(), nil, Options{Threshold: 1.5})
	assert.Error(t, err)
}

func TestRun_TunableThreshold(t *testing.T) {
	// With an absurdly low threshold, any same-block pair groups.
	a := job("a", "Backend Engineer", "Acme", "Berlin", "x", 0)
	b := job("b", "Frontend Developer", "Acme", "Munich", "y", 1)

	res, err := Run(context.Background(), []types.JobRecord{a, b}, Options{Threshold: 0.01})
	require.NoError(t, err)
	assert.Len(t, res.Records, 1)
}
