package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestJobRecordValidate_SalaryOrdering(t *testing.T) {
	rec := &JobRecord{
		JobID:     "job_001",
		SalaryMin: floatPtr(65000),
		SalaryMax: floatPtr(45000),
	}
	err := rec.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "salary_min")

	rec.SalaryMin = floatPtr(45000)
	rec.SalaryMax = floatPtr(65000)
	assert.NoError(t, rec.Validate())
}

func TestJobRecordValidate_EmptyID(t *testing.T) {
	rec := &JobRecord{}
	assert.Error(t, rec.Validate())
}

func TestJobRecordValidate_CareerLevel(t *testing.T) {
	rec := &JobRecord{JobID: "job_001", CareerLevel: "INTERGALACTIC"}
	assert.Error(t, rec.Validate())

	rec.CareerLevel = CareerMid
	assert.NoError(t, rec.Validate())
}

func TestNonNullFieldCount(t *testing.T) {
	now := time.Now()
	rec := &JobRecord{
		JobID:      "job_001",
		Title:      "Data Scientist",
		Company:    "Acme GmbH",
		SalaryMin:  floatPtr(50000),
		PostedDate: &now,
	}
	// title + company + salary_min + posted_date
	assert.Equal(t, 4, rec.NonNullFieldCount())

	empty := &JobRecord{JobID: "job_002"}
	assert.Equal(t, 0, empty.NonNullFieldCount())
}

func TestSourceTags(t *testing.T) {
	rec := &JobRecord{JobID: "job_001"}
	rec.AddSourceTag("stepstone")
	rec.AddSourceTag("stepstone")
	rec.AddSourceTag("indeed")
	rec.AddSourceTag("")

	assert.Equal(t, []string{"stepstone", "indeed"}, rec.SourceTags)
	assert.True(t, rec.HasSourceTag("indeed"))
	assert.False(t, rec.HasSourceTag("linkedin"))
}

func TestKeywordValidate(t *testing.T) {
	kw := &Keyword{KeywordID: 1, Text: "Python", Category: CategoryTechStack}
	assert.NoError(t, kw.Validate())

	kw.Category = "snacks"
	assert.Error(t, kw.Validate())

	kw.Category = CategoryBenefit
	kw.Text = ""
	assert.Error(t, kw.Validate())
}

func TestClusterValidate(t *testing.T) {
	c := &Cluster{ClusterID: 0, Centroid: []float64{0.1, 0.2}, MemberIDs: []string{"a", "b", "c"}}
	assert.NoError(t, c.Validate(2))
	assert.Equal(t, 3, c.Size())

	assert.Error(t, c.Validate(3))
	assert.Error(t, (&Cluster{ClusterID: -1}).Validate(0))
}
