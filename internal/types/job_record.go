// Package types defines the shared data model for the job-market pipeline.
package types

import (
	"fmt"
	"time"
)

// CareerLevel is one of the four career-level categories assigned by the
// seniority classifier.
type CareerLevel string

const (
	CareerEntry      CareerLevel = "ENTRY"
	CareerMid        CareerLevel = "MID"
	CareerSenior     CareerLevel = "SENIOR"
	CareerManagement CareerLevel = "MANAGEMENT"
)

// Valid reports whether the career level is one of the four known values.
func (c CareerLevel) Valid() bool {
	switch c {
	case CareerEntry, CareerMid, CareerSenior, CareerManagement:
		return true
	}
	return false
}

// JobRecord is one merged job posting flowing through the pipeline.
// It is created at ingestion and mutated in place by each stage.
type JobRecord struct {
	JobID string `json:"job_id"`

	Title       string `json:"title"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country,omitempty"`
	Description string `json:"description,omitempty"`

	SalaryMin *float64 `json:"salary_min,omitempty"`
	SalaryMax *float64 `json:"salary_max,omitempty"`
	SalaryAvg *float64 `json:"salary_avg,omitempty"`
	Currency  string   `json:"currency,omitempty"`

	EmploymentType string     `json:"employment_type,omitempty"`
	PostedDate     *time.Time `json:"posted_date,omitempty"`
	SourceTags     []string   `json:"source_tags,omitempty"`

	CareerLevel CareerLevel `json:"career_level,omitempty"`
	IsAmbiguous bool        `json:"is_ambiguous,omitempty"`

	// MissingTitle marks a record that failed the minimum-viability
	// check but was retained under the default lenient policy.
	MissingTitle bool `json:"missing_title,omitempty"`

	ClusterID *int     `json:"cluster_id,omitempty"`
	Keywords  []string `json:"keywords,omitempty"`

	// KeywordsByCategory maps a keyword category to the matched subset.
	KeywordsByCategory map[string][]string `json:"keywords_by_category,omitempty"`

	// Embedding is the L2-normalized TF-IDF vector of the description.
	// Populated by the embedding stage, consumed by the clusterer.
	Embedding []float64 `json:"embedding,omitempty"`

	// IngestOrder is the zero-based position within the ingested batch,
	// used as the final deterministic tie-break during deduplication.
	IngestOrder int `json:"ingest_order"`
}

// Validate checks the record's internal invariants.
func (j *JobRecord) Validate() error {
	if j.JobID == "" {
		return fmt.Errorf("job record has empty job_id")
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMin > *j.SalaryMax {
		return fmt.Errorf("job %s: salary_min %.2f exceeds salary_max %.2f", j.JobID, *j.SalaryMin, *j.SalaryMax)
	}
	if j.CareerLevel != "" && !j.CareerLevel.Valid() {
		return fmt.Errorf("job %s: unknown career level %q", j.JobID, j.CareerLevel)
	}
	return nil
}

// NonNullFieldCount counts the populated scalar fields of the record.
// Used by survivor selection: more complete records win.
func (j *JobRecord) NonNullFieldCount() int {
	count := 0
	for _, s := range []string{j.Title, j.Company, j.Location, j.City, j.State, j.Country, j.Description, j.EmploymentType, j.Currency} {
		if s != "" {
			count++
		}
	}
	if j.SalaryMin != nil {
		count++
	}
	if j.SalaryMax != nil {
		count++
	}
	if j.PostedDate != nil {
		count++
	}
	return count
}

// HasSourceTag reports whether the record carries the given collector tag.
func (j *JobRecord) HasSourceTag(tag string) bool {
	for _, t := range j.SourceTags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddSourceTag appends a collector tag if not already present.
func (j *JobRecord) AddSourceTag(tag string) {
	if tag == "" || j.HasSourceTag(tag) {
		return
	}
	j.SourceTags = append(j.SourceTags, tag)
}
