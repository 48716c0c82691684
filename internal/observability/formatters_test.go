package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jobminer/internal/dedup"
	"github.com/jonathan/jobminer/internal/types"
)

func TestPrintStageReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStageReport("normalize", 120, 115, 3, 2, 1500*time.Millisecond)
	output := buf.String()

	assert.Contains(t, output, "STAGE NORMALIZE")
	assert.Contains(t, output, "Records in:   120")
	assert.Contains(t, output, "Records out:  115")
	assert.Contains(t, output, "Dropped:      3")
	assert.Contains(t, output, "Flagged:      2")
	assert.Contains(t, output, "1.5s")
}

func TestPrintStageReport_OmitsZeroCounts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStageReport("embed", 100, 100, 0, 0, time.Second)
	output := buf.String()

	assert.NotContains(t, output, "Dropped")
	assert.NotContains(t, output, "Flagged")
}

func TestPrintDedupReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	audit := []dedup.AuditEntry{
		{RemovedID: "aaaa1111-0000-0000-0000-000000000000", SurvivorID: "bbbb2222-0000-0000-0000-000000000000", Pass: dedup.PassExact},
		{RemovedID: "cccc3333-0000-0000-0000-000000000000", SurvivorID: "bbbb2222-0000-0000-0000-000000000000", Pass: dedup.PassFuzzy},
	}

	p.PrintDedupReport(audit)
	output := buf.String()

	assert.Contains(t, output, "DEDUPLICATION")
	assert.Contains(t, output, "Removed 2 duplicates")
	assert.Contains(t, output, "exact")
	assert.Contains(t, output, "fuzzy")
	assert.Contains(t, output, "aaaa1111")
}

func TestPrintDedupReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDedupReport(nil)

	assert.Contains(t, buf.String(), "No duplicates found")
}

func TestPrintCareerLevels(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	records := []types.JobRecord{
		{CareerLevel: types.CareerEntry},
		{CareerLevel: types.CareerMid},
		{CareerLevel: types.CareerMid, IsAmbiguous: true},
		{CareerLevel: types.CareerManagement},
	}

	p.PrintCareerLevels(records)
	output := buf.String()

	assert.Contains(t, output, "CAREER LEVELS")
	assert.Contains(t, output, "ENTRY")
	assert.Contains(t, output, "MANAGEMENT")
	assert.Contains(t, output, "Ambiguous:   1")
}

func TestPrintClusters(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	clusters := []types.Cluster{
		{ClusterID: 0, MemberIDs: []string{"a", "b", "c"}},
		{ClusterID: 1, MemberIDs: []string{"d"}},
	}

	p.PrintClusters(clusters)
	output := buf.String()

	assert.Contains(t, output, "JOB CLUSTERS")
	assert.Contains(t, output, "Found 2 clusters")
	assert.Contains(t, output, "3 jobs")
}

func TestPrintKeywords(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	keywords := []types.Keyword{
		{KeywordID: 1, Text: "Python", Category: types.CategoryTechStack},
		{KeywordID: 2, Text: "PMP", Category: types.CategoryCertification},
	}

	p.PrintKeywords(keywords)
	output := buf.String()

	assert.Contains(t, output, "KEYWORD DICTIONARY")
	assert.Contains(t, output, "Python")
	assert.Contains(t, output, "PMP")
}

func TestPrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunSummary("dddd4444-0000-0000-0000-000000000000", 980, 7, 0.873)
	output := buf.String()

	assert.Contains(t, output, "RUN COMPLETE")
	assert.Contains(t, output, "dddd4444")
	assert.Contains(t, output, "980")
	assert.Contains(t, output, "87.3%")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	audit := []dedup.AuditEntry{
		{RemovedID: strings.Repeat("x", 80), SurvivorID: strings.Repeat("y", 80), Pass: dedup.PassExact},
	}

	p.PrintDedupReport(audit)
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}
