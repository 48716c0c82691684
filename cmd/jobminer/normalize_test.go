package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunNormalize_FileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "batch.csv")
	outPath := filepath.Join(dir, "records.json")

	csv := "title,company,location,salary,posted_date\n" +
		"Softwareentwickler,Acme GmbH,München,45.000 €,2024-03-01\n" +
		",,,,\n"
	require.NoError(t, os.WriteFile(inPath, []byte(csv), 0644))

	normalizeInputFile = inPath
	normalizeOutputFile = outPath
	normalizeSourceTag = "stepstone"
	normalizeAnchorDate = "2024-03-15"
	normalizeDropInvalid = false
	t.Cleanup(func() {
		normalizeInputFile, normalizeOutputFile = "", ""
		normalizeSourceTag, normalizeAnchorDate = "", ""
	})

	require.NoError(t, runNormalize(nil, nil))

	records, err := readRecords(outPath)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Softwareentwickler", records[0].Title)
	assert.Equal(t, "Munich", records[0].City)
	require.NotNil(t, records[0].SalaryAvg)
	assert.InDelta(t, 45000.0, *records[0].SalaryAvg, 1e-9)
	assert.Contains(t, records[0].SourceTags, "stepstone")
}

func TestRunNormalize_MissingFlags(t *testing.T) {
	normalizeInputFile, normalizeOutputFile = "", ""

	err := runNormalize(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--in and --out are required")
}

func TestRunNormalize_BadAnchor(t *testing.T) {
	dir := t.TempDir()
	normalizeInputFile = filepath.Join(dir, "batch.csv")
	normalizeOutputFile = filepath.Join(dir, "records.json")
	normalizeAnchorDate = "15.03.2024"
	t.Cleanup(func() {
		normalizeInputFile, normalizeOutputFile, normalizeAnchorDate = "", "", ""
	})

	err := runNormalize(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --anchor")
}
