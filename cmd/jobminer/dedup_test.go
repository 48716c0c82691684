package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobminer/internal/dedup"
	"github.com/jonathan/jobminer/internal/types"
)

func TestRunDedup_FileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "records.json")
	outPath := filepath.Join(dir, "survivors.json")
	auditPath := filepath.Join(dir, "audit.json")

	records := []types.JobRecord{
		{JobID: "a", Title: "Dev", Company: "Acme", Location: "Berlin", Description: "go services"},
		{JobID: "b", Title: "Dev", Company: "Acme", Location: "Berlin", Description: "go services"},
		{JobID: "c", Title: "QA", Company: "Beta", Location: "Hamburg", Description: "testing"},
	}
	require.NoError(t, writeJSON(inPath, records))

	dedupInputFile = inPath
	dedupOutputFile = outPath
	dedupAuditFile = auditPath
	dedupThreshold = 0
	dedupShards = 0
	t.Cleanup(func() {
		dedupInputFile, dedupOutputFile, dedupAuditFile = "", "", ""
	})

	require.NoError(t, runDedup(nil, nil))

	survivors, err := readRecords(outPath)
	require.NoError(t, err)
	require.Len(t, survivors, 2)

	ids := []string{survivors[0].JobID, survivors[1].JobID}
	assert.ElementsMatch(t, []string{"a", "c"}, ids)

	auditData, err := os.ReadFile(auditPath)
	require.NoError(t, err)
	var audit []dedup.AuditEntry
	require.NoError(t, json.Unmarshal(auditData, &audit))
	require.Len(t, audit, 1)
	assert.Equal(t, "b", audit[0].RemovedID)
	assert.Equal(t, "a", audit[0].SurvivorID)
	assert.Equal(t, dedup.PassExact, audit[0].Pass)
}

func TestRunDedup_MissingFlags(t *testing.T) {
	dedupInputFile, dedupOutputFile = "", ""

	err := runDedup(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--in and --out are required")
}
