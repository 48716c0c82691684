package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_AliasedHeaders(t *testing.T) {
	input := strings.Join([]string{
		"Stellenbezeichnung,Arbeitgeber,Ort,Gehalt,Datum",
		"Softwareentwickler,Acme GmbH,München,45.000 €,vor 3 Tagen",
		"Data Engineer,Beta AG,Berlin,,2024-03-01",
	}, "\n")

	records, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Softwareentwickler", records[0].Title)
	assert.Equal(t, "Acme GmbH", records[0].Company)
	assert.Equal(t, "München", records[0].Location)
	assert.Equal(t, "45.000 €", records[0].Salary)
	assert.Equal(t, "vor 3 Tagen", records[0].PostedDate)
	assert.Empty(t, records[1].Salary)
}

func TestReadCSV_SkipsBlankRows(t *testing.T) {
	input := "title,company\nDev,Acme\n,\nQA,Beta\n"

	records, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Dev", records[0].Title)
	assert.Equal(t, "QA", records[1].Title)
}

func TestReadCSV_IgnoresUnknownColumns(t *testing.T) {
	input := "title,internal_id,company\nDev,x-99,Acme\n"

	records, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dev", records[0].Title)
	assert.Equal(t, "Acme", records[0].Company)
}

func TestReadCSV_NoRecognizedColumns(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("foo,bar\n1,2\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no recognized columns")
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadJSON_AliasedKeys(t *testing.T) {
	input := `[
		{"job_title": "Backend Developer", "employer": "Acme", "standort": "Hamburg", "salary": 55000},
		{"position": "Analyst", "firma": "Beta", "posted": "yesterday"}
	]`

	records, err := ReadJSON([]byte(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Backend Developer", records[0].Title)
	assert.Equal(t, "Acme", records[0].Company)
	assert.Equal(t, "Hamburg", records[0].Location)
	assert.Equal(t, "55000", records[0].Salary, "numeric values are stringified")
	assert.Equal(t, "yesterday", records[1].PostedDate)
}

func TestReadJSON_RejectsNonArray(t *testing.T) {
	_, err := ReadJSON([]byte(`{"title": "Dev"}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "json batch rejected")
}

func TestReadJSON_RejectsNestedValues(t *testing.T) {
	_, err := ReadJSON([]byte(`[{"title": {"raw": "Dev"}}]`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "json batch rejected")
}

func TestReadBatch_DetectsFormatAndTagsSource(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "batch.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("title,company\nDev,Acme\n"), 0644))

	jsonPath := filepath.Join(dir, "batch.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"title": "QA"}]`), 0644))

	csvRecords, err := ReadBatch(csvPath, "stepstone")
	require.NoError(t, err)
	require.Len(t, csvRecords, 1)
	assert.Equal(t, "stepstone", csvRecords[0].Source)

	jsonRecords, err := ReadBatch(jsonPath, "")
	require.NoError(t, err)
	require.Len(t, jsonRecords, 1)
	assert.Empty(t, jsonRecords[0].Source)
}

func TestReadBatch_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.xml")
	require.NoError(t, os.WriteFile(path, []byte("<jobs/>"), 0644))

	_, err := ReadBatch(path, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported batch format")
}

func TestCanonicalField(t *testing.T) {
	assert.Equal(t, fieldTitle, canonicalField("Job Title"))
	assert.Equal(t, fieldPostedDate, canonicalField("date-posted"))
	assert.Equal(t, fieldCompany, canonicalField("  EMPLOYER  "))
	assert.Empty(t, canonicalField("internal_id"))
}
