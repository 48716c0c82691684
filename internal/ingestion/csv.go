package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jonathan/jobminer/internal/types"
)

// ReadCSV parses a collector CSV export into raw records. The first row
// must be a header; columns are matched through the alias table and
// unknown columns are ignored. Rows whose every known field is blank
// are skipped.
func ReadCSV(r io.Reader) ([]types.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv batch is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	fields := make([]string, len(header))
	known := 0
	for i, name := range header {
		fields[i] = canonicalField(name)
		if fields[i] != "" {
			known++
		}
	}
	if known == 0 {
		return nil, fmt.Errorf("csv header has no recognized columns: %v", header)
	}

	var records []types.RawRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", line, err)
		}

		var rec types.RawRecord
		for i, value := range row {
			if i >= len(fields) {
				break
			}
			setField(&rec, fields[i], value)
		}
		if rec.Empty() {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func setField(rec *types.RawRecord, field, value string) {
	switch field {
	case fieldTitle:
		rec.Title = value
	case fieldCompany:
		rec.Company = value
	case fieldLocation:
		rec.Location = value
	case fieldSalary:
		rec.Salary = value
	case fieldEmploymentType:
		rec.EmploymentType = value
	case fieldDescription:
		rec.Description = value
	case fieldPostedDate:
		rec.PostedDate = value
	case fieldSource:
		rec.Source = value
	}
}
