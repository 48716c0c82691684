package ingestion

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/jobminer/internal/types"
)

// ReadBatch loads a collector export by path, choosing the parser from
// the file extension. The sourceTag, when set, overrides the source of
// every record so a run can attribute records to the collector that
// produced the file.
func ReadBatch(path, sourceTag string) ([]types.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file %s: %w", path, err)
	}

	var records []types.RawRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		records, err = ReadCSV(bytes.NewReader(data))
	case ".json":
		records, err = ReadJSON(data)
	default:
		return nil, fmt.Errorf("unsupported batch format %q (want .csv or .json)", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	if sourceTag != "" {
		for i := range records {
			records[i].Source = sourceTag
		}
	}
	return records, nil
}
