package ingestion

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jonathan/jobminer/internal/schemas"
	"github.com/jonathan/jobminer/internal/types"
)

// batchSchema constrains JSON collector exports: an array of flat
// objects with scalar values. Field names stay free-form; the alias
// table reconciles them after validation.
const batchSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "additionalProperties": {
      "type": ["string", "number", "boolean", "null"]
    }
  }
}`

// ReadJSON parses a collector JSON export into raw records. The
// document is validated against the batch schema before decoding;
// numeric values are stringified so the normalizer sees one input
// shape. Objects whose every known field is blank are skipped.
func ReadJSON(data []byte) ([]types.RawRecord, error) {
	if err := schemas.ValidateJSONString(batchSchema, string(data)); err != nil {
		return nil, fmt.Errorf("json batch rejected: %w", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode json batch: %w", err)
	}

	var records []types.RawRecord
	for _, row := range rows {
		var rec types.RawRecord
		for key, value := range row {
			setField(&rec, canonicalField(key), stringify(value))
		}
		if rec.Empty() {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
