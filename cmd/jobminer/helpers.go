package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/jobminer/internal/types"
)

// readRecords loads a JSON array of job records produced by an earlier
// stage command.
func readRecords(path string) ([]types.JobRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}
	var records []types.JobRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse records JSON: %w", err)
	}
	return records, nil
}

// writeJSON writes a stage output as indented JSON.
func writeJSON(path string, content any) error {
	jsonBytes, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
