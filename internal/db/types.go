package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a pipeline run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Source      string     `json:"source"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Run status values
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Stage constants for checkpoint artifacts
const (
	StageIngest    = "ingest"
	StageNormalize = "normalize"
	StageDedup     = "dedup"
	StageClassify  = "classify"
	StageEmbed     = "embed"
	StageCluster   = "cluster"
	StageCurate    = "curate"
	StageTag       = "tag"
)
