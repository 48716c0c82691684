package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageConstants(t *testing.T) {
	// Verify stage constants are defined
	stages := []string{
		StageIngest,
		StageNormalize,
		StageDedup,
		StageClassify,
		StageEmbed,
		StageCluster,
		StageCurate,
		StageTag,
	}

	seen := make(map[string]bool)
	for _, stage := range stages {
		assert.NotEmpty(t, stage, "stage constant should not be empty")
		assert.False(t, seen[stage], "stage constants must be distinct")
		seen[stage] = true
	}
}

func TestRunType(t *testing.T) {
	// Verify Run struct can be instantiated
	run := Run{
		Source: "stepstone",
		Status: RunStatusRunning,
	}

	assert.Equal(t, "stepstone", run.Source)
	assert.Equal(t, "running", run.Status)
	assert.Nil(t, run.CompletedAt)
}

func TestEmbeddingValue(t *testing.T) {
	assert.Nil(t, embeddingValue(nil))
	assert.Nil(t, embeddingValue([]float64{}))
	assert.NotNil(t, embeddingValue([]float64{0.1, 0.2}))
}
