package pipeline

import (
	"fmt"
)

// Stage names, in execution order. Classify and dedup share the
// normalize output and run concurrently; everything from embed onward
// runs on the deduplicated survivors.
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

// StageDefinition defines metadata for a pipeline stage
type StageDefinition struct {
	Name         string
	Dependencies []string
}

// StageRegistry holds all stage definitions
var StageRegistry = map[string]StageDefinition{
	StageIngest: {
		Name:         StageIngest,
		Dependencies: []string{},
	},
	StageNormalize: {
		Name:         StageNormalize,
		Dependencies: []string{StageIngest},
	},
	StageDedup: {
		Name:         StageDedup,
		Dependencies: []string{StageNormalize},
	},
	StageClassify: {
		Name:         StageClassify,
		Dependencies: []string{StageNormalize},
	},
	StageEmbed: {
		Name:         StageEmbed,
		Dependencies: []string{StageDedup, StageClassify},
	},
	StageCluster: {
		Name:         StageCluster,
		Dependencies: []string{StageEmbed},
	},
	StageCurate: {
		Name:         StageCurate,
		Dependencies: []string{StageEmbed},
	},
	StageTag: {
		Name:         StageTag,
		Dependencies: []string{StageCurate, StageDedup},
	},
}

// stageOrder is the sequential execution order respecting all
// dependencies.
var stageOrder = []string{
	StageIngest,
	StageNormalize,
	StageDedup,
	StageClassify,
	StageEmbed,
	StageCluster,
	StageCurate,
	StageTag,
}

// stageIndex returns the position of a stage in execution order, or -1
// for an unknown stage.
func stageIndex(stage string) int {
	for i, name := range stageOrder {
		if name == stage {
			return i
		}
	}
	return -1
}

// DependencyError reports a stage whose dependencies have not completed
type DependencyError struct {
	Stage               string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("stage %s: missing dependencies: %v", e.Stage, e.MissingDependencies)
}

// ValidateDependencies checks that every dependency of a stage is in
// the completed set.
func ValidateDependencies(stage string, completed map[string]bool) error {
	def, ok := StageRegistry[stage]
	if !ok {
		return fmt.Errorf("unknown stage: %s", stage)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}
	if len(missing) > 0 {
		return &DependencyError{Stage: stage, MissingDependencies: missing}
	}
	return nil
}

// AvailableStages returns the stages whose dependencies are met and
// that have not themselves completed.
func AvailableStages(completed map[string]bool) []string {
	var available []string
	for _, name := range stageOrder {
		if completed[name] {
			continue
		}
		if err := ValidateDependencies(name, completed); err != nil {
			continue
		}
		available = append(available, name)
	}
	return available
}
