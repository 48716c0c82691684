// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config represents the pipeline configuration that can be loaded from a
// JSON file. All fields are optional; missing values use the component
// defaults or must be provided via CLI flags. The heuristic constants
// (fuzzy threshold, acronym length bounds) live here rather than in code
// so they can be re-tuned against labeled samples without a rebuild.
type Config struct {
	// Paths
	Input  string `json:"input,omitempty"`  // Path to a collector batch file (CSV or JSON)
	Output string `json:"output,omitempty"` // Path for the result JSON of file-based runs

	// Ingestion
	SourceTag   string `json:"source_tag,omitempty"`  // Collector name recorded on ingested records
	DropInvalid bool   `json:"drop_invalid,omitempty"` // Drop records that fail the title check instead of flagging
	AnchorDate  string `json:"anchor_date,omitempty"`  // Anchor for relative dates, YYYY-MM-DD (default: now)

	// Deduplication
	FuzzyThreshold float64 `json:"fuzzy_threshold,omitempty" validate:"gte=0,lte=1"` // Cosine cutoff for near-duplicates
	DedupShards    int     `json:"dedup_shards,omitempty" validate:"gte=0"`          // Parallel shards for the fuzzy pass

	// Embedding
	MaxFeatures    int      `json:"max_features,omitempty" validate:"gte=0"`
	MinDF          int      `json:"min_df,omitempty" validate:"gte=0"`
	MaxDFRatio     float64  `json:"max_df_ratio,omitempty" validate:"gte=0,lte=1"`
	ExtraStopwords []string `json:"extra_stopwords,omitempty"`

	// Clustering
	MinK         int   `json:"min_k,omitempty" validate:"gte=0"`
	MaxK         int   `json:"max_k,omitempty" validate:"gte=0"`
	TermClusterK int   `json:"term_cluster_k,omitempty" validate:"gte=0"` // Clusters for vocabulary term grouping
	Seed         int64 `json:"seed,omitempty"`

	// Classification and keyword curation
	ManagerExceptions []string `json:"manager_exceptions,omitempty"` // Titles whose "manager" is an IC role
	CompanyBlocklist  []string `json:"company_blocklist,omitempty"`  // Acronyms excluded from certifications
	CertMinLen        int      `json:"cert_min_len,omitempty" validate:"gte=0"`
	CertMaxLen        int      `json:"cert_max_len,omitempty" validate:"gte=0"`

	// Behavior
	StageBudgetSeconds int    `json:"stage_budget_seconds,omitempty" validate:"gte=0"` // Wall-clock limit per stage, 0 disables
	Verbose            bool   `json:"verbose,omitempty"`                               // Print detailed stage reports
	DatabaseURL        string `json:"database_url,omitempty"`                          // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.MinK != 0 && c.MaxK != 0 && c.MinK > c.MaxK {
		return fmt.Errorf("config error: 'min_k' (%d) exceeds 'max_k' (%d)", c.MinK, c.MaxK)
	}
	if c.CertMinLen != 0 && c.CertMaxLen != 0 && c.CertMinLen > c.CertMaxLen {
		return fmt.Errorf("config error: 'cert_min_len' (%d) exceeds 'cert_max_len' (%d)", c.CertMinLen, c.CertMaxLen)
	}
	if c.AnchorDate != "" {
		if _, err := time.Parse("2006-01-02", c.AnchorDate); err != nil {
			return fmt.Errorf("config error: 'anchor_date' must be YYYY-MM-DD: %w", err)
		}
	}

	// Validate file paths exist (if specified)
	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}

	return nil
}

// Anchor returns the reference time for resolving relative posting dates:
// the configured anchor date, or the current time when unset.
func (c *Config) Anchor() time.Time {
	if c.AnchorDate != "" {
		if t, err := time.Parse("2006-01-02", c.AnchorDate); err == nil {
			return t
		}
	}
	return time.Now()
}

// StageBudget returns the per-stage wall-clock budget, or zero when disabled.
func (c *Config) StageBudget() time.Duration {
	return time.Duration(c.StageBudgetSeconds) * time.Second
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.SourceTag == "" {
		result.SourceTag = defaults.SourceTag
	}
	if result.AnchorDate == "" {
		result.AnchorDate = defaults.AnchorDate
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Numeric fields: use default if zero
	if result.FuzzyThreshold == 0 {
		result.FuzzyThreshold = defaults.FuzzyThreshold
	}
	if result.DedupShards == 0 {
		result.DedupShards = defaults.DedupShards
	}
	if result.MaxFeatures == 0 {
		result.MaxFeatures = defaults.MaxFeatures
	}
	if result.MinDF == 0 {
		result.MinDF = defaults.MinDF
	}
	if result.MaxDFRatio == 0 {
		result.MaxDFRatio = defaults.MaxDFRatio
	}
	if result.MinK == 0 {
		result.MinK = defaults.MinK
	}
	if result.MaxK == 0 {
		result.MaxK = defaults.MaxK
	}
	if result.TermClusterK == 0 {
		result.TermClusterK = defaults.TermClusterK
	}
	if result.Seed == 0 {
		result.Seed = defaults.Seed
	}
	if result.CertMinLen == 0 {
		result.CertMinLen = defaults.CertMinLen
	}
	if result.CertMaxLen == 0 {
		result.CertMaxLen = defaults.CertMaxLen
	}
	if result.StageBudgetSeconds == 0 {
		result.StageBudgetSeconds = defaults.StageBudgetSeconds
	}

	// Slice fields: use default if unset
	if result.ExtraStopwords == nil {
		result.ExtraStopwords = defaults.ExtraStopwords
	}
	if result.ManagerExceptions == nil {
		result.ManagerExceptions = defaults.ManagerExceptions
	}
	if result.CompanyBlocklist == nil {
		result.CompanyBlocklist = defaults.CompanyBlocklist
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
