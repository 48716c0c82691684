package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobminer/internal/config"
	"github.com/jonathan/jobminer/internal/keywords"
	"github.com/jonathan/jobminer/internal/pipeline"
	"github.com/jonathan/jobminer/internal/seniority"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full analysis pipeline on a collector batch",
	Long:  "Run ingestion, normalization, deduplication, classification, embedding, clustering, keyword curation and tagging on one collector batch file.",
	RunE:  runRun,
}

var (
	runInputFile   string
	runOutputFile  string
	runConfigFile  string
	runSourceTag   string
	runDatabaseURL string
	runResumeID    string
	runVerbose     bool
)

func init() {
	runCmd.Flags().StringVarP(&runInputFile, "input", "i", "", "Path to collector batch file (.csv or .json)")
	runCmd.Flags().StringVarP(&runOutputFile, "out", "o", "", "Path to write the result JSON (optional)")
	runCmd.Flags().StringVarP(&runConfigFile, "config", "c", "", "Path to JSON config file")
	runCmd.Flags().StringVar(&runSourceTag, "source", "", "Collector name recorded on ingested records")
	runCmd.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL URL for persistence (or DATABASE_URL env var)")
	runCmd.Flags().StringVar(&runResumeID, "resume", "", "Run ID to resume from its last completed stage (requires --db-url)")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed stage reports")

	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, _ []string) error {
	cfg := config.Config{}
	if runConfigFile != "" {
		loaded, err := config.LoadConfig(runConfigFile)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	// CLI flags win over config file values
	flags := config.Config{
		Input:       runInputFile,
		Output:      runOutputFile,
		SourceTag:   runSourceTag,
		DatabaseURL: runDatabaseURL,
	}
	cfg = flags.MergeWithDefaults(cfg)
	if runVerbose {
		cfg.Verbose = true
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	resumeID := uuid.Nil
	if runResumeID != "" {
		parsed, err := uuid.Parse(runResumeID)
		if err != nil {
			return fmt.Errorf("invalid --resume run ID: %w", err)
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("--resume requires --db-url or DATABASE_URL")
		}
		resumeID = parsed
	}
	if cfg.Input == "" && resumeID == uuid.Nil {
		return fmt.Errorf("an input batch file is required (--input or config 'input')")
	}

	opts := pipeline.RunOptions{
		InputPath:      cfg.Input,
		SourceTag:      cfg.SourceTag,
		Now:            cfg.Anchor(),
		DropInvalid:    cfg.DropInvalid,
		FuzzyThreshold: cfg.FuzzyThreshold,
		DedupShards:    cfg.DedupShards,
		Rules:          rulesFromConfig(&cfg),
		MaxFeatures:    cfg.MaxFeatures,
		MinDF:          cfg.MinDF,
		MaxDFRatio:     cfg.MaxDFRatio,
		ExtraStopwords: cfg.ExtraStopwords,
		MinK:           cfg.MinK,
		MaxK:           cfg.MaxK,
		TermClusterK:   cfg.TermClusterK,
		Seed:           cfg.Seed,
		Cert:           certFromConfig(&cfg),
		StageBudget:    cfg.StageBudget(),
		Verbose:        cfg.Verbose,
		DatabaseURL:    cfg.DatabaseURL,
		ResumeRunID:    resumeID,
	}

	result, err := pipeline.RunPipeline(context.Background(), opts)
	if err != nil {
		return err
	}

	if cfg.Output != "" {
		if err := writeJSON(cfg.Output, result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Result written to %s\n", cfg.Output)
	}
	fmt.Fprintf(os.Stdout, "Done: %d jobs, %d clusters, %d keywords\n",
		len(result.Records), len(result.Clusters), len(result.Keywords))
	return nil
}

// rulesFromConfig builds the classification rules, applying the
// configured IC exception list over the defaults.
func rulesFromConfig(cfg *config.Config) *seniority.Rules {
	if len(cfg.ManagerExceptions) == 0 {
		return nil
	}
	rules := seniority.DefaultRules()
	rules.ManagerExceptions = cfg.ManagerExceptions
	return &rules
}

// certFromConfig builds the certification filter from config, falling
// back to the default blocklist.
func certFromConfig(cfg *config.Config) keywords.CertFilter {
	filter := keywords.CertFilter{
		MinLen:           cfg.CertMinLen,
		MaxLen:           cfg.CertMaxLen,
		CompanyBlocklist: keywords.DefaultCompanyBlocklist(),
	}
	if len(cfg.CompanyBlocklist) > 0 {
		filter.CompanyBlocklist = make(map[string]bool, len(cfg.CompanyBlocklist))
		for _, name := range cfg.CompanyBlocklist {
			filter.CompanyBlocklist[name] = true
		}
	}
	return filter
}
