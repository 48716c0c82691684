package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobminer/internal/ingestion"
	"github.com/jonathan/jobminer/internal/normalize"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Ingest and normalize a collector batch into job records",
	Long:  "Read a collector batch file (.csv or .json), reconcile field aliases, and normalize salaries, dates, locations and text into job record JSON.",
	RunE:  runNormalize,
}

var (
	normalizeInputFile   string
	normalizeOutputFile  string
	normalizeSourceTag   string
	normalizeAnchorDate  string
	normalizeDropInvalid bool
)

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeInputFile, "in", "i", "", "Path to collector batch file (required)")
	normalizeCmd.Flags().StringVarP(&normalizeOutputFile, "out", "o", "", "Path to output records JSON (required)")
	normalizeCmd.Flags().StringVar(&normalizeSourceTag, "source", "", "Collector name recorded on ingested records")
	normalizeCmd.Flags().StringVar(&normalizeAnchorDate, "anchor", "", "Anchor for relative dates, YYYY-MM-DD (default: today)")
	normalizeCmd.Flags().BoolVar(&normalizeDropInvalid, "drop-invalid", false, "Drop records without a title instead of flagging them")

	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(_ *cobra.Command, _ []string) error {
	if normalizeInputFile == "" || normalizeOutputFile == "" {
		return fmt.Errorf("both --in and --out are required")
	}

	now := time.Now()
	if normalizeAnchorDate != "" {
		parsed, err := time.Parse("2006-01-02", normalizeAnchorDate)
		if err != nil {
			return fmt.Errorf("invalid --anchor (want YYYY-MM-DD): %w", err)
		}
		now = parsed
	}

	raw, err := ingestion.ReadBatch(normalizeInputFile, normalizeSourceTag)
	if err != nil {
		return err
	}

	records, stats := normalize.Batch(raw, normalize.Options{Now: now, DropInvalid: normalizeDropInvalid})
	if err := writeJSON(normalizeOutputFile, records); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Normalized %d of %d records (%d dropped, %d flagged)\n",
		stats.Out, stats.In, stats.Dropped, stats.Flagged)
	fmt.Fprintf(os.Stdout, "Output: %s\n", normalizeOutputFile)
	return nil
}
