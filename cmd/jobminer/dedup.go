package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobminer/internal/dedup"
)

var dedupCmd = &cobra.Command{
	Use:   "dedup",
	Short: "Deduplicate normalized job records",
	Long:  "Run the exact, fuzzy and temporal deduplication passes over a records JSON file and write the survivors plus a removal audit.",
	RunE:  runDedup,
}

var (
	dedupInputFile  string
	dedupOutputFile string
	dedupAuditFile  string
	dedupThreshold  float64
	dedupShards     int
)

func init() {
	dedupCmd.Flags().StringVarP(&dedupInputFile, "in", "i", "", "Path to normalized records JSON (required)")
	dedupCmd.Flags().StringVarP(&dedupOutputFile, "out", "o", "", "Path to output survivors JSON (required)")
	dedupCmd.Flags().StringVar(&dedupAuditFile, "audit", "", "Path to write the removal audit JSON (optional)")
	dedupCmd.Flags().Float64Var(&dedupThreshold, "threshold", 0, "Fuzzy cosine similarity cut-off (default 0.85)")
	dedupCmd.Flags().IntVar(&dedupShards, "shards", 0, "Parallel shards for the fuzzy pass")

	rootCmd.AddCommand(dedupCmd)
}

func runDedup(_ *cobra.Command, _ []string) error {
	if dedupInputFile == "" || dedupOutputFile == "" {
		return fmt.Errorf("both --in and --out are required")
	}

	records, err := readRecords(dedupInputFile)
	if err != nil {
		return err
	}

	result, err := dedup.Run(context.Background(), records, dedup.Options{
		Threshold: dedupThreshold,
		Shards:    dedupShards,
	})
	if err != nil {
		return err
	}

	if err := writeJSON(dedupOutputFile, result.Records); err != nil {
		return err
	}
	if dedupAuditFile != "" {
		if err := writeJSON(dedupAuditFile, result.Audit); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "Removed %d duplicates (%d exact, %d fuzzy, %d temporal), %d survive\n",
		result.Stats.In-result.Stats.Out, result.Stats.ExactRemoved,
		result.Stats.FuzzyRemoved, result.Stats.TemporalRemoved, result.Stats.Out)
	fmt.Fprintf(os.Stdout, "Output: %s\n", dedupOutputFile)
	return nil
}
