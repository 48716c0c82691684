package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobminer/internal/keywords"
	"github.com/jonathan/jobminer/internal/types"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Tag job records against a curated keyword dictionary",
	Long:  "Match every record's title and description against the keyword dictionary and attach the per-category keyword sets.",
	RunE:  runTag,
}

var (
	tagInputFile    string
	tagOutputFile   string
	tagKeywordsFile string
	tagJoinsFile    string
)

func init() {
	tagCmd.Flags().StringVarP(&tagInputFile, "in", "i", "", "Path to records JSON (required)")
	tagCmd.Flags().StringVarP(&tagOutputFile, "out", "o", "", "Path to output records JSON (required)")
	tagCmd.Flags().StringVarP(&tagKeywordsFile, "keywords", "k", "", "Path to curated keyword dictionary JSON (required)")
	tagCmd.Flags().StringVar(&tagJoinsFile, "joins", "", "Path to write the job-keyword join rows JSON (optional)")

	rootCmd.AddCommand(tagCmd)
}

func runTag(_ *cobra.Command, _ []string) error {
	if tagInputFile == "" || tagOutputFile == "" || tagKeywordsFile == "" {
		return fmt.Errorf("--in, --out and --keywords are required")
	}

	records, err := readRecords(tagInputFile)
	if err != nil {
		return err
	}

	keywordData, err := os.ReadFile(tagKeywordsFile)
	if err != nil {
		return fmt.Errorf("failed to read keywords file: %w", err)
	}
	var dictionary []types.Keyword
	if err := json.Unmarshal(keywordData, &dictionary); err != nil {
		return fmt.Errorf("failed to parse keywords JSON: %w", err)
	}

	matcher, err := keywords.NewMatcher(dictionary)
	if err != nil {
		return err
	}

	joins, stats := keywords.Tag(records, matcher)
	if err := writeJSON(tagOutputFile, records); err != nil {
		return err
	}
	if tagJoinsFile != "" {
		if err := writeJSON(tagJoinsFile, joins); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "Tagged %d of %d records (coverage %.1f%%)\n",
		stats.Tagged, stats.In, stats.Coverage*100)
	fmt.Fprintf(os.Stdout, "Output: %s\n", tagOutputFile)
	return nil
}
