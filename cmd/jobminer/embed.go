package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobminer/internal/embedding"
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Embed job records as TF-IDF vectors",
	Long:  "Fit a TF-IDF vectorizer on the record corpus and attach the resulting embeddings to each record.",
	RunE:  runEmbed,
}

var (
	embedInputFile   string
	embedOutputFile  string
	embedVocabFile   string
	embedMaxFeatures int
	embedMinDF       int
	embedMaxDFRatio  float64
	embedStopwords   []string
)

func init() {
	embedCmd.Flags().StringVarP(&embedInputFile, "in", "i", "", "Path to records JSON (required)")
	embedCmd.Flags().StringVarP(&embedOutputFile, "out", "o", "", "Path to output records JSON (required)")
	embedCmd.Flags().StringVar(&embedVocabFile, "vocab", "", "Path to write the fitted vocabulary JSON (optional)")
	embedCmd.Flags().IntVar(&embedMaxFeatures, "max-features", 0, "Vocabulary size cap (default 725)")
	embedCmd.Flags().IntVar(&embedMinDF, "min-df", 0, "Minimum document frequency (default 2)")
	embedCmd.Flags().Float64Var(&embedMaxDFRatio, "max-df", 0, "Maximum document frequency ratio (default 0.95)")
	embedCmd.Flags().StringSliceVar(&embedStopwords, "stopwords", nil, "Extra stopwords beyond the built-in lists")

	rootCmd.AddCommand(embedCmd)
}

func runEmbed(_ *cobra.Command, _ []string) error {
	if embedInputFile == "" || embedOutputFile == "" {
		return fmt.Errorf("both --in and --out are required")
	}

	records, err := readRecords(embedInputFile)
	if err != nil {
		return err
	}

	docs := make([]string, len(records))
	for i, rec := range records {
		docs[i] = rec.Title + " " + rec.Description
	}

	vectorizer, err := embedding.Fit(context.Background(), docs, embedding.VectorizerOptions{
		MaxFeatures:    embedMaxFeatures,
		MinDF:          embedMinDF,
		MaxDFRatio:     embedMaxDFRatio,
		ExtraStopwords: embedStopwords,
	})
	if err != nil {
		return err
	}
	vectors, err := vectorizer.Transform(context.Background(), docs)
	if err != nil {
		return err
	}
	for i := range records {
		records[i].Embedding = vectors[i]
	}

	if err := writeJSON(embedOutputFile, records); err != nil {
		return err
	}
	if embedVocabFile != "" {
		if err := writeJSON(embedVocabFile, vectorizer.Vocabulary()); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "Embedded %d records into %d dimensions\n", len(records), vectorizer.Dimensions())
	fmt.Fprintf(os.Stdout, "Output: %s\n", embedOutputFile)
	return nil
}
