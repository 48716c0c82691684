// Package main provides the entry point for the job market analysis CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobminer",
	Short: "Job market analysis pipeline",
	Long:  "jobminer ingests scraped job postings, normalizes and deduplicates them, classifies career levels, and discovers job clusters and keyword dictionaries.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
