package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobminer/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON batch against a JSON Schema file",
	Long:  "Check a collector JSON batch (or any checkpoint artifact) against a schema file before feeding it to the pipeline.",
	RunE:  runValidate,
}

var (
	validateSchemaFile string
	validateDataFile   string
)

func init() {
	validateCmd.Flags().StringVar(&validateSchemaFile, "schema", "", "Path to the JSON Schema file (required)")
	validateCmd.Flags().StringVar(&validateDataFile, "data", "", "Path to the JSON document to validate (required)")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	if validateSchemaFile == "" || validateDataFile == "" {
		return fmt.Errorf("both --schema and --data are required")
	}

	if err := schemas.ValidateJSON(validateSchemaFile, validateDataFile); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s is valid against %s\n", validateDataFile, validateSchemaFile)
	return nil
}
