package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobminer/internal/seniority"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Assign career levels to job records",
	Long:  "Classify every record into ENTRY, MID, SENIOR or MANAGEMENT using the title and contract-type rule cascade.",
	RunE:  runClassify,
}

var (
	classifyInputFile  string
	classifyOutputFile string
	classifyExceptions []string
)

func init() {
	classifyCmd.Flags().StringVarP(&classifyInputFile, "in", "i", "", "Path to records JSON (required)")
	classifyCmd.Flags().StringVarP(&classifyOutputFile, "out", "o", "", "Path to output records JSON (required)")
	classifyCmd.Flags().StringSliceVar(&classifyExceptions, "manager-exceptions", nil, "Titles whose 'manager' marks an IC role (overrides defaults)")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(_ *cobra.Command, _ []string) error {
	if classifyInputFile == "" || classifyOutputFile == "" {
		return fmt.Errorf("both --in and --out are required")
	}

	records, err := readRecords(classifyInputFile)
	if err != nil {
		return err
	}

	rules := seniority.DefaultRules()
	if len(classifyExceptions) > 0 {
		rules.ManagerExceptions = classifyExceptions
	}

	ambiguous := seniority.Apply(records, rules)
	if err := writeJSON(classifyOutputFile, records); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Classified %d records (%d ambiguous)\n", len(records), ambiguous)
	fmt.Fprintf(os.Stdout, "Output: %s\n", classifyOutputFile)
	return nil
}
