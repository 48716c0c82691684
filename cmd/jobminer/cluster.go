package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobminer/internal/cluster"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Cluster embedded job records",
	Long:  "Select the cluster count over a configurable k range and assign every embedded record to a cluster.",
	RunE:  runCluster,
}

var (
	clusterInputFile    string
	clusterOutputFile   string
	clusterClustersFile string
	clusterMinK         int
	clusterMaxK         int
	clusterSeed         int64
)

func init() {
	clusterCmd.Flags().StringVarP(&clusterInputFile, "in", "i", "", "Path to embedded records JSON (required)")
	clusterCmd.Flags().StringVarP(&clusterOutputFile, "out", "o", "", "Path to output records JSON (required)")
	clusterCmd.Flags().StringVar(&clusterClustersFile, "clusters", "", "Path to write the cluster list JSON (optional)")
	clusterCmd.Flags().IntVar(&clusterMinK, "min-k", 0, "Smallest k to evaluate (default 3)")
	clusterCmd.Flags().IntVar(&clusterMaxK, "max-k", 0, "Largest k to evaluate (default 15)")
	clusterCmd.Flags().Int64Var(&clusterSeed, "seed", 0, "Random seed for deterministic clustering")

	rootCmd.AddCommand(clusterCmd)
}

func runCluster(_ *cobra.Command, _ []string) error {
	if clusterInputFile == "" || clusterOutputFile == "" {
		return fmt.Errorf("both --in and --out are required")
	}

	records, err := readRecords(clusterInputFile)
	if err != nil {
		return err
	}

	vectors := make([][]float64, len(records))
	for i, rec := range records {
		if len(rec.Embedding) == 0 {
			return fmt.Errorf("record %s has no embedding; run the embed command first", rec.JobID)
		}
		vectors[i] = rec.Embedding
	}

	opts := cluster.KMeansOptions{}.WithSeed(clusterSeed)
	result, bestK, _, err := cluster.SelectK(context.Background(), vectors, clusterMinK, clusterMaxK, opts)
	if err != nil {
		return err
	}

	clusters, err := cluster.AssignJobs(records, result)
	if err != nil {
		return err
	}

	if err := writeJSON(clusterOutputFile, records); err != nil {
		return err
	}
	if clusterClustersFile != "" {
		if err := writeJSON(clusterClustersFile, clusters); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "Grouped %d records into %d clusters\n", len(records), bestK)
	fmt.Fprintf(os.Stdout, "Output: %s\n", clusterOutputFile)
	return nil
}
