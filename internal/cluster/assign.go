package cluster

import (
	"fmt"

	"github.com/jonathan/jobminer/internal/types"
)

// AssignJobs writes cluster assignments onto the records and builds
// the Cluster entities. records[i] must correspond to
// result.Assignments[i].
func AssignJobs(records []types.JobRecord, result *KMeansResult) ([]types.Cluster, error) {
	if len(records) != len(result.Assignments) {
		return nil, fmt.Errorf("assignment count %d does not match record count %d", len(result.Assignments), len(records))
	}

	clusters := make([]types.Cluster, len(result.Centroids))
	for c := range clusters {
		clusters[c] = types.Cluster{
			ClusterID: c,
			Centroid:  result.Centroids[c],
		}
	}

	for i := range records {
		c := result.Assignments[i]
		records[i].ClusterID = &c
		clusters[c].MemberIDs = append(clusters[c].MemberIDs, records[i].JobID)
	}
	return clusters, nil
}
