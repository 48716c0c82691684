package types

import "fmt"

// Cluster is a group of semantically similar jobs (or, during keyword
// extraction, a group of similar vocabulary terms). Clusters are
// recomputed wholesale on every run, never updated incrementally.
type Cluster struct {
	ClusterID int       `json:"cluster_id"`
	Centroid  []float64 `json:"centroid"`
	MemberIDs []string  `json:"member_ids"`
}

// Size returns the number of members.
func (c *Cluster) Size() int {
	return len(c.MemberIDs)
}

// Validate checks basic structural invariants of the cluster.
func (c *Cluster) Validate(dim int) error {
	if c.ClusterID < 0 {
		return fmt.Errorf("cluster has negative id %d", c.ClusterID)
	}
	if dim > 0 && len(c.Centroid) != dim {
		return fmt.Errorf("cluster %d: centroid dimension %d, expected %d", c.ClusterID, len(c.Centroid), dim)
	}
	return nil
}
