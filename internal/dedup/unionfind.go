// Package dedup collapses duplicate job postings from overlapping
// collection passes into one representative record per unique job.
package dedup

// DisjointSet is a classic union-find arena over record indices with
// path compression and union by size. Candidate duplicate pairs are
// merged into connected components so that "is duplicate of" closes
// transitively.
type DisjointSet struct {
	parent []int
	size   []int
}

// NewDisjointSet creates a disjoint set over n elements, each its own
// singleton component.
func NewDisjointSet(n int) *DisjointSet {
	ds := &DisjointSet{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := range ds.parent {
		ds.parent[i] = i
		ds.size[i] = 1
	}
	return ds
}

// Find returns the component root of x, compressing the path.
func (ds *DisjointSet) Find(x int) int {
	for ds.parent[x] != x {
		ds.parent[x] = ds.parent[ds.parent[x]]
		x = ds.parent[x]
	}
	return x
}

// Union merges the components of a and b. Returns true if they were
// previously separate.
func (ds *DisjointSet) Union(a, b int) bool {
	ra, rb := ds.Find(a), ds.Find(b)
	if ra == rb {
		return false
	}
	if ds.size[ra] < ds.size[rb] {
		ra, rb = rb, ra
	}
	ds.parent[rb] = ra
	ds.size[ra] += ds.size[rb]
	return true
}

// Groups returns every component with more than one member, keyed by
// root. Member lists preserve index order.
func (ds *DisjointSet) Groups() map[int][]int {
	groups := make(map[int][]int)
	for i := range ds.parent {
		root := ds.Find(i)
		groups[root] = append(groups[root], i)
	}
	for root, members := range groups {
		if len(members) < 2 {
			delete(groups, root)
		}
	}
	return groups
}
