// Package cluster partitions embedded job or term corpora into a fixed
// number of groups via centroid-based partitioning.
package cluster

import (
	"context"
	"fmt"
	"math"
	"math/rand"
)

// K-means defaults. Restarts ≥ 10 with a fixed seed keep runs
// reproducible for the same corpus.
const (
	DefaultMaxIterations = 100
	DefaultRestarts      = 10
	DefaultTolerance     = 1e-6
	DefaultSeed          = 42
)

// KMeansOptions configures one k-means run.
type KMeansOptions struct {
	K             int
	MaxIterations int
	Restarts      int
	Tolerance     float64
	Seed          int64
	seedSet       bool
}

// WithSeed returns a copy of the options with an explicit seed, which
// distinguishes "seed 0" from "use the default seed".
func (o KMeansOptions) WithSeed(seed int64) KMeansOptions {
	o.Seed = seed
	o.seedSet = true
	return o
}

func (o KMeansOptions) withDefaults() KMeansOptions {
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Restarts == 0 {
		o.Restarts = DefaultRestarts
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.Seed == 0 && !o.seedSet {
		o.Seed = DefaultSeed
	}
	return o
}

// KMeansResult is the outcome of the best restart.
type KMeansResult struct {
	Centroids   [][]float64
	Assignments []int
	Inertia     float64
	// Reseeded counts empty-cluster recoveries across the winning
	// restart, surfaced as a warning metric, never a failure.
	Reseeded int
}

// KMeans runs seeded k-means with k-means++ initialization. All
// restarts execute and the lowest-inertia result wins; input vectors
// are expected L2-normalized, so squared Euclidean distance orders
// pairs the same way cosine distance does. Cancellation is observed
// between restarts and between Lloyd iterations so a stage deadline
// actually interrupts the work.
func KMeans(ctx context.Context, vectors [][]float64, opts KMeansOptions) (*KMeansResult, error) {
	o := opts.withDefaults()
	if o.K <= 0 {
		return nil, fmt.Errorf("cluster count must be positive, got %d", o.K)
	}
	if len(vectors) < o.K {
		return nil, fmt.Errorf("cannot form %d clusters from %d vectors", o.K, len(vectors))
	}

	var best *KMeansResult
	for restart := 0; restart < o.Restarts; restart++ {
		rng := rand.New(rand.NewSource(o.Seed + int64(restart)))
		res, err := lloyd(ctx, vectors, o, rng)
		if err != nil {
			return nil, err
		}
		if best == nil || res.Inertia < best.Inertia {
			best = res
		}
	}
	return best, nil
}

// lloyd is one full k-means run from a k-means++ initialization.
func lloyd(ctx context.Context, vectors [][]float64, o KMeansOptions, rng *rand.Rand) (*KMeansResult, error) {
	dim := len(vectors[0])
	centroids := plusPlusInit(vectors, o.K, rng)
	assignments := make([]int, len(vectors))
	reseeded := 0

	for iter := 0; iter < o.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		changed := false
		for i, vec := range vectors {
			c := nearestCentroid(vec, centroids)
			if assignments[i] != c {
				assignments[i] = c
				changed = true
			}
		}

		next := make([][]float64, o.K)
		counts := make([]int, o.K)
		for c := range next {
			next[c] = make([]float64, dim)
		}
		for i, vec := range vectors {
			c := assignments[i]
			counts[c]++
			for d, x := range vec {
				next[c][d] += x
			}
		}

		shift := 0.0
		for c := range next {
			if counts[c] == 0 {
				// Standard recovery: re-seed the empty centroid from
				// the point farthest from every surviving centroid,
				// instead of letting the cluster vanish and shifting
				// cluster-id numbering.
				next[c] = append([]float64(nil), vectors[farthestPoint(vectors, centroids)]...)
				reseeded++
				shift = math.Inf(1)
				continue
			}
			for d := range next[c] {
				next[c][d] /= float64(counts[c])
			}
			shift += squaredDistance(centroids[c], next[c])
		}
		centroids = next

		if !changed && shift <= o.Tolerance {
			break
		}
	}

	// Final assignment against the converged centroids.
	inertia := 0.0
	for i, vec := range vectors {
		assignments[i] = nearestCentroid(vec, centroids)
		inertia += squaredDistance(vec, centroids[assignments[i]])
	}

	return &KMeansResult{
		Centroids:   centroids,
		Assignments: assignments,
		Inertia:     inertia,
		Reseeded:    reseeded,
	}, nil
}

// plusPlusInit seeds centroids with k-means++: each subsequent centroid
// is drawn with probability proportional to its squared distance from
// the nearest already-chosen one.
func plusPlusInit(vectors [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	first := rng.Intn(len(vectors))
	centroids = append(centroids, append([]float64(nil), vectors[first]...))

	dists := make([]float64, len(vectors))
	for len(centroids) < k {
		total := 0.0
		for i, vec := range vectors {
			dists[i] = squaredDistance(vec, centroids[nearestCentroid(vec, centroids)])
			total += dists[i]
		}

		var chosen int
		if total == 0 {
			chosen = rng.Intn(len(vectors))
		} else {
			target := rng.Float64() * total
			for i, d := range dists {
				target -= d
				if target <= 0 {
					chosen = i
					break
				}
			}
		}
		centroids = append(centroids, append([]float64(nil), vectors[chosen]...))
	}
	return centroids
}

// farthestPoint returns the index of the vector with the greatest
// distance to its nearest centroid.
func farthestPoint(vectors [][]float64, centroids [][]float64) int {
	best, bestDist := 0, -1.0
	for i, vec := range vectors {
		d := squaredDistance(vec, centroids[nearestCentroid(vec, centroids)])
		if d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// nearestCentroid returns the index of the closest centroid.
func nearestCentroid(vec []float64, centroids [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := squaredDistance(vec, centroid); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
