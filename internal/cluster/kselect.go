package cluster

import (
	"context"
	"fmt"
	"math"
)

// Default evaluated k range for coarse job-segment discovery. Keyword
// term clustering instead runs with one fixed, much larger k.
const (
	DefaultMinK = 3
	DefaultMaxK = 15
)

// scoreTieEpsilon: combined scores closer than this are a tie, and the
// smaller k wins.
const scoreTieEpsilon = 1e-9

// KSelection records the evaluation of one candidate k.
type KSelection struct {
	K          int     `json:"k"`
	Inertia    float64 `json:"inertia"`
	Silhouette float64 `json:"silhouette"`
	Score      float64 `json:"score"`
}

// SelectK evaluates every k in [minK, maxK], scoring each candidate by
// mean silhouette plus the relative inertia drop from the previous k
// (the elbow signal). Returns the winning result and the per-k
// evaluations.
func SelectK(ctx context.Context, vectors [][]float64, minK, maxK int, opts KMeansOptions) (*KMeansResult, int, []KSelection, error) {
	if minK <= 0 {
		minK = DefaultMinK
	}
	if maxK <= 0 {
		maxK = DefaultMaxK
	}
	if minK > maxK {
		return nil, 0, nil, fmt.Errorf("invalid k range [%d, %d]", minK, maxK)
	}
	if maxK > len(vectors) {
		maxK = len(vectors)
	}
	if minK > len(vectors) {
		return nil, 0, nil, fmt.Errorf("cannot form %d clusters from %d vectors", minK, len(vectors))
	}

	var (
		evaluations []KSelection
		bestResult  *KMeansResult
		bestK       int
		bestScore   = math.Inf(-1)
		prevInertia = math.NaN()
	)

	for k := minK; k <= maxK; k++ {
		o := opts
		o.K = k
		res, err := KMeans(ctx, vectors, o)
		if err != nil {
			return nil, 0, nil, err
		}

		elbowGain := 0.0
		if !math.IsNaN(prevInertia) && prevInertia > 0 {
			elbowGain = (prevInertia - res.Inertia) / prevInertia
		}
		sil, err := meanSilhouette(ctx, vectors, res.Assignments, k)
		if err != nil {
			return nil, 0, nil, err
		}
		score := sil + elbowGain

		evaluations = append(evaluations, KSelection{
			K:          k,
			Inertia:    res.Inertia,
			Silhouette: sil,
			Score:      score,
		})

		// Strictly-better only: ties (within epsilon) keep the
		// smaller k already chosen.
		if score > bestScore+scoreTieEpsilon {
			bestScore = score
			bestResult = res
			bestK = k
		}
		prevInertia = res.Inertia
	}

	return bestResult, bestK, evaluations, nil
}

// meanSilhouette computes the mean silhouette coefficient over all
// points. Pairwise distances make this O(n²), so cancellation is
// observed once per point.
func meanSilhouette(ctx context.Context, vectors [][]float64, assignments []int, k int) (float64, error) {
	n := len(vectors)
	if n == 0 || k < 2 {
		return 0, nil
	}

	counts := make([]int, k)
	for _, c := range assignments {
		counts[c]++
	}

	total := 0.0
	scored := 0
	sums := make([]float64, k)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		own := assignments[i]
		if counts[own] <= 1 {
			continue
		}

		for c := range sums {
			sums[c] = 0
		}
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			sums[assignments[j]] += math.Sqrt(squaredDistance(vectors[i], vectors[j]))
		}

		a := sums[own] / float64(counts[own]-1)
		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c == own || counts[c] == 0 {
				continue
			}
			if mean := sums[c] / float64(counts[c]); mean < b {
				b = mean
			}
		}
		if math.IsInf(b, 1) {
			continue
		}

		if max := math.Max(a, b); max > 0 {
			total += (b - a) / max
			scored++
		}
	}

	if scored == 0 {
		return 0, nil
	}
	return total / float64(scored), nil
}
