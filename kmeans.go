package proximity

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
)

// KMeansClustering partitions clusters into k groups by running exactly
// iterations rounds of nearest-center assignment and recentering. The
// initial centers are the centers of the k heaviest input clusters.
//
// With iterations == 0 the result is k empty clusters located at the seed
// centers. The input clusters are never modified.
func KMeansClustering(clusters []*Cluster, k, iterations int) ([]*Cluster, error) {
	out, _, err := kmeans(clusters, k, iterations, 1, zap.NewNop())
	return out, err
}

func validateKMeans(n, k, iterations int) error {
	if n == 0 {
		return insufficientInput("k-means", n, 1)
	}
	if k < 1 || k > n {
		return invalidClusterCount(k, n)
	}
	if iterations < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIterations, iterations)
	}
	return nil
}

// kmeans returns the final accumulator clusters and, for every input, the
// index of the accumulator it was assigned to in the last round (-1 when no
// round ran).
func kmeans(clusters []*Cluster, k, iterations, workers int, logger *zap.Logger) ([]*Cluster, []int, error) {
	if err := validateKMeans(len(clusters), k, iterations); err != nil {
		return nil, nil, err
	}

	centers := seedCenters(clusters, k)
	accumulators := emptyClustersAt(centers)
	assignment := make([]int, len(clusters))
	for i := range assignment {
		assignment[i] = -1
	}

	for round := 0; round < iterations; round++ {
		fresh := emptyClustersAt(centers)
		accumulators = emptyClustersAt(centers)

		// Assignment is pure, so it may run in parallel. Merging stays
		// sequential in input order to keep the floating-point result fixed.
		assignment = assignNearestParallel(clusters, fresh, workers)
		for i, c := range clusters {
			accumulators[assignment[i]].Merge(c)
		}

		moved := 0.0
		for j, acc := range accumulators {
			moved = math.Max(moved, acc.Distance(fresh[j]))
			centers[j] = acc
		}
		logger.Debug("k-means round completed",
			zap.Int("round", round+1),
			zap.Int("clusters", k),
			zap.Float64("max_center_shift", moved),
		)
	}

	return accumulators, assignment, nil
}

// seedCenters returns the k heaviest clusters ranked by (weight, position)
// ascending.
func seedCenters(clusters []*Cluster, k int) []*Cluster {
	order := make([]int, len(clusters))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		wa, wb := clusters[order[a]].Weight(), clusters[order[b]].Weight()
		if wa != wb {
			return wa < wb
		}
		return order[a] < order[b]
	})

	seeds := make([]*Cluster, 0, k)
	for _, i := range order[len(order)-k:] {
		seeds = append(seeds, clusters[i])
	}
	return seeds
}

// emptyClustersAt returns one empty, zero-weight cluster at each center.
func emptyClustersAt(centers []*Cluster) []*Cluster {
	out := make([]*Cluster, len(centers))
	for i, c := range centers {
		out[i] = NewCluster(nil, c.X(), c.Y(), 0, 0)
	}
	return out
}

// nearestCenter returns the index of the center closest to c. On equal
// distances the later center wins.
func nearestCenter(c *Cluster, centers []*Cluster) int {
	best, bestDist := -1, math.Inf(1)
	for j, center := range centers {
		if d := c.Distance(center); d <= bestDist {
			best, bestDist = j, d
		}
	}
	return best
}
