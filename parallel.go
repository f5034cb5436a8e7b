package proximity

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// SlowClosestPairsParallel computes the same result as SlowClosestPairs using
// multiple goroutines. numWorkers controls the degree of parallelism; if
// <= 1, it falls back to the single-threaded scan.
//
// The result is identical to SlowClosestPairs: the same tied pairs in the
// same (Lo, Hi) order.
func SlowClosestPairsParallel(clusters []*Cluster, numWorkers int) ([]Pair, error) {
	n := len(clusters)
	if numWorkers <= 1 || n < 2 {
		return SlowClosestPairs(clusters)
	}

	// Split rows across workers. Each worker handles a contiguous range of
	// "source" rows and records the minimal pairs (i, j > i) in that range.
	// Ranges are concatenated in row order, so scan order is preserved.
	rowsPerWorker := (n + numWorkers - 1) / numWorkers
	partial := make([][]Pair, numWorkers)

	var g errgroup.Group
	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := min(startRow+rowsPerWorker, n)
		if startRow >= n {
			break
		}
		g.Go(func() error {
			partial[w] = closestPairsInRows(clusters, startRow, endRow)
			return nil
		})
	}
	_ = g.Wait()

	best := math.Inf(1)
	for _, ties := range partial {
		if len(ties) > 0 && ties[0].Dist < best {
			best = ties[0].Dist
		}
	}
	var result []Pair
	for _, ties := range partial {
		if len(ties) > 0 && ties[0].Dist == best {
			result = append(result, ties...)
		}
	}
	return result, nil
}

// assignNearestParallel computes nearestCenter for every cluster using
// multiple goroutines. Each worker handles a contiguous range of clusters.
// Falls back to a sequential loop if numWorkers <= 1.
func assignNearestParallel(clusters, centers []*Cluster, numWorkers int) []int {
	n := len(clusters)
	assignment := make([]int, n)
	if numWorkers <= 1 || n <= 1 {
		for i, c := range clusters {
			assignment[i] = nearestCenter(c, centers)
		}
		return assignment
	}

	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	var g errgroup.Group
	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := min(startRow+rowsPerWorker, n)
		if startRow >= n {
			break
		}
		g.Go(func() error {
			for i := startRow; i < endRow; i++ {
				assignment[i] = nearestCenter(clusters[i], centers)
			}
			return nil
		})
	}
	_ = g.Wait()
	return assignment
}
