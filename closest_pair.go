package proximity

import (
	"context"
	"math"
	"math/bits"
	"sort"

	"golang.org/x/sync/errgroup"
)

// parallelCutoff is the smallest sub-problem whose two halves are solved
// concurrently. Below it goroutine overhead dominates the recursion.
const parallelCutoff = 2048

// FastClosestPair returns a closest pair of clusters using the O(n log n)
// divide-and-conquer algorithm. When several pairs are tied for the minimum
// distance exactly one of them is returned; which one is fixed by the input
// order. Use [SlowClosestPairs] to obtain every tied pair.
func FastClosestPair(clusters []*Cluster) (Pair, error) {
	return FastClosestPairParallel(context.Background(), clusters, 1)
}

// FastClosestPairParallel is FastClosestPair with the two recursive halves of
// the upper levels solved concurrently. workers bounds the number of
// sub-problems in flight; if <= 1 the recursion is sequential. The result is
// identical to FastClosestPair for every value of workers.
func FastClosestPairParallel(ctx context.Context, clusters []*Cluster, workers int) (Pair, error) {
	n := len(clusters)
	if n < 2 {
		return Pair{}, insufficientInput("closest pair", n, 2)
	}

	s := &closestPairSolver{
		clusters: clusters,
		inLeft:   make([]bool, n),
	}
	horiz := sortedIndices(clusters, (*Cluster).X)
	vert := sortedIndices(clusters, (*Cluster).Y)
	return s.solve(ctx, horiz, vert, forkDepth(workers))
}

// forkDepth returns the number of recursion levels that fork so that at
// least workers sub-problems run at once.
func forkDepth(workers int) int {
	if workers <= 1 {
		return 0
	}
	return bits.Len(uint(workers - 1))
}

// sortedIndices returns the positions of clusters ordered by key, breaking
// ties by position.
func sortedIndices(clusters []*Cluster, key func(*Cluster) float64) []int {
	idx := make([]int, len(clusters))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		ka, kb := key(clusters[idx[a]]), key(clusters[idx[b]])
		if ka != kb {
			return ka < kb
		}
		return idx[a] < idx[b]
	})
	return idx
}

type closestPairSolver struct {
	clusters []*Cluster
	// inLeft marks positions that fall in the left half of the current
	// split. Concurrent sub-problems own disjoint positions.
	inLeft []bool
}

// solve returns the closest pair among the positions in horiz. horiz and
// vert hold the same positions ordered by X and by Y respectively.
func (s *closestPairSolver) solve(ctx context.Context, horiz, vert []int, depth int) (Pair, error) {
	if len(horiz) <= 3 {
		return s.bruteForce(horiz), nil
	}

	half := len(horiz) / 2
	mid := (s.clusters[horiz[half-1]].X() + s.clusters[horiz[half]].X()) / 2
	horizLeft, horizRight := horiz[:half], horiz[half:]

	for _, i := range horizLeft {
		s.inLeft[i] = true
	}
	for _, i := range horizRight {
		s.inLeft[i] = false
	}
	vertLeft := make([]int, 0, len(horizLeft))
	vertRight := make([]int, 0, len(horizRight))
	for _, i := range vert {
		if s.inLeft[i] {
			vertLeft = append(vertLeft, i)
		} else {
			vertRight = append(vertRight, i)
		}
	}

	var left, right Pair
	if depth > 0 && len(horiz) >= parallelCutoff {
		if err := ctx.Err(); err != nil {
			return Pair{}, err
		}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			left, err = s.solve(gctx, horizLeft, vertLeft, depth-1)
			return err
		})
		g.Go(func() error {
			var err error
			right, err = s.solve(gctx, horizRight, vertRight, depth-1)
			return err
		})
		if err := g.Wait(); err != nil {
			return Pair{}, err
		}
	} else {
		var err error
		if left, err = s.solve(ctx, horizLeft, vertLeft, depth); err != nil {
			return Pair{}, err
		}
		if right, err = s.solve(ctx, horizRight, vertRight, depth); err != nil {
			return Pair{}, err
		}
	}

	// Ties between the halves go to the right half.
	best := right
	if left.Dist < right.Dist {
		best = left
	}

	strip := make([]int, 0, len(vert))
	for _, i := range vert {
		if math.Abs(s.clusters[i].X()-mid) < best.Dist {
			strip = append(strip, i)
		}
	}

	// Each strip position only needs comparing with the next three in
	// vertical order. A later candidate at equal distance replaces the best.
	for i := 0; i < len(strip)-1; i++ {
		for j := i + 1; j <= min(i+3, len(strip)-1); j++ {
			if p := PairDistance(s.clusters, strip[i], strip[j]); p.Dist <= best.Dist {
				best = p
			}
		}
	}
	return best, nil
}

// bruteForce solves a base case of two or three positions.
func (s *closestPairSolver) bruteForce(horiz []int) Pair {
	sub := make([]*Cluster, len(horiz))
	for k, i := range horiz {
		sub[k] = s.clusters[i]
	}
	p := firstClosestPair(sub)
	a, b := horiz[p.Lo], horiz[p.Hi]
	return Pair{Dist: p.Dist, Lo: min(a, b), Hi: max(a, b)}
}
