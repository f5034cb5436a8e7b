package proximity

import "math"

// Pair is a pair of cluster positions and the distance between their
// centers. Lo <= Hi always holds.
type Pair struct {
	Dist   float64
	Lo, Hi int
}

// PairDistance returns the distance between clusters[i] and clusters[j]
// with the indices normalized so that Lo <= Hi.
func PairDistance(clusters []*Cluster, i, j int) Pair {
	return Pair{
		Dist: clusters[i].Distance(clusters[j]),
		Lo:   min(i, j),
		Hi:   max(i, j),
	}
}

// SlowClosestPairs examines all n(n-1)/2 pairs and returns every pair tied
// for the minimum distance, ordered by (Lo, Hi).
func SlowClosestPairs(clusters []*Cluster) ([]Pair, error) {
	n := len(clusters)
	if n < 2 {
		return nil, insufficientInput("closest pair", n, 2)
	}
	return closestPairsInRows(clusters, 0, n), nil
}

// closestPairsInRows scans the pairs (i, j) with start <= i < end and j > i,
// returning all minimal pairs in scan order.
func closestPairsInRows(clusters []*Cluster, start, end int) []Pair {
	best := math.Inf(1)
	var ties []Pair
	for i := start; i < end; i++ {
		for j := i + 1; j < len(clusters); j++ {
			p := PairDistance(clusters, i, j)
			switch {
			case p.Dist < best:
				best = p.Dist
				ties = append(ties[:0], p)
			case p.Dist == best:
				ties = append(ties, p)
			}
		}
	}
	return ties
}

// firstClosestPair returns the first minimal pair in scan order. clusters
// must hold at least two entries.
func firstClosestPair(clusters []*Cluster) Pair {
	best := PairDistance(clusters, 0, 1)
	for i := 0; i < len(clusters)-1; i++ {
		for j := i + 1; j < len(clusters); j++ {
			if p := PairDistance(clusters, i, j); p.Dist < best.Dist {
				best = p
			}
		}
	}
	return best
}
