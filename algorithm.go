package proximity

import "fmt"

// Algorithm selects the closest-pair strategy used by hierarchical clustering.
type Algorithm string

const (
	// AlgorithmDivideConquer uses FastClosestPair, O(n log n) per search.
	AlgorithmDivideConquer Algorithm = "divide_conquer"
	// AlgorithmBrute uses the first pair of SlowClosestPairs, O(n²) per
	// search. Among tied pairs it picks the lowest (Lo, Hi), which may differ
	// from the pair divide-and-conquer picks.
	AlgorithmBrute Algorithm = "brute"
)

// selectPairFinder resolves an Algorithm into the closest-pair search used
// by the merge loop and rejects unknown names.
func selectPairFinder(algo Algorithm, workers int) (pairFinder, error) {
	switch algo {
	case AlgorithmDivideConquer:
		return fastPairFinder(workers), nil
	case AlgorithmBrute:
		return brutePairFinder(workers), nil
	default:
		return nil, fmt.Errorf("proximity: invalid Algorithm %q", algo)
	}
}
