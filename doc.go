// Package proximity finds closest pairs among weighted 2-D clusters and
// reduces a set of clusters to K representatives by hierarchical
// (closest-pair merging) or k-means clustering.
//
// Each input point is a [Cluster]: a center, a weight (population), an
// averaged risk and a set of member identifiers. Clusters merge by
// weight-weighted averaging, so weight is conserved and a merged center
// always lies between the two inputs.
//
// Basic usage:
//
//	cfg := proximity.DefaultConfig()
//	cfg.Method = proximity.MethodKMeans
//	cfg.NumClusters = 9
//	cfg.NumIterations = 5
//	result, err := proximity.Run(clusters, cfg)
//	// result.Clusters are the K output clusters
//	// result.Labels[i] is the output cluster of input i
//	// result.Distortion is the weighted squared error of the partition
//
// The closest-pair primitives can also be used directly:
//
//	pairs, err := proximity.SlowClosestPairs(clusters) // every tied pair, O(n²)
//	pair, err := proximity.FastClosestPair(clusters)   // one pair, O(n log n)
//
// # Determinism
//
// All algorithms are deterministic for a fixed input order. Coordinates are
// sorted by (value, index), the divide-and-conquer strip is scanned in
// vertical order, and k-means is seeded from the highest-weight inputs.
// The parallel variants return exactly the same results as the sequential
// ones.
package proximity
