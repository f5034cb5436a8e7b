package proximity

import (
	"context"
	"slices"

	"go.uber.org/zap"
)

// HierarchicalClustering repeatedly merges the closest pair of clusters until
// target clusters remain. Each step finds the closest pair with
// FastClosestPair, merges the higher-positioned cluster into the lower one
// and removes it, then searches the shortened list again from scratch.
//
// The clusters themselves are merged in place; the caller's slice is not
// reordered. target must be in [1, len(clusters)]: a target above the number
// of clusters returns ErrInvalidClusterCount rather than the input unchanged.
// target == len(clusters) returns the clusters without merging.
func HierarchicalClustering(clusters []*Cluster, target int) ([]*Cluster, error) {
	return hierarchical(context.Background(), clusters, target, fastPairFinder(1), nil, zap.NewNop())
}

// pairFinder returns one closest pair of clusters.
type pairFinder func(ctx context.Context, clusters []*Cluster) (Pair, error)

func fastPairFinder(workers int) pairFinder {
	return func(ctx context.Context, clusters []*Cluster) (Pair, error) {
		return FastClosestPairParallel(ctx, clusters, workers)
	}
}

// brutePairFinder picks the first of the tied pairs in (Lo, Hi) order.
func brutePairFinder(workers int) pairFinder {
	return func(_ context.Context, clusters []*Cluster) (Pair, error) {
		pairs, err := SlowClosestPairsParallel(clusters, workers)
		if err != nil {
			return Pair{}, err
		}
		return pairs[0], nil
	}
}

func validateHierarchical(n, target int) error {
	if n == 0 {
		return insufficientInput("hierarchical clustering", n, 1)
	}
	if target < 1 || target > n {
		return invalidClusterCount(target, n)
	}
	return nil
}

// hierarchical runs the merge loop. When tree is non-nil every merge is
// recorded in it.
func hierarchical(ctx context.Context, clusters []*Cluster, target int, find pairFinder, tree *linkage, logger *zap.Logger) ([]*Cluster, error) {
	if err := validateHierarchical(len(clusters), target); err != nil {
		return nil, err
	}

	list := slices.Clone(clusters)
	for len(list) > target {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := find(ctx, list)
		if err != nil {
			return nil, err
		}

		list[p.Lo].Merge(list[p.Hi])
		list = slices.Delete(list, p.Hi, p.Hi+1)
		if tree != nil {
			tree.merge(p.Lo, p.Hi, p.Dist)
		}

		logger.Debug("merged closest pair",
			zap.Int("lo", p.Lo),
			zap.Int("hi", p.Hi),
			zap.Float64("distance", p.Dist),
			zap.Int("remaining", len(list)),
		)
	}
	return list, nil
}
