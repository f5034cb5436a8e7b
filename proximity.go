package proximity

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// Method selects the clustering algorithm.
type Method string

const (
	MethodHierarchical Method = "hierarchical"
	MethodKMeans       Method = "kmeans"
)

// Config controls a clustering run.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Method is the clustering algorithm: "hierarchical" merges closest
	// pairs until NumClusters remain, "kmeans" runs NumIterations rounds of
	// nearest-center assignment. Default: "hierarchical".
	Method Method

	// NumClusters is the number of output clusters. Must be in [1, n] for
	// n input clusters. Default: 1.
	NumClusters int

	// NumIterations is the number of k-means rounds. The rounds are not
	// convergence-checked; exactly this many run. 0 returns empty clusters at
	// the seed centers. Ignored by hierarchical clustering. Default: 5.
	NumIterations int

	// Algorithm selects the closest-pair strategy used by hierarchical
	// clustering. "divide_conquer" is O(n log n) per merge, "brute" is O(n²).
	// Default: "divide_conquer".
	Algorithm Algorithm

	// Workers controls the number of goroutines for parallelizable stages
	// (closest-pair search, k-means assignment). 0 means use
	// runtime.NumCPU(). Results do not depend on Workers. Default: 0 (auto).
	Workers int

	// Logger receives debug events for every merge and k-means round and a
	// summary when the run completes. Default: no logging.
	Logger *zap.Logger
}

// Result contains the output of a clustering run.
type Result struct {
	// Clusters are the output clusters.
	Clusters []*Cluster

	// Labels maps each input cluster to the index in Clusters that contains
	// it. For k-means with zero iterations every label is -1.
	Labels []int

	// Linkage is the merge history of hierarchical clustering in scipy
	// format: each row is [left, right, distance, size]. Merged nodes are
	// numbered from n. Nil for k-means.
	Linkage [][4]float64

	// Distortion is the weighted squared error of the partition, see
	// [Distortion].
	Distortion float64
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Method:        MethodHierarchical,
		NumClusters:   1,
		NumIterations: 5,
		Algorithm:     AlgorithmDivideConquer,
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	switch cfg.Method {
	case MethodHierarchical, MethodKMeans:
		// valid
	default:
		return fmt.Errorf("proximity: Method must be %q or %q, got %q", MethodHierarchical, MethodKMeans, cfg.Method)
	}
	if cfg.NumClusters < 1 {
		return fmt.Errorf("proximity: NumClusters must be >= 1, got %d", cfg.NumClusters)
	}
	if cfg.NumIterations < 0 {
		return fmt.Errorf("proximity: NumIterations must be >= 0, got %d", cfg.NumIterations)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("proximity: Workers must be >= 0 (0 means runtime.NumCPU()), got %d", cfg.Workers)
	}
	if _, err := selectPairFinder(cfg.Algorithm, 1); err != nil {
		return err
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Method == "" {
		cfg.Method = MethodHierarchical
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmDivideConquer
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// Run clusters the given inputs according to cfg. The inputs are copied
// first, so they are left untouched. Returns an error if the config is
// invalid or NumClusters exceeds the number of inputs.
func Run(clusters []*Cluster, cfg Config) (*Result, error) {
	return RunContext(context.Background(), clusters, cfg)
}

// RunContext is Run with cancellation. ctx is checked between merges and
// inside the parallel closest-pair search.
func RunContext(ctx context.Context, clusters []*Cluster, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	inputs := make([]*Cluster, len(clusters))
	for i, c := range clusters {
		inputs[i] = c.Copy()
	}

	var (
		result *Result
		err    error
	)
	switch cfg.Method {
	case MethodKMeans:
		result, err = runKMeans(inputs, cfg)
	default:
		result, err = runHierarchical(ctx, inputs, cfg)
	}
	if err != nil {
		return nil, err
	}

	result.Distortion, err = Distortion(result.Clusters, clusters, result.Labels)
	if err != nil {
		return nil, err
	}

	cfg.Logger.Info("clustering completed",
		zap.String("method", string(cfg.Method)),
		zap.Int("inputs", len(clusters)),
		zap.Int("clusters", len(result.Clusters)),
		zap.Float64("distortion", result.Distortion),
	)
	return result, nil
}

// runHierarchical works on private copies, since merging mutates clusters.
func runHierarchical(ctx context.Context, inputs []*Cluster, cfg Config) (*Result, error) {
	find, err := selectPairFinder(cfg.Algorithm, cfg.Workers)
	if err != nil {
		return nil, err
	}

	tree := newLinkage(len(inputs))
	out, err := hierarchical(ctx, inputs, cfg.NumClusters, find, tree, cfg.Logger)
	if err != nil {
		return nil, err
	}
	return &Result{
		Clusters: out,
		Labels:   tree.labels(len(inputs)),
		Linkage:  tree.rows,
	}, nil
}

func runKMeans(inputs []*Cluster, cfg Config) (*Result, error) {
	out, labels, err := kmeans(inputs, cfg.NumClusters, cfg.NumIterations, cfg.Workers, cfg.Logger)
	if err != nil {
		return nil, err
	}
	return &Result{
		Clusters: out,
		Labels:   labels,
	}, nil
}
