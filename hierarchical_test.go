package proximity

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// membership returns each cluster's sorted members, sorted as a whole so
// that the comparison is order-independent.
func membership(clusters []*Cluster) [][]string {
	out := make([][]string, len(clusters))
	for i, c := range clusters {
		out[i] = c.Members()
	}
	sort.Slice(out, func(a, b int) bool {
		return strings.Join(out[a], ",") < strings.Join(out[b], ",")
	})
	return out
}

func TestHierarchicalClustering_TwoGroups(t *testing.T) {
	list := points([2]float64{0, 0}, [2]float64{0, 1}, [2]float64{10, 0}, [2]float64{10, 1})
	out, err := HierarchicalClustering(list, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"p0", "p1"}, {"p2", "p3"}}
	if got := membership(out); !reflect.DeepEqual(got, want) {
		t.Errorf("membership = %v, want %v", got, want)
	}
	for _, c := range out {
		if c.Weight() != 2 {
			t.Errorf("cluster %v weight = %v, want 2", c.Members(), c.Weight())
		}
	}
}

func TestHierarchicalClustering_MergeOrder(t *testing.T) {
	// Points on a line with gaps 1, 2, 4: merges happen smallest gap first.
	list := points([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{3, 0}, [2]float64{7, 0})
	out, err := HierarchicalClustering(list, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"p0", "p1"}, {"p2"}, {"p3"}}
	if got := membership(out); !reflect.DeepEqual(got, want) {
		t.Errorf("after one merge: %v, want %v", got, want)
	}
	// The merged cluster keeps the lower position.
	if out[0].Len() != 2 || out[0].X() != 0.5 {
		t.Errorf("out[0] = %v, want merged p0+p1 at x=0.5", out[0])
	}

	out, err = HierarchicalClustering(out, 2)
	if err != nil {
		t.Fatal(err)
	}
	want = [][]string{{"p0", "p1", "p2"}, {"p3"}}
	if got := membership(out); !reflect.DeepEqual(got, want) {
		t.Errorf("after two merges: %v, want %v", got, want)
	}
}

func TestHierarchicalClustering_Termination(t *testing.T) {
	rng := newTestRand()
	for _, n := range []int{1, 2, 7, 30, 120} {
		for _, k := range []int{1, 2, n / 2, n} {
			if k < 1 {
				continue
			}
			list := randomPoints(rng, n, 100)
			var total float64
			for _, c := range list {
				total += c.Weight()
			}

			out, err := HierarchicalClustering(list, k)
			if err != nil {
				t.Fatalf("n=%d k=%d: %v", n, k, err)
			}
			if len(out) != k {
				t.Fatalf("n=%d k=%d: %d clusters", n, k, len(out))
			}

			// Every input member appears exactly once.
			seen := make(map[string]int)
			var weight float64
			for _, c := range out {
				for _, m := range c.Members() {
					seen[m]++
				}
				weight += c.Weight()
			}
			if len(seen) != n {
				t.Fatalf("n=%d k=%d: %d distinct members, want %d", n, k, len(seen), n)
			}
			for m, count := range seen {
				if count != 1 {
					t.Fatalf("n=%d k=%d: member %s appears %d times", n, k, m, count)
				}
			}
			if diff := weight - total; diff > 1e-6 || diff < -1e-6 {
				t.Fatalf("n=%d k=%d: weight %v, want %v", n, k, weight, total)
			}
		}
	}
}

func TestHierarchicalClustering_MemberlessInputsKeepWeight(t *testing.T) {
	list := []*Cluster{NewCluster(nil, 0, 0, 3, 0), NewCluster(nil, 1, 0, 1, 0)}
	out, err := HierarchicalClustering(list, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := out[0].Weight(); got != 4 {
		t.Errorf("weight = %v, want 4", got)
	}
	if out[0].X() != 0.25 || out[0].Y() != 0 {
		t.Errorf("center = (%v, %v), want (0.25, 0)", out[0].X(), out[0].Y())
	}
}

func TestHierarchicalClustering_TargetEqualsLength(t *testing.T) {
	list := points([2]float64{0, 0}, [2]float64{1, 1}, [2]float64{2, 2})
	out, err := HierarchicalClustering(list, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Fatalf("%d clusters, want 3", len(out))
	}
	for i := range out {
		if out[i] != list[i] || out[i].Len() != 1 {
			t.Errorf("cluster %d changed", i)
		}
	}
}

func TestHierarchicalClustering_CallerSliceNotReordered(t *testing.T) {
	list := points([2]float64{0, 0}, [2]float64{5, 5}, [2]float64{0, 1}, [2]float64{9, 9})
	orig := append([]*Cluster(nil), list...)

	if _, err := HierarchicalClustering(list, 2); err != nil {
		t.Fatal(err)
	}
	for i := range list {
		if list[i] != orig[i] {
			t.Errorf("caller slice position %d replaced", i)
		}
	}
}

func TestHierarchicalClustering_InvalidTarget(t *testing.T) {
	list := points([2]float64{0, 0}, [2]float64{1, 1})
	for _, k := range []int{-1, 0, 3} {
		if _, err := HierarchicalClustering(list, k); !errors.Is(err, ErrInvalidClusterCount) {
			t.Errorf("k=%d: err = %v, want ErrInvalidClusterCount", k, err)
		}
	}
	if _, err := HierarchicalClustering(nil, 1); !errors.Is(err, ErrInsufficientInput) {
		t.Errorf("empty input: err = %v, want ErrInsufficientInput", err)
	}
}

func TestHierarchical_BruteAndFastAgreeWithoutTies(t *testing.T) {
	rng := newTestRand()
	a := randomPoints(rng, 60, 100)
	b := make([]*Cluster, len(a))
	for i, c := range a {
		b[i] = c.Copy()
	}

	ctx := context.Background()
	fast, err := hierarchical(ctx, a, 5, fastPairFinder(1), nil, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	brute, err := hierarchical(ctx, b, 5, brutePairFinder(1), nil, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(membership(fast), membership(brute)) {
		t.Errorf("fast %v\nbrute %v", membership(fast), membership(brute))
	}
}

func TestHierarchical_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	list := points([2]float64{0, 0}, [2]float64{1, 1}, [2]float64{2, 2})
	_, err := hierarchical(ctx, list, 1, fastPairFinder(1), nil, zap.NewNop())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
