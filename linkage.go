package proximity

import "slices"

// linkage records the merges made by hierarchical clustering as a
// single-linkage style dendrogram in scipy format. Rows are
// [left, right, distance, mergedSize]; inputs are nodes 0..n-1 and each merge
// creates the next node starting at n.
//
// Node ownership is tracked with a union-find over 2*n - 1 elements. After a
// merge both roots point at the new node, so Find on any input returns the
// node that currently contains it.
type linkage struct {
	parent []int
	size   []int
	// nextLabel is the ID for the next merged node, starting at n.
	nextLabel int
	// rep[pos] is an input index contained in the cluster at list position pos.
	rep  []int
	rows [][4]float64
}

func newLinkage(n int) *linkage {
	total := max(2*n-1, 1)
	parent := make([]int, total)
	size := make([]int, total)
	for i := range parent {
		parent[i] = -1 // -1 means "is a root"
	}
	rep := make([]int, n)
	for i := 0; i < n; i++ {
		size[i] = 1
		rep[i] = i
	}
	return &linkage{
		parent:    parent,
		size:      size,
		nextLabel: n,
		rep:       rep,
		rows:      make([][4]float64, 0, max(n-1, 0)),
	}
}

// find returns the node containing x, with path compression.
func (l *linkage) find(x int) int {
	root := x
	for l.parent[root] != -1 {
		root = l.parent[root]
	}
	for l.parent[x] != -1 {
		x, l.parent[x] = l.parent[x], root
	}
	return root
}

// merge records that the cluster at list position hi was merged into the
// one at lo and then removed from the list.
func (l *linkage) merge(lo, hi int, dist float64) {
	a := l.find(l.rep[lo])
	b := l.find(l.rep[hi])
	newSize := l.size[a] + l.size[b]

	l.rows = append(l.rows, [4]float64{float64(a), float64(b), dist, float64(newSize)})

	l.size[l.nextLabel] = newSize
	l.parent[a] = l.nextLabel
	l.parent[b] = l.nextLabel
	l.nextLabel++

	l.rep = slices.Delete(l.rep, hi, hi+1)
}

// labels maps every input to the list position of the cluster holding it.
func (l *linkage) labels(n int) []int {
	pos := make(map[int]int, len(l.rep))
	for p, r := range l.rep {
		pos[l.find(r)] = p
	}
	out := make([]int, n)
	for i := range out {
		out[i] = pos[l.find(i)]
	}
	return out
}
