package proximity

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Cluster is a weighted point in the plane together with the set of
// origin-point identifiers it represents. A freshly loaded input point is a
// singleton cluster; merging unions the memberships and moves the center to
// the weight-weighted average of the two centers.
type Cluster struct {
	members map[string]struct{}
	center  r2.Vec
	weight  float64
	risk    float64
}

// NewCluster creates a cluster centered at (x, y). weight is the total
// population represented by the cluster and risk its averaged risk.
func NewCluster(members []string, x, y, weight, risk float64) *Cluster {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return &Cluster{
		members: set,
		center:  r2.Vec{X: x, Y: y},
		weight:  weight,
		risk:    risk,
	}
}

// X returns the horizontal center.
func (c *Cluster) X() float64 { return c.center.X }

// Y returns the vertical center.
func (c *Cluster) Y() float64 { return c.center.Y }

// Center returns the center as a vector.
func (c *Cluster) Center() r2.Vec { return c.center }

// Weight returns the total weight (population) of the cluster.
func (c *Cluster) Weight() float64 { return c.weight }

// Risk returns the weight-averaged risk of the cluster.
func (c *Cluster) Risk() float64 { return c.risk }

// Len returns the number of members.
func (c *Cluster) Len() int { return len(c.members) }

// Has reports whether id is a member of the cluster.
func (c *Cluster) Has(id string) bool {
	_, ok := c.members[id]
	return ok
}

// Members returns the member identifiers in sorted order.
func (c *Cluster) Members() []string {
	out := make([]string, 0, len(c.members))
	for m := range c.members {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Distance returns the Euclidean distance between the centers of c and other.
func (c *Cluster) Distance(other *Cluster) float64 {
	return r2.Norm(r2.Sub(c.center, other.center))
}

// Merge folds other into c and returns c. Memberships are unioned, weights
// summed, and the center and risk become weight-weighted averages.
//
// The combined weight is always the sum of both weights. If it is zero the
// member counts are used as weights instead, so an empty receiver takes the
// other cluster's center. If both are zero as well the receiver keeps its
// center and risk.
func (c *Cluster) Merge(other *Cluster) *Cluster {
	selfShare, otherShare := c.weight, other.weight
	total := selfShare + otherShare
	if total == 0 {
		selfShare, otherShare = float64(len(c.members)), float64(len(other.members))
		total = selfShare + otherShare
	}
	if total == 0 {
		selfShare, otherShare, total = 1, 0, 1
	}
	selfShare /= total
	otherShare /= total

	for m := range other.members {
		c.members[m] = struct{}{}
	}
	c.weight += other.weight
	c.center = r2.Add(r2.Scale(selfShare, c.center), r2.Scale(otherShare, other.center))
	c.risk = selfShare*c.risk + otherShare*other.risk
	return c
}

// Copy returns an independent deep copy of c.
func (c *Cluster) Copy() *Cluster {
	members := make(map[string]struct{}, len(c.members))
	for m := range c.members {
		members[m] = struct{}{}
	}
	return &Cluster{
		members: members,
		center:  c.center,
		weight:  c.weight,
		risk:    c.risk,
	}
}

func (c *Cluster) String() string {
	return fmt.Sprintf("Cluster([%s], %g, %g, %g, %g)",
		strings.Join(c.Members(), ", "), c.center.X, c.center.Y, c.weight, c.risk)
}
