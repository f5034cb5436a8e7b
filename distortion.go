package proximity

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Distortion returns the total weighted squared error of a partition:
// the sum over inputs of weight * distance(input, clusters[labels[i]])².
// Inputs labeled -1 are unassigned and contribute nothing.
func Distortion(clusters, inputs []*Cluster, labels []int) (float64, error) {
	if len(labels) != len(inputs) {
		return 0, fmt.Errorf("proximity: %d labels for %d inputs", len(labels), len(inputs))
	}

	weights := make([]float64, len(inputs))
	squared := make([]float64, len(inputs))
	for i, in := range inputs {
		l := labels[i]
		if l == -1 {
			continue
		}
		if l < 0 || l >= len(clusters) {
			return 0, fmt.Errorf("proximity: label %d of input %d out of range [0, %d)", l, i, len(clusters))
		}
		d := in.Distance(clusters[l])
		weights[i] = in.Weight()
		squared[i] = d * d
	}
	return floats.Dot(weights, squared), nil
}

// ClusterError returns the weighted squared error of c against the inputs
// whose members all belong to c. Inputs without members are ignored.
func ClusterError(c *Cluster, inputs []*Cluster) float64 {
	var weights, squared []float64
	for _, in := range inputs {
		if in.Len() == 0 || !containsAll(c, in) {
			continue
		}
		d := in.Distance(c)
		weights = append(weights, in.Weight())
		squared = append(squared, d*d)
	}
	return floats.Dot(weights, squared)
}

func containsAll(c, in *Cluster) bool {
	for m := range in.members {
		if !c.Has(m) {
			return false
		}
	}
	return true
}
