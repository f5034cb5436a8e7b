package proximity

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientInput is returned when an operation needs more clusters
	// than it was given (closest pair needs at least two).
	ErrInsufficientInput = errors.New("proximity: insufficient input")

	// ErrInvalidClusterCount is returned when a target cluster count is
	// outside [1, n].
	ErrInvalidClusterCount = errors.New("proximity: invalid cluster count")

	// ErrInvalidIterations is returned for a negative k-means iteration count.
	ErrInvalidIterations = errors.New("proximity: invalid iteration count")
)

func insufficientInput(op string, n, need int) error {
	return fmt.Errorf("%w: %s needs at least %d clusters, got %d", ErrInsufficientInput, op, need, n)
}

func invalidClusterCount(k, n int) error {
	return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidClusterCount, k, n)
}
