package vector

import (
	"errors"
	"fmt"
	"math"
)

// epsilon guards division by zero for zero-magnitude vectors.
const epsilon = 1e-10

// ErrDimensionMismatch reports vectors of unequal length. The store treats it
// as an invariant violation: the query fails loudly instead of truncating.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// CosineSimilarity computes dot(a,b) / (|a|*|b| + epsilon).
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + epsilon), nil
}
