// ABOUTME: Applicator biases a query embedding along learned steering vectors
// ABOUTME: Dial values map 0→-1, 0.5→0, 1→+1; output is re-normalized
package steering

import (
	"github.com/harper/dialrag/internal/models"
	"gonum.org/v1/gonum/floats"
)

// DefaultStrength is the standard overall steering strength.
const DefaultStrength = 1.0

// Applicator applies a collection of steering vectors to query
// embeddings. The collection is read-only; concurrent Apply calls are
// safe.
type Applicator struct {
	vectors *Collection
}

// NewApplicator creates an Applicator over a learned collection.
func NewApplicator(vectors *Collection) *Applicator {
	return &Applicator{vectors: vectors}
}

// Apply returns a steered copy of the query vector. For each dial whose
// dimension has a learned vector, delta = (value - 0.5) * 2 * strength
// scales that vector into the query. Unknown dimensions are ignored.
// The result is re-normalized to unit length; downstream search relies
// on unit vectors for inner-product-as-cosine equivalence.
func (a *Applicator) Apply(query []float64, dials models.DialVector, strength float64) []float64 {
	steered := make([]float64, len(query))
	copy(steered, query)

	if a.vectors.Len() > 0 {
		for dimension, value := range dials {
			sv, ok := a.vectors.Get(dimension)
			if !ok || len(sv.Vector) != len(steered) {
				continue
			}
			delta := (value - 0.5) * 2 * strength
			floats.AddScaled(steered, delta, sv.Vector)
		}
	}

	// Epsilon keeps the division defined when deltas cancel the base
	// vector exactly.
	norm := floats.Norm(steered, 2) + normEpsilon
	floats.Scale(1/norm, steered)
	return steered
}
