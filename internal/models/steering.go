// ABOUTME: SteeringVector represents a learned unit-length direction in embedding space
// ABOUTME: Carries provenance so variance-derived vectors stay auditable
package models

// Derivation methods for steering vectors.
const (
	MethodMeanDifference    = "mean_difference"
	MethodVarianceComponent = "variance_component"
)

// SteeringVector is a named unit vector in embedding space learned from
// contrastive pairs. For variance-derived vectors the dimension name is
// a best-effort positional label: the component is orthogonal and
// variance-ordered, but nothing validates that it encodes the named
// semantic axis. Callers should inspect ComponentRank and
// ExplainedVariance before trusting the label.
type SteeringVector struct {
	Dimension string    `json:"dimension"`
	Vector    []float64 `json:"vector"`

	// Provenance
	Method            string  `json:"method"`
	Magnitude         float64 `json:"magnitude"`
	Separation        float64 `json:"separation,omitempty"`
	ComponentRank     int     `json:"component_rank,omitempty"`
	ExplainedVariance float64 `json:"explained_variance,omitempty"`
}
