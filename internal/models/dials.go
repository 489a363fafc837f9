// ABOUTME: DialVector maps semantic dimension names to emphasis values in [0,1]
// ABOUTME: Defines the canonical dimension set and neutral defaults
package models

// Canonical semantic dimensions recognized by the engine. Callers may
// pass other names; unknown dimensions are ignored, never rejected.
const (
	DimensionLove       = "love"
	DimensionCommitment = "commitment"
	DimensionTrust      = "trust"
	DimensionBelonging  = "belonging"
	DimensionGrowth     = "growth"
)

// NeutralDialValue is the value meaning "no preference" on a dimension.
const NeutralDialValue = 0.5

// CanonicalDimensions returns the enumerated dimension set in learning order.
// Index 0 is the primary axis; the rest are candidates for
// variance-derived auxiliary vectors.
func CanonicalDimensions() []string {
	return []string{
		DimensionLove,
		DimensionCommitment,
		DimensionTrust,
		DimensionBelonging,
		DimensionGrowth,
	}
}

// DialVector is a caller-supplied mapping of dimension name to a value
// in [0,1]. 0.5 denotes neutral.
type DialVector map[string]float64

// NeutralDials returns a DialVector with every canonical dimension at neutral.
func NeutralDials() DialVector {
	dials := make(DialVector, 5)
	for _, dim := range CanonicalDimensions() {
		dials[dim] = NeutralDialValue
	}
	return dials
}

// Clamp returns a copy with every value forced into [0,1].
func (d DialVector) Clamp() DialVector {
	out := make(DialVector, len(d))
	for k, v := range d {
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		out[k] = v
	}
	return out
}

// WithNeutralDefaults returns a copy with every canonical dimension
// present, defaulting to neutral where the caller left it unset.
// Caller-supplied values are clamped to [0,1]. Alignment scoring works
// on the dimension intersection, so sparse dial maps must be filled
// before scoring or a single-dial request degenerates to a constant.
func (d DialVector) WithNeutralDefaults() DialVector {
	out := NeutralDials()
	for k, v := range d.Clamp() {
		out[k] = v
	}
	return out
}

// Valid reports whether all dial values are within [0,1].
func (d DialVector) Valid() bool {
	for _, v := range d {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}
