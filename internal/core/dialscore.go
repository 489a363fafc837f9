// ABOUTME: Dial alignment scoring between caller dials and document annotations
// ABOUTME: Cosine similarity over the shared dimensions, mapped to [0,1]
package core

import (
	"math"
	"sort"

	"github.com/harper/dialrag/internal/models"
)

// AlignmentScore computes how well a caller's dial settings match a
// document's dial annotation. Only dimensions present in both mappings
// count, element-aligned in lexicographic order. Cosine similarity is
// mapped from [-1,1] to [0,1]; an empty intersection or a zero-norm
// vector yields the neutral 0.5.
func AlignmentScore(userDials, docDials models.DialVector) float64 {
	var common []string
	for dim := range userDials {
		if _, ok := docDials[dim]; ok {
			common = append(common, dim)
		}
	}
	if len(common) == 0 {
		return models.NeutralDialValue
	}
	sort.Strings(common)

	var dot, userNorm, docNorm float64
	for _, dim := range common {
		u, d := userDials[dim], docDials[dim]
		dot += u * d
		userNorm += u * u
		docNorm += d * d
	}

	if userNorm == 0 || docNorm == 0 {
		return models.NeutralDialValue
	}

	cos := dot / (math.Sqrt(userNorm) * math.Sqrt(docNorm))
	return (cos + 1) / 2
}
