// ABOUTME: Steering vector learner computing directions from contrastive pairs
// ABOUTME: Mean-difference primary axis plus SVD-derived auxiliary components
package steering

import (
	"context"
	"errors"
	"fmt"

	"github.com/harper/dialrag/internal/llm"
	"github.com/harper/dialrag/internal/models"
	"github.com/harper/dialrag/internal/pairs"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrDegenerateDirection means the two classes are not separable in
// embedding space: the learned direction has (near-)zero norm.
var ErrDegenerateDirection = errors.New("degenerate steering direction: classes are not separable in embedding space")

const (
	// normEpsilon is the threshold below which a direction is degenerate
	normEpsilon = 1e-8
	// minPairsForDecomposition is the minimum pair count for auxiliary
	// dimension derivation. Below it, no auxiliary vectors are emitted.
	minPairsForDecomposition = 5
	// maxComponents caps how many variance components are extracted
	maxComponents = 5
)

// Learner computes steering vectors from contrastive pair sets.
type Learner struct {
	embedder llm.Embedder
}

// NewLearner creates a Learner backed by the given embedder.
func NewLearner(embedder llm.Embedder) *Learner {
	return &Learner{embedder: embedder}
}

// Learn embeds both sides of the pair set and computes the primary
// mean-difference steering vector for the named dimension.
func (l *Learner) Learn(ctx context.Context, set *pairs.Set, dimension string) (models.SteeringVector, error) {
	pos, neg, err := l.embedPairs(ctx, set)
	if err != nil {
		return models.SteeringVector{}, err
	}
	return meanDifferenceVector(pos, neg, dimension)
}

// LearnCollection embeds the pair set once and learns the full vector
// collection: dimensions[0] becomes the primary mean-difference axis,
// and dimensions[1:] label variance components 1..k when enough pairs
// exist. Auxiliary labeling is positional and best-effort; consult
// each vector's ComponentRank and ExplainedVariance.
func (l *Learner) LearnCollection(ctx context.Context, set *pairs.Set, dimensions []string) (*Collection, error) {
	if len(dimensions) == 0 {
		return nil, fmt.Errorf("at least one dimension name is required")
	}

	pos, neg, err := l.embedPairs(ctx, set)
	if err != nil {
		return nil, err
	}

	primary, err := meanDifferenceVector(pos, neg, dimensions[0])
	if err != nil {
		return nil, err
	}

	vectors := []models.SteeringVector{primary}
	if len(dimensions) > 1 {
		aux, err := DeriveAuxiliaryDimensions(pos, neg, dimensions[1:])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, aux...)
	}

	return NewCollection(vectors...), nil
}

func (l *Learner) embedPairs(ctx context.Context, set *pairs.Set) (pos, neg [][]float64, err error) {
	if set == nil || set.Len() == 0 {
		return nil, nil, pairs.ErrEmptyDataset
	}

	pos, err = l.embedder.Embed(ctx, set.Positive)
	if err != nil {
		return nil, nil, fmt.Errorf("embedding positive texts: %w", err)
	}
	neg, err = l.embedder.Embed(ctx, set.Negative)
	if err != nil {
		return nil, nil, fmt.Errorf("embedding negative texts: %w", err)
	}
	return pos, neg, nil
}

// meanDifferenceVector computes mean(pos) - mean(neg), normalized to
// unit length, with provenance recorded.
func meanDifferenceVector(pos, neg [][]float64, dimension string) (models.SteeringVector, error) {
	if len(pos) == 0 || len(neg) == 0 {
		return models.SteeringVector{}, pairs.ErrEmptyDataset
	}

	dim := len(pos[0])
	posMean := columnMean(pos, dim)
	negMean := columnMean(neg, dim)

	diff := make([]float64, dim)
	floats.SubTo(diff, posMean, negMean)

	magnitude := floats.Norm(diff, 2)
	if magnitude < normEpsilon {
		return models.SteeringVector{}, fmt.Errorf("%w: dimension %q", ErrDegenerateDirection, dimension)
	}
	floats.Scale(1/magnitude, diff)

	return models.SteeringVector{
		Dimension:  dimension,
		Vector:     diff,
		Method:     models.MethodMeanDifference,
		Magnitude:  magnitude,
		Separation: magnitude,
	}, nil
}

// DeriveAuxiliaryDimensions runs a principal-component decomposition on
// the per-pair difference matrix and labels components 1..k with the
// supplied names (component 0 is reserved for the primary axis).
// Requires at least minPairsForDecomposition pairs; with fewer it
// returns an empty slice, so callers must check the returned count.
func DeriveAuxiliaryDimensions(pos, neg [][]float64, names []string) ([]models.SteeringVector, error) {
	n := len(pos)
	if n != len(neg) {
		return nil, fmt.Errorf("positive/negative count mismatch: %d != %d", n, len(neg))
	}
	if n < minPairsForDecomposition || len(names) == 0 {
		return nil, nil
	}

	dim := len(pos[0])
	diffs := mat.NewDense(n, dim, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < dim; j++ {
			diffs.Set(i, j, pos[i][j]-neg[i][j])
		}
	}
	centerColumns(diffs)

	var svd mat.SVD
	if !svd.Factorize(diffs, mat.SVDThin) {
		return nil, fmt.Errorf("variance decomposition failed to converge")
	}

	values := svd.Values(nil)
	var totalVar float64
	for _, s := range values {
		totalVar += s * s
	}
	if totalVar < normEpsilon {
		return nil, fmt.Errorf("%w: pair differences carry no variance", ErrDegenerateDirection)
	}

	var v mat.Dense
	svd.VTo(&v)

	nComponents := maxComponents
	if n < nComponents {
		nComponents = n
	}
	if len(values) < nComponents {
		nComponents = len(values)
	}

	var out []models.SteeringVector
	for rank := 1; rank < nComponents && rank-1 < len(names); rank++ {
		component := mat.Col(nil, rank, &v)
		norm := floats.Norm(component, 2)
		if norm < normEpsilon {
			continue
		}
		floats.Scale(1/norm, component)

		out = append(out, models.SteeringVector{
			Dimension:         names[rank-1],
			Vector:            component,
			Method:            models.MethodVarianceComponent,
			Magnitude:         1,
			ComponentRank:     rank,
			ExplainedVariance: values[rank] * values[rank] / totalVar,
		})
	}
	return out, nil
}

func columnMean(rows [][]float64, dim int) []float64 {
	mean := make([]float64, dim)
	for _, row := range rows {
		floats.Add(mean, row)
	}
	floats.Scale(1/float64(len(rows)), mean)
	return mean
}

func centerColumns(m *mat.Dense) {
	rows, cols := m.Dims()
	for j := 0; j < cols; j++ {
		var sum float64
		for i := 0; i < rows; i++ {
			sum += m.At(i, j)
		}
		mean := sum / float64(rows)
		for i := 0; i < rows; i++ {
			m.Set(i, j, m.At(i, j)-mean)
		}
	}
}
