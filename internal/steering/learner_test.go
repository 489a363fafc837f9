// ABOUTME: Unit tests for the steering vector learner
// ABOUTME: Covers axis recovery, degenerate directions, and variance components
package steering

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/harper/dialrag/internal/models"
	"github.com/harper/dialrag/internal/pairs"
	"gonum.org/v1/gonum/floats"
)

// mapEmbedder returns fixed vectors for known texts.
type mapEmbedder struct {
	dim     int
	vectors map[string][]float64
}

func (m *mapEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		v, ok := m.vectors[t]
		if !ok {
			return nil, fmt.Errorf("no fixture embedding for %q", t)
		}
		out[i] = v
	}
	return out, nil
}

func (m *mapEmbedder) Dimension() int { return m.dim }

func unit(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	floats.Scale(1/floats.Norm(out, 2), out)
	return out
}

// separableFixture builds 10 synthetic pairs whose embeddings are
// linearly separable along the first axis, with small per-pair noise in
// the second axis.
func separableFixture() (*pairs.Set, *mapEmbedder) {
	emb := &mapEmbedder{dim: 4, vectors: make(map[string][]float64)}
	set := &pairs.Set{}

	for i := 0; i < 10; i++ {
		posText := fmt.Sprintf("pos-%d", i)
		negText := fmt.Sprintf("neg-%d", i)
		noise := 0.05 * float64(i%3-1)

		emb.vectors[posText] = unit([]float64{1, noise, 0.1, 0})
		emb.vectors[negText] = unit([]float64{-1, -noise, 0.1, 0})

		set.Positive = append(set.Positive, posText)
		set.Negative = append(set.Negative, negText)
	}
	return set, emb
}

func TestLearner_RecoversKnownAxis(t *testing.T) {
	set, emb := separableFixture()
	learner := NewLearner(emb)

	sv, err := learner.Learn(context.Background(), set, models.DimensionLove)
	if err != nil {
		t.Fatalf("Learn error: %v", err)
	}

	if sv.Dimension != models.DimensionLove {
		t.Errorf("Dimension = %q, want love", sv.Dimension)
	}
	if sv.Method != models.MethodMeanDifference {
		t.Errorf("Method = %q, want mean_difference", sv.Method)
	}

	norm := floats.Norm(sv.Vector, 2)
	if math.Abs(norm-1) > 1e-9 {
		t.Errorf("vector norm = %v, want 1", norm)
	}

	// Cosine similarity to the known separating axis must exceed 0.99.
	axis := []float64{1, 0, 0, 0}
	cos := floats.Dot(sv.Vector, axis)
	if cos < 0.99 {
		t.Errorf("cosine to known axis = %v, want > 0.99", cos)
	}

	if sv.Magnitude <= 0 || sv.Separation <= 0 {
		t.Errorf("provenance missing: magnitude=%v separation=%v", sv.Magnitude, sv.Separation)
	}
}

func TestLearner_DegenerateDirection(t *testing.T) {
	// positive == negative for every pair: zero mean difference.
	emb := &mapEmbedder{dim: 3, vectors: make(map[string][]float64)}
	set := &pairs.Set{}
	for i := 0; i < 6; i++ {
		text := fmt.Sprintf("same-%d", i)
		emb.vectors[text] = unit([]float64{1, float64(i), 0})
		set.Positive = append(set.Positive, text)
		set.Negative = append(set.Negative, text)
	}

	learner := NewLearner(emb)
	_, err := learner.Learn(context.Background(), set, models.DimensionLove)
	if !errors.Is(err, ErrDegenerateDirection) {
		t.Fatalf("expected ErrDegenerateDirection, got %v", err)
	}
}

func TestLearner_EmptySet(t *testing.T) {
	learner := NewLearner(&mapEmbedder{dim: 3})
	_, err := learner.Learn(context.Background(), &pairs.Set{}, models.DimensionLove)
	if !errors.Is(err, pairs.ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestDeriveAuxiliaryDimensions_TooFewPairs(t *testing.T) {
	pos := [][]float64{{1, 0}, {0.9, 0.1}}
	neg := [][]float64{{-1, 0}, {-0.9, -0.1}}

	out, err := DeriveAuxiliaryDimensions(pos, neg, []string{"commitment"})
	if err != nil {
		t.Fatalf("DeriveAuxiliaryDimensions error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected no auxiliary vectors below the pair minimum, got %d", len(out))
	}
}

func TestDeriveAuxiliaryDimensions_ComponentsAreUnitAndRanked(t *testing.T) {
	// Differences vary mostly along axis 0, secondarily along axes 1
	// and 2, so the decomposition has several non-trivial components.
	var pos, neg [][]float64
	for i := 0; i < 8; i++ {
		a := float64(i%2)*2 - 1
		b := 0.5 * (float64(i%4) - 1.5)
		c := 0.1 * (float64(i) - 3.5)
		pos = append(pos, []float64{1 + a, b, c, 0})
		neg = append(neg, []float64{-1, 0, 0, 0})
	}

	names := []string{"commitment", "trust", "belonging", "growth"}
	out, err := DeriveAuxiliaryDimensions(pos, neg, names)
	if err != nil {
		t.Fatalf("DeriveAuxiliaryDimensions error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected auxiliary vectors")
	}

	prevVar := math.Inf(1)
	for i, sv := range out {
		if sv.Method != models.MethodVarianceComponent {
			t.Errorf("vector %d method = %q", i, sv.Method)
		}
		if sv.Dimension != names[i] {
			t.Errorf("vector %d dimension = %q, want %q", i, sv.Dimension, names[i])
		}
		if sv.ComponentRank != i+1 {
			t.Errorf("vector %d rank = %d, want %d", i, sv.ComponentRank, i+1)
		}

		norm := floats.Norm(sv.Vector, 2)
		if math.Abs(norm-1) > 1e-9 {
			t.Errorf("vector %d norm = %v, want 1", i, norm)
		}

		if sv.ExplainedVariance < 0 || sv.ExplainedVariance > 1 {
			t.Errorf("vector %d explained variance = %v", i, sv.ExplainedVariance)
		}
		if sv.ExplainedVariance > prevVar {
			t.Errorf("explained variance not decreasing at component %d", i)
		}
		prevVar = sv.ExplainedVariance
	}
}

func TestLearnCollection(t *testing.T) {
	set, emb := separableFixture()
	learner := NewLearner(emb)

	coll, err := learner.LearnCollection(context.Background(), set, models.CanonicalDimensions())
	if err != nil {
		t.Fatalf("LearnCollection error: %v", err)
	}

	primary, ok := coll.Get(models.DimensionLove)
	if !ok {
		t.Fatal("primary dimension missing from collection")
	}
	if primary.Method != models.MethodMeanDifference {
		t.Errorf("primary method = %q, want mean_difference", primary.Method)
	}

	for _, dim := range coll.Dimensions() {
		sv, _ := coll.Get(dim)
		norm := floats.Norm(sv.Vector, 2)
		if math.Abs(norm-1) > 1e-9 {
			t.Errorf("dimension %s norm = %v, want 1", dim, norm)
		}
	}
}
