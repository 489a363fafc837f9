// ABOUTME: Unit tests for the passage index search path
// ABOUTME: Covers ordering, stability, clamping, and error cases
package index

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/harper/dialrag/internal/models"
)

// axisEmbedder maps text fixtures to fixed unit vectors.
type axisEmbedder struct {
	dim     int
	vectors map[string][]float64
}

func (a *axisEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		v, ok := a.vectors[t]
		if !ok {
			return nil, fmt.Errorf("no fixture embedding for %q", t)
		}
		out[i] = v
	}
	return out, nil
}

func (a *axisEmbedder) Dimension() int { return a.dim }

func chunkFixture(id string, embedding []float64, dials models.DialVector) models.PassageChunk {
	return models.PassageChunk{
		ChunkID:   id,
		Text:      "text of " + id,
		Embedding: embedding,
		Metadata:  models.ChunkMetadata{ArticleID: "article-" + id},
		Dials:     dials,
	}
}

func testIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := New([]models.PassageChunk{
		chunkFixture("a", []float64{1, 0, 0}, models.DialVector{"love": 0.9}),
		chunkFixture("b", []float64{0, 1, 0}, models.DialVector{"love": 0.1}),
		chunkFixture("c", []float64{0.6, 0.8, 0}, models.DialVector{"love": 0.5}),
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return ix
}

func TestSearch_OrdersBySimilarity(t *testing.T) {
	ix := testIndex(t)

	hits, err := ix.Search([]float64{1, 0, 0}, 3)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}

	if len(hits) != 3 {
		t.Fatalf("got %d hits, want 3", len(hits))
	}
	if hits[0].Position != 0 {
		t.Errorf("top hit position = %d, want 0", hits[0].Position)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Errorf("hits not sorted at %d: %v > %v", i, hits[i].Score, hits[i-1].Score)
		}
	}
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	ix, err := New([]models.PassageChunk{
		chunkFixture("first", []float64{0, 1, 0}, nil),
		chunkFixture("second", []float64{0, 0, 1}, nil),
		chunkFixture("third", []float64{1, 0, 0}, nil),
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	// Both orthogonal chunks score 0 against the query.
	hits, err := ix.Search([]float64{1, 0, 0}, 3)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}

	if hits[1].Position != 0 || hits[2].Position != 1 {
		t.Errorf("tied hits reordered: positions %d, %d", hits[1].Position, hits[2].Position)
	}
}

func TestSearch_ClampsK(t *testing.T) {
	ix := testIndex(t)

	hits, err := ix.Search([]float64{1, 0, 0}, 100)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(hits) != ix.Len() {
		t.Errorf("got %d hits, want %d", len(hits), ix.Len())
	}
}

func TestSearch_NotBuilt(t *testing.T) {
	var ix *Index
	_, err := ix.Search([]float64{1, 0, 0}, 1)
	if !errors.Is(err, ErrIndexNotBuilt) {
		t.Fatalf("expected ErrIndexNotBuilt, got %v", err)
	}
}

func TestSearch_DimensionMismatch(t *testing.T) {
	ix := testIndex(t)
	_, err := ix.Search([]float64{1, 0}, 1)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestNew_RejectsMixedWidths(t *testing.T) {
	_, err := New([]models.PassageChunk{
		chunkFixture("a", []float64{1, 0, 0}, nil),
		chunkFixture("b", []float64{1, 0}, nil),
	})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestBuild_EmbedsInBatches(t *testing.T) {
	emb := &axisEmbedder{dim: 3, vectors: map[string][]float64{
		"text of a": {1, 0, 0},
		"text of b": {0, 1, 0},
		"text of c": {0, 0, 1},
	}}

	chunks := []models.PassageChunk{
		chunkFixture("a", nil, nil),
		chunkFixture("b", nil, nil),
		chunkFixture("c", nil, nil),
	}

	ix, err := Build(context.Background(), emb, chunks, 2)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if ix.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ix.Len())
	}
	if ix.Dimension() != 3 {
		t.Errorf("Dimension() = %d, want 3", ix.Dimension())
	}

	hits, err := ix.Search([]float64{0, 1, 0}, 1)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if ix.Chunk(hits[0].Position).ChunkID != "b" {
		t.Errorf("top hit = %s, want b", ix.Chunk(hits[0].Position).ChunkID)
	}
	if math.Abs(hits[0].Score-1) > 1e-9 {
		t.Errorf("top score = %v, want 1", hits[0].Score)
	}

	// Input slice must not gain embeddings; the index owns its copy.
	if chunks[0].Embedding != nil {
		t.Error("Build mutated the caller's chunk slice")
	}
}

func TestArticles(t *testing.T) {
	ix := testIndex(t)
	if got := ix.Articles(); got != 3 {
		t.Errorf("Articles() = %d, want 3", got)
	}
}
