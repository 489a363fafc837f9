// ABOUTME: Passage index with exact inner-product nearest-neighbor search
// ABOUTME: One immutable generation per build; rebuilds swap wholesale
package index

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/harper/dialrag/internal/llm"
	"github.com/harper/dialrag/internal/models"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrIndexNotBuilt means Search was called before any Build or Load
	ErrIndexNotBuilt = errors.New("passage index not built")
	// ErrDimensionMismatch means a vector's width does not match the index
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// Hit is one search result: the chunk's position in the index and its
// inner-product similarity to the query. Vectors are unit length, so
// the score equals cosine similarity.
type Hit struct {
	Position int     `json:"position"`
	Score    float64 `json:"score"`
}

// Index holds one immutable generation of embedded passage chunks and
// supports exact inner-product search. Concurrent reads are safe; a
// rebuild produces a whole new Index.
type Index struct {
	dim     int
	vectors [][]float64
	chunks  []models.PassageChunk
}

// Build embeds all chunk texts in batches and constructs a new index
// generation. The input chunks' Embedding fields are ignored and
// replaced.
func Build(ctx context.Context, embedder llm.Embedder, chunks []models.PassageChunk, batchSize int) (*Index, error) {
	if batchSize <= 0 {
		batchSize = 32
	}

	out := make([]models.PassageChunk, len(chunks))
	copy(out, chunks)

	for start := 0; start < len(out); start += batchSize {
		end := start + batchSize
		if end > len(out) {
			end = len(out)
		}

		texts := make([]string, end-start)
		for i := start; i < end; i++ {
			texts[i-start] = out[i].Text
		}

		vectors, err := embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding chunks %d-%d: %w", start, end-1, err)
		}
		for i := start; i < end; i++ {
			out[i].Embedding = vectors[i-start]
		}
	}

	return New(out)
}

// New constructs an index from pre-embedded chunks.
func New(chunks []models.PassageChunk) (*Index, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no chunks to index", ErrIndexNotBuilt)
	}

	dim := len(chunks[0].Embedding)
	if dim == 0 {
		return nil, fmt.Errorf("%w: chunk 0 has no embedding", ErrDimensionMismatch)
	}

	vectors := make([][]float64, len(chunks))
	for i, c := range chunks {
		if len(c.Embedding) != dim {
			return nil, fmt.Errorf("%w: chunk %d has width %d, index has %d", ErrDimensionMismatch, i, len(c.Embedding), dim)
		}
		vectors[i] = c.Embedding
	}

	return &Index{dim: dim, vectors: vectors, chunks: chunks}, nil
}

// Search returns the k most similar chunks by inner product, highest
// first. Ties keep original insertion order. k larger than the index is
// clamped.
func (ix *Index) Search(query []float64, k int) ([]Hit, error) {
	if ix == nil || len(ix.vectors) == 0 {
		return nil, ErrIndexNotBuilt
	}
	if len(query) != ix.dim {
		return nil, fmt.Errorf("%w: query width %d, index width %d", ErrDimensionMismatch, len(query), ix.dim)
	}
	if k <= 0 {
		return nil, nil
	}
	if k > len(ix.vectors) {
		k = len(ix.vectors)
	}

	hits := make([]Hit, len(ix.vectors))
	for i, v := range ix.vectors {
		hits[i] = Hit{Position: i, Score: floats.Dot(query, v)}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})

	return hits[:k], nil
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.chunks)
}

// Dimension returns the embedding width of this generation.
func (ix *Index) Dimension() int {
	if ix == nil {
		return 0
	}
	return ix.dim
}

// Chunk returns the chunk at a search hit's position.
func (ix *Index) Chunk(position int) models.PassageChunk {
	return ix.chunks[position]
}

// Articles returns the number of distinct source articles.
func (ix *Index) Articles() int {
	if ix == nil {
		return 0
	}
	seen := make(map[string]struct{})
	for _, c := range ix.chunks {
		seen[c.Metadata.ArticleID] = struct{}{}
	}
	return len(seen)
}
