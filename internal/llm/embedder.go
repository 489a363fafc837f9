// ABOUTME: Embedder is the embedding-provider contract consumed by the engine
// ABOUTME: Implementations must return L2-normalized vectors of a fixed width
package llm

import "context"

// Embedder maps batches of texts to unit-length vectors. Dimension is
// fixed per provider instance; every returned vector has that width.
type Embedder interface {
	// Embed returns one unit vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float64, error)
	// Dimension returns the width of vectors this embedder produces.
	Dimension() int
}
