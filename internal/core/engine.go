// ABOUTME: Engine orchestrates steering, index search, and blended reranking
// ABOUTME: Generations swap atomically; readers never observe a partial rebuild
package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/harper/dialrag/internal/config"
	"github.com/harper/dialrag/internal/index"
	"github.com/harper/dialrag/internal/llm"
	"github.com/harper/dialrag/internal/models"
	"github.com/harper/dialrag/internal/pairs"
	"github.com/harper/dialrag/internal/steering"
)

// Blend weights for the final ranking. These are fixed design
// constants, not caller-configurable.
const (
	similarityWeight = 0.7
	alignmentWeight  = 0.3
)

// rerankOverFetch multiplies top_k for the candidate pool when
// reranking is enabled.
const rerankOverFetch = 3

// DefaultTopK is used when a request leaves top_k unset.
const DefaultTopK = 5

// RetrieveRequest is one retrieval call.
type RetrieveRequest struct {
	Query        string
	Dials        models.DialVector
	TopK         int
	UseReranking bool
	UseSteering  bool
}

// IndexStats summarizes an index build.
type IndexStats struct {
	TotalArticles int     `json:"total_articles"`
	TotalChunks   int     `json:"total_chunks"`
	EmbeddingDim  int     `json:"embedding_dim"`
	BuildSeconds  float64 `json:"build_seconds"`
}

// EngineStats summarizes the engine's current generations.
type EngineStats struct {
	TotalChunks       int                     `json:"total_chunks"`
	TotalArticles     int                     `json:"total_articles"`
	EmbeddingDim      int                     `json:"embedding_dim"`
	SteeringVectors   []models.SteeringVector `json:"steering_vectors,omitempty"`
	LearnedDimensions []string                `json:"learned_dimensions,omitempty"`
}

// Engine ties the retrieval pipeline together. The passage index and
// steering vector collection are read atomically per query; rebuild and
// relearn run under a single-writer lock, building the new generation
// aside before swapping it in.
type Engine struct {
	embedder llm.Embedder
	cfg      *config.Config
	chunker  *Chunker

	idx     atomic.Pointer[index.Index]
	vectors atomic.Pointer[steering.Collection]

	writeMu sync.Mutex
}

// NewEngine creates an engine with no index or vectors loaded.
func NewEngine(embedder llm.Embedder, cfg *config.Config) *Engine {
	return &Engine{
		embedder: embedder,
		cfg:      cfg,
		chunker:  NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
	}
}

// LoadPersisted loads any persisted index and steering vectors from the
// configured paths. Missing artifacts are not errors; the engine just
// starts without that generation.
func (e *Engine) LoadPersisted() error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if index.Exists(e.cfg.IndexDir) {
		ix, err := index.Load(e.cfg.IndexDir)
		if err != nil {
			return fmt.Errorf("loading persisted index: %w", err)
		}
		if ix.Dimension() != e.embedder.Dimension() {
			return fmt.Errorf("%w: persisted index width %d, embedder width %d; rebuild required",
				index.ErrDimensionMismatch, ix.Dimension(), e.embedder.Dimension())
		}
		e.idx.Store(ix)
	}

	if coll, err := steering.LoadCollection(e.cfg.VectorsPath); err == nil {
		e.vectors.Store(coll)
	}
	return nil
}

// RebuildIndex loads articles from the configured directory, chunks and
// embeds them, persists the new generation, and swaps it in. The old
// generation stays visible until the swap; a failed build changes
// nothing.
func (e *Engine) RebuildIndex(ctx context.Context) (*IndexStats, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	start := time.Now()

	articles, err := LoadArticles(e.cfg.ArticlesDir)
	if err != nil {
		return nil, err
	}

	var chunks []models.PassageChunk
	for _, article := range articles {
		chunks = append(chunks, e.chunker.ChunkArticle(article)...)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no indexable content in %s", e.cfg.ArticlesDir)
	}

	ix, err := index.Build(ctx, e.embedder, chunks, e.cfg.EmbedBatchSize)
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}
	if err := ix.Save(e.cfg.IndexDir); err != nil {
		return nil, fmt.Errorf("persisting index: %w", err)
	}

	e.idx.Store(ix)

	return &IndexStats{
		TotalArticles: len(articles),
		TotalChunks:   ix.Len(),
		EmbeddingDim:  ix.Dimension(),
		BuildSeconds:  time.Since(start).Seconds(),
	}, nil
}

// LearnVectors learns a new steering vector collection from a
// contrastive pair set, persists it, and swaps it in wholesale.
func (e *Engine) LearnVectors(ctx context.Context, set *pairs.Set, dimensions []string) (*steering.Collection, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if len(dimensions) == 0 {
		dimensions = models.CanonicalDimensions()
	}

	learner := steering.NewLearner(e.embedder)
	coll, err := learner.LearnCollection(ctx, set, dimensions)
	if err != nil {
		return nil, err
	}
	if err := coll.Save(e.cfg.VectorsPath); err != nil {
		return nil, fmt.Errorf("persisting steering vectors: %w", err)
	}

	e.vectors.Store(coll)
	return coll, nil
}

// Retrieve runs the full pipeline: embed (and optionally steer) the
// query, over-fetch candidates, score dial alignment, blend, rerank,
// and truncate to top_k.
func (e *Engine) Retrieve(ctx context.Context, req RetrieveRequest) (*models.RetrievalResponse, error) {
	start := time.Now()

	ix := e.idx.Load()
	if ix == nil {
		return nil, index.ErrIndexNotBuilt
	}

	topK := req.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	dials := req.Dials.WithNeutralDefaults()

	embedded, err := e.embedder.Embed(ctx, []string{req.Query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	queryVec := embedded[0]

	steeringMethod := models.SteeringMethodNone
	if req.UseSteering {
		if coll := e.vectors.Load(); coll.Len() > 0 {
			queryVec = steering.NewApplicator(coll).Apply(queryVec, dials, steering.DefaultStrength)
			steeringMethod = models.SteeringMethodLearned
		}
	}

	kCandidates := topK
	if req.UseReranking {
		kCandidates = topK * rerankOverFetch
	}
	if kCandidates > ix.Len() {
		kCandidates = ix.Len()
	}

	hits, err := ix.Search(queryVec, kCandidates)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.RetrievalResult, len(hits))
	for i, hit := range hits {
		chunk := ix.Chunk(hit.Position)
		alignment := AlignmentScore(dials, chunk.Dials)

		candidates[i] = models.RetrievalResult{
			Text:           chunk.Text,
			Metadata:       chunk.Metadata,
			BaseSimilarity: hit.Score,
			DialAlignment:  alignment,
			BlendedScore:   similarityWeight*hit.Score + alignmentWeight*alignment,
			DocDials:       chunk.Dials,
		}
	}

	if req.UseReranking {
		sort.SliceStable(candidates, func(a, b int) bool {
			return candidates[a].BlendedScore > candidates[b].BlendedScore
		})
	}

	total := len(candidates)
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	return &models.RetrievalResponse{
		Results:         candidates,
		TotalCandidates: total,
		RetrievalTimeMs: float64(time.Since(start).Microseconds()) / 1000,
		SteeringMethod:  steeringMethod,
	}, nil
}

// Stats reports the engine's current generations.
func (e *Engine) Stats() EngineStats {
	stats := EngineStats{}

	if ix := e.idx.Load(); ix != nil {
		stats.TotalChunks = ix.Len()
		stats.TotalArticles = ix.Articles()
		stats.EmbeddingDim = ix.Dimension()
	}
	if coll := e.vectors.Load(); coll.Len() > 0 {
		stats.SteeringVectors = coll.Vectors()
		stats.LearnedDimensions = coll.Dimensions()
	}
	return stats
}

// HasIndex reports whether an index generation is loaded.
func (e *Engine) HasIndex() bool {
	return e.idx.Load() != nil
}

// HasVectors reports whether a steering vector collection is loaded.
func (e *Engine) HasVectors() bool {
	return e.vectors.Load().Len() > 0
}
