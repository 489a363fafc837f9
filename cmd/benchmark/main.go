// ABOUTME: Command-line benchmark runner for retrieval latency
// ABOUTME: Builds a synthetic corpus and measures query latency percentiles

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"hash/fnv"
	"log"
	"math"
	"os"
	"sort"
	"time"

	"github.com/harper/dialrag/internal/index"
	"github.com/harper/dialrag/internal/models"
)

// syntheticEmbedder derives deterministic unit vectors from text, so
// benchmarks exercise the search path without an embedding API.
type syntheticEmbedder struct{ dim int }

func (s *syntheticEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		vec := make([]float64, s.dim)
		var norm float64
		for j := 0; j < s.dim; j++ {
			f := fnv.New64a()
			fmt.Fprintf(f, "%d:%s", j, text)
			vec[j] = float64(int64(f.Sum64()%2001)-1000) / 1000
			norm += vec[j] * vec[j]
		}
		norm = math.Sqrt(norm)
		for j := range vec {
			vec[j] /= norm
		}
		out[i] = vec
	}
	return out, nil
}

func (s *syntheticEmbedder) Dimension() int { return s.dim }

type benchmarkResult struct {
	Chunks      int     `json:"chunks"`
	Dim         int     `json:"dim"`
	TopK        int     `json:"top_k"`
	Queries     int     `json:"queries"`
	BuildMs     float64 `json:"build_ms"`
	P50Ms       float64 `json:"p50_ms"`
	P95Ms       float64 `json:"p95_ms"`
	MeanMs      float64 `json:"mean_ms"`
	QueriesPerS float64 `json:"queries_per_sec"`
}

func main() {
	chunks := flag.Int("chunks", 10000, "Number of synthetic passages to index")
	dim := flag.Int("dim", 1536, "Embedding dimension")
	topK := flag.Int("top-k", 15, "Candidates per query (top_k * overfetch)")
	queries := flag.Int("queries", 200, "Number of queries to run")
	outputPath := flag.String("output", "", "Optional output path for JSON results")
	flag.Parse()

	embedder := &syntheticEmbedder{dim: *dim}

	fmt.Println("========================================")
	fmt.Println("Dialrag Retrieval Benchmark")
	fmt.Println("========================================")
	fmt.Printf("chunks=%d dim=%d top_k=%d queries=%d\n\n", *chunks, *dim, *topK, *queries)

	// Build the synthetic corpus.
	passages := make([]models.PassageChunk, *chunks)
	for i := range passages {
		passages[i] = models.PassageChunk{
			ChunkID: fmt.Sprintf("chunk_%d", i),
			Text:    fmt.Sprintf("synthetic passage %d", i),
			Dials:   models.NeutralDials(),
		}
	}

	buildStart := time.Now()
	ix, err := index.Build(context.Background(), embedder, passages, 512)
	if err != nil {
		log.Fatalf("Failed to build index: %v", err)
	}
	buildMs := float64(time.Since(buildStart).Microseconds()) / 1000
	fmt.Printf("Index built in %.1fms\n\n", buildMs)

	// Run queries.
	latencies := make([]float64, *queries)
	var totalMs float64
	for i := 0; i < *queries; i++ {
		queryVec, err := embedder.Embed(context.Background(), []string{fmt.Sprintf("query %d", i)})
		if err != nil {
			log.Fatalf("Embed failed: %v", err)
		}

		start := time.Now()
		if _, err := ix.Search(queryVec[0], *topK); err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		ms := float64(time.Since(start).Microseconds()) / 1000
		latencies[i] = ms
		totalMs += ms
	}

	sort.Float64s(latencies)
	result := benchmarkResult{
		Chunks:      *chunks,
		Dim:         *dim,
		TopK:        *topK,
		Queries:     *queries,
		BuildMs:     buildMs,
		P50Ms:       latencies[len(latencies)/2],
		P95Ms:       latencies[len(latencies)*95/100],
		MeanMs:      totalMs / float64(*queries),
		QueriesPerS: float64(*queries) / (totalMs / 1000),
	}

	fmt.Println("========================================")
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println("========================================")
	fmt.Printf("p50:  %.2fms\n", result.P50Ms)
	fmt.Printf("p95:  %.2fms\n", result.P95Ms)
	fmt.Printf("mean: %.2fms\n", result.MeanMs)
	fmt.Printf("rate: %.0f queries/sec\n", result.QueriesPerS)

	if *outputPath != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal results: %v", err)
		}
		if err := os.WriteFile(*outputPath, data, 0644); err != nil {
			log.Fatalf("Failed to write results: %v", err)
		}
		fmt.Printf("\nResults written to %s\n", *outputPath)
	}
}
