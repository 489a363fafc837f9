// ABOUTME: Unit tests for sentence-aware article chunking
// ABOUTME: Covers overlap carry-over and dial annotation defaults
package core

import (
	"strings"
	"testing"

	"github.com/harper/dialrag/internal/models"
)

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	c := NewChunker(512, 50)

	chunks := c.ChunkText("One short sentence. Another short one.")
	if len(chunks) != 1 {
		t.Fatalf("ChunkText() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0] != "One short sentence. Another short one." {
		t.Errorf("chunk = %q", chunks[0])
	}
}

func TestChunkText_EmptyText(t *testing.T) {
	c := NewChunker(512, 50)

	if chunks := c.ChunkText(""); chunks != nil {
		t.Errorf("ChunkText(\"\") = %v, want nil", chunks)
	}
	if chunks := c.ChunkText("   \n\t  "); chunks != nil {
		t.Errorf("ChunkText(whitespace) = %v, want nil", chunks)
	}
}

func TestChunkText_SplitsLongText(t *testing.T) {
	c := NewChunker(100, 30)

	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteString("This is a filler sentence with enough words to matter. ")
	}

	chunks := c.ChunkText(sb.String())
	if len(chunks) < 2 {
		t.Fatalf("ChunkText() returned %d chunks, want several", len(chunks))
	}
	for i, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestChunkText_OverlapCarriesTrailingSentence(t *testing.T) {
	c := NewChunker(60, 30)

	text := "Alpha sentence here. Bravo sentence here. Charlie sentence here. Delta sentence here."
	chunks := c.ChunkText(text)
	if len(chunks) < 2 {
		t.Fatalf("ChunkText() returned %d chunks, want at least 2", len(chunks))
	}

	// Each follow-up chunk starts with a sentence from the previous chunk.
	for i := 1; i < len(chunks); i++ {
		first := strings.SplitN(chunks[i], ". ", 2)[0]
		if !strings.Contains(chunks[i-1], first) {
			t.Errorf("chunk %d does not overlap with chunk %d: %q / %q",
				i, i-1, chunks[i], chunks[i-1])
		}
	}
}

func TestChunkArticle_MetadataAndIDs(t *testing.T) {
	c := NewChunker(60, 20)
	article := models.Article{
		ID:      "art1",
		Title:   "Test Article",
		Content: "Alpha sentence here. Bravo sentence here. Charlie sentence here. Delta sentence here.",
		Source:  "test.md",
		Tags:    []string{"essay"},
	}

	chunks := c.ChunkArticle(article)
	if len(chunks) < 2 {
		t.Fatalf("ChunkArticle() returned %d chunks, want at least 2", len(chunks))
	}

	seen := map[string]bool{}
	for i, chunk := range chunks {
		if chunk.ChunkID == "" || !strings.HasPrefix(chunk.ChunkID, "chunk_") {
			t.Errorf("chunk %d id = %q, want chunk_ prefix", i, chunk.ChunkID)
		}
		if seen[chunk.ChunkID] {
			t.Errorf("duplicate chunk id %q", chunk.ChunkID)
		}
		seen[chunk.ChunkID] = true

		if chunk.Metadata.ArticleID != "art1" {
			t.Errorf("chunk %d article = %q, want art1", i, chunk.Metadata.ArticleID)
		}
		if chunk.Metadata.ChunkIndex != i {
			t.Errorf("chunk %d index = %d", i, chunk.Metadata.ChunkIndex)
		}
		if chunk.Metadata.TotalChunks != len(chunks) {
			t.Errorf("chunk %d total = %d, want %d", i, chunk.Metadata.TotalChunks, len(chunks))
		}
	}
}

func TestChunkArticle_DialAnnotation(t *testing.T) {
	c := NewChunker(512, 50)

	t.Run("unscored article gets neutral dials", func(t *testing.T) {
		chunks := c.ChunkArticle(models.Article{
			ID:      "plain",
			Content: "Some content here.",
		})
		if len(chunks) != 1 {
			t.Fatalf("got %d chunks, want 1", len(chunks))
		}
		for _, dim := range models.CanonicalDimensions() {
			if chunks[0].Dials[dim] != models.NeutralDialValue {
				t.Errorf("dial %q = %v, want neutral", dim, chunks[0].Dials[dim])
			}
		}
	})

	t.Run("article scores are clamped and applied", func(t *testing.T) {
		chunks := c.ChunkArticle(models.Article{
			ID:      "scored",
			Content: "Some content here.",
			Dials: models.DialVector{
				"love":  1.7,
				"trust": 0.2,
				"bogus": 0.9,
			},
		})
		dials := chunks[0].Dials
		if dials["love"] != 1.0 {
			t.Errorf("love = %v, want clamped 1.0", dials["love"])
		}
		if dials["trust"] != 0.2 {
			t.Errorf("trust = %v, want 0.2", dials["trust"])
		}
		if _, ok := dials["bogus"]; ok {
			t.Error("non-canonical dimension leaked into annotation")
		}
		if dials["growth"] != models.NeutralDialValue {
			t.Errorf("growth = %v, want neutral default", dials["growth"])
		}
	})
}
