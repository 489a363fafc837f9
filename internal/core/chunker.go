// ABOUTME: Chunker splits article content into overlapping passage chunks
// ABOUTME: Sentence-aware accumulation toward a target character size
package core

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/dialrag/internal/models"
)

var sentenceEnd = regexp.MustCompile(`[.!?]+\s+`)

// Chunker splits text into overlapping chunks at sentence boundaries.
type Chunker struct {
	chunkSize int
	overlap   int
}

// NewChunker creates a Chunker targeting chunkSize characters per chunk
// with roughly overlap characters of trailing-sentence context.
func NewChunker(chunkSize, overlap int) *Chunker {
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

// ChunkText splits text into chunks. Sentences accumulate until the
// target size is exceeded; each new chunk starts with the previous
// chunk's trailing sentences up to the overlap budget.
func (c *Chunker) ChunkText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sentences := splitSentences(text)

	var chunks []string
	var current []string
	currentLen := 0

	for _, sentence := range sentences {
		if currentLen+len(sentence) > c.chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))

			// Keep trailing sentences for context in the next chunk.
			var keep []string
			keepLen := 0
			for i := len(current) - 1; i >= 0; i-- {
				if keepLen+len(current[i]) >= c.overlap {
					break
				}
				keep = append([]string{current[i]}, keep...)
				keepLen += len(current[i])
			}
			current = keep
			currentLen = keepLen
		}

		current = append(current, sentence)
		currentLen += len(sentence)
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// ChunkArticle splits one article into passage chunks carrying its
// metadata and dial annotation.
func (c *Chunker) ChunkArticle(article models.Article) []models.PassageChunk {
	texts := c.ChunkText(article.Content)
	dials := annotationFor(article)

	chunks := make([]models.PassageChunk, len(texts))
	for i, text := range texts {
		chunks[i] = models.PassageChunk{
			ChunkID: "chunk_" + uuid.New().String(),
			Text:    text,
			Metadata: models.ChunkMetadata{
				ArticleID:   article.ID,
				Title:       article.Title,
				Source:      article.Source,
				ChunkIndex:  i,
				TotalChunks: len(texts),
				Tags:        article.Tags,
			},
			Dials: dials,
		}
	}
	return chunks
}

// annotationFor builds the chunk dial annotation: every canonical
// dimension present, defaulting to neutral when the article omits it.
func annotationFor(article models.Article) models.DialVector {
	dials := models.NeutralDials()
	for dim, v := range article.Dials.Clamp() {
		if _, ok := dials[dim]; ok {
			dials[dim] = v
		}
	}
	return dials
}

// splitSentences splits on sentence-ending punctuation followed by
// whitespace, keeping the punctuation with its sentence.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start:loc[1]]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}
