// ABOUTME: Article and PassageChunk types for the passage index
// ABOUTME: Chunks carry embeddings, positional metadata, and dial annotations
package models

// Article is a source document loaded from the articles directory.
// Dial annotations are optional; missing dimensions default to neutral.
type Article struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Source  string     `json:"source"`
	Tags    []string   `json:"tags,omitempty"`
	Dials   DialVector `json:"dials,omitempty"`
}

// ChunkMetadata describes where a chunk came from.
type ChunkMetadata struct {
	ArticleID   string   `json:"article_id"`
	Title       string   `json:"title"`
	Source      string   `json:"source"`
	ChunkIndex  int      `json:"chunk_index"`
	TotalChunks int      `json:"total_chunks"`
	Tags        []string `json:"tags,omitempty"`
}

// PassageChunk is one indexed passage. The embedding is a unit vector
// whose width matches the index's embedding dimension for the lifetime
// of one index generation.
type PassageChunk struct {
	ChunkID   string        `json:"chunk_id"`
	Text      string        `json:"text"`
	Embedding []float64     `json:"-"`
	Metadata  ChunkMetadata `json:"metadata"`
	Dials     DialVector    `json:"dials"`
}
