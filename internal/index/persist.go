// ABOUTME: Index persistence: binary vector file plus SQLite side table
// ABOUTME: Artifacts are positionally aligned and replaced atomically on save
package index

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harper/dialrag/internal/models"
	_ "modernc.org/sqlite"
)

const (
	// VectorsFile is the serialized search structure
	VectorsFile = "passages.vec"
	// SideTableFile is the chunk text/metadata/dial side table
	SideTableFile = "passages.db"
)

const sideTableSchema = `
CREATE TABLE IF NOT EXISTS passages (
    pos INTEGER PRIMARY KEY,
    chunk_id TEXT NOT NULL,
    text TEXT NOT NULL,
    metadata TEXT NOT NULL,
    dials TEXT NOT NULL
);
`

// Save persists the index into dir as two artifacts: the vector file
// and the SQLite side table, positionally aligned by index. Both are
// written to temp files and renamed so a failed save never corrupts a
// previously persisted generation.
func (ix *Index) Save(dir string) error {
	if ix == nil || len(ix.vectors) == 0 {
		return ErrIndexNotBuilt
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	vecPath := filepath.Join(dir, VectorsFile)
	vecTmp := vecPath + ".tmp"
	if err := os.WriteFile(vecTmp, encodeVectors(ix.vectors, ix.dim), 0644); err != nil {
		return fmt.Errorf("writing vector file: %w", err)
	}

	dbPath := filepath.Join(dir, SideTableFile)
	dbTmp := dbPath + ".tmp"
	os.Remove(dbTmp)
	if err := writeSideTable(dbTmp, ix.chunks); err != nil {
		os.Remove(vecTmp)
		os.Remove(dbTmp)
		return err
	}

	if err := os.Rename(vecTmp, vecPath); err != nil {
		os.Remove(vecTmp)
		os.Remove(dbTmp)
		return fmt.Errorf("replacing vector file: %w", err)
	}
	if err := os.Rename(dbTmp, dbPath); err != nil {
		os.Remove(dbTmp)
		return fmt.Errorf("replacing side table: %w", err)
	}
	return nil
}

// Load restores a previously saved index generation from dir.
func Load(dir string) (*Index, error) {
	data, err := os.ReadFile(filepath.Join(dir, VectorsFile))
	if err != nil {
		return nil, fmt.Errorf("reading vector file: %w", err)
	}
	vectors, dim, err := decodeVectors(data)
	if err != nil {
		return nil, err
	}

	chunks, err := readSideTable(filepath.Join(dir, SideTableFile))
	if err != nil {
		return nil, err
	}
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("artifact mismatch: %d vectors, %d side table rows", len(vectors), len(chunks))
	}

	for i := range chunks {
		if len(vectors[i]) != dim {
			return nil, fmt.Errorf("%w: vector %d has width %d", ErrDimensionMismatch, i, len(vectors[i]))
		}
		chunks[i].Embedding = vectors[i]
	}
	return New(chunks)
}

// Exists reports whether both persisted artifacts are present in dir.
func Exists(dir string) bool {
	for _, name := range []string{VectorsFile, SideTableFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

func writeSideTable(path string, chunks []models.PassageChunk) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening side table: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sideTableSchema); err != nil {
		return fmt.Errorf("creating side table schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning side table transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO passages (pos, chunk_id, text, metadata, dials) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range chunks {
		meta, err := json.Marshal(c.Metadata)
		if err != nil {
			return fmt.Errorf("marshaling metadata for chunk %d: %w", i, err)
		}
		dials, err := json.Marshal(c.Dials)
		if err != nil {
			return fmt.Errorf("marshaling dials for chunk %d: %w", i, err)
		}
		if _, err := stmt.Exec(i, c.ChunkID, c.Text, string(meta), string(dials)); err != nil {
			return fmt.Errorf("inserting chunk %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing side table: %w", err)
	}
	return nil
}

func readSideTable(path string) ([]models.PassageChunk, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reading side table: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening side table: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT pos, chunk_id, text, metadata, dials FROM passages ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("querying side table: %w", err)
	}
	defer rows.Close()

	var chunks []models.PassageChunk
	for rows.Next() {
		var (
			pos                 int
			chunk               models.PassageChunk
			metaJSON, dialsJSON string
		)
		if err := rows.Scan(&pos, &chunk.ChunkID, &chunk.Text, &metaJSON, &dialsJSON); err != nil {
			return nil, fmt.Errorf("scanning side table row: %w", err)
		}
		if pos != len(chunks) {
			return nil, fmt.Errorf("side table gap at position %d", pos)
		}
		if err := json.Unmarshal([]byte(metaJSON), &chunk.Metadata); err != nil {
			return nil, fmt.Errorf("parsing metadata at position %d: %w", pos, err)
		}
		if err := json.Unmarshal([]byte(dialsJSON), &chunk.Dials); err != nil {
			return nil, fmt.Errorf("parsing dials at position %d: %w", pos, err)
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating side table: %w", err)
	}
	return chunks, nil
}
