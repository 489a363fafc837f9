// ABOUTME: Collection holds a named set of learned steering vectors
// ABOUTME: Persisted wholesale as JSON with atomic replace semantics
package steering

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/harper/dialrag/internal/models"
)

// Collection is an immutable named set of steering vectors. A learning
// run produces a whole new Collection; there is no partial mutation.
type Collection struct {
	vectors map[string]models.SteeringVector
}

// NewCollection builds a collection from learned vectors. Later
// duplicates of a dimension name win.
func NewCollection(vectors ...models.SteeringVector) *Collection {
	c := &Collection{vectors: make(map[string]models.SteeringVector, len(vectors))}
	for _, v := range vectors {
		c.vectors[v.Dimension] = v
	}
	return c
}

// Get returns the vector for a dimension, if learned.
func (c *Collection) Get(dimension string) (models.SteeringVector, bool) {
	v, ok := c.vectors[dimension]
	return v, ok
}

// Len returns the number of learned vectors.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.vectors)
}

// Dimensions returns the learned dimension names in sorted order.
func (c *Collection) Dimensions() []string {
	dims := make([]string, 0, len(c.vectors))
	for d := range c.vectors {
		dims = append(dims, d)
	}
	sort.Strings(dims)
	return dims
}

// Vectors returns all vectors ordered by dimension name.
func (c *Collection) Vectors() []models.SteeringVector {
	out := make([]models.SteeringVector, 0, len(c.vectors))
	for _, d := range c.Dimensions() {
		out = append(out, c.vectors[d])
	}
	return out
}

type collectionFile struct {
	Vectors []models.SteeringVector `json:"vectors"`
}

// Save persists the collection as JSON, replacing any previous file
// atomically via temp-file rename so a failed save never corrupts the
// prior vector set.
func (c *Collection) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating vectors directory: %w", err)
	}

	data, err := json.MarshalIndent(collectionFile{Vectors: c.Vectors()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling vectors: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing vectors: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing vectors file: %w", err)
	}
	return nil
}

// LoadCollection reads a previously saved collection.
func LoadCollection(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vectors file: %w", err)
	}

	var f collectionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing vectors file: %w", err)
	}
	return NewCollection(f.Vectors...), nil
}
