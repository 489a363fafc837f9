// ABOUTME: Article loader reading JSON, text, and markdown sources
// ABOUTME: JSON articles may carry per-dimension dial score annotations
package core

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/dialrag/internal/models"
)

// articleFile is the on-disk JSON article layout. Dial scores are
// optional top-level fields.
type articleFile struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	Source          string   `json:"source"`
	Tags            []string `json:"tags"`
	LoveScore       *float64 `json:"love_score"`
	CommitmentScore *float64 `json:"commitment_score"`
	TrustScore      *float64 `json:"trust_score"`
	BelongingScore  *float64 `json:"belonging_score"`
	GrowthScore     *float64 `json:"growth_score"`
}

// LoadArticles reads every supported file under dir into articles.
// Unreadable or malformed files are logged and skipped; a missing
// directory is an error.
func LoadArticles(dir string) ([]models.Article, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("articles directory: %w", err)
	}

	var articles []models.Article
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		article, ok, loadErr := loadArticleFile(dir, path)
		if loadErr != nil {
			log.Printf("Warning: skipping article %s: %v", path, loadErr)
			return nil
		}
		if ok {
			articles = append(articles, article)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking articles directory: %w", err)
	}
	return articles, nil
}

func loadArticleFile(dir, path string) (models.Article, bool, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return models.Article{}, false, err
		}

		var f articleFile
		if err := json.Unmarshal(data, &f); err != nil {
			return models.Article{}, false, err
		}
		if f.Content == "" {
			return models.Article{}, false, fmt.Errorf("article has no content")
		}
		if f.ID == "" {
			f.ID = stem(path)
		}

		dials := models.DialVector{}
		for dim, score := range map[string]*float64{
			models.DimensionLove:       f.LoveScore,
			models.DimensionCommitment: f.CommitmentScore,
			models.DimensionTrust:      f.TrustScore,
			models.DimensionBelonging:  f.BelongingScore,
			models.DimensionGrowth:     f.GrowthScore,
		} {
			if score != nil {
				dials[dim] = *score
			}
		}

		return models.Article{
			ID:      f.ID,
			Title:   f.Title,
			Content: f.Content,
			Source:  f.Source,
			Tags:    f.Tags,
			Dials:   dials,
		}, true, nil

	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return models.Article{}, false, err
		}
		if strings.TrimSpace(string(data)) == "" {
			return models.Article{}, false, nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		name := stem(path)
		return models.Article{
			ID:      name,
			Title:   titleFromStem(name),
			Content: string(data),
			Source:  rel,
		}, true, nil

	default:
		return models.Article{}, false, nil
	}
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// titleFromStem turns a file stem like "tea_party_notes" into "Tea Party Notes".
func titleFromStem(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
