// Package catalog holds the fixed category set. Categories are seeded
// from an embedded YAML file at construction and are immutable for the
// life of the process.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"janmanch/internal/domain/models"
)

//go:embed categories.yaml
var seedFile []byte

type seed struct {
	Categories []models.Category `yaml:"categories"`
}

// Catalog is the enumerable, immutable category set.
type Catalog struct {
	categories []models.Category
	byID       map[string]int
	bySlug     map[string]int
}

// New loads the embedded seed set. The file ships with the binary, so an
// error here means a build problem, not a runtime condition.
func New() (*Catalog, error) {
	var s seed
	if err := yaml.Unmarshal(seedFile, &s); err != nil {
		return nil, fmt.Errorf("failed to parse category seed: %w", err)
	}
	if len(s.Categories) == 0 {
		return nil, fmt.Errorf("category seed is empty")
	}

	c := &Catalog{
		categories: s.Categories,
		byID:       make(map[string]int, len(s.Categories)),
		bySlug:     make(map[string]int, len(s.Categories)),
	}
	for i, cat := range s.Categories {
		if _, dup := c.byID[cat.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %q in seed", cat.ID)
		}
		if _, dup := c.bySlug[cat.Slug]; dup {
			return nil, fmt.Errorf("duplicate category slug %q in seed", cat.Slug)
		}
		c.byID[cat.ID] = i
		c.bySlug[cat.Slug] = i
	}
	return c, nil
}

// List returns the seed set in stable order. The returned slice is a
// copy; callers may not mutate the catalog through it.
func (c *Catalog) List() []models.Category {
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// ByID returns the category with the given id.
func (c *Catalog) ByID(id string) (models.Category, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Category{}, false
	}
	return c.categories[i], true
}

// BySlug returns the category with the given URL slug.
func (c *Catalog) BySlug(slug string) (models.Category, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return models.Category{}, false
	}
	return c.categories[i], true
}
