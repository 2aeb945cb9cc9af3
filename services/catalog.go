package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/coderhema/Spenders/core"
	"github.com/coderhema/Spenders/internal/log"
	"github.com/coderhema/Spenders/storage"
)

// CategoryCatalog is the single source of category metadata: the fixed
// built-in table overlaid with the user's persisted custom categories. Every
// consumer goes through it so the merge policy lives in exactly one place.
type CategoryCatalog struct {
	categories *storage.CategoryRepository
	log        *log.Logger
}

func NewCategoryCatalog(categories *storage.CategoryRepository, logger *log.Logger) *CategoryCatalog {
	return &CategoryCatalog{
		categories: categories,
		log:        logger.WithComponent(log.ComponentCatalog),
	}
}

// Categories returns the merged catalog: builtins first, then persisted
// customs in stored order, duplicate ids skipped. On storage failure the
// built-in set alone is served.
func (c *CategoryCatalog) Categories(ctx context.Context) []core.Category {
	custom, err := c.categories.GetAll(ctx)
	if err != nil {
		c.log.ErrorContext(ctx, "category read failed, serving builtins only", log.FieldError, err)
		return core.BuiltinCategories()
	}
	return core.MergeCategories(core.BuiltinCategories(), custom)
}

// Index returns the merged catalog keyed by id, for callers joining many
// records against their display metadata.
func (c *CategoryCatalog) Index(ctx context.Context) map[string]core.Category {
	merged := c.Categories(ctx)
	index := make(map[string]core.Category, len(merged))
	for _, cat := range merged {
		index[cat.ID] = cat
	}
	return index
}

// Add persists a new custom category. The id is the slug of the display
// name; an id already present in the merged catalog is rejected here before
// touching storage, and the store's unique constraints back the check up.
// Categories are never updated or deleted once added.
func (c *CategoryCatalog) Add(ctx context.Context, name, color string) (core.Category, error) {
	id := core.Slugify(name)
	if id == "" {
		return core.Category{}, core.ErrEmptyName
	}
	for _, existing := range c.Categories(ctx) {
		if existing.ID == id {
			return core.Category{}, fmt.Errorf("add category %q: %w", name, storage.ErrDuplicateKey)
		}
	}

	category := core.Category{ID: id, Name: strings.TrimSpace(name), Color: color}
	if err := c.categories.Save(ctx, category); err != nil {
		return core.Category{}, err
	}
	return category, nil
}

// Resolve returns the display metadata for a category id. Ids that no
// longer resolve, such as references left behind by a restore, get a
// synthesized fallback instead of an error.
func (c *CategoryCatalog) Resolve(ctx context.Context, id string) core.Category {
	if cat, ok := c.Index(ctx)[id]; ok {
		return cat
	}
	return core.FallbackCategory(id)
}
