package storage

import (
	"context"
	"fmt"

	"github.com/coderhema/Spenders/core"
	"github.com/coderhema/Spenders/internal/log"
)

// CategoryRepository stores user-defined categories. The built-in set never
// lands here; callers merge the two (see services.CategoryCatalog). The
// collection is append-only: categories are never renamed or removed because
// stored expenses reference them by id.
type CategoryRepository struct {
	store *Store
}

func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// GetAll returns the custom categories in insertion order.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]core.Category, error) {
	rows, err := r.store.db.QueryContext(ctx, `SELECT id, name, color FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// Save inserts a new category. Both the id and the display name are unique;
// a collision on either yields ErrDuplicateKey.
func (r *CategoryRepository) Save(ctx context.Context, c core.Category) error {
	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, color) VALUES (?, ?, ?)`,
		c.ID, c.Name, c.Color)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("save category %q: %w", c.Name, ErrDuplicateKey)
		}
		return fmt.Errorf("save category: %w", err)
	}

	r.store.log.InfoContext(ctx, "category saved", log.FieldCategory, c.ID)
	return nil
}

func scanCategory(scanner interface{ Scan(dest ...any) error }) (core.Category, error) {
	var c core.Category
	if err := scanner.Scan(&c.ID, &c.Name, &c.Color); err != nil {
		return core.Category{}, err
	}
	return c, nil
}
