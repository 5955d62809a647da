package postgres

import (
	"context"
	"fmt"

	"github.com/sparkeq/catalog/internal/domain"
	"github.com/sparkeq/catalog/pkg/database"
)

// CategoryRepository implements repository.CategoryRepository using PostgreSQL.
type CategoryRepository struct {
	pool database.DBTX
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool database.DBTX) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create inserts a new category row and sets the generated id on the category.
func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `INSERT INTO categories (name) VALUES ($1) RETURNING id`

	if err := r.pool.QueryRow(ctx, query, c.Name).Scan(&c.ID); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}

	return nil
}

// GetByIDs returns the categories whose ids appear in the given slice,
// ordered by id. Ids with no matching row are simply absent from the result;
// callers compare lengths to detect unknown references.
func (r *CategoryRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Category, error) {
	if len(ids) == 0 {
		return []domain.Category{}, nil
	}

	query := `SELECT id, name FROM categories WHERE id = ANY($1) ORDER BY id`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get categories by ids: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}

	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	return categories, nil
}

// ListAll returns every category ordered by id.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, name FROM categories ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}

	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	return categories, nil
}
