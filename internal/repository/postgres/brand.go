package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sparkeq/catalog/internal/domain"
	"github.com/sparkeq/catalog/pkg/database"
	apperrors "github.com/sparkeq/catalog/pkg/errors"
)

// BrandRepository implements repository.BrandRepository using PostgreSQL.
type BrandRepository struct {
	pool database.DBTX
}

// NewBrandRepository creates a new PostgreSQL-backed brand repository.
func NewBrandRepository(pool database.DBTX) *BrandRepository {
	return &BrandRepository{pool: pool}
}

// Create inserts a new brand row and sets the generated id on the brand.
func (r *BrandRepository) Create(ctx context.Context, b *domain.Brand) error {
	query := `INSERT INTO brands (name, country_code) VALUES ($1, $2) RETURNING id`

	if err := r.pool.QueryRow(ctx, query, b.Name, b.CountryCode).Scan(&b.ID); err != nil {
		return fmt.Errorf("insert brand: %w", err)
	}

	return nil
}

// GetByID retrieves a brand by its id. A missing row is reported against the
// brand_id field because callers reference brands from product payloads.
func (r *BrandRepository) GetByID(ctx context.Context, id int64) (*domain.Brand, error) {
	query := `SELECT id, name, country_code FROM brands WHERE id = $1`

	var b domain.Brand
	err := r.pool.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.CountryCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Brand", "brand_id")
		}
		return nil, fmt.Errorf("scan brand: %w", err)
	}

	return &b, nil
}

// ListAll returns every brand ordered by id.
func (r *BrandRepository) ListAll(ctx context.Context) ([]domain.Brand, error) {
	query := `SELECT id, name, country_code FROM brands ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	brands := []domain.Brand{}

	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CountryCode); err != nil {
			return nil, fmt.Errorf("scan brand row: %w", err)
		}
		brands = append(brands, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brand rows: %w", err)
	}

	return brands, nil
}
