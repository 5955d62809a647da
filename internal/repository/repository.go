package repository

import (
	"context"

	"github.com/sparkeq/catalog/internal/domain"
)

// ProductRepository defines the interface for product persistence operations.
// Create and Update persist the product row and its category associations
// atomically; GetByID and List return aggregates with the brand and
// categories eagerly loaded.
type ProductRepository interface {
	// Create inserts a new product and its category associations. The store
	// assigns ID and CreatedAt on the passed product.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product aggregate by its surrogate key.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// List returns every product aggregate, unpaginated, in store order.
	List(ctx context.Context) ([]domain.Product, error)

	// Update overwrites the product row and replaces its category
	// associations wholesale.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product row; association rows cascade.
	Delete(ctx context.Context, id int64) error
}

// BrandRepository defines the interface for brand persistence operations.
type BrandRepository interface {
	// Create inserts a new brand; the store assigns its ID.
	Create(ctx context.Context, brand *domain.Brand) error

	// GetByID retrieves a brand by its surrogate key.
	GetByID(ctx context.Context, id int64) (*domain.Brand, error)

	// ListAll returns all brands.
	ListAll(ctx context.Context) ([]domain.Brand, error)
}

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create inserts a new category; the store assigns its ID.
	Create(ctx context.Context, category *domain.Category) error

	// GetByIDs returns the categories whose ids are in the given set.
	// IDs with no matching row are simply absent from the result.
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Category, error)

	// ListAll returns all categories.
	ListAll(ctx context.Context) ([]domain.Category, error)
}
