package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sparkeq/catalog/internal/domain"
	"github.com/sparkeq/catalog/internal/repository"
	apperrors "github.com/sparkeq/catalog/pkg/errors"
)

// ExpirationFloorMessage is returned when a product would expire too soon.
const ExpirationFloorMessage = "Expiration date lower than 30 days since now"

// timestampParseMessage is returned when a timestamp field cannot be parsed.
const timestampParseMessage = "Not a valid datetime."

// EventPublisher emits product lifecycle events. Publishing is best-effort:
// the mutation pipeline never fails because an event could not be sent.
type EventPublisher interface {
	PublishProductCreated(ctx context.Context, product *domain.Product) error
	PublishProductUpdated(ctx context.Context, product *domain.Product) error
	PublishProductDeleted(ctx context.Context, id int64) error
}

// ProductService implements the catalog mutation pipeline for products.
type ProductService struct {
	products   repository.ProductRepository
	brands     repository.BrandRepository
	categories repository.CategoryRepository
	producer   EventPublisher
	logger     *slog.Logger
	now        func() time.Time
}

// NewProductService creates a new product service. The publisher may be nil
// when event delivery is disabled.
func NewProductService(
	products repository.ProductRepository,
	brands repository.BrandRepository,
	categories repository.CategoryRepository,
	producer EventPublisher,
	logger *slog.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		brands:     brands,
		categories: categories,
		producer:   producer,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the service clock. Tests use it to pin the
// expiration-date floor.
func (s *ProductService) WithClock(now func() time.Time) *ProductService {
	s.now = now
	return s
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name           string
	Rating         float64
	Featured       *bool
	ExpirationDate string
	ItemsInStock   int64
	ReceiptDate    string
	BrandID        int64
	CategoryIDs    []int64
}

// UpdateProductInput holds the parameters for updating a product. Nil fields
// are left untouched by the merge.
type UpdateProductInput struct {
	Name           *string
	Rating         *float64
	Featured       *bool
	ExpirationDate *string
	ItemsInStock   *int64
	ReceiptDate    *string
	BrandID        *int64
	CategoryIDs    []int64
}

// GetProduct retrieves a product aggregate by its id.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// ListProducts returns all product aggregates.
func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// CreateProduct validates the input, applies the domain rules and persists a
// new product. Timestamp parsing and the expiration-date floor run before any
// store access; referential checks run before the insert.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*domain.Product, error) {
	expiration, err := s.parseExpiration(input.ExpirationDate)
	if err != nil {
		return nil, err
	}

	receipt, err := domain.ParseTimestamp(input.ReceiptDate)
	if err != nil {
		return nil, apperrors.InvalidInput("receipt_date", timestampParseMessage)
	}

	brand, err := s.brands.GetByID(ctx, input.BrandID)
	if err != nil {
		return nil, fmt.Errorf("resolve brand: %w", err)
	}

	categories, err := s.resolveCategories(ctx, input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:           input.Name,
		Rating:         input.Rating,
		Featured:       domain.DeriveFeatured(input.Rating, input.Featured),
		ExpirationDate: expiration,
		ItemsInStock:   input.ItemsInStock,
		ReceiptDate:    receipt,
		BrandID:        brand.ID,
		Brand:          *brand,
		Categories:     categories,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.publish(ctx, "product.created", product.ID, func(ctx context.Context) error {
		return s.producer.PublishProductCreated(ctx, product)
	})

	s.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", product.ID),
		slog.String("name", product.Name),
	)

	return product, nil
}

// UpdateProduct merges the non-nil input fields onto the stored product and
// persists the result. Only the mutable fields participate in the merge;
// created_at never changes. A rating above the featured threshold keeps the
// product featured regardless of the client value.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, input *UpdateProductInput) (*domain.Product, error) {
	var (
		expiration time.Time
		receipt    time.Time
		err        error
	)

	// Timestamps are parsed and floor-checked before the product lookup so a
	// bad date on a missing product reports 400, not 404.
	if input.ExpirationDate != nil {
		expiration, err = s.parseExpiration(*input.ExpirationDate)
		if err != nil {
			return nil, err
		}
	}
	if input.ReceiptDate != nil {
		receipt, err = domain.ParseTimestamp(*input.ReceiptDate)
		if err != nil {
			return nil, apperrors.InvalidInput("receipt_date", timestampParseMessage)
		}
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}

	if input.BrandID != nil {
		brand, err := s.brands.GetByID(ctx, *input.BrandID)
		if err != nil {
			return nil, fmt.Errorf("resolve brand: %w", err)
		}
		product.BrandID = brand.ID
		product.Brand = *brand
	}

	if input.CategoryIDs != nil {
		categories, err := s.resolveCategories(ctx, input.CategoryIDs)
		if err != nil {
			return nil, err
		}
		product.Categories = categories
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Rating != nil {
		product.Rating = *input.Rating
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}
	if input.ExpirationDate != nil {
		product.ExpirationDate = expiration
	}
	if input.ItemsInStock != nil {
		product.ItemsInStock = *input.ItemsInStock
	}
	if input.ReceiptDate != nil {
		product.ReceiptDate = receipt
	}

	product.Featured = domain.DeriveFeatured(product.Rating, &product.Featured)

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.publish(ctx, "product.updated", product.ID, func(ctx context.Context) error {
		return s.producer.PublishProductUpdated(ctx, product)
	})

	s.logger.InfoContext(ctx, "product updated",
		slog.Int64("product_id", product.ID),
	)

	return product, nil
}

// DeleteProduct removes a product and returns its pre-delete snapshot.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete product: %w", err)
	}

	s.publish(ctx, "product.deleted", id, func(ctx context.Context) error {
		return s.producer.PublishProductDeleted(ctx, id)
	})

	s.logger.InfoContext(ctx, "product deleted",
		slog.Int64("product_id", id),
	)

	return product, nil
}

// parseExpiration parses the expiration timestamp and enforces the 30-day
// floor against the service clock.
func (s *ProductService) parseExpiration(value string) (time.Time, error) {
	expiration, err := domain.ParseTimestamp(value)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("expiration_date", timestampParseMessage)
	}

	floor := s.now().UTC().Add(domain.ExpirationFloor)
	if expiration.Before(floor) {
		return time.Time{}, apperrors.InvalidInput("expiration_date", ExpirationFloorMessage)
	}

	return expiration, nil
}

// resolveCategories loads the referenced categories and rejects the request
// when any id has no matching row.
func (s *ProductService) resolveCategories(ctx context.Context, ids []int64) ([]domain.Category, error) {
	categories, err := s.categories.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve categories: %w", err)
	}

	if len(categories) != len(uniqueIDs(ids)) {
		return nil, apperrors.NotFound("Category", "categories")
	}

	return categories, nil
}

// publish fires a domain event without failing the operation on error.
func (s *ProductService) publish(ctx context.Context, name string, productID int64, fn func(context.Context) error) {
	if s.producer == nil {
		return
	}
	if err := fn(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish "+name+" event",
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()),
		)
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
