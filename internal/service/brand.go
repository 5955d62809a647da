package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sparkeq/catalog/internal/domain"
	"github.com/sparkeq/catalog/internal/repository"
)

// BrandService implements the business logic for brand operations.
type BrandService struct {
	brands repository.BrandRepository
	logger *slog.Logger
}

// NewBrandService creates a new brand service.
func NewBrandService(brands repository.BrandRepository, logger *slog.Logger) *BrandService {
	return &BrandService{brands: brands, logger: logger}
}

// CreateBrandInput holds the parameters for creating a brand.
type CreateBrandInput struct {
	Name        string
	CountryCode string
}

// CreateBrand persists a new brand.
func (s *BrandService) CreateBrand(ctx context.Context, input *CreateBrandInput) (*domain.Brand, error) {
	brand := &domain.Brand{
		Name:        input.Name,
		CountryCode: input.CountryCode,
	}

	if err := s.brands.Create(ctx, brand); err != nil {
		return nil, fmt.Errorf("create brand: %w", err)
	}

	s.logger.InfoContext(ctx, "brand created",
		slog.Int64("brand_id", brand.ID),
		slog.String("name", brand.Name),
	)

	return brand, nil
}

// ListBrands returns all brands.
func (s *BrandService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	brands, err := s.brands.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}
