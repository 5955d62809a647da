package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sparkeq/catalog/internal/domain"
	"github.com/sparkeq/catalog/internal/repository"
)

// CategoryService implements the business logic for category operations.
type CategoryService struct {
	categories repository.CategoryRepository
	logger     *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categories repository.CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{categories: categories, logger: logger}
}

// CreateCategoryInput holds the parameters for creating a category.
type CreateCategoryInput struct {
	Name string
}

// CreateCategory persists a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*domain.Category, error) {
	category := &domain.Category{Name: input.Name}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.logger.InfoContext(ctx, "category created",
		slog.Int64("category_id", category.ID),
		slog.String("name", category.Name),
	)

	return category, nil
}

// ListCategories returns all categories.
func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
