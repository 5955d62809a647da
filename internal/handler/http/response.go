package http

import (
	"github.com/sparkeq/catalog/internal/domain"
)

// ProductResponse is the wire representation of a product aggregate.
// Timestamps are rendered in the fixed catalog format.
type ProductResponse struct {
	ID             int64              `json:"id"`
	Name           string             `json:"name"`
	Rating         float64            `json:"rating"`
	Featured       bool               `json:"featured"`
	ExpirationDate string             `json:"expiration_date"`
	ItemsInStock   int64              `json:"items_in_stock"`
	ReceiptDate    string             `json:"receipt_date"`
	CreatedAt      string             `json:"created_at"`
	Brand          BrandResponse      `json:"brand"`
	Categories     []CategoryResponse `json:"categories"`
}

// BrandResponse is the wire representation of a brand.
type BrandResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
}

// CategoryResponse is the wire representation of a category.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewProductResponse projects a product aggregate into its wire form.
func NewProductResponse(p *domain.Product) ProductResponse {
	categories := make([]CategoryResponse, 0, len(p.Categories))
	for _, c := range p.Categories {
		categories = append(categories, NewCategoryResponse(&c))
	}

	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Rating:         p.Rating,
		Featured:       p.Featured,
		ExpirationDate: domain.FormatTimestamp(p.ExpirationDate),
		ItemsInStock:   p.ItemsInStock,
		ReceiptDate:    domain.FormatTimestamp(p.ReceiptDate),
		CreatedAt:      domain.FormatTimestamp(p.CreatedAt),
		Brand:          NewBrandResponse(&p.Brand),
		Categories:     categories,
	}
}

// NewProductListResponse projects a slice of product aggregates.
func NewProductListResponse(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return out
}

// NewBrandResponse projects a brand into its wire form.
func NewBrandResponse(b *domain.Brand) BrandResponse {
	return BrandResponse{
		ID:          b.ID,
		Name:        b.Name,
		CountryCode: b.CountryCode,
	}
}

// NewCategoryResponse projects a category into its wire form.
func NewCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:   c.ID,
		Name: c.Name,
	}
}
