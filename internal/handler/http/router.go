package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sparkeq/catalog/internal/service"
	"github.com/sparkeq/catalog/pkg/health"
	"github.com/sparkeq/catalog/pkg/middleware"
)

// NewRouter creates a chi router with all catalog routes registered.
// StripSlashes makes /products/ and /products interchangeable.
func NewRouter(
	productService *service.ProductService,
	brandService *service.BrandService,
	categoryService *service.CategoryService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.StripSlashes)
	r.Use(CORS)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())

	// Prometheus exposition
	r.Handle("/metrics", promhttp.Handler())

	// Product API endpoints
	productHandler := NewProductHandler(productService, logger)

	r.Route("/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", productHandler.ListProducts)
		r.Get("/{id}", productHandler.GetProduct)
		r.Post("/", productHandler.CreateProduct)
		r.Put("/{id}", productHandler.UpdateProduct)
		r.Delete("/{id}", productHandler.DeleteProduct)
	})

	// Brand API endpoints
	brandHandler := NewBrandHandler(brandService, logger)

	r.Route("/brands", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", brandHandler.ListBrands)
		r.Post("/", brandHandler.CreateBrand)
	})

	// Category API endpoints
	categoryHandler := NewCategoryHandler(categoryService, logger)

	r.Route("/categories", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", categoryHandler.ListCategories)
		r.Post("/", categoryHandler.CreateCategory)
	})

	return r
}
