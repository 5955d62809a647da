package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sparkeq/catalog/internal/service"
	apperrors "github.com/sparkeq/catalog/pkg/errors"
	"github.com/sparkeq/catalog/pkg/httputil"
	"github.com/sparkeq/catalog/pkg/validator"
)

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateProductRequest is the JSON request body for creating a product.
// The featured flag is the only optional field; a rating above the threshold
// overrides it anyway. Brand and category ids only need to be present here;
// whether they reference existing rows is decided by the store lookup, so an
// unknown id (including 0) reports 404 rather than a shape error.
type CreateProductRequest struct {
	Name           string   `json:"name" validate:"required,min=1,max=50"`
	Rating         *float64 `json:"rating" validate:"required"`
	Featured       *bool    `json:"featured"`
	ExpirationDate string   `json:"expiration_date" validate:"required"`
	ItemsInStock   int64    `json:"items_in_stock" validate:"required,gt=0"`
	ReceiptDate    string   `json:"receipt_date" validate:"required"`
	BrandID        *int64   `json:"brand_id" validate:"required"`
	Categories     []int64  `json:"categories" validate:"required,min=1,max=5"`
}

// UpdateProductRequest is the JSON request body for updating a product. The
// contract requires the same fields as create; the merge below the handler
// still treats each field independently.
type UpdateProductRequest struct {
	Name           *string  `json:"name" validate:"required,min=1,max=50"`
	Rating         *float64 `json:"rating" validate:"required"`
	Featured       *bool    `json:"featured"`
	ExpirationDate *string  `json:"expiration_date" validate:"required"`
	ItemsInStock   *int64   `json:"items_in_stock" validate:"required,gt=0"`
	ReceiptDate    *string  `json:"receipt_date" validate:"required"`
	BrandID        *int64   `json:"brand_id" validate:"required"`
	Categories     []int64  `json:"categories" validate:"required,min=1,max=5"`
}

// productID extracts the {id} path parameter. A non-numeric id behaves like a
// missing product.
func productID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NotFound("Product", "id")
	}
	return id, nil
}

// --- Handlers ---

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.ListResponse{
		Results: NewProductListResponse(products),
	})
}

// GetProduct handles GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, NewProductResponse(product))
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	input := &service.CreateProductInput{
		Name:           req.Name,
		Rating:         *req.Rating,
		Featured:       req.Featured,
		ExpirationDate: req.ExpirationDate,
		ItemsInStock:   req.ItemsInStock,
		ReceiptDate:    req.ReceiptDate,
		BrandID:        *req.BrandID,
		CategoryIDs:    req.Categories,
	}

	product, err := h.service.CreateProduct(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, NewProductResponse(product))
}

// UpdateProduct handles PUT /products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	input := &service.UpdateProductInput{
		Name:           req.Name,
		Rating:         req.Rating,
		Featured:       req.Featured,
		ExpirationDate: req.ExpirationDate,
		ItemsInStock:   req.ItemsInStock,
		ReceiptDate:    req.ReceiptDate,
		BrandID:        req.BrandID,
		CategoryIDs:    req.Categories,
	}

	product, err := h.service.UpdateProduct(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, NewProductResponse(product))
}

// DeleteProduct handles DELETE /products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	product, err := h.service.DeleteProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// The pre-delete snapshot is the response body.
	httputil.WriteJSON(w, http.StatusOK, NewProductResponse(product))
}

// writeDecodeError distinguishes shape-validation failures from undecodable
// bodies.
func writeDecodeError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		httputil.WriteValidationError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "invalid request body"})
}
