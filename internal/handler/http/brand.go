package http

import (
	"log/slog"
	"net/http"

	"github.com/sparkeq/catalog/internal/service"
	"github.com/sparkeq/catalog/pkg/httputil"
	"github.com/sparkeq/catalog/pkg/validator"
)

// BrandHandler handles HTTP requests for brand endpoints.
type BrandHandler struct {
	service *service.BrandService
	logger  *slog.Logger
}

// NewBrandHandler creates a new brand HTTP handler.
func NewBrandHandler(svc *service.BrandService, logger *slog.Logger) *BrandHandler {
	return &BrandHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateBrandRequest is the JSON request body for creating a brand.
type CreateBrandRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	CountryCode string `json:"country_code" validate:"required,len=2"`
}

// ListBrands handles GET /brands
func (h *BrandHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.ListBrands(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	results := make([]BrandResponse, 0, len(brands))
	for i := range brands {
		results = append(results, NewBrandResponse(&brands[i]))
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.ListResponse{Results: results})
}

// CreateBrand handles POST /brands
func (h *BrandHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateBrandRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	brand, err := h.service.CreateBrand(r.Context(), &service.CreateBrandInput{
		Name:        req.Name,
		CountryCode: req.CountryCode,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, NewBrandResponse(brand))
}
