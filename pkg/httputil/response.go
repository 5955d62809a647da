package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/sparkeq/catalog/pkg/errors"
	"github.com/sparkeq/catalog/pkg/logger"
	"github.com/sparkeq/catalog/pkg/validator"
)

// ErrorResponse is the error body returned for domain and referential
// failures: {"error": <message>, "field": <field>}.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// ValidationErrorResponse is the error body returned when shape validation
// fails: {"validation_error": {"fields": {<field>: <message>}}}.
type ValidationErrorResponse struct {
	ValidationError ValidationErrorDetail `json:"validation_error"`
}

// ValidationErrorDetail carries the per-field validation messages.
type ValidationErrorDetail struct {
	Fields map[string]string `json:"fields"`
}

// ListResponse wraps collection results: {"results": [...]}.
type ListResponse struct {
	Results any `json:"results"`
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, headers are already sent so nothing can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a standardized error response based on the error type.
// It prefers the request-scoped logger from context (set by the request
// logging middleware) over the fallback logger for 500s.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		WriteJSON(w, appErr.Status, ErrorResponse{Error: appErr.Message, Field: appErr.Field})
		return
	}

	status := apperrors.HTTPStatus(err)
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		message = "resource not found"
	case errors.Is(err, apperrors.ErrInvalidInput):
		message = err.Error()
	case errors.Is(err, apperrors.ErrAlreadyExists):
		message = "resource already exists"
	}

	if status == http.StatusInternalServerError {
		l := logger.FromContext(r.Context())
		if l == slog.Default() {
			l = fallback
		}
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteValidationError writes a field-by-field validation error response.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			ValidationError: ValidationErrorDetail{Fields: valErr.Fields()},
		})
		return
	}

	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}
