// Package rest provides HTTP handlers for the product catalog API.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/shoplite/catalog/internal/catalog"
	perrors "github.com/shoplite/catalog/internal/errors"
	"github.com/shoplite/catalog/internal/service"
	"github.com/shoplite/catalog/internal/store"
	"github.com/shoplite/catalog/pkg/web"
)

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the catalog API with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the catalog service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/", h.Index)
	r.Get("/health", h.HealthCheck)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Delete("/", h.DeleteAll)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, notFoundMessage(id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with id '%d'", id))
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindAll retrieves products, optionally narrowed by name, category and
// availability query parameters. Filters combine with logical AND.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	filter, ok := h.parseListFilter(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to list products")
	list, err := h.service.FindAll(r.Context(), filter)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	productDTO, ok := h.decodeProduct(w, r, mLogger)
	if !ok {
		return
	}

	newProduct, err := h.service.Create(r.Context(), *productDTO)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", newProduct.ID, "Name", newProduct.Name)
	w.Header().Set("Location", fmt.Sprintf("/products/%d", newProduct.ID))
	web.RespondJSON(w, mLogger, http.StatusCreated, newProduct)
}

// Update replaces all mutable fields of an existing product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	productDTO, ok := h.decodeProduct(w, r, mLogger)
	if !ok {
		return
	}

	updated, err := h.service.Update(r.Context(), id, *productDTO)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for update", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, notFoundMessage(id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update product with id '%d'", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteByID deletes a product by its ID. The operation is idempotent:
// deleting an absent ID still returns 204 No Content.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		mLogger.ErrorContext(r.Context(), "Error deleting product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete product with id '%d'", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAll clears the entire catalog. Exposed for test data loading.
func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	if err := h.service.DeleteAll(r.Context()); err != nil {
		mLogger.ErrorContext(r.Context(), "Error deleting all products", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to delete products")
		return
	}
	mLogger.InfoContext(r.Context(), "All products deleted")
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.loggerWithReqID(r), http.StatusOK, map[string]string{"message": "OK"})
}

// decodeProduct enforces the JSON content type, decodes the request body and
// validates it. Responds with 415 or 400 and returns ok=false on failure.
func (h *Handler) decodeProduct(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (*service.ProductWriteDto, bool) {
	if !web.IsJSONContentType(r) {
		mLogger.WarnContext(r.Context(), "Unsupported content type", "content_type", r.Header.Get("Content-Type"))
		web.RespondError(w, mLogger, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return nil, false
	}

	var productDTO service.ProductWriteDto
	if err := json.NewDecoder(r.Body).Decode(&productDTO); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	if err := h.validate.Struct(productDTO); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				// fieldErr.Tag() returns "required", "max", etc.
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{
				"message":           "Validation failed",
				"validation_errors": errorResponse,
			})
			return nil, false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	if productDTO.Price.IsNegative() {
		mLogger.WarnContext(r.Context(), "Negative price rejected", "price", productDTO.Price)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Price must be a non-negative decimal value")
		return nil, false
	}

	category, err := catalog.ParseCategory(string(productDTO.Category))
	if err != nil {
		mLogger.WarnContext(r.Context(), "Unknown category rejected", "category", productDTO.Category)
		web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Unknown category: %s", productDTO.Category))
		return nil, false
	}
	productDTO.Category = category

	return &productDTO, true
}

// parseListFilter builds a store.ListFilter from the supported query
// parameters. Responds with 400 and returns ok=false on unparseable values.
func (h *Handler) parseListFilter(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (store.ListFilter, bool) {
	var filter store.ListFilter
	q := r.URL.Query()

	if name := q.Get("name"); name != "" {
		filter.Name = &name
	}
	if categoryParam := q.Get("category"); categoryParam != "" {
		category, err := catalog.ParseCategory(categoryParam)
		if err != nil {
			mLogger.WarnContext(r.Context(), "Unknown category in query", "category", categoryParam)
			web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Unknown category: %s", categoryParam))
			return store.ListFilter{}, false
		}
		filter.Category = &category
	}
	if availableParam := q.Get("available"); availableParam != "" {
		available, err := catalog.ParseBool(availableParam)
		if err != nil {
			mLogger.WarnContext(r.Context(), "Invalid availability in query", "available", availableParam)
			web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Invalid available value: %s", availableParam))
			return store.ListFilter{}, false
		}
		filter.Available = &available
	}
	return filter, true
}

// notFoundMessage is the canonical 404 body text. Clients match on the
// "not found" substring.
func notFoundMessage(id int64) string {
	return fmt.Sprintf("Product with id '%d' was not found.", id)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
