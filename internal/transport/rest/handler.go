// Package rest provides the HTTP boundary for the storefront facade.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	storeerrors "github.com/avoronin/storefront/internal/errors"
	"github.com/avoronin/storefront/internal/service"
	"github.com/avoronin/storefront/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  service.StorefrontService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new Handler with the provided facade service.
func NewHandler(service service.StorefrontService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the storefront service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", h.CreateProduct)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindProduct)
				r.Put("/", h.UpdateProduct)
				r.Delete("/", h.DeleteProduct)
				r.Post("/variants", h.CreateVariant)
			})
		})
		r.Route("/variants/{id}", func(r chi.Router) {
			r.Get("/", h.FindVariant)
			r.Put("/", h.UpdateVariant)
			r.Delete("/", h.DeleteVariant)
		})
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", h.CreateCustomer)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindCustomer)
				r.Put("/", h.UpdateCustomer)
				r.Delete("/", h.DeleteCustomer)
			})
		})
		r.Route("/sellers", func(r chi.Router) {
			r.Post("/", h.CreateSeller)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindSeller)
				r.Put("/", h.UpdateSeller)
				r.Delete("/", h.DeleteSeller)
			})
		})
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.CreateOrder)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindOrder)
				r.Delete("/", h.CancelOrder)
			})
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// CreateProduct handles the creation of a new product.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	dto, ok := decodeAndValidate[service.ProductCreateDto](w, r, h.validate, mLogger)
	if !ok {
		return
	}
	created, err := h.service.CreateProduct(r.Context(), dto)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// FindProduct retrieves a product with its variants.
func (h *Handler) FindProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	found, err := h.service.FindProductByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "product", id)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// UpdateProduct merges the submitted fields onto an existing product.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeAndValidate[service.ProductUpdateDto](w, r, h.validate, mLogger)
	if !ok {
		return
	}
	updated, err := h.service.UpdateProduct(r.Context(), id, dto)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "product", id)
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteProduct deletes a product by its ID.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.service.DeleteProductByID(r.Context(), id); err != nil {
		h.respondServiceError(w, r, mLogger, err, "product", id)
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]string{"id": id})
}

// CreateVariant handles the creation of a variant under a product.
func (h *Handler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	productID, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeAndValidate[service.VariantCreateDto](w, r, h.validate, mLogger)
	if !ok {
		return
	}
	created, err := h.service.CreateVariant(r.Context(), productID, dto)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "product", productID)
		return
	}
	mLogger.InfoContext(r.Context(), "Variant created successfully", "ID", created.ID, "ProductID", productID)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// FindVariant retrieves a variant by its ID.
func (h *Handler) FindVariant(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	found, err := h.service.FindVariantByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "variant", id)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// UpdateVariant merges the submitted fields onto an existing variant.
func (h *Handler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeAndValidate[service.VariantUpdateDto](w, r, h.validate, mLogger)
	if !ok {
		return
	}
	updated, err := h.service.UpdateVariant(r.Context(), id, dto)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "variant", id)
		return
	}
	mLogger.InfoContext(r.Context(), "Variant updated successfully", "ID", updated.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteVariant deletes a variant by its ID.
func (h *Handler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.service.DeleteVariantByID(r.Context(), id); err != nil {
		h.respondServiceError(w, r, mLogger, err, "variant", id)
		return
	}
	mLogger.InfoContext(r.Context(), "Variant deleted successfully", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]string{"id": id})
}

// CreateCustomer registers a new customer.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	dto, ok := decodeAndValidate[service.CustomerCreateDto](w, r, h.validate, mLogger)
	if !ok {
		return
	}
	created, err := h.service.CreateCustomer(r.Context(), dto)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating customer", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create customer")
		return
	}
	mLogger.InfoContext(r.Context(), "Customer created successfully", "ID", created.ID)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// FindCustomer retrieves a customer with their active orders.
func (h *Handler) FindCustomer(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	found, err := h.service.FindCustomerByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "customer", id)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// UpdateCustomer merges the submitted fields onto an existing customer.
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeAndValidate[service.CustomerUpdateDto](w, r, h.validate, mLogger)
	if !ok {
		return
	}
	updated, err := h.service.UpdateCustomer(r.Context(), id, dto)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "customer", id)
		return
	}
	mLogger.InfoContext(r.Context(), "Customer updated successfully", "ID", updated.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteCustomer deletes a customer by its ID.
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.service.DeleteCustomerByID(r.Context(), id); err != nil {
		h.respondServiceError(w, r, mLogger, err, "customer", id)
		return
	}
	mLogger.InfoContext(r.Context(), "Customer deleted successfully", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]string{"id": id})
}

// CreateSeller registers a new seller.
func (h *Handler) CreateSeller(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	dto, ok := decodeAndValidate[service.SellerCreateDto](w, r, h.validate, mLogger)
	if !ok {
		return
	}
	created, err := h.service.CreateSeller(r.Context(), dto)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating seller", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create seller")
		return
	}
	mLogger.InfoContext(r.Context(), "Seller created successfully", "ID", created.ID)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// FindSeller retrieves a seller by its ID.
func (h *Handler) FindSeller(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	found, err := h.service.FindSellerByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "seller", id)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// UpdateSeller merges the submitted fields onto an existing seller.
func (h *Handler) UpdateSeller(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeAndValidate[service.SellerUpdateDto](w, r, h.validate, mLogger)
	if !ok {
		return
	}
	updated, err := h.service.UpdateSeller(r.Context(), id, dto)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "seller", id)
		return
	}
	mLogger.InfoContext(r.Context(), "Seller updated successfully", "ID", updated.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteSeller deletes a seller by its ID.
func (h *Handler) DeleteSeller(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.service.DeleteSellerByID(r.Context(), id); err != nil {
		h.respondServiceError(w, r, mLogger, err, "seller", id)
		return
	}
	mLogger.InfoContext(r.Context(), "Seller deleted successfully", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]string{"id": id})
}

// CreateOrder places an order for an existing customer.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	dto, ok := decodeAndValidate[service.OrderCreateDto](w, r, h.validate, mLogger)
	if !ok {
		return
	}
	created, err := h.service.CreateOrder(r.Context(), dto)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "customer", dto.CustomerID)
		return
	}
	mLogger.InfoContext(r.Context(), "Order created successfully", "ID", created.ID, "CustomerID", dto.CustomerID)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// FindOrder retrieves an order by its ID.
func (h *Handler) FindOrder(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	found, err := h.service.FindOrderByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err, "order", id)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// CancelOrder cancels an active order, restoring inventory for its lines.
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.service.CancelOrder(r.Context(), id); err != nil {
		h.respondServiceError(w, r, mLogger, err, "order", id)
		return
	}
	mLogger.InfoContext(r.Context(), "Order cancelled successfully", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]string{"id": id})
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// respondServiceError maps the store's not-found sentinels to 404 and
// everything else to 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, err error, entity, id string) {
	if isNotFound(err) {
		mLogger.WarnContext(r.Context(), "Entity not found", "entity", entity, "ID", id)
		web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("%s with ID %s not found", entity, id))
		return
	}
	mLogger.ErrorContext(r.Context(), "Operation failed", "entity", entity, "ID", id, "error", err)
	web.RespondError(w, mLogger, http.StatusInternalServerError, "An unexpected error occurred")
}

func isNotFound(err error) bool {
	return errors.Is(err, storeerrors.ErrProductNotFound) ||
		errors.Is(err, storeerrors.ErrVariantNotFound) ||
		errors.Is(err, storeerrors.ErrCustomerNotFound) ||
		errors.Is(err, storeerrors.ErrSellerNotFound) ||
		errors.Is(err, storeerrors.ErrOrderNotFound)
}

// decodeAndValidate decodes the request body into a DTO and validates it,
// writing the error response itself when either step fails.
func decodeAndValidate[T any](w http.ResponseWriter, r *http.Request, validate *validator.Validate, mLogger *slog.Logger) (T, bool) {
	var dto T
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return dto, false
	}
	if err := validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return dto, false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return dto, false
	}
	return dto, true
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
