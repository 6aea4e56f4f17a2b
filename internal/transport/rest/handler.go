// Package rest provides HTTP handlers for order-related operations.
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

	ordererrors "github.com/lojadev/pedidos/internal/errors"
	"github.com/lojadev/pedidos/internal/service"
	"github.com/lojadev/pedidos/pkg/auth"
	"github.com/lojadev/pedidos/pkg/web"
)

type Handler struct {
	service  service.OrderService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of Handler with the provided service.
func NewHandler(service service.OrderService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),

		logger: logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the order API. Every /order
// route requires a valid bearer token.
func (h *Handler) RegisterRoutes(r *chi.Mux, verifier auth.Verifier) {
	r.Group(func(r chi.Router) {
		r.Use(web.AuthMiddleware(verifier, h.logger))
		r.Route("/order", func(r chi.Router) {
			r.Post("/", h.Create)
			r.Get("/list", h.FindAll)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindByID)
				r.Put("/", h.Update)
				r.Delete("/", h.Delete)
			})
		})
	})
	r.Get("/healthz", h.HealthCheck)
}

// Create handles the creation of a new order with its items.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var orderCreateDto service.OrderCreateDto
	if err := json.NewDecoder(r.Body).Decode(&orderCreateDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to create order", "order", orderCreateDto.NumeroPedido)
	if !h.validateStruct(w, r, mLogger, orderCreateDto) {
		return
	}

	newOrder, err := h.service.Create(r.Context(), orderCreateDto)
	if err != nil {
		if errors.Is(err, ordererrors.ErrOrderAlreadyExists) {
			mLogger.WarnContext(r.Context(), "Order already exists", "ID", orderCreateDto.NumeroPedido)
			web.RespondError(w, mLogger, http.StatusConflict, fmt.Sprintf("Order with ID %s already exists", orderCreateDto.NumeroPedido))
			return
		} else if errors.Is(err, ordererrors.ErrInvalidCreationDate) {
			mLogger.WarnContext(r.Context(), "Invalid creation date", "dataCriacao", orderCreateDto.DataCriacao)
			web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid creation date")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error creating order", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create order")
		return
	}
	mLogger.InfoContext(r.Context(), "Order created successfully", slog.String("ID", newOrder.OrderID))
	web.RespondJSON(w, mLogger, http.StatusCreated, newOrder)
}

// FindByID retrieves an order by its ID, line items included.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find order by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ordererrors.ErrOrderNotFound) {
			mLogger.WarnContext(r.Context(), "Order not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Order with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving order", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve order with ID %s", id))
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved order", slog.String("ID", found.OrderID))
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindAll retrieves a list of all orders, line items excluded.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to find all orders")
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving order list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved order list", "count", len(*list))
	web.RespondJSON(w, mLogger, http.StatusOK, *list)
}

// Update modifies the value of an existing order.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to update order", "ID", id)
	var orderUpdateDto service.OrderUpdateDto
	if err := json.NewDecoder(r.Body).Decode(&orderUpdateDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.validateStruct(w, r, mLogger, orderUpdateDto) {
		return
	}

	updated, err := h.service.UpdateValue(r.Context(), id, orderUpdateDto)
	if err != nil {
		if errors.Is(err, ordererrors.ErrOrderNotFound) {
			mLogger.WarnContext(r.Context(), "Order not found for update", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Order with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating order", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update order with ID %s", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Order updated successfully", slog.String("ID", updated.OrderID))
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// Delete removes an order and its items. Deleting an order that does not
// exist is acknowledged the same way as deleting one that does.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to delete order", "ID", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		mLogger.ErrorContext(r.Context(), "Error deleting order", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete order with ID %s", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Order deleted successfully", slog.String("ID", id))
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]string{"message": fmt.Sprintf("Order with ID %s deleted", id)})
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// validateStruct runs struct validation and writes the field-level error map
// on failure. Returns false if a response has already been written.
func (h *Handler) validateStruct(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, dto any) bool {
	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			// If the error is a validation error, we can extract field-specific errors.
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				// fieldErr.Tag() returns "required", "min", etc.
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// loggerWithReqID creates a logger with the request ID and, when available,
// the authenticated user's ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	mLogger := h.logger.With("request_id", reqID)
	if userID, ok := web.UserIDFromContext(r.Context()); ok {
		mLogger = mLogger.With("user_id", userID)
	}
	return mLogger
}
