package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	ordererrors "github.com/lojadev/pedidos/internal/errors"
	"github.com/lojadev/pedidos/internal/service"
	"github.com/lojadev/pedidos/pkg/web"
)

// AuthHandler exposes the login endpoint. It lives outside the
// token-protected group since it is where tokens come from.
type AuthHandler struct {
	service  service.AuthService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAuthHandler creates a new instance of AuthHandler with the provided service.
func NewAuthHandler(service service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		validate: validator.New(),

		logger: logger.With("component", "rest_auth"),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(r *chi.Mux) {
	r.Post("/login", h.Login)
}

// Login checks the submitted credentials and returns a signed bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var loginDto service.LoginDto
	if err := json.NewDecoder(r.Body).Decode(&loginDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(loginDto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), loginDto)
	if err != nil {
		if errors.Is(err, ordererrors.ErrInvalidCredentials) {
			mLogger.WarnContext(r.Context(), "Invalid credentials", "username", loginDto.Username)
			web.RespondError(w, mLogger, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error during login", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to log in")
		return
	}
	mLogger.InfoContext(r.Context(), "User logged in", slog.String("username", result.User))
	web.RespondJSON(w, mLogger, http.StatusOK, result)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *AuthHandler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
