// Package app contains the application setup for the order service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lojadev/pedidos/internal/config"
	"github.com/lojadev/pedidos/internal/service"
	"github.com/lojadev/pedidos/internal/store"
	"github.com/lojadev/pedidos/internal/transport/rest"
	"github.com/lojadev/pedidos/pkg/auth"
	"github.com/lojadev/pedidos/pkg/server"
)

type Dependencies struct {
	OrderService service.OrderService
	AuthService  service.AuthService
	Verifier     auth.Verifier
	Logger       *slog.Logger
}

func SetupDependencies(dbPool *pgxpool.Pool, tokens *auth.TokenManager, logger *slog.Logger) *Dependencies {
	orderService := service.NewService(store.NewPgStore(dbPool))
	authService := service.NewAuthService(store.NewPgUserStore(dbPool), tokens)

	return &Dependencies{
		OrderService: orderService,
		AuthService:  authService,
		Verifier:     tokens,
		Logger:       logger,
	}
}

// SetupHttpHandler initializes the HTTP router and routes for the application.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the application.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	orderHandler := rest.NewHandler(deps.OrderService, deps.Logger)
	orderHandler.RegisterRoutes(mux, deps.Verifier)
	authHandler := rest.NewAuthHandler(deps.AuthService, deps.Logger)
	authHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
