// Package app contains the application setup for the storefront service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/avoronin/storefront/internal/config"
	"github.com/avoronin/storefront/internal/service"
	"github.com/avoronin/storefront/internal/store"
	"github.com/avoronin/storefront/internal/transport/rest"
	"github.com/avoronin/storefront/pkg/messaging"
	"github.com/avoronin/storefront/pkg/server"
	"github.com/go-chi/chi/v5"
)

type Dependencies struct {
	StorefrontService service.StorefrontService
	Logger            *slog.Logger
}

// SetupDependencies constructs the store and facade service. The store is
// created here, once, and reaches the boundary layer only through the
// service handle.
func SetupDependencies(publisher messaging.Publisher, logger *slog.Logger) *Dependencies {
	svc := service.NewService(store.New(), publisher)

	return &Dependencies{
		StorefrontService: svc,
		Logger:            logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the storefront service.
// Used by tests to exercise the full HTTP stack without a listener.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the storefront service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.StorefrontService, deps.Logger)
	handler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures the HTTP server for the storefront service.
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
