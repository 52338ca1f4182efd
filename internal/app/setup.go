// Package app contains the application setup for the medistock service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medistock/medistock/internal/config"
	"github.com/medistock/medistock/internal/scheduler"
	"github.com/medistock/medistock/internal/service"
	"github.com/medistock/medistock/internal/store"
	"github.com/medistock/medistock/internal/transport/rest"
	"github.com/medistock/medistock/pkg/server"
)

type Dependencies struct {
	Catalog service.CatalogService
	Ledger  service.LedgerService
	Alerts  service.AlertService
	Reports service.ReportService
	Logger  *slog.Logger
}

func SetupDependencies(catalogStore store.CatalogStore, salesStore store.SalesStore, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		Catalog: service.NewCatalog(catalogStore),
		Ledger:  service.NewLedger(salesStore),
		Alerts:  service.NewAlerts(catalogStore),
		Reports: service.NewReports(salesStore, catalogStore),
		Logger:  logger,
	}
}

// SetupHttpHandler initializes the HTTP router and routes for the service.
// Used by tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps, cfg)
	return mux
}

// wireRoutes sets up the HTTP routes for the service.
func wireRoutes(mux *chi.Mux, deps *Dependencies, cfg *config.Config) {
	handler := rest.NewHandler(deps.Catalog, deps.Ledger, deps.Alerts, deps.Reports, rest.AlertDefaults{
		LowStockThreshold: cfg.Alerts.LowStockThreshold,
		ExpiryHorizonDays: cfg.Alerts.ExpiryHorizonDays,
	}, deps.Logger)
	handler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps, cfg)

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

// SetupScheduler creates the periodic alert scan for the service.
func SetupScheduler(deps *Dependencies, cfg *config.Config) *scheduler.Scheduler {
	return scheduler.New(
		deps.Alerts,
		cfg.Scheduler.Spec,
		cfg.Alerts.LowStockThreshold,
		cfg.Alerts.ExpiryHorizonDays,
		deps.Logger,
	)
}
