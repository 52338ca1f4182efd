// Package rest provides HTTP handlers for catalog, ledger, alert and report operations.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/medistock/medistock/internal/service"
	"github.com/medistock/medistock/pkg/web"
)

// AlertDefaults carries the configured alert cutoffs, overridable per request.
type AlertDefaults struct {
	LowStockThreshold int32
	ExpiryHorizonDays int
}

type Handler struct {
	catalog  service.CatalogService
	ledger   service.LedgerService
	alerts   service.AlertService
	reports  service.ReportService
	defaults AlertDefaults
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the REST API with the provided services.
func NewHandler(catalog service.CatalogService, ledger service.LedgerService, alerts service.AlertService, reports service.ReportService, defaults AlertDefaults, logger *slog.Logger) *Handler {
	return &Handler{
		catalog:  catalog,
		ledger:   ledger,
		alerts:   alerts,
		reports:  reports,
		defaults: defaults,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.FindAllProducts)
		r.Post("/", h.CreateProduct)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindProductByID)
			r.Put("/", h.UpdateProduct)
			r.Put("/stock", h.AdjustStock)
		})
	})

	r.Route("/api/v1/sales", func(r chi.Router) {
		r.Get("/", h.FindAllSales)
		r.Post("/", h.RecordSale)
	})

	r.Route("/api/v1/alerts", func(r chi.Router) {
		r.Get("/near-expiry", h.NearExpiry)
		r.Get("/low-stock", h.LowStock)
	})

	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Get("/daily-revenue", h.DailyRevenue)
		r.Get("/summary", h.Summary)
	})

	r.Get("/healthz", h.HealthCheck)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}

// decodeAndValidate decodes the request body into a DTO and validates its tags,
// writing the error response itself when either step fails.
func decodeAndValidate[T any](h *Handler, w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (T, bool) {
	var dto T
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return dto, false
	}
	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				// fieldErr.Tag() returns "required", "max", etc.
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
