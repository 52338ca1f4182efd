package rest

import (
	"errors"
	"net/http"

	serrors "github.com/medistock/medistock/internal/errors"
	"github.com/medistock/medistock/pkg/web"
)

// NearExpiry lists the products expiring within the horizon.
// The configured horizon can be overridden with the horizon_days query parameter.
func (h *Handler) NearExpiry(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	horizonDays, ok := web.ParseQueryInt(w, r, mLogger, "horizon_days", h.defaults.ExpiryHorizonDays)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request for near-expiry alerts", "horizon_days", horizonDays)

	list, err := h.alerts.NearExpiry(r.Context(), horizonDays)
	if err != nil {
		if errors.Is(err, serrors.ErrValidation) {
			mLogger.WarnContext(r.Context(), "Invalid alert query", "error", err)
			web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving near-expiry alerts", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch near-expiry alerts")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved near-expiry alerts", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// LowStock lists the products at or below the stock threshold.
// The configured threshold can be overridden with the threshold query parameter.
func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	threshold, ok := web.ParseQueryInt(w, r, mLogger, "threshold", int(h.defaults.LowStockThreshold))
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request for low-stock alerts", "threshold", threshold)

	list, err := h.alerts.LowStock(r.Context(), int32(threshold))
	if err != nil {
		if errors.Is(err, serrors.ErrValidation) {
			mLogger.WarnContext(r.Context(), "Invalid alert query", "error", err)
			web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving low-stock alerts", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch low-stock alerts")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved low-stock alerts", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// DailyRevenue returns per-day revenue in ascending date order.
func (h *Handler) DailyRevenue(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request for daily revenue report")

	list, err := h.reports.DailyRevenue(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error building daily revenue report", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to build daily revenue report")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully built daily revenue report", "days", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// Summary returns the dashboard totals.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request for summary report")

	summary, err := h.reports.Summary(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error building summary report", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to build summary report")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully built summary report")
	web.RespondJSON(w, mLogger, http.StatusOK, summary)
}
