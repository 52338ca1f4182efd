package rest

import (
	"errors"
	"fmt"
	"net/http"

	serrors "github.com/medistock/medistock/internal/errors"
	"github.com/medistock/medistock/internal/service"
	"github.com/medistock/medistock/pkg/web"
)

// RecordSale records a new sale against the catalog.
func (h *Handler) RecordSale(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	saleCreateDto, ok := decodeAndValidate[service.SaleCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to record sale", "ProductID", saleCreateDto.ProductID, "Quantity", saleCreateDto.Quantity)

	sale, err := h.ledger.RecordSale(r.Context(), saleCreateDto)
	if err != nil {
		switch {
		case errors.Is(err, serrors.ErrProductNotFound):
			mLogger.WarnContext(r.Context(), "Product not found for sale", "ProductID", saleCreateDto.ProductID)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", saleCreateDto.ProductID))
		case errors.Is(err, serrors.ErrValidation):
			mLogger.WarnContext(r.Context(), "Invalid sale payload", "error", err)
			web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
		case errors.Is(err, serrors.ErrInsufficientStock):
			mLogger.WarnContext(r.Context(), "Insufficient stock for sale", "ProductID", saleCreateDto.ProductID, "Quantity", saleCreateDto.Quantity)
			web.RespondError(w, mLogger, http.StatusConflict, fmt.Sprintf("Insufficient stock for product with ID %s", saleCreateDto.ProductID))
		default:
			mLogger.ErrorContext(r.Context(), "Error recording sale", "ProductID", saleCreateDto.ProductID, "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to record sale")
		}
		return
	}
	mLogger.InfoContext(r.Context(), "Sale recorded successfully", "ID", sale.ID, "ProductID", sale.ProductID, "TotalPrice", sale.TotalPrice)
	web.RespondJSON(w, mLogger, http.StatusCreated, sale)
}

// FindAllSales lists ledger entries, optionally filtered by product and date range.
func (h *Handler) FindAllSales(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	query := service.SaleQueryDto{
		ProductID: r.URL.Query().Get("product_id"),
		From:      r.URL.Query().Get("from"),
		To:        r.URL.Query().Get("to"),
	}
	mLogger.DebugContext(r.Context(), "Received request to find sales", "query", query)

	list, err := h.ledger.FindAll(r.Context(), query)
	if err != nil {
		if errors.Is(err, serrors.ErrValidation) {
			mLogger.WarnContext(r.Context(), "Invalid sales query", "error", err)
			web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving sales", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch sales")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved sales", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}
