package rest

import (
	"errors"
	"fmt"
	"net/http"

	serrors "github.com/medistock/medistock/internal/errors"
	"github.com/medistock/medistock/internal/service"
	"github.com/medistock/medistock/pkg/web"
)

// FindProductByID retrieves a product by its ID.
func (h *Handler) FindProductByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.catalog.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, serrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %s", id))
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindAllProducts retrieves all products in insertion order.
func (h *Handler) FindAllProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to find all products")
	list, err := h.catalog.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// CreateProduct handles the creation of a new product.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	productCreateDto, ok := decodeAndValidate[service.ProductCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create product", "product", productCreateDto)

	newProduct, err := h.catalog.Create(r.Context(), productCreateDto)
	if err != nil {
		switch {
		case errors.Is(err, serrors.ErrValidation):
			mLogger.WarnContext(r.Context(), "Invalid product payload", "error", err)
			web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
		case errors.Is(err, serrors.ErrDuplicateProductName):
			mLogger.WarnContext(r.Context(), "Duplicate product name", "Name", productCreateDto.Name)
			web.RespondError(w, mLogger, http.StatusConflict, fmt.Sprintf("Product with name %q already exists", productCreateDto.Name))
		default:
			mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		}
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", newProduct.ID, "Name", newProduct.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, newProduct)
}

// UpdateProduct modifies name, price and expiry date of an existing product.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	productUpdateDto, ok := decodeAndValidate[service.ProductUpdateDto](h, w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to update product", "ID", id)

	updated, err := h.catalog.Update(r.Context(), id, productUpdateDto)
	if err != nil {
		switch {
		case errors.Is(err, serrors.ErrProductNotFound):
			mLogger.WarnContext(r.Context(), "Product not found for update", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
		case errors.Is(err, serrors.ErrValidation):
			mLogger.WarnContext(r.Context(), "Invalid product payload", "error", err)
			web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
		case errors.Is(err, serrors.ErrDuplicateProductName):
			mLogger.WarnContext(r.Context(), "Duplicate product name", "Name", productUpdateDto.Name)
			web.RespondError(w, mLogger, http.StatusConflict, fmt.Sprintf("Product with name %q already exists", productUpdateDto.Name))
		case errors.Is(err, serrors.ErrOptimisticLock):
			mLogger.WarnContext(r.Context(), "Version conflict on product update", "ID", id)
			web.RespondError(w, mLogger, http.StatusConflict, fmt.Sprintf("Product with ID %s was modified concurrently", id))
		default:
			mLogger.ErrorContext(r.Context(), "Error updating product", "ID", id, "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update product with ID %s", id))
		}
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// AdjustStock applies a stock delta (restock or correction) to a product.
func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	adjustmentDto, ok := decodeAndValidate[service.StockAdjustmentDto](h, w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to adjust stock", "ID", id, "Delta", adjustmentDto.Delta)

	updated, err := h.catalog.AdjustStock(r.Context(), id, adjustmentDto.Delta)
	if err != nil {
		switch {
		case errors.Is(err, serrors.ErrProductNotFound):
			mLogger.WarnContext(r.Context(), "Product not found for stock adjustment", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
		case errors.Is(err, serrors.ErrValidation):
			mLogger.WarnContext(r.Context(), "Invalid stock adjustment", "error", err)
			web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
		case errors.Is(err, serrors.ErrInsufficientStock):
			mLogger.WarnContext(r.Context(), "Stock adjustment would drive stock negative", "ID", id, "Delta", adjustmentDto.Delta)
			web.RespondError(w, mLogger, http.StatusConflict, fmt.Sprintf("Insufficient stock for product with ID %s", id))
		default:
			mLogger.ErrorContext(r.Context(), "Error adjusting stock", "ID", id, "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to adjust stock for product with ID %s", id))
		}
		return
	}
	mLogger.InfoContext(r.Context(), "Stock adjusted successfully", "ID", updated.ID, "NewStock", updated.Stock)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}
