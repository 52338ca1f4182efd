// Package store provides interfaces and types for catalog and sales ledger storage.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Product represents a stock-keeping unit in the catalog.
type Product struct {
	ID              uuid.UUID
	Name            string
	Price           int64 // Price in cents
	StockQuantity   int32
	ExpiryDate      time.Time
	CumulativeSales int32
	Version         int32
	CreatedAt       time.Time
}

// Sale represents a single immutable entry in the sales ledger.
type Sale struct {
	ID         int64
	ProductID  uuid.UUID
	Quantity   int32
	UnitPrice  int64 // Price per unit in cents, snapshot at the time of sale
	TotalPrice int64
	SaleDate   time.Time
	CreatedAt  time.Time
}

// CreateProductParams holds the fields required to create a product.
type CreateProductParams struct {
	Name       string
	Price      int64
	Stock      int32
	ExpiryDate time.Time
}

// UpdateProductParams holds the fields updatable on an existing product.
// Stock and cumulative sales are never touched through this path.
type UpdateProductParams struct {
	ID         uuid.UUID
	Name       string
	Price      int64
	ExpiryDate time.Time
	Version    int32
}

// RecordSaleParams holds the fields required to record a sale.
type RecordSaleParams struct {
	ProductID uuid.UUID
	Quantity  int32
	SaleDate  time.Time
}

// SaleFilter restricts the ledger listing by product and/or inclusive date range.
type SaleFilter struct {
	ProductID *uuid.UUID
	From      *time.Time
	To        *time.Time
}

// CatalogStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type CatalogStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll returns all products in insertion order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// Create adds a new product to the catalog with zero cumulative sales.
	// Returns ErrDuplicateProductName if a product with the same name already exists.
	Create(ctx context.Context, params CreateProductParams) (*Product, error)

	// Update modifies name, price and expiry date of an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID,
	// ErrOptimisticLock on a version conflict.
	Update(ctx context.Context, params UpdateProductParams) (*Product, error)

	// AdjustStock applies a stock delta (positive or negative) atomically.
	// Fails with ErrInsufficientStock if the resulting stock would be negative,
	// leaving the product unchanged.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int32) (*Product, error)
}

// SalesStore is an interface for sales ledger operations.
type SalesStore interface {
	// RecordSale atomically checks stock, decrements it, increments the
	// product's cumulative sales and appends a new ledger entry with the
	// price snapshot taken at the moment of the check. Either all of these
	// happen or none of them do.
	// Returns ErrProductNotFound if the product does not exist and
	// ErrInsufficientStock if the requested quantity exceeds current stock.
	RecordSale(ctx context.Context, params RecordSaleParams) (*Sale, error)

	// FindSales returns ledger entries in ledger order, optionally filtered.
	// Returns an empty slice if no sales match.
	FindSales(ctx context.Context, filter SaleFilter) ([]Sale, error)
}
