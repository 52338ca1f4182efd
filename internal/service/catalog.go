// Package service provides the implementation of catalog and ledger business logic.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	serrors "github.com/medistock/medistock/internal/errors"
	"github.com/medistock/medistock/internal/store"
)

// dateLayout is the calendar-date format used across the API.
const dateLayout = "2006-01-02"

// CatalogService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type CatalogService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error)

	// FindAll returns all products in insertion order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// Create adds a new product to the catalog.
	// Returns ErrValidation on malformed input and ErrDuplicateProductName
	// if the name is already taken.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update modifies name, price and expiry date of an existing product.
	// Stock and cumulative sales are immutable through this path.
	Update(ctx context.Context, id uuid.UUID, product ProductUpdateDto) (*ProductDto, error)

	// AdjustStock applies a stock delta (restock or correction).
	// Returns ErrInsufficientStock if the resulting stock would be negative.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int32) (*ProductDto, error)
}

// Catalog implements CatalogService on top of a CatalogStore.
type Catalog struct {
	store store.CatalogStore
}

// NewCatalog creates a new instance of CatalogService with the provided store.
func NewCatalog(s store.CatalogStore) *Catalog {
	return &Catalog{store: s}
}

// ProductCreateDto represents the data transfer object for creating a new product.
type ProductCreateDto struct {
	Name       string `json:"name"        validate:"required,max=100"`
	Price      int64  `json:"price"       validate:"min=0"`
	Stock      int32  `json:"stock"       validate:"min=0"`
	ExpiryDate string `json:"expiry_date" validate:"required,datetime=2006-01-02"`
}

// ProductUpdateDto represents the data transfer object for updating a product.
// Version is used for optimistic concurrency control.
type ProductUpdateDto struct {
	Name       string `json:"name"        validate:"required,max=100"`
	Price      int64  `json:"price"       validate:"min=0"`
	ExpiryDate string `json:"expiry_date" validate:"required,datetime=2006-01-02"`
	Version    int32  `json:"version"     validate:"required,min=1"`
}

// StockAdjustmentDto represents the data transfer object for a stock delta.
type StockAdjustmentDto struct {
	Delta int32 `json:"delta" validate:"required"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Price           int64  `json:"price"`
	Stock           int32  `json:"stock"`
	ExpiryDate      string `json:"expiry_date"`
	CumulativeSales int32  `json:"cumulative_sales"`
	Version         int32  `json:"version"`
	CreatedAt       string `json:"created_at"`
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
func (s *Catalog) FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error) {
	product, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	return toProductDto(product), nil
}

// FindAll retrieves all products and returns them as ProductDtos.
func (s *Catalog) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return toProductDtos(products), nil
}

// Create creates a new product and returns it as a ProductDto.
func (s *Catalog) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	name := strings.TrimSpace(product.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", serrors.ErrValidation)
	}
	if product.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", serrors.ErrValidation)
	}
	if product.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", serrors.ErrValidation)
	}
	expiry, err := parseDate(product.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid expiry date %q", serrors.ErrValidation, product.ExpiryDate)
	}

	created, err := s.store.Create(ctx, store.CreateProductParams{
		Name:       name,
		Price:      product.Price,
		Stock:      product.Stock,
		ExpiryDate: expiry,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return toProductDto(created), nil
}

// Update modifies an existing product's details and returns the updated product as a ProductDto.
func (s *Catalog) Update(ctx context.Context, id uuid.UUID, product ProductUpdateDto) (*ProductDto, error) {
	name := strings.TrimSpace(product.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", serrors.ErrValidation)
	}
	if product.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", serrors.ErrValidation)
	}
	expiry, err := parseDate(product.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid expiry date %q", serrors.ErrValidation, product.ExpiryDate)
	}

	updated, err := s.store.Update(ctx, store.UpdateProductParams{
		ID:         id,
		Name:       name,
		Price:      product.Price,
		ExpiryDate: expiry,
		Version:    product.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}
	return toProductDto(updated), nil
}

// AdjustStock applies a stock delta and returns the updated product as a ProductDto.
func (s *Catalog) AdjustStock(ctx context.Context, id uuid.UUID, delta int32) (*ProductDto, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: stock delta must not be zero", serrors.ErrValidation)
	}
	product, err := s.store.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust stock for product with ID %s: %w", id, err)
	}
	return toProductDto(product), nil
}

// toProductDto converts a store.Product to a ProductDto.
func toProductDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:              product.ID.String(),
		Name:            product.Name,
		Price:           product.Price,
		Stock:           product.StockQuantity,
		ExpiryDate:      product.ExpiryDate.Format(dateLayout),
		CumulativeSales: product.CumulativeSales,
		Version:         product.Version,
		CreatedAt:       product.CreatedAt.Format(time.RFC3339),
	}
}

func toProductDtos(products []store.Product) []ProductDto {
	dtos := make([]ProductDto, len(products))
	for i, p := range products {
		dtos[i] = *toProductDto(&p)
	}
	return dtos
}

// parseDate parses a calendar date in the API layout, normalized to UTC midnight.
func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, time.UTC)
}
