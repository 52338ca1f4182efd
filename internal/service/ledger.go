package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	serrors "github.com/medistock/medistock/internal/errors"
	"github.com/medistock/medistock/internal/store"
)

// LedgerService defines the methods for recording and listing sales.
type LedgerService interface {
	// RecordSale applies a sale against the catalog and appends it to the ledger.
	// Returns ErrValidation on malformed input, ErrProductNotFound for an
	// unknown product and ErrInsufficientStock when the requested quantity
	// exceeds current stock. A failed call leaves all state unchanged.
	RecordSale(ctx context.Context, sale SaleCreateDto) (*SaleDto, error)

	// FindAll returns ledger entries in ledger order, optionally filtered by
	// product and/or an inclusive date range.
	FindAll(ctx context.Context, query SaleQueryDto) ([]SaleDto, error)
}

// Ledger implements LedgerService on top of a SalesStore.
type Ledger struct {
	store store.SalesStore
}

// NewLedger creates a new instance of LedgerService with the provided store.
func NewLedger(s store.SalesStore) *Ledger {
	return &Ledger{store: s}
}

// SaleCreateDto represents the data transfer object for recording a sale.
// Date is optional and defaults to the day of recording.
type SaleCreateDto struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int32  `json:"quantity"   validate:"required,min=1"`
	Date      string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// SaleDto represents the data transfer object for a ledger entry.
type SaleDto struct {
	ID         int64  `json:"id"`
	ProductID  string `json:"product_id"`
	Quantity   int32  `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	TotalPrice int64  `json:"total_price"`
	Date       string `json:"date"`
	CreatedAt  string `json:"created_at"`
}

// SaleQueryDto restricts the ledger listing. Empty fields are ignored.
type SaleQueryDto struct {
	ProductID string
	From      string
	To        string
}

// RecordSale validates the input and applies the sale atomically.
func (s *Ledger) RecordSale(ctx context.Context, sale SaleCreateDto) (*SaleDto, error) {
	if sale.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", serrors.ErrValidation)
	}
	productID, err := uuid.Parse(sale.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product ID %q", serrors.ErrValidation, sale.ProductID)
	}

	saleDate := todayUTC()
	if sale.Date != "" {
		saleDate, err = parseDate(sale.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid sale date %q", serrors.ErrValidation, sale.Date)
		}
	}

	recorded, err := s.store.RecordSale(ctx, store.RecordSaleParams{
		ProductID: productID,
		Quantity:  sale.Quantity,
		SaleDate:  saleDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record sale for product %s: %w", productID, err)
	}
	return toSaleDto(recorded), nil
}

// FindAll retrieves ledger entries matching the query and returns them as SaleDtos.
func (s *Ledger) FindAll(ctx context.Context, query SaleQueryDto) ([]SaleDto, error) {
	filter, err := toSaleFilter(query)
	if err != nil {
		return nil, err
	}

	sales, err := s.store.FindSales(ctx, *filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}

	dtos := make([]SaleDto, len(sales))
	for i, sale := range sales {
		dtos[i] = *toSaleDto(&sale)
	}
	return dtos, nil
}

// toSaleFilter converts a SaleQueryDto to a store.SaleFilter.
func toSaleFilter(query SaleQueryDto) (*store.SaleFilter, error) {
	var filter store.SaleFilter
	if query.ProductID != "" {
		id, err := uuid.Parse(query.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid product ID %q", serrors.ErrValidation, query.ProductID)
		}
		filter.ProductID = &id
	}
	if query.From != "" {
		from, err := parseDate(query.From)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from date %q", serrors.ErrValidation, query.From)
		}
		filter.From = &from
	}
	if query.To != "" {
		to, err := parseDate(query.To)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to date %q", serrors.ErrValidation, query.To)
		}
		filter.To = &to
	}
	return &filter, nil
}

// toSaleDto converts a store.Sale to a SaleDto.
func toSaleDto(sale *store.Sale) *SaleDto {
	return &SaleDto{
		ID:         sale.ID,
		ProductID:  sale.ProductID.String(),
		Quantity:   sale.Quantity,
		UnitPrice:  sale.UnitPrice,
		TotalPrice: sale.TotalPrice,
		Date:       sale.SaleDate.Format(dateLayout),
		CreatedAt:  sale.CreatedAt.Format(time.RFC3339),
	}
}

// todayUTC returns the current calendar date at UTC midnight.
func todayUTC() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
