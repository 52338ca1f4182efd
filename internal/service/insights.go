package service

import (
	"context"
	"fmt"
	"time"

	"github.com/medistock/medistock/internal/alert"
	serrors "github.com/medistock/medistock/internal/errors"
	"github.com/medistock/medistock/internal/report"
	"github.com/medistock/medistock/internal/store"
)

// AlertService defines the read-only alert views over the catalog.
type AlertService interface {
	// NearExpiry returns the products expiring within horizonDays from today,
	// boundary inclusive.
	NearExpiry(ctx context.Context, horizonDays int) ([]ProductDto, error)

	// LowStock returns the products with stock at or below the threshold,
	// boundary inclusive.
	LowStock(ctx context.Context, threshold int32) ([]ProductDto, error)
}

// Alerts implements AlertService on top of a catalog snapshot.
type Alerts struct {
	catalog store.CatalogStore
}

// NewAlerts creates a new instance of AlertService with the provided store.
func NewAlerts(s store.CatalogStore) *Alerts {
	return &Alerts{catalog: s}
}

// NearExpiry returns the products expiring within the horizon.
func (s *Alerts) NearExpiry(ctx context.Context, horizonDays int) ([]ProductDto, error) {
	if horizonDays < 0 {
		return nil, fmt.Errorf("%w: horizon days must not be negative", serrors.ErrValidation)
	}
	products, err := s.catalog.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return toProductDtos(alert.NearExpiry(products, time.Now().UTC(), horizonDays)), nil
}

// LowStock returns the products at or below the stock threshold.
func (s *Alerts) LowStock(ctx context.Context, threshold int32) ([]ProductDto, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: threshold must not be negative", serrors.ErrValidation)
	}
	products, err := s.catalog.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return toProductDtos(alert.LowStock(products, threshold)), nil
}

// ReportService defines the read-only aggregations over the ledger.
type ReportService interface {
	// DailyRevenue returns per-day revenue in ascending date order.
	DailyRevenue(ctx context.Context) ([]DayRevenueDto, error)

	// Summary returns total revenue, items sold and the catalog size.
	Summary(ctx context.Context) (*SummaryDto, error)
}

// Reports implements ReportService over ledger and catalog snapshots.
type Reports struct {
	sales   store.SalesStore
	catalog store.CatalogStore
}

// NewReports creates a new instance of ReportService with the provided stores.
func NewReports(sales store.SalesStore, catalog store.CatalogStore) *Reports {
	return &Reports{sales: sales, catalog: catalog}
}

// DayRevenueDto represents the summed revenue of a single day.
type DayRevenueDto struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
}

// SummaryDto represents the dashboard totals.
type SummaryDto struct {
	TotalRevenue int64 `json:"total_revenue"`
	ItemsSold    int64 `json:"items_sold"`
	ProductCount int   `json:"product_count"`
}

// DailyRevenue aggregates the ledger by calendar day.
func (s *Reports) DailyRevenue(ctx context.Context) ([]DayRevenueDto, error) {
	sales, err := s.sales.FindSales(ctx, store.SaleFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}

	days := report.DailyRevenue(sales)
	dtos := make([]DayRevenueDto, len(days))
	for i, day := range days {
		dtos[i] = DayRevenueDto{Date: day.Date.Format(dateLayout), Revenue: day.Revenue}
	}
	return dtos, nil
}

// Summary aggregates the whole ledger plus the catalog size.
func (s *Reports) Summary(ctx context.Context) (*SummaryDto, error) {
	sales, err := s.sales.FindSales(ctx, store.SaleFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}
	products, err := s.catalog.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	totals := report.Totals(sales, len(products))
	return &SummaryDto{
		TotalRevenue: totals.TotalRevenue,
		ItemsSold:    totals.ItemsSold,
		ProductCount: totals.ProductCount,
	}, nil
}
