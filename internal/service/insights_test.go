package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/medistock/medistock/internal/errors"
	"github.com/medistock/medistock/internal/store"
)

func Test_Alerts_NearExpiry(t *testing.T) {
	ErrStoreError := errors.New("store error")
	soonID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	farID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174001")
	soon := time.Now().UTC().AddDate(0, 0, 7)
	far := time.Now().UTC().AddDate(1, 0, 0)

	t.Run("Success - only products inside the horizon", func(t *testing.T) {
		// given
		mockStore := &mockCatalogStore{
			products: []store.Product{
				{ID: soonID, Name: "Aspirin", ExpiryDate: soon},
				{ID: farID, Name: "Ibuprofen", ExpiryDate: far},
			},
		}
		service := NewAlerts(mockStore)
		// when
		found, err := service.NearExpiry(context.Background(), 30)
		// then
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, soonID.String(), found[0].ID)
	})

	t.Run("Error - negative horizon", func(t *testing.T) {
		service := NewAlerts(&mockCatalogStore{})
		found, err := service.NearExpiry(context.Background(), -1)
		assert.ErrorIs(t, err, serrors.ErrValidation)
		assert.Nil(t, found)
	})

	t.Run("Error - store error", func(t *testing.T) {
		service := NewAlerts(&mockCatalogStore{error: ErrStoreError})
		found, err := service.NearExpiry(context.Background(), 30)
		assert.ErrorIs(t, err, ErrStoreError)
		assert.Nil(t, found)
	})
}

func Test_Alerts_LowStock(t *testing.T) {
	ErrStoreError := errors.New("store error")
	lowID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	atID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174001")
	okID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174002")

	t.Run("Success - threshold is inclusive", func(t *testing.T) {
		// given
		mockStore := &mockCatalogStore{
			products: []store.Product{
				{ID: okID, Name: "Aspirin", StockQuantity: 15},
				{ID: atID, Name: "Ibuprofen", StockQuantity: 10},
				{ID: lowID, Name: "Paracetamol", StockQuantity: 3},
			},
		}
		service := NewAlerts(mockStore)
		// when
		found, err := service.LowStock(context.Background(), 10)
		// then
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, atID.String(), found[0].ID)
		assert.Equal(t, lowID.String(), found[1].ID)
	})

	t.Run("Error - negative threshold", func(t *testing.T) {
		service := NewAlerts(&mockCatalogStore{})
		found, err := service.LowStock(context.Background(), -1)
		assert.ErrorIs(t, err, serrors.ErrValidation)
		assert.Nil(t, found)
	})

	t.Run("Error - store error", func(t *testing.T) {
		service := NewAlerts(&mockCatalogStore{error: ErrStoreError})
		found, err := service.LowStock(context.Background(), 10)
		assert.ErrorIs(t, err, ErrStoreError)
		assert.Nil(t, found)
	})
}

func Test_Reports_DailyRevenue(t *testing.T) {
	ErrStoreError := errors.New("store error")
	productID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	day1 := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	t.Run("Success - grouped by day in ascending order", func(t *testing.T) {
		// given
		mockSales := &mockSalesStore{
			sales: []store.Sale{
				{ID: 1, ProductID: productID, Quantity: 2, TotalPrice: 500, SaleDate: day2},
				{ID: 2, ProductID: productID, Quantity: 1, TotalPrice: 250, SaleDate: day1},
				{ID: 3, ProductID: productID, Quantity: 4, TotalPrice: 1000, SaleDate: day2},
			},
		}
		service := NewReports(mockSales, &mockCatalogStore{})
		// when
		days, err := service.DailyRevenue(context.Background())
		// then
		require.NoError(t, err)
		assert.Equal(t, []DayRevenueDto{
			{Date: "2026-08-29", Revenue: 250},
			{Date: "2026-08-30", Revenue: 1500},
		}, days)
	})

	t.Run("Success - empty ledger", func(t *testing.T) {
		service := NewReports(&mockSalesStore{sales: []store.Sale{}}, &mockCatalogStore{})
		days, err := service.DailyRevenue(context.Background())
		require.NoError(t, err)
		assert.Empty(t, days)
	})

	t.Run("Error - store error", func(t *testing.T) {
		service := NewReports(&mockSalesStore{error: ErrStoreError}, &mockCatalogStore{})
		days, err := service.DailyRevenue(context.Background())
		assert.ErrorIs(t, err, ErrStoreError)
		assert.Nil(t, days)
	})
}

func Test_Reports_Summary(t *testing.T) {
	ErrStoreError := errors.New("store error")
	productID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	t.Run("Success - totals over ledger and catalog", func(t *testing.T) {
		// given
		mockSales := &mockSalesStore{
			sales: []store.Sale{
				{ID: 1, ProductID: productID, Quantity: 5, TotalPrice: 1250, SaleDate: day},
				{ID: 2, ProductID: productID, Quantity: 2, TotalPrice: 500, SaleDate: day},
			},
		}
		mockCatalog := &mockCatalogStore{
			products: []store.Product{
				{ID: productID, Name: "Paracetamol"},
			},
		}
		service := NewReports(mockSales, mockCatalog)
		// when
		summary, err := service.Summary(context.Background())
		// then
		require.NoError(t, err)
		assert.Equal(t, &SummaryDto{TotalRevenue: 1750, ItemsSold: 7, ProductCount: 1}, summary)
	})

	t.Run("Success - empty state", func(t *testing.T) {
		service := NewReports(&mockSalesStore{sales: []store.Sale{}}, &mockCatalogStore{products: []store.Product{}})
		summary, err := service.Summary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, &SummaryDto{}, summary)
	})

	t.Run("Error - sales store error", func(t *testing.T) {
		service := NewReports(&mockSalesStore{error: ErrStoreError}, &mockCatalogStore{})
		summary, err := service.Summary(context.Background())
		assert.ErrorIs(t, err, ErrStoreError)
		assert.Nil(t, summary)
	})

	t.Run("Error - catalog store error", func(t *testing.T) {
		service := NewReports(&mockSalesStore{sales: []store.Sale{}}, &mockCatalogStore{error: ErrStoreError})
		summary, err := service.Summary(context.Background())
		assert.ErrorIs(t, err, ErrStoreError)
		assert.Nil(t, summary)
	})
}
