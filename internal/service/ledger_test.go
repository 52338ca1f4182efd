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

// mockSalesStore is a mock implementation of the SalesStore interface
type mockSalesStore struct {
	sale   store.Sale
	sales  []store.Sale
	filter store.SaleFilter
	error  error
}

// Simulate recording a sale
func (m *mockSalesStore) RecordSale(_ context.Context, _ store.RecordSaleParams) (*store.Sale, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &m.sale, nil
}

// Simulate listing ledger entries, capturing the filter for inspection
func (m *mockSalesStore) FindSales(_ context.Context, filter store.SaleFilter) ([]store.Sale, error) {
	m.filter = filter
	if m.error != nil {
		return nil, m.error
	}
	return m.sales, nil
}

func Test_Ledger_RecordSale(t *testing.T) {
	mockProductID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	saleDate := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)
	testCases := []struct {
		name        string
		mockStore   *mockSalesStore
		sale        SaleCreateDto
		expected    *SaleDto
		expectError error
	}{
		{
			name: "Success - sale recorded",
			mockStore: &mockSalesStore{
				sale: store.Sale{
					ID:         1,
					ProductID:  mockProductID,
					Quantity:   5,
					UnitPrice:  250,
					TotalPrice: 1250,
					SaleDate:   saleDate,
					CreatedAt:  createdAt,
				},
			},
			sale: SaleCreateDto{ProductID: mockProductID.String(), Quantity: 5, Date: "2026-08-30"},
			expected: &SaleDto{
				ID:         1,
				ProductID:  mockProductID.String(),
				Quantity:   5,
				UnitPrice:  250,
				TotalPrice: 1250,
				Date:       "2026-08-30",
				CreatedAt:  createdAt.Format(time.RFC3339),
			},
			expectError: nil,
		},
		{
			name: "Success - date defaults to today",
			mockStore: &mockSalesStore{
				sale: store.Sale{
					ID:         2,
					ProductID:  mockProductID,
					Quantity:   1,
					UnitPrice:  250,
					TotalPrice: 250,
					SaleDate:   saleDate,
					CreatedAt:  createdAt,
				},
			},
			sale: SaleCreateDto{ProductID: mockProductID.String(), Quantity: 1},
			expected: &SaleDto{
				ID:         2,
				ProductID:  mockProductID.String(),
				Quantity:   1,
				UnitPrice:  250,
				TotalPrice: 250,
				Date:       "2026-08-30",
				CreatedAt:  createdAt.Format(time.RFC3339),
			},
			expectError: nil,
		},
		{
			name:        "Error - zero quantity",
			mockStore:   &mockSalesStore{},
			sale:        SaleCreateDto{ProductID: mockProductID.String(), Quantity: 0},
			expectError: serrors.ErrValidation,
		},
		{
			name:        "Error - negative quantity",
			mockStore:   &mockSalesStore{},
			sale:        SaleCreateDto{ProductID: mockProductID.String(), Quantity: -3},
			expectError: serrors.ErrValidation,
		},
		{
			name:        "Error - malformed product ID",
			mockStore:   &mockSalesStore{},
			sale:        SaleCreateDto{ProductID: "not-a-uuid", Quantity: 1},
			expectError: serrors.ErrValidation,
		},
		{
			name:        "Error - malformed date",
			mockStore:   &mockSalesStore{},
			sale:        SaleCreateDto{ProductID: mockProductID.String(), Quantity: 1, Date: "30-08-2026"},
			expectError: serrors.ErrValidation,
		},
		{
			name: "Error - product not found",
			mockStore: &mockSalesStore{
				error: serrors.ErrProductNotFound,
			},
			sale:        SaleCreateDto{ProductID: mockProductID.String(), Quantity: 1},
			expectError: serrors.ErrProductNotFound,
		},
		{
			name: "Error - insufficient stock",
			mockStore: &mockSalesStore{
				error: serrors.ErrInsufficientStock,
			},
			sale:        SaleCreateDto{ProductID: mockProductID.String(), Quantity: 100},
			expectError: serrors.ErrInsufficientStock,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewLedger(tc.mockStore)
			// when
			recorded, err := service.RecordSale(context.Background(), tc.sale)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, recorded)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, recorded)
		})
	}
}

func Test_Ledger_FindAll(t *testing.T) {
	ErrStoreError := errors.New("store error")
	mockProductID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	saleDate := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)
	testCases := []struct {
		name        string
		mockStore   *mockSalesStore
		query       SaleQueryDto
		expected    []SaleDto
		expectError error
	}{
		{
			name: "Success - sales found",
			mockStore: &mockSalesStore{
				sales: []store.Sale{{
					ID:         1,
					ProductID:  mockProductID,
					Quantity:   5,
					UnitPrice:  250,
					TotalPrice: 1250,
					SaleDate:   saleDate,
					CreatedAt:  createdAt,
				}},
			},
			query: SaleQueryDto{},
			expected: []SaleDto{{
				ID:         1,
				ProductID:  mockProductID.String(),
				Quantity:   5,
				UnitPrice:  250,
				TotalPrice: 1250,
				Date:       "2026-08-30",
				CreatedAt:  createdAt.Format(time.RFC3339),
			}},
			expectError: nil,
		},
		{
			name:        "Success - no sales",
			mockStore:   &mockSalesStore{sales: []store.Sale{}},
			query:       SaleQueryDto{ProductID: mockProductID.String(), From: "2026-08-01", To: "2026-08-31"},
			expected:    []SaleDto{},
			expectError: nil,
		},
		{
			name:        "Error - malformed product ID",
			mockStore:   &mockSalesStore{},
			query:       SaleQueryDto{ProductID: "not-a-uuid"},
			expectError: serrors.ErrValidation,
		},
		{
			name:        "Error - malformed from date",
			mockStore:   &mockSalesStore{},
			query:       SaleQueryDto{From: "08/01/2026"},
			expectError: serrors.ErrValidation,
		},
		{
			name:        "Error - malformed to date",
			mockStore:   &mockSalesStore{},
			query:       SaleQueryDto{To: "yesterday"},
			expectError: serrors.ErrValidation,
		},
		{
			name:        "Error - store error",
			mockStore:   &mockSalesStore{error: ErrStoreError},
			query:       SaleQueryDto{},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewLedger(tc.mockStore)
			// when
			found, err := service.FindAll(context.Background(), tc.query)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_Ledger_FindAll_FilterConversion(t *testing.T) {
	// given
	mockProductID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	mockStore := &mockSalesStore{sales: []store.Sale{}}
	service := NewLedger(mockStore)
	// when
	_, err := service.FindAll(context.Background(), SaleQueryDto{
		ProductID: mockProductID.String(),
		From:      "2026-08-01",
		To:        "2026-08-31",
	})
	// then
	require.NoError(t, err)
	require.NotNil(t, mockStore.filter.ProductID)
	assert.Equal(t, mockProductID, *mockStore.filter.ProductID)
	require.NotNil(t, mockStore.filter.From)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *mockStore.filter.From)
	require.NotNil(t, mockStore.filter.To)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), *mockStore.filter.To)
}
