package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	serrors "github.com/medistock/medistock/internal/errors"
)

// entry wraps a product with its own mutex so that check-and-mutate
// sequences on different products do not contend with each other.
type entry struct {
	mu sync.Mutex
	p  Product
}

// MemoryStore implements CatalogStore and SalesStore using in-memory maps.
//
// Lock ordering: mu before entry.mu before ledgerMu. RecordSale holds the
// product's entry lock across both the stock mutation and the ledger append,
// so readers never observe a decremented stock without the matching entry.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
	byName  map[string]uuid.UUID
	order   []uuid.UUID

	ledgerMu   sync.Mutex
	sales      []Sale
	nextSaleID int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:    make(map[uuid.UUID]*entry),
		byName:     make(map[string]uuid.UUID),
		nextSaleID: 1,
	}
}

var _ CatalogStore = (*MemoryStore)(nil)
var _ SalesStore = (*MemoryStore)(nil)

// FindByID retrieves a product by its ID.
func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*Product, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.p
	return &p, nil
}

// FindAll retrieves all products in insertion order.
func (s *MemoryStore) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	ids := make([]uuid.UUID, len(s.order))
	copy(ids, s.order)
	entries := make([]*entry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, s.entries[id])
	}
	s.mu.RUnlock()

	list := make([]Product, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		list = append(list, e.p)
		e.mu.Unlock()
	}
	return list, nil
}

// Create creates a new product and returns it.
func (s *MemoryStore) Create(_ context.Context, params CreateProductParams) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[params.Name]; exists {
		return nil, serrors.ErrDuplicateProductName
	}

	product := Product{
		ID:            uuid.New(),
		Name:          params.Name,
		Price:         params.Price,
		StockQuantity: params.Stock,
		ExpiryDate:    params.ExpiryDate,
		Version:       1,
		CreatedAt:     time.Now().UTC(),
	}
	s.entries[product.ID] = &entry{p: product}
	s.byName[product.Name] = product.ID
	s.order = append(s.order, product.ID)

	return &product, nil
}

// Update modifies name, price and expiry date of an existing product.
func (s *MemoryStore) Update(_ context.Context, params UpdateProductParams) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[params.ID]
	if !ok {
		return nil, serrors.ErrProductNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.p.Version != params.Version {
		return nil, serrors.ErrOptimisticLock
	}
	if params.Name != e.p.Name {
		if _, exists := s.byName[params.Name]; exists {
			return nil, serrors.ErrDuplicateProductName
		}
		delete(s.byName, e.p.Name)
		s.byName[params.Name] = params.ID
	}

	e.p.Name = params.Name
	e.p.Price = params.Price
	e.p.ExpiryDate = params.ExpiryDate
	e.p.Version++

	p := e.p
	return &p, nil
}

// AdjustStock applies a stock delta atomically, rejecting a negative result.
func (s *MemoryStore) AdjustStock(_ context.Context, id uuid.UUID, delta int32) (*Product, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.p.StockQuantity+delta < 0 {
		return nil, serrors.ErrInsufficientStock
	}
	e.p.StockQuantity += delta
	e.p.Version++

	p := e.p
	return &p, nil
}

// RecordSale atomically applies the sale to the product and appends the ledger entry.
func (s *MemoryStore) RecordSale(_ context.Context, params RecordSaleParams) (*Sale, error) {
	e, err := s.entry(params.ProductID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if params.Quantity > e.p.StockQuantity {
		return nil, serrors.ErrInsufficientStock
	}

	e.p.StockQuantity -= params.Quantity
	e.p.CumulativeSales += params.Quantity
	e.p.Version++

	// The ledger append happens under the product lock so no reader can see
	// the stock decrement without the matching sale.
	s.ledgerMu.Lock()
	sale := Sale{
		ID:         s.nextSaleID,
		ProductID:  params.ProductID,
		Quantity:   params.Quantity,
		UnitPrice:  e.p.Price,
		TotalPrice: int64(params.Quantity) * e.p.Price,
		SaleDate:   params.SaleDate,
		CreatedAt:  time.Now().UTC(),
	}
	s.nextSaleID++
	s.sales = append(s.sales, sale)
	s.ledgerMu.Unlock()

	return &sale, nil
}

// FindSales returns ledger entries in ledger order, optionally filtered.
func (s *MemoryStore) FindSales(_ context.Context, filter SaleFilter) ([]Sale, error) {
	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()

	list := make([]Sale, 0, len(s.sales))
	for _, sale := range s.sales {
		if filter.ProductID != nil && sale.ProductID != *filter.ProductID {
			continue
		}
		if filter.From != nil && sale.SaleDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && sale.SaleDate.After(*filter.To) {
			continue
		}
		list = append(list, sale)
	}
	return list, nil
}

// entry looks up the per-product entry under the read lock.
func (s *MemoryStore) entry(id uuid.UUID) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, serrors.ErrProductNotFound
	}
	return e, nil
}
