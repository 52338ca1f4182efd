package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	serrors "github.com/medistock/medistock/internal/errors"
)

const productColumns = `id, name, price, stock_quantity, expiry_date, cumulative_sales, version, created_at`
const saleColumns = `id, product_id, quantity, unit_price, total_price, sale_date, created_at`

// PgStore implements CatalogStore and SalesStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of the store using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

var _ CatalogStore = (*PgStore)(nil)
var _ SalesStore = (*PgStore)(nil)

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	row := p.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, serrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

// FindAll retrieves all products in insertion order.
func (p *PgStore) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := p.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	defer rows.Close()

	list := make([]Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		list = append(list, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return list, nil
}

// Create adds a new product to the catalog.
// Returns ErrDuplicateProductName if a product with the same name already exists.
func (p *PgStore) Create(ctx context.Context, params CreateProductParams) (*Product, error) {
	row := p.db.QueryRow(ctx,
		`INSERT INTO products (name, price, stock_quantity, expiry_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+productColumns,
		params.Name, params.Price, params.Stock, params.ExpiryDate)
	product, err := scanProduct(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, serrors.ErrDuplicateProductName
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// Update modifies name, price and expiry date of an existing product.
// Returns ErrProductNotFound if no product exists with the given ID,
// ErrOptimisticLock on a version conflict.
func (p *PgStore) Update(ctx context.Context, params UpdateProductParams) (*Product, error) {
	row := p.db.QueryRow(ctx,
		`UPDATE products
		 SET name = $2, price = $3, expiry_date = $4, version = version + 1
		 WHERE id = $1 AND version = $5
		 RETURNING `+productColumns,
		params.ID, params.Name, params.Price, params.ExpiryDate, params.Version)
	product, err := scanProduct(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, serrors.ErrDuplicateProductName
		}
		if errors.Is(err, pgx.ErrNoRows) {
			// Check if the product exists, or it's an optimistic lock error.
			if _, findErr := p.FindByID(ctx, params.ID); findErr != nil {
				return nil, findErr
			}
			return nil, serrors.ErrOptimisticLock
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// AdjustStock applies a stock delta atomically.
// The conditional update guarantees stock never goes negative.
func (p *PgStore) AdjustStock(ctx context.Context, id uuid.UUID, delta int32) (*Product, error) {
	row := p.db.QueryRow(ctx,
		`UPDATE products
		 SET stock_quantity = stock_quantity + $2, version = version + 1
		 WHERE id = $1 AND stock_quantity + $2 >= 0
		 RETURNING `+productColumns,
		id, delta)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, findErr := p.FindByID(ctx, id); findErr != nil {
				return nil, findErr
			}
			return nil, serrors.ErrInsufficientStock
		}
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}
	return product, nil
}

// RecordSale applies the stock mutation and the ledger append in one transaction.
// The row lock taken by the conditional UPDATE serializes concurrent sales per product.
func (p *PgStore) RecordSale(ctx context.Context, params RecordSaleParams) (*Sale, error) {
	var sale *Sale

	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		var unitPrice int64
		err := tx.QueryRow(ctx,
			`UPDATE products
			 SET stock_quantity = stock_quantity - $2,
			     cumulative_sales = cumulative_sales + $2,
			     version = version + 1
			 WHERE id = $1 AND stock_quantity >= $2
			 RETURNING price`,
			params.ProductID, params.Quantity).Scan(&unitPrice)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				var exists bool
				if checkErr := tx.QueryRow(ctx,
					`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`,
					params.ProductID).Scan(&exists); checkErr != nil {
					return fmt.Errorf("failed to check product existence: %w", checkErr)
				}
				if !exists {
					return serrors.ErrProductNotFound
				}
				return serrors.ErrInsufficientStock
			}
			return fmt.Errorf("failed to apply sale to product: %w", err)
		}

		row := tx.QueryRow(ctx,
			`INSERT INTO sales (product_id, quantity, unit_price, total_price, sale_date)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING `+saleColumns,
			params.ProductID, params.Quantity, unitPrice, int64(params.Quantity)*unitPrice, params.SaleDate)
		s, err := scanSale(row)
		if err != nil {
			return fmt.Errorf("failed to append sale: %w", err)
		}
		sale = s
		return nil
	})

	if txErr != nil {
		return nil, txErr
	}
	return sale, nil
}

// FindSales returns ledger entries in ledger order, optionally filtered.
func (p *PgStore) FindSales(ctx context.Context, filter SaleFilter) ([]Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	args := make([]any, 0, 3)
	if filter.ProductID != nil {
		args = append(args, *filter.ProductID)
		query += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND sale_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND sale_date <= $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find sales: %w", err)
	}
	defer rows.Close()

	list := make([]Sale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		list = append(list, *sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales: %w", err)
	}
	return list, nil
}

func (p *PgStore) withTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return serrors.ErrTransactionBegin
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return serrors.ErrTransactionRollback
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return serrors.ErrTransactionCommit
	}
	return nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.StockQuantity, &p.ExpiryDate, &p.CumulativeSales, &p.Version, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanSale(row pgx.Row) (*Sale, error) {
	var s Sale
	err := row.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.UnitPrice, &s.TotalPrice, &s.SaleDate, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
