package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/shoplite/catalog/internal/catalog"
	perrors "github.com/shoplite/catalog/internal/errors"
)

// productColumns is the column list shared by every query returning a product.
// price is cast to text so it round-trips through decimal.Decimal losslessly.
const productColumns = `id, name, description, price::text, available, category, created_at, updated_at`

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	row := p.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

// FindAll retrieves all products matching the filter, ordered by ID.
// It returns a slice of products, which may be empty if no products match.
func (p *PgStore) FindAll(ctx context.Context, filter ListFilter) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var conds []string
	var args []any
	if filter.Name != nil {
		args = append(args, *filter.Name)
		conds = append(conds, fmt.Sprintf("name = $%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, string(*filter.Category))
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Available != nil {
		args = append(args, *filter.Available)
		conds = append(conds, fmt.Sprintf("available = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}
	return products, nil
}

// Create persists a new product and returns the stored record with its
// database-assigned ID.
func (p *PgStore) Create(ctx context.Context, product Product) (*Product, error) {
	row := p.db.QueryRow(ctx,
		`INSERT INTO products (name, description, price, available, category)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+productColumns,
		product.Name, product.Description, product.Price.String(), product.Available, string(product.Category))
	created, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

// Update replaces all fields of an existing product except its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) Update(ctx context.Context, product Product) (*Product, error) {
	row := p.db.QueryRow(ctx,
		`UPDATE products
		 SET name = $2, description = $3, price = $4, available = $5, category = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING `+productColumns,
		product.ID, product.Name, product.Description, product.Price.String(), product.Available, string(product.Category))
	updated, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return updated, nil
}

// DeleteByID removes a product by its unique identifier.
// Deleting an absent ID is a no-op so that deletes stay idempotent.
func (p *PgStore) DeleteByID(ctx context.Context, id int64) error {
	if _, err := p.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	return nil
}

// DeleteAll clears the entire products collection.
func (p *PgStore) DeleteAll(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to delete all products: %w", err)
	}
	return nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	var price, category string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Available, &category, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid price value %q: %w", price, err)
	}
	p.Price = d
	p.Category = catalog.Category(category)
	return &p, nil
}
