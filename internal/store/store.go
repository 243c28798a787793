// Package store provides persistence for product records.
package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shoplite/catalog/internal/catalog"
)

// Product represents a product record in the store.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Available   bool
	Category    catalog.Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListFilter narrows a FindAll result set. Nil fields do not constrain the
// result; set fields match by equality and combine with logical AND.
type ListFilter struct {
	Name      *string
	Category  *catalog.Category
	Available *bool
}

// ProductStore defines the persistence contract for product records.
type ProductStore interface {
	// FindByID retrieves a product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindAll retrieves all products matching the filter.
	// Returns an empty slice if no products match.
	FindAll(ctx context.Context, filter ListFilter) ([]Product, error)

	// Create persists a new product. The store assigns the ID.
	Create(ctx context.Context, product Product) (*Product, error)

	// Update replaces all fields of an existing product except its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, product Product) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Deleting an absent ID is a no-op, not an error.
	DeleteByID(ctx context.Context, id int64) error

	// DeleteAll clears the entire collection. Test and administrative support.
	DeleteAll(ctx context.Context) error
}
