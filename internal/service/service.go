// Package service provides the implementation of catalog business logic.
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/shoplite/catalog/internal/catalog"
	"github.com/shoplite/catalog/internal/store"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// FindAll returns all products matching the filter.
	// Returns an empty slice if no products match.
	FindAll(ctx context.Context, filter store.ListFilter) ([]ProductDto, error)

	// Create adds a new product to the catalog.
	// Returns an error if the product cannot be created.
	Create(ctx context.Context, product ProductWriteDto) (*ProductDto, error)

	// Update replaces all mutable fields of an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, product ProductWriteDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID. Absent IDs are a no-op.
	DeleteByID(ctx context.Context, id int64) error

	// DeleteAll clears the entire catalog. Test and administrative support.
	DeleteAll(ctx context.Context) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductWriteDto represents the request payload for creating or replacing a
// product. The same shape serves both operations because updates replace all
// mutable fields.
type ProductWriteDto struct {
	Name        string           `json:"name"        validate:"required,max=100"`
	Description string           `json:"description" validate:"max=250"`
	Price       decimal.Decimal  `json:"price"`
	Available   bool             `json:"available"`
	Category    catalog.Category `json:"category"`
}

// ProductDto represents the data transfer object for a stored product.
type ProductDto struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	Available   bool             `json:"available"`
	Category    catalog.Category `json:"category"`
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}

	return toDto(product), nil
}

// FindAll retrieves all products matching the filter and returns them as DTOs.
// Returns an empty slice if no products match or error if the retrieval fails.
func (s *Service) FindAll(ctx context.Context, filter store.ListFilter) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}

	return productDTOs, nil
}

// Create creates a new product and returns it as a ProductDto.
// Returns an error if the product cannot be created.
func (s *Service) Create(ctx context.Context, product ProductWriteDto) (*ProductDto, error) {
	created, err := s.repository.Create(ctx, toRecord(0, product))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return toDto(created), nil
}

// Update replaces all mutable fields of an existing product and returns the
// updated record. Returns ErrProductNotFound if no product exists with the ID.
func (s *Service) Update(ctx context.Context, id int64, product ProductWriteDto) (*ProductDto, error) {
	updated, err := s.repository.Update(ctx, toRecord(id, product))
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}

	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID. Deleting an absent ID is a no-op.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	return s.repository.DeleteByID(ctx, id)
}

// DeleteAll clears the entire catalog.
func (s *Service) DeleteAll(ctx context.Context) error {
	return s.repository.DeleteAll(ctx)
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Available:   product.Available,
		Category:    product.Category,
	}
}

// toRecord converts a write DTO to a store.Product with the given ID.
func toRecord(id int64, product ProductWriteDto) store.Product {
	return store.Product{
		ID:          id,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Available:   product.Available,
		Category:    product.Category,
	}
}
