package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Filter defines listing options for products
type Filter struct {
	Search   string // Matches against product name
	Page     int
	PageSize int
}

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByName finds a product by its exact name
	FindByName(ctx context.Context, name string) (*Product, error)

	// FindAll returns products matching the filter plus the unfiltered match count
	FindAll(ctx context.Context, filter Filter) ([]Product, int64, error)

	// Save inserts or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete removes a product by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
