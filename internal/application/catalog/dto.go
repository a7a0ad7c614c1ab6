package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/pantry/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the input for creating a product
type CreateProductRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=200"`
	Unit           string          `json:"unit" binding:"required,min=1,max=20"`
	ReferencePrice decimal.Decimal `json:"reference_price"`
}

// UpdateProductRequest is the input for updating a product
type UpdateProductRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=200"`
	Unit           string          `json:"unit" binding:"required,min=1,max=20"`
	ReferencePrice decimal.Decimal `json:"reference_price"`
}

// ListFilter is the input for listing products
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Unit           string          `json:"unit"`
	ReferencePrice decimal.Decimal `json:"reference_price"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Unit:           p.Unit,
		ReferencePrice: p.ReferencePrice,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
