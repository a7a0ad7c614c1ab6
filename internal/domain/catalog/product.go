package catalog

import (
	"strings"
	"time"

	"github.com/pantry/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a purchasable good in the catalog.
// Its name doubles as the display and sort key on reconciliation reports.
type Product struct {
	shared.BaseEntity
	Name           string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Unit           string          `gorm:"type:varchar(20);not null"`             // Base unit (e.g., "kg", "箱", "pcs")
	ReferencePrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Money per unit; may drift over time
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product
func NewProduct(name, unit string, referencePrice decimal.Decimal) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateUnit(unit); err != nil {
		return nil, err
	}
	if referencePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Reference price cannot be negative")
	}

	return &Product{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           strings.TrimSpace(name),
		Unit:           strings.TrimSpace(unit),
		ReferencePrice: referencePrice,
	}, nil
}

// Update updates the product's attributes
func (p *Product) Update(name, unit string, referencePrice decimal.Decimal) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateUnit(unit); err != nil {
		return err
	}
	if referencePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Reference price cannot be negative")
	}

	p.Name = strings.TrimSpace(name)
	p.Unit = strings.TrimSpace(unit)
	p.ReferencePrice = referencePrice
	p.UpdatedAt = time.Now()

	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateUnit(unit string) error {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Product unit cannot be empty")
	}
	if len(unit) > 20 {
		return shared.NewDomainError("INVALID_UNIT", "Product unit cannot exceed 20 characters")
	}
	return nil
}
