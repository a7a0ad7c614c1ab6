package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/pantry/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryKind classifies a ledger movement. Entries are additive deltas:
// a PURCHASE increases the stock balance, a CONSUME decreases it.
// This tagged-delta form is the only representation the reconciliation
// aggregator accepts; cumulative snapshot sources must be converted via
// NormalizeSnapshots before they reach it.
type EntryKind string

const (
	KindPurchase EntryKind = "PURCHASE"
	KindConsume  EntryKind = "CONSUME"
)

// IsValid checks if the kind is a known EntryKind
func (k EntryKind) IsValid() bool {
	return k == KindPurchase || k == KindConsume
}

// String returns the string representation of EntryKind
func (k EntryKind) String() string {
	return string(k)
}

// Entry is one recorded stock movement tied to a product and date.
// Quantity and Amount are non-negative; the kind carries the direction.
// Amount is trusted as stored and never re-derived from quantity and
// the product's reference price.
type Entry struct {
	shared.BaseEntity
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date      time.Time       `gorm:"not null;index"`
	Kind      EntryKind       `gorm:"type:varchar(16);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "ledger_entries"
}

// NewEntry creates a new ledger entry
func NewEntry(productID uuid.UUID, date time.Time, kind EntryKind, quantity, amount decimal.Decimal) (*Entry, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Entry date cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Entry kind must be PURCHASE or CONSUME")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Entry quantity cannot be negative")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Entry amount cannot be negative")
	}

	return &Entry{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Date:       date,
		Kind:       kind,
		Quantity:   quantity,
		Amount:     amount,
	}, nil
}

// SignedQuantity returns the quantity with the kind's direction applied
func (e *Entry) SignedQuantity() decimal.Decimal {
	if e.Kind == KindConsume {
		return e.Quantity.Neg()
	}
	return e.Quantity
}

// SignedAmount returns the amount with the kind's direction applied
func (e *Entry) SignedAmount() decimal.Decimal {
	if e.Kind == KindConsume {
		return e.Amount.Neg()
	}
	return e.Amount
}
