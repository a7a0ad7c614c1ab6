package reconciliation

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Row is one product's five-bucket breakdown for one fiscal period.
// Invariant: Closing = Opening + Purchase - Consume, for both quantity
// and amount.
type Row struct {
	ProductID        uuid.UUID       `json:"product_id"`
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	OpeningQuantity  decimal.Decimal `json:"opening_quantity"`
	OpeningAmount    decimal.Decimal `json:"opening_amount"`
	PurchaseQuantity decimal.Decimal `json:"purchase_quantity"`
	PurchaseAmount   decimal.Decimal `json:"purchase_amount"`
	ConsumeQuantity  decimal.Decimal `json:"consume_quantity"`
	ConsumeAmount    decimal.Decimal `json:"consume_amount"`
	ClosingQuantity  decimal.Decimal `json:"closing_quantity"`
	ClosingAmount    decimal.Decimal `json:"closing_amount"`
}

// Totals holds the column-wise sums of the monetary columns. Quantities
// are unit-heterogeneous across products and are never summed.
type Totals struct {
	OpeningAmount  decimal.Decimal `json:"opening_amount"`
	PurchaseAmount decimal.Decimal `json:"purchase_amount"`
	ConsumeAmount  decimal.Decimal `json:"consume_amount"`
	ClosingAmount  decimal.Decimal `json:"closing_amount"`
}

// SkippedEntry records one ledger entry excluded from aggregation,
// with the reason it was excluded
type SkippedEntry struct {
	EntryID   uuid.UUID `json:"entry_id"`
	ProductID uuid.UUID `json:"product_id"`
	Reason    string    `json:"reason"`
}

// Result is the aggregator's output: one row per catalog product,
// monetary totals, and data-integrity diagnostics for skipped entries
type Result struct {
	Rows    []Row          `json:"rows"`
	Totals  Totals         `json:"totals"`
	Skipped []SkippedEntry `json:"skipped,omitempty"`
}

// SkippedCount returns the number of entries excluded from aggregation
func (r *Result) SkippedCount() int {
	return len(r.Skipped)
}
