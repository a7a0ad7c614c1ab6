package reconciliation

import (
	"sort"

	"github.com/google/uuid"
	"github.com/pantry/backend/internal/domain/catalog"
	"github.com/pantry/backend/internal/domain/fiscal"
	"github.com/pantry/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// Aggregator converts a window of tagged delta ledger entries into a
// per-product reconciliation for one fiscal period: the previous
// period's net movement becomes the opening balance, the current
// period's purchases and consumption accumulate into their buckets, and
// the running balance after the last entry is the closing balance.
type Aggregator struct {
	cal fiscal.Calendar
}

// NewAggregator creates an aggregator bound to a fiscal calendar
func NewAggregator(cal fiscal.Calendar) *Aggregator {
	return &Aggregator{cal: cal}
}

// Aggregate builds the reconciliation for the given period. The entry
// slice must cover at least [PreviousPeriod(period).Start, period.End];
// entries outside that window are ignored. Entries referencing a
// product absent from the catalog, or carrying negative values, are
// skipped and reported in the result's diagnostics rather than
// failing the whole aggregation. Rows are sorted by product name
// ascending. The function is pure: identical inputs yield identical
// results.
func (a *Aggregator) Aggregate(period fiscal.Period, products []catalog.Product, entries []ledger.Entry) Result {
	previous := a.cal.PreviousPeriod(period)

	rows := make([]Row, len(products))
	index := make(map[uuid.UUID]*Row, len(products))
	for i, p := range products {
		rows[i] = newZeroRow(p)
		index[p.ID] = &rows[i]
	}

	sorted := make([]ledger.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var skipped []SkippedEntry
	for i := range sorted {
		e := &sorted[i]

		inPrevious := previous.Contains(e.Date)
		inCurrent := period.Contains(e.Date)
		if !inPrevious && !inCurrent {
			continue
		}

		if reason := validate(e); reason != "" {
			skipped = append(skipped, SkippedEntry{
				EntryID:   e.ID,
				ProductID: e.ProductID,
				Reason:    reason,
			})
			continue
		}

		row, known := index[e.ProductID]
		if !known {
			skipped = append(skipped, SkippedEntry{
				EntryID:   e.ID,
				ProductID: e.ProductID,
				Reason:    "unknown product",
			})
			continue
		}

		if inPrevious {
			row.OpeningQuantity = row.OpeningQuantity.Add(e.SignedQuantity())
			row.OpeningAmount = row.OpeningAmount.Add(e.SignedAmount())
			continue
		}

		switch e.Kind {
		case ledger.KindPurchase:
			row.PurchaseQuantity = row.PurchaseQuantity.Add(e.Quantity)
			row.PurchaseAmount = row.PurchaseAmount.Add(e.Amount)
		case ledger.KindConsume:
			row.ConsumeQuantity = row.ConsumeQuantity.Add(e.Quantity)
			row.ConsumeAmount = row.ConsumeAmount.Add(e.Amount)
		}
	}

	var totals Totals
	for i := range rows {
		row := &rows[i]
		row.ClosingQuantity = row.OpeningQuantity.Add(row.PurchaseQuantity).Sub(row.ConsumeQuantity)
		row.ClosingAmount = row.OpeningAmount.Add(row.PurchaseAmount).Sub(row.ConsumeAmount)

		totals.OpeningAmount = totals.OpeningAmount.Add(row.OpeningAmount)
		totals.PurchaseAmount = totals.PurchaseAmount.Add(row.PurchaseAmount)
		totals.ConsumeAmount = totals.ConsumeAmount.Add(row.ConsumeAmount)
		totals.ClosingAmount = totals.ClosingAmount.Add(row.ClosingAmount)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Name < rows[j].Name
	})

	return Result{
		Rows:    rows,
		Totals:  totals,
		Skipped: skipped,
	}
}

// newZeroRow initializes a flat row so products with no movement in
// either span still appear on the report
func newZeroRow(p catalog.Product) Row {
	zero := decimal.Zero
	return Row{
		ProductID:        p.ID,
		Name:             p.Name,
		Unit:             p.Unit,
		OpeningQuantity:  zero,
		OpeningAmount:    zero,
		PurchaseQuantity: zero,
		PurchaseAmount:   zero,
		ConsumeQuantity:  zero,
		ConsumeAmount:    zero,
		ClosingQuantity:  zero,
		ClosingAmount:    zero,
	}
}

// validate returns a skip reason for a malformed entry, or "" if the
// entry is usable
func validate(e *ledger.Entry) string {
	if !e.Kind.IsValid() {
		return "invalid kind"
	}
	if e.Quantity.IsNegative() {
		return "negative quantity"
	}
	if e.Amount.IsNegative() {
		return "negative amount"
	}
	return ""
}
