package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is the alternate source variant of a ledger record: a
// cumulative per-product balance observed at a point in time, rather
// than an additive movement. Snapshots never reach the reconciliation
// aggregator directly.
type Snapshot struct {
	ProductID uuid.UUID
	Date      time.Time
	Quantity  decimal.Decimal
	Amount    decimal.Decimal
}

// NormalizeSnapshots converts cumulative balance snapshots into tagged
// delta entries by diffing successive balances per product, seeded from
// zero. A balance increase becomes a PURCHASE, a decrease a CONSUME; a
// snapshot equal to its predecessor produces no entry. When quantity
// and amount move in different directions the quantity decides the
// kind, so a repricing without stock movement is classified by its
// amount direction instead.
func NormalizeSnapshots(snapshots []Snapshot) []Entry {
	byProduct := make(map[uuid.UUID][]Snapshot)
	order := make([]uuid.UUID, 0)
	for _, s := range snapshots {
		if _, seen := byProduct[s.ProductID]; !seen {
			order = append(order, s.ProductID)
		}
		byProduct[s.ProductID] = append(byProduct[s.ProductID], s)
	}

	entries := make([]Entry, 0, len(snapshots))
	for _, productID := range order {
		series := byProduct[productID]
		sort.SliceStable(series, func(i, j int) bool {
			return series[i].Date.Before(series[j].Date)
		})

		prevQty, prevAmt := decimal.Zero, decimal.Zero
		for _, s := range series {
			dQty := s.Quantity.Sub(prevQty)
			dAmt := s.Amount.Sub(prevAmt)
			prevQty, prevAmt = s.Quantity, s.Amount

			if dQty.IsZero() && dAmt.IsZero() {
				continue
			}

			kind := KindPurchase
			switch {
			case dQty.IsPositive():
				kind = KindPurchase
			case dQty.IsNegative():
				kind = KindConsume
			case dAmt.IsNegative():
				kind = KindConsume
			}

			entry, err := NewEntry(productID, s.Date, kind, dQty.Abs(), dAmt.Abs())
			if err != nil {
				// Unreachable: abs deltas and a validated kind
				continue
			}
			entries = append(entries, *entry)
		}
	}

	return entries
}
