package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pantry/backend/internal/domain/fiscal"
	"github.com/pantry/backend/internal/domain/ledger"
	"github.com/pantry/backend/internal/domain/shared"
)

// QuantityStat is one product's total purchased quantity in a period
type QuantityStat struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// AmountStat is one product's total purchase spend in a period
type AmountStat struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// OverviewResponse backs the dashboard charts: purchases within one
// fiscal period, ranked by quantity and by spend. Only products with
// at least one purchase in the period appear.
type OverviewResponse struct {
	Period     fiscal.Period  `json:"period"`
	Quantities []QuantityStat `json:"quantities"`
	Amounts    []AmountStat   `json:"amounts"`
}

// Overview sums purchase entries per product over the queried period.
// Unlike Get, it reads the ledger directly on every call; the cache
// slot holds only the reconciliation report.
func (s *ReportService) Overview(ctx context.Context, q Query) (*OverviewResponse, error) {
	period, err := s.resolvePeriod(q)
	if err != nil {
		return nil, err
	}

	products, err := s.reader.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamFailure, err)
	}
	catalogByID := make(map[uuid.UUID]int, len(products))
	for i := range products {
		catalogByID[products[i].ID] = i
	}

	entries, err := s.reader.ListEntries(ctx, ledger.EntryFilter{
		Start: period.Start,
		End:   period.End,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamFailure, err)
	}

	type sums struct {
		quantity decimal.Decimal
		amount   decimal.Decimal
	}
	totals := make(map[uuid.UUID]*sums)
	order := make([]uuid.UUID, 0)
	for _, e := range entries {
		if e.Kind != ledger.KindPurchase {
			continue
		}
		if _, known := catalogByID[e.ProductID]; !known {
			continue
		}
		st, ok := totals[e.ProductID]
		if !ok {
			st = &sums{quantity: decimal.Zero, amount: decimal.Zero}
			totals[e.ProductID] = st
			order = append(order, e.ProductID)
		}
		st.quantity = st.quantity.Add(e.Quantity)
		st.amount = st.amount.Add(e.Amount)
	}

	quantities := make([]QuantityStat, 0, len(order))
	amounts := make([]AmountStat, 0, len(order))
	for _, id := range order {
		product := products[catalogByID[id]]
		st := totals[id]
		quantities = append(quantities, QuantityStat{
			ProductID: id,
			Name:      product.Name,
			Unit:      product.Unit,
			Quantity:  st.quantity,
		})
		amounts = append(amounts, AmountStat{
			ProductID: id,
			Name:      product.Name,
			Amount:    st.amount,
		})
	}

	// Descending by value, name breaks ties for a stable chart order
	sort.SliceStable(quantities, func(i, j int) bool {
		if !quantities[i].Quantity.Equal(quantities[j].Quantity) {
			return quantities[i].Quantity.GreaterThan(quantities[j].Quantity)
		}
		return quantities[i].Name < quantities[j].Name
	})
	sort.SliceStable(amounts, func(i, j int) bool {
		if !amounts[i].Amount.Equal(amounts[j].Amount) {
			return amounts[i].Amount.GreaterThan(amounts[j].Amount)
		}
		return amounts[i].Name < amounts[j].Name
	})

	return &OverviewResponse{
		Period:     period,
		Quantities: quantities,
		Amounts:    amounts,
	}, nil
}
