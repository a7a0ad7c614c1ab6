package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/pantry/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// RecordEntryRequest is the input for recording a stock movement
type RecordEntryRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
	Kind      string          `json:"kind" binding:"required,oneof=PURCHASE CONSUME"`
	Quantity  decimal.Decimal `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}

// ListEntriesFilter is the input for listing ledger entries
type ListEntriesFilter struct {
	ProductID *uuid.UUID `form:"product_id"`
	Start     time.Time  `form:"start" time_format:"2006-01-02"`
	End       time.Time  `form:"end" time_format:"2006-01-02"`
}

// SnapshotInput is one cumulative balance observation
type SnapshotInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}

// ImportSnapshotsRequest is the input for backfilling the ledger from
// running-balance snapshots
type ImportSnapshotsRequest struct {
	Snapshots []SnapshotInput `json:"snapshots" binding:"required,min=1,dive"`
}

// ToSnapshots converts the request to domain snapshots
func (r ImportSnapshotsRequest) ToSnapshots() []ledger.Snapshot {
	snapshots := make([]ledger.Snapshot, len(r.Snapshots))
	for i, s := range r.Snapshots {
		snapshots[i] = ledger.Snapshot{
			ProductID: s.ProductID,
			Date:      s.Date,
			Quantity:  s.Quantity,
			Amount:    s.Amount,
		}
	}
	return snapshots
}

// ImportSnapshotsResponse reports how many delta entries the
// normalization produced
type ImportSnapshotsResponse struct {
	Imported int `json:"imported"`
}

// EntryResponse is the API representation of a ledger entry
type EntryResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Date      time.Time       `json:"date"`
	Kind      string          `json:"kind"`
	Quantity  decimal.Decimal `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToEntryResponse converts a domain entry to its API representation
func ToEntryResponse(e *ledger.Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		ProductID: e.ProductID,
		Date:      e.Date,
		Kind:      e.Kind.String(),
		Quantity:  e.Quantity,
		Amount:    e.Amount,
		CreatedAt: e.CreatedAt,
	}
}
