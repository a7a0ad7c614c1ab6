package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pantry/backend/internal/domain/catalog"
)

// EntryFilter defines the query window for ledger entries.
// Start and End are inclusive; ProductID narrows to one product.
type EntryFilter struct {
	ProductID *uuid.UUID
	Start     time.Time
	End       time.Time
}

// Reader is the read-only view of the ledger consumed by the
// reconciliation engine. The engine never writes through it.
type Reader interface {
	// ListEntries returns all entries whose date falls in the filter
	// window, sorted ascending by date
	ListEntries(ctx context.Context, filter EntryFilter) ([]Entry, error)

	// ListCatalog returns the full product catalog
	ListCatalog(ctx context.Context) ([]catalog.Product, error)
}

// Repository extends Reader with the write operations used by the
// movement-recording surface
type Repository interface {
	Reader

	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	Save(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
}
