package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantry/backend/internal/domain/catalog"
	"github.com/pantry/backend/internal/domain/ledger"
	"github.com/pantry/backend/internal/domain/shared"
)

type fakeLedgerRepo struct {
	entries map[uuid.UUID]*ledger.Entry
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{entries: make(map[uuid.UUID]*ledger.Entry)}
}

func (r *fakeLedgerRepo) ListEntries(_ context.Context, filter ledger.EntryFilter) ([]ledger.Entry, error) {
	var out []ledger.Entry
	for _, e := range r.entries {
		if filter.ProductID != nil && e.ProductID != *filter.ProductID {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeLedgerRepo) ListCatalog(_ context.Context) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeLedgerRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *fakeLedgerRepo) Save(_ context.Context, entry *ledger.Entry) error {
	clone := *entry
	r.entries[entry.ID] = &clone
	return nil
}

func (r *fakeLedgerRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.entries[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

// fakeProductRepo holds a fixed catalog; only FindByID matters here
type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindByName(_ context.Context, _ string) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ catalog.Filter) ([]catalog.Product, int64, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) Save(_ context.Context, _ *catalog.Product) error { return nil }

func (r *fakeProductRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func newTestService(t *testing.T) (*LedgerService, *fakeLedgerRepo, *catalog.Product) {
	t.Helper()
	product, err := catalog.NewProduct("rice", "kg", decimal.NewFromInt(5))
	require.NoError(t, err)

	ledgerRepo := newFakeLedgerRepo()
	productRepo := &fakeProductRepo{products: map[uuid.UUID]*catalog.Product{product.ID: product}}
	return NewLedgerService(ledgerRepo, productRepo), ledgerRepo, product
}

func TestLedgerService_Record(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)

	t.Run("records movement", func(t *testing.T) {
		svc, repo, product := newTestService(t)

		resp, err := svc.Record(ctx, RecordEntryRequest{
			ProductID: product.ID,
			Date:      date,
			Kind:      "PURCHASE",
			Quantity:  decimal.NewFromInt(10),
			Amount:    decimal.NewFromInt(50),
		})

		require.NoError(t, err)
		assert.Equal(t, product.ID, resp.ProductID)
		assert.Equal(t, "PURCHASE", resp.Kind)
		assert.Len(t, repo.entries, 1)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		_, err := svc.Record(ctx, RecordEntryRequest{
			ProductID: uuid.New(),
			Date:      date,
			Kind:      "PURCHASE",
			Quantity:  decimal.NewFromInt(10),
			Amount:    decimal.NewFromInt(50),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNKNOWN_PRODUCT", domainErr.Code)
		assert.Empty(t, repo.entries)
	})

	t.Run("rejects invalid kind", func(t *testing.T) {
		svc, _, product := newTestService(t)

		_, err := svc.Record(ctx, RecordEntryRequest{
			ProductID: product.ID,
			Date:      date,
			Kind:      "ADJUST",
			Quantity:  decimal.NewFromInt(1),
			Amount:    decimal.NewFromInt(1),
		})
		assert.Error(t, err)
	})
}

func TestLedgerService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _, product := newTestService(t)

	resp, err := svc.Record(ctx, RecordEntryRequest{
		ProductID: product.ID,
		Date:      time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
		Kind:      "CONSUME",
		Quantity:  decimal.NewFromInt(3),
		Amount:    decimal.NewFromInt(15),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, resp.ID))
	assert.ErrorIs(t, svc.Delete(ctx, resp.ID), shared.ErrNotFound)
}

func TestLedgerService_ImportSnapshots(t *testing.T) {
	ctx := context.Background()
	svc, repo, product := newTestService(t)

	snapshots := []ledger.Snapshot{
		{ProductID: product.ID, Date: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			Quantity: decimal.NewFromInt(10), Amount: decimal.NewFromInt(50)},
		{ProductID: product.ID, Date: time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
			Quantity: decimal.NewFromInt(4), Amount: decimal.NewFromInt(20)},
		{ProductID: product.ID, Date: time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC),
			Quantity: decimal.NewFromInt(4), Amount: decimal.NewFromInt(20)},
	}

	count, err := svc.ImportSnapshots(ctx, snapshots)

	require.NoError(t, err)
	assert.Equal(t, 2, count, "unchanged snapshot produces no entry")
	assert.Len(t, repo.entries, 2)
}

func TestLedgerService_ImportSnapshots_Empty(t *testing.T) {
	svc, _, _ := newTestService(t)

	count, err := svc.ImportSnapshots(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, count)
}
