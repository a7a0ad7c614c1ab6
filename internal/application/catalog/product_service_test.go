package catalog

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantry/backend/internal/domain/catalog"
	"github.com/pantry/backend/internal/domain/shared"
)

type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProductRepo) FindByName(_ context.Context, name string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			clone := *p
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindAll(_ context.Context, filter catalog.Filter) ([]catalog.Product, int64, error) {
	var all []catalog.Product
	for _, p := range r.products {
		if filter.Search == "" || strings.Contains(p.Name, filter.Search) {
			all = append(all, *p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, int64(len(all)), nil
}

func (r *fakeProductRepo) Save(_ context.Context, product *catalog.Product) error {
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product", func(t *testing.T) {
		svc := NewProductService(newFakeProductRepo())

		resp, err := svc.Create(ctx, CreateProductRequest{
			Name: "rice", Unit: "kg", ReferencePrice: decimal.NewFromInt(5),
		})

		require.NoError(t, err)
		assert.Equal(t, "rice", resp.Name)
		assert.NotEqual(t, uuid.Nil, resp.ID)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		svc := NewProductService(newFakeProductRepo())

		_, err := svc.Create(ctx, CreateProductRequest{Name: "rice", Unit: "kg"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateProductRequest{Name: "rice", Unit: "bag"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		svc := NewProductService(newFakeProductRepo())

		_, err := svc.Create(ctx, CreateProductRequest{Name: "   ", Unit: "kg"})
		assert.Error(t, err)
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(newFakeProductRepo())

	created, err := svc.Create(ctx, CreateProductRequest{Name: "rice", Unit: "kg"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateProductRequest{Name: "salt", Unit: "kg"})
	require.NoError(t, err)

	t.Run("renames product", func(t *testing.T) {
		resp, err := svc.Update(ctx, created.ID, UpdateProductRequest{
			Name: "brown rice", Unit: "kg", ReferencePrice: decimal.NewFromInt(7),
		})

		require.NoError(t, err)
		assert.Equal(t, "brown rice", resp.Name)
	})

	t.Run("rejects rename onto an existing name", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID, UpdateProductRequest{Name: "salt", Unit: "kg"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.New(), UpdateProductRequest{Name: "x", Unit: "kg"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(newFakeProductRepo())

	created, err := svc.Create(ctx, CreateProductRequest{Name: "rice", Unit: "kg"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), shared.ErrNotFound)
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(newFakeProductRepo())

	for _, name := range []string{"salt", "rice", "oil"} {
		_, err := svc.Create(ctx, CreateProductRequest{Name: name, Unit: "kg"})
		require.NoError(t, err)
	}

	responses, total, err := svc.List(ctx, ListFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, responses, 3)
	assert.Equal(t, "oil", responses[0].Name)
}
