package usecase

import (
	"context"
	"testing"

	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartRepo struct {
	upserted *domain.CartLine
	lines    []domain.CartLine
	err      error

	upsertUser, upsertProduct, upsertQty int64
}

func (r *fakeCartRepo) Upsert(_ context.Context, userID, productID, qty int64) (*domain.CartLine, error) {
	r.upsertUser, r.upsertProduct, r.upsertQty = userID, productID, qty
	return r.upserted, r.err
}

func (r *fakeCartRepo) ListByUser(_ context.Context, _ int64) ([]domain.CartLine, error) {
	return r.lines, r.err
}

func (r *fakeCartRepo) Delete(_ context.Context, _, _ int64) error          { return r.err }
func (r *fakeCartRepo) DeleteByProduct(_ context.Context, _, _ int64) error { return r.err }

type fakeProductRepo struct {
	products map[int64]*domain.Product
}

func (r *fakeProductRepo) Get(_ context.Context, id int64) (*domain.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (r *fakeProductRepo) List(_ context.Context, _ ProductFilter) ([]domain.Product, int64, error) {
	return nil, 0, nil
}
func (r *fakeProductRepo) Create(_ context.Context, _ *domain.Product) error { return nil }
func (r *fakeProductRepo) Update(_ context.Context, _ *domain.Product) error { return nil }
func (r *fakeProductRepo) Delete(_ context.Context, _ int64) error           { return nil }

func TestCartAdd(t *testing.T) {
	product := &domain.Product{ID: 10, Name: "P1", Price: decimal.RequireFromString("10.00")}

	t.Run("delegates to the atomic upsert", func(t *testing.T) {
		carts := &fakeCartRepo{upserted: &domain.CartLine{ID: 1, Quantity: 5, Product: product}}
		products := &fakeProductRepo{products: map[int64]*domain.Product{10: product}}

		line, err := NewCart(carts, products).Add(context.Background(), 7, 10, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), line.Quantity)
		assert.Equal(t, int64(7), carts.upsertUser)
		assert.Equal(t, int64(10), carts.upsertProduct)
		assert.Equal(t, int64(5), carts.upsertQty)
	})

	t.Run("rejects quantity below one", func(t *testing.T) {
		carts := &fakeCartRepo{}
		products := &fakeProductRepo{products: map[int64]*domain.Product{10: product}}

		_, err := NewCart(carts, products).Add(context.Background(), 7, 10, 0)
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		assert.Contains(t, domain.DetailOf(err).(map[string][]string), "quantity")
		assert.Zero(t, carts.upsertQty, "no line must be created")
	})

	t.Run("rejects unknown product as validation failure", func(t *testing.T) {
		carts := &fakeCartRepo{}
		products := &fakeProductRepo{products: map[int64]*domain.Product{}}

		_, err := NewCart(carts, products).Add(context.Background(), 7, 999, 1)
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		assert.Contains(t, domain.DetailOf(err).(map[string][]string), "product_id")
		assert.Zero(t, carts.upsertQty, "no line must be created")
	})
}
