package usecase

import (
	"context"
	"errors"

	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
)

// Cart implements the per-user cart operations. Accumulation of repeated
// adds is delegated to the repo's atomic upsert so two concurrent adds for
// the same (user, product) pair never lose an update.
type Cart struct {
	carts    CartRepo
	products ProductRepo
}

func NewCart(carts CartRepo, products ProductRepo) *Cart {
	return &Cart{carts: carts, products: products}
}

// Add increments the (user, product) line by qty, creating it on first add.
// The product must exist and qty must be >= 1; both are reported as
// validation failures with field details.
func (uc *Cart) Add(ctx context.Context, userID, productID, qty int64) (*domain.CartLine, error) {
	if qty < 1 {
		return nil, domain.NewFieldError(map[string][]string{
			"quantity": {"Ensure this value is greater than or equal to 1."},
		})
	}
	if _, err := uc.products.Get(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.NewFieldError(map[string][]string{
				"product_id": {"Product with this ID not found."},
			})
		}
		return nil, err
	}
	return uc.carts.Upsert(ctx, userID, productID, qty)
}

// List returns the user's cart lines joined with live product data, in
// insertion order.
func (uc *Cart) List(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	return uc.carts.ListByUser(ctx, userID)
}

func (uc *Cart) Remove(ctx context.Context, userID, lineID int64) error {
	return uc.carts.Delete(ctx, userID, lineID)
}

func (uc *Cart) RemoveByProduct(ctx context.Context, userID, productID int64) error {
	return uc.carts.DeleteByProduct(ctx, userID, productID)
}
