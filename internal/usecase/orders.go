package usecase

import (
	"context"

	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
)

// Orders is the read side of order history.
type Orders struct {
	orders OrderRepo
}

func NewOrders(orders OrderRepo) *Orders {
	return &Orders{orders: orders}
}

// ListMine returns the user's orders newest first, each with its immutable
// line snapshots.
func (uc *Orders) ListMine(ctx context.Context, userID int64) ([]domain.Order, error) {
	return uc.orders.ListByUser(ctx, userID)
}
