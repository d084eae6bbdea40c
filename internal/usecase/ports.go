package usecase

import (
	"context"
	"time"

	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter narrows and orders a catalog listing. Ordering accepts
// id|name|price, with a leading '-' for descending.
type ProductFilter struct {
	Query    string // substring match on name/description
	Price    string // exact price filter, empty = off
	Ordering string
	Limit    int
	Offset   int
}

type ProductRepo interface {
	List(ctx context.Context, f ProductFilter) ([]domain.Product, int64, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	// Delete fails with domain.ErrProductInUse while any order line
	// references the product.
	Delete(ctx context.Context, id int64) error
}

type CartRepo interface {
	// Upsert atomically increments the (user, product) line by qty,
	// creating it if absent, and returns the post-increment line joined
	// with live product data.
	Upsert(ctx context.Context, userID, productID, qty int64) (*domain.CartLine, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error)
	Delete(ctx context.Context, userID, lineID int64) error
	DeleteByProduct(ctx context.Context, userID, productID int64) error
}

type OrderRepo interface {
	// ListByUser returns the user's orders newest first, lines included.
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// CheckoutTx is the set of statements available inside one checkout
// transaction. Implementations bind them to a single database tx.
type CheckoutTx interface {
	// LockCartLines reads the user's cart rows with their current product
	// price under an exclusive row lock, held until commit/rollback.
	LockCartLines(ctx context.Context, userID int64) ([]domain.CartLine, error)
	InsertOrder(ctx context.Context, userID int64, createdAt time.Time) (int64, error)
	InsertOrderLines(ctx context.Context, orderID int64, lines []domain.OrderLine) error
	SetOrderTotal(ctx context.Context, orderID int64, total decimal.Decimal) error
	DeleteCartLines(ctx context.Context, userID int64, lineIDs []int64) error
}

// CheckoutStore runs fn within a transaction: commit on nil, full rollback
// on error. No partial effects may survive a failed fn.
type CheckoutStore interface {
	WithinTx(ctx context.Context, fn func(tx CheckoutTx) error) error
}

// OrderNotifier is the post-commit notification sink. Callers treat it as
// best-effort; errors must never affect an already committed checkout.
type OrderNotifier interface {
	OrderCreated(ctx context.Context, msg OrderCreatedMsg) error
}
