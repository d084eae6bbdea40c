package usecase

import (
	"context"
	"errors"
	"time"

	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
	"github.com/dzmitrysafronau/shop-project/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "orders_created_total",
	Help: "Total number of successfully committed checkouts",
})

const notifyTimeout = 5 * time.Second

// Checkout converts a user's whole cart into one immutable order.
type Checkout struct {
	store    CheckoutStore
	notifier OrderNotifier
	now      func() time.Time
}

func NewCheckout(store CheckoutStore, notifier OrderNotifier) *Checkout {
	return &Checkout{store: store, notifier: notifier, now: time.Now}
}

// Execute runs the checkout transaction:
//
//	lock cart rows -> create order -> snapshot lines -> set total -> clear cart
//
// committed as one unit. A concurrent checkout for the same user blocks on
// the row lock, then observes an empty cart and fails with InvalidState.
// The notification is dispatched only after commit and never affects the
// result.
func (uc *Checkout) Execute(ctx context.Context, user domain.User) (*domain.Order, error) {
	var order domain.Order

	err := uc.store.WithinTx(ctx, func(tx CheckoutTx) error {
		lines, err := tx.LockCartLines(ctx, user.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}

		createdAt := uc.now().UTC().Truncate(time.Second)
		orderID, err := tx.InsertOrder(ctx, user.ID, createdAt)
		if err != nil {
			return err
		}

		total := decimal.Zero
		lineIDs := make([]int64, 0, len(lines))
		orderLines := make([]domain.OrderLine, 0, len(lines))
		for _, cl := range lines {
			lineIDs = append(lineIDs, cl.ID)
			ol := domain.OrderLine{
				OrderID:     orderID,
				ProductID:   cl.ProductID,
				ProductName: cl.Product.Name,
				Price:       cl.Product.Price, // snapshot, decoupled from the catalog
				Quantity:    cl.Quantity,
			}
			total = total.Add(ol.Subtotal())
			orderLines = append(orderLines, ol)
		}

		if err := tx.InsertOrderLines(ctx, orderID, orderLines); err != nil {
			return err
		}
		if err := tx.SetOrderTotal(ctx, orderID, total); err != nil {
			return err
		}
		if err := tx.DeleteCartLines(ctx, user.ID, lineIDs); err != nil {
			return err
		}

		order = domain.Order{
			ID:        orderID,
			UserID:    user.ID,
			CreatedAt: createdAt,
			Total:     total,
			Lines:     orderLines,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			return nil, err
		}
		return nil, domain.WrapInternal(err)
	}

	ordersCreated.Inc()
	uc.dispatchNotification(ctx, order, user.Username)

	return &order, nil
}

// dispatchNotification publishes order.created off the request path.
// Failures are logged and dropped; the checkout is already durable.
func (uc *Checkout) dispatchNotification(ctx context.Context, order domain.Order, username string) {
	l := logging.FromCtx(ctx)
	msg := OrderCreatedMsg{
		OrderID:  order.ID,
		Username: username,
		Total:    order.Total.StringFixed(2),
	}
	go func() {
		nctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := uc.notifier.OrderCreated(nctx, msg); err != nil {
			l.Error("order notification failed", "order_id", order.ID, "err", err)
		}
	}()
}
