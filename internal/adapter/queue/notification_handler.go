package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dzmitrysafronau/shop-project/internal/usecase"
)

// NotificationHandler is the order.created consumer: it records the
// notification. Delivery is fire-and-forget end to end; a lost message is
// logged upstream, never retried into the checkout path.
type NotificationHandler struct {
	l *slog.Logger
}

func NewNotificationHandler(l *slog.Logger) *NotificationHandler {
	return &NotificationHandler{l: l}
}

// HandleOrderCreated is intended for queue.JSONHandler[usecase.OrderCreatedMsg].
func (h *NotificationHandler) HandleOrderCreated(_ context.Context, msg usecase.OrderCreatedMsg) error {
	h.l.Info(fmt.Sprintf("[ORDER] #%d by %s, total=%s", msg.OrderID, msg.Username, msg.Total))
	return nil
}
