package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dzmitrysafronau/shop-project/internal/adapter/http/middleware"
	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
	"github.com/dzmitrysafronau/shop-project/internal/usecase"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	checkout *usecase.Checkout
	orders   *usecase.Orders
}

func NewOrderHandler(checkout *usecase.Checkout, orders *usecase.Orders) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

// CreateOrder converts the caller's whole cart into one order.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := h.checkout.Execute(ctx, domain.User{ID: ident.UserID, Username: ident.Username})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResp(*order))
}

// My lists the caller's orders, newest first.
func (h *OrderHandler) My(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	orders, err := h.orders.ListMine(c.Request.Context(), ident.UserID)
	if err != nil {
		writeError(c, domain.WrapInternal(err))
		return
	}
	out := make([]orderResp, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResp(o))
	}
	c.JSON(http.StatusOK, out)
}
