package http

import (
	"net/http"
	"strconv"

	"github.com/dzmitrysafronau/shop-project/internal/adapter/http/middleware"
	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
	"github.com/dzmitrysafronau/shop-project/internal/usecase"
	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cart         *usecase.Cart
	authz        *middleware.Authz
	mediaBaseURL string
}

func NewCartHandler(cart *usecase.Cart, authz *middleware.Authz, mediaBaseURL string) *CartHandler {
	return &CartHandler{cart: cart, authz: authz, mediaBaseURL: mediaBaseURL}
}

func (h *CartHandler) List(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	lines, err := h.cart.List(c.Request.Context(), id.UserID)
	if err != nil {
		writeError(c, domain.WrapInternal(err))
		return
	}
	out := make([]cartLineResp, 0, len(lines))
	for _, cl := range lines {
		out = append(out, toCartLineResp(cl, h.mediaBaseURL))
	}
	c.JSON(http.StatusOK, out)
}

type addToCartReq struct {
	ProductID *int64 `json:"product_id"`
	Quantity  *int64 `json:"quantity"`
}

// Add validates the payload shape before checking identity: a malformed
// body is 422 even without credentials, a valid body without credentials
// is 401. This ordering matches the existing API contract.
func (h *CartHandler) Add(c *gin.Context) {
	var req addToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorKind(c, domain.KindValidation, "Malformed request body")
		return
	}
	fields := map[string][]string{}
	if req.ProductID == nil {
		fields["product_id"] = []string{"This field is required."}
	}
	if req.Quantity == nil {
		fields["quantity"] = []string{"This field is required."}
	}
	if len(fields) > 0 {
		writeError(c, domain.NewFieldError(fields))
		return
	}

	ident, ok := h.authz.IdentityFromHeader(c)
	if !ok {
		writeErrorKind(c, domain.KindNotAuthenticated, "Authentication credentials were not provided.")
		return
	}

	line, err := h.cart.Add(c.Request.Context(), ident.UserID, *req.ProductID, *req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCartLineResp(*line, h.mediaBaseURL))
}

func (h *CartHandler) Remove(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)
	lineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, domain.ErrCartLineNotFound)
		return
	}
	if err := h.cart.Remove(c.Request.Context(), ident.UserID, lineID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) RemoveByProduct(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)
	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		writeError(c, domain.ErrCartLineNotFound)
		return
	}
	if err := h.cart.RemoveByProduct(c.Request.Context(), ident.UserID, productID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
