package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
	"github.com/dzmitrysafronau/shop-project/internal/logging"
	"github.com/dzmitrysafronau/shop-project/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PageCache caches rendered listing pages; the Redis adapter implements it.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte) error
}

type ProductHandler struct {
	catalog      *usecase.Catalog
	cache        PageCache
	mediaBaseURL string
}

func NewProductHandler(catalog *usecase.Catalog, cache PageCache, mediaBaseURL string) *ProductHandler {
	return &ProductHandler{catalog: catalog, cache: cache, mediaBaseURL: mediaBaseURL}
}

type productListResp struct {
	Count   int64         `json:"count"`
	Results []productResp `json:"results"`
}

// List handles GET /api/products/?q=&search=&ordering=&price=&page=&page_size=
func (h *ProductHandler) List(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		query = c.Query("search")
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	pageOut, err := h.catalog.List(ctx, query, c.Query("price"), c.Query("ordering"), page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}

	results := make([]productResp, 0, len(pageOut.Results))
	for _, p := range pageOut.Results {
		results = append(results, toProductResp(p, h.mediaBaseURL))
	}
	c.JSON(http.StatusOK, productListResp{Count: pageOut.Count, Results: results})
}

// ListCached serves the same listing through a short-TTL page cache. The
// cache is best-effort: on any cache failure we fall through to the live
// listing.
func (h *ProductHandler) ListCached(c *gin.Context) {
	key := "products:page:" + c.Request.URL.RequestURI()

	if body, ok, err := h.cache.Get(c.Request.Context(), key); err == nil && ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	} else if err != nil {
		logging.From(c).Warn("product page cache read failed", "err", err)
	}

	query := c.Query("q")
	if query == "" {
		query = c.Query("search")
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	pageOut, err := h.catalog.List(c.Request.Context(), query, c.Query("price"), c.Query("ordering"), page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	results := make([]productResp, 0, len(pageOut.Results))
	for _, p := range pageOut.Results {
		results = append(results, toProductResp(p, h.mediaBaseURL))
	}
	body, err := json.Marshal(productListResp{Count: pageOut.Count, Results: results})
	if err != nil {
		writeError(c, domain.WrapInternal(err))
		return
	}
	if err := h.cache.Set(c.Request.Context(), key, body); err != nil {
		logging.From(c).Warn("product page cache write failed", "err", err)
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, domain.ErrProductNotFound)
		return
	}
	p, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResp(*p, h.mediaBaseURL))
}

type productReq struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       *priceValue `json:"price"`
	Image       string      `json:"image"`
}

func (r *productReq) toDomain(id int64) (*domain.Product, error) {
	fields := map[string][]string{}
	var price decimal.Decimal
	if r.Price == nil {
		fields["price"] = []string{"This field is required."}
	} else {
		var err error
		price, err = decimal.NewFromString(string(*r.Price))
		if err != nil {
			fields["price"] = []string{"A valid number is required."}
		}
	}
	if len(fields) > 0 {
		return nil, domain.NewFieldError(fields)
	}
	return &domain.Product{
		ID:          id,
		Name:        r.Name,
		Price:       price,
		Description: r.Description,
		Image:       r.Image,
	}, nil
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorKind(c, domain.KindValidation, "Malformed request body")
		return
	}
	p, err := req.toDomain(0)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.catalog.Create(c.Request.Context(), p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResp(*p, h.mediaBaseURL))
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, domain.ErrProductNotFound)
		return
	}
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorKind(c, domain.KindValidation, "Malformed request body")
		return
	}
	p, err := req.toDomain(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.catalog.Update(c.Request.Context(), p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResp(*p, h.mediaBaseURL))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, domain.ErrProductNotFound)
		return
	}
	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
