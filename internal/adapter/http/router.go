package http

import (
	"github.com/dzmitrysafronau/shop-project/internal/adapter/http/middleware"
	"github.com/dzmitrysafronau/shop-project/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	products *ProductHandler,
	cart *CartHandler,
	orders *OrderHandler,
	auth *AuthHandler,
	health *HealthHandler,
	authz *middleware.Authz,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/health/", health.Check)
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/auth/register/", auth.Register)
		api.POST("/auth/login/", auth.Login)
		api.POST("/auth/refresh/", auth.Refresh)

		api.GET("/products/", products.List)
		api.GET("/products-cached/", products.ListCached)
		api.GET("/products/:id/", products.Get)
		api.POST("/products/", authz.RequireAdmin(), products.Create)
		api.PUT("/products/:id/", authz.RequireAdmin(), products.Update)
		api.DELETE("/products/:id/", authz.RequireAdmin(), products.Delete)

		api.GET("/cart/", authz.Require(), cart.List)
		// No Require here: the handler validates the payload shape before
		// checking credentials.
		api.POST("/cart/add/", cart.Add)
		api.DELETE("/cart/:id/remove/", authz.Require(), cart.Remove)
		api.DELETE("/cart/remove-by-product/:product_id/", authz.Require(), cart.RemoveByProduct)

		api.POST("/orders/create_order/", authz.Require(), orders.CreateOrder)
		api.GET("/orders/my/", authz.Require(), orders.My)
	}

	return r
}
