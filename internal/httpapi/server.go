package httpapi

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	cartapp "storefront/internal/cart/app"
	catalogapp "storefront/internal/catalog/app"
	checkoutapp "storefront/internal/checkout/app"
	orderapp "storefront/internal/order/app"
	"storefront/pkg/metrics"
)

type Server struct {
	engine   *gin.Engine
	products *catalogapp.Service
	carts    *cartapp.Service
	orders   *orderapp.Service
	checkout *checkoutapp.Service
	log      *slog.Logger
}

func NewServer(products *catalogapp.Service, carts *cartapp.Service, orders *orderapp.Service, checkout *checkoutapp.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		engine:   r,
		products: products,
		carts:    carts,
		orders:   orders,
		checkout: checkout,
		log:      log,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) { c.Status(200) })
	s.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := s.engine.Group("/api/v1")
	{
		products := v1.Group("/products")
		products.POST("", s.createProduct)
		products.GET("", s.listProducts)
		products.GET(":id", s.getProduct)
		products.PUT(":id", s.updateProduct)
		products.DELETE(":id", s.deleteProduct)

		authed := v1.Group("", requireIdentity())
		{
			cart := authed.Group("/cart")
			cart.GET("", s.getCart)
			cart.POST("/items", s.addCartItem)
			cart.DELETE("/items/:product_id", s.removeCartItem)

			authed.POST("/checkout", s.checkoutAPI)

			orders := authed.Group("/orders")
			orders.GET("", s.listOrders)
			orders.GET(":id", s.getOrder)
			orders.POST(":id/status", s.setOrderStatus)
		}
	}

	// form-style endpoints returning {"success": ...} envelopes
	form := s.engine.Group("/cart", requireIdentity())
	{
		form.POST("/checkout", s.checkoutForm)
		form.POST("/items/update", s.updateCartItemQuantity)
	}
}
