package transport

import (
	"net/http"

	"verbena-be/internal/cart"
	"verbena-be/internal/catalog"
	"verbena-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handler bundles the collaborators the storefront endpoints need.
type Handler struct {
	Catalog catalog.Repository
	Carts   cart.Service
}

// NewRouter wires the storefront API.
func NewRouter(catalogRepo catalog.Repository, cartSvc cart.Service) *gin.Engine {
	h := &Handler{Catalog: catalogRepo, Carts: cartSvc}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.CORSMiddleware(),
		middleware.RateLimit(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/products", h.ListProducts)
	r.GET("/products/:slug", h.GetProduct)
	r.GET("/products/:slug/display", h.GetDisplay)

	cartRoutes := r.Group("/cart")
	cartRoutes.Use(EnsureCartID())
	{
		cartRoutes.GET("", h.GetCart)
		cartRoutes.POST("/items", h.AddItem)
		cartRoutes.PATCH("/items", h.SetQuantity)
		cartRoutes.DELETE("/items", h.RemoveItem)
		cartRoutes.DELETE("", h.ClearCart)
	}

	return r
}
