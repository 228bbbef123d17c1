package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/handlers"
	auth "github.com/Skotchmaster/marketplace/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	CartHandler    *handlers.CartHandler
	ProductHandler *handlers.ProductHandler
	SearchHandler  *handlers.SearchHandler
	Guard          *auth.SessionGuard
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	api.POST("/signin", d.AuthHandler.Register)
	api.POST("/login", d.AuthHandler.Login)
	api.POST("/logout", d.AuthHandler.Logout)

	api.POST("/add-cart", d.CartHandler.AddToCart, d.Guard.RequireLogin)
	api.GET("/cart", d.CartHandler.GetCart, d.Guard.RequireLogin)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.ProductHandler.SearchProducts)
	products.GET("/category/:name", d.ProductHandler.GetProductsByCategory)
	products.GET("/:id", d.ProductHandler.GetProduct)

	if d.SearchHandler != nil {
		api.GET("/search", d.SearchHandler.Search)
	}
}
