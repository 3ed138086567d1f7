package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/vogue_nest/internal/kv"
	"github.com/Skotchmaster/vogue_nest/internal/repo"
)

type Deps struct {
	Store     *repo.Store
	JWTSecret []byte

	Auth     *AuthHTTP
	Products *ProductHTTP
	Cart     *CartHTTP
	Orders   *OrderHTTP
	Admin    *AdminHTTP
}

// New builds the echo instance with the shared middleware chain and routes.
func New(logger *slog.Logger, d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.Secure())
	e.Use(RequestLogger(logger))
	e.Use(Serialize())

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	api := e.Group("/api/v1")

	api.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	api.GET("/health/ready", d.ready)

	authMW := NewAuthMiddleware(d.JWTSecret)

	api.POST("/register", d.Auth.Register)
	api.POST("/login", d.Auth.Login)

	api.GET("/products", d.Products.GetProducts)
	api.GET("/products/:id", d.Products.GetProduct)
	api.GET("/products/slug/:slug", d.Products.GetProductBySlug)

	private := api.Group("")
	private.Use(authMW.RequireLogin)

	private.POST("/logout", d.Auth.Logout)
	private.GET("/me", d.Auth.Me)
	private.PATCH("/me", d.Auth.UpdateMe)

	private.GET("/cart", d.Cart.GetCart)
	private.POST("/cart", d.Cart.AddToCart)
	private.DELETE("/cart", d.Cart.ClearCart)
	private.PATCH("/cart/items", d.Cart.UpdateQuantity)
	private.DELETE("/cart/items", d.Cart.RemoveFromCart)
	private.POST("/cart/checkout", d.Cart.Checkout)

	private.POST("/products/:id/buy", d.Orders.BuyNow)
	private.GET("/orders", d.Orders.ListOrders)

	admin := api.Group("/admin")
	admin.Use(authMW.AdminOnly)

	admin.GET("/users", d.Admin.ListUsers)
	admin.POST("/users", d.Admin.CreateUser)
	admin.PATCH("/users/:id", d.Admin.UpdateUser)
	admin.DELETE("/users/:id", d.Admin.DeleteUser)
	admin.GET("/orders", d.Admin.ListOrders)
	admin.GET("/products", d.Admin.ListProducts)
	admin.GET("/dump", d.Admin.Dump)
	admin.POST("/reset", d.Admin.Reset)
}

// ready reports whether the key-value backend answers.
func (d *Deps) ready(c echo.Context) error {
	_, err := d.Store.KV.Get(c.Request().Context(), repo.CollectionUsers)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "store unavailable")
	}
	return c.NoContent(http.StatusOK)
}
