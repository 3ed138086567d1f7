package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vogue_nest/internal/logging"
	"github.com/Skotchmaster/vogue_nest/internal/models"
	"github.com/Skotchmaster/vogue_nest/internal/repo"
	"github.com/Skotchmaster/vogue_nest/internal/service"
)

type CartHTTP struct {
	Svc    *service.CartService
	Orders *service.OrderService
	Store  *repo.Store
}

type lineRequest struct {
	ProductID int    `json:"productId"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type cartResponse struct {
	Items []models.CartLine `json:"items"`
	Total int64             `json:"total"`
}

func (h *CartHTTP) cart(userID int) cartResponse {
	items := h.Svc.GetUserCart(userID)
	return cartResponse{Items: items, Total: models.LinesTotal(items)}
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.cart(userID))
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.cart")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req lineRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity <= 0 || req.ProductID <= 0 {
		l.Warn("add_to_cart_error", "status", 400)
		return echo.NewHTTPError(http.StatusBadRequest, "quantity>0 and productId required")
	}

	product, err := lookupProduct(c, h.Store, req.ProductID)
	if err != nil {
		return err
	}

	if err := h.Svc.AddToCart(ctx, userID, product, req.Color, req.Size, req.Quantity); err != nil {
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusCreated, h.cart(userID))
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.cart.quantity")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req lineRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_quantity_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be greater than zero")
	}

	if err := h.Svc.UpdateQuantity(ctx, userID, req.ProductID, req.Color, req.Size, req.Quantity); err != nil {
		l.Error("update_quantity_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, h.cart(userID))
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete.one.from.cart")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req lineRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("delete_one_from_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.RemoveFromCart(ctx, userID, req.ProductID, req.Color, req.Size); err != nil {
		l.Error("delete_one_from_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, h.cart(userID))
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete.all.from.cart")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		l.Error("delete_all_from_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	order, err := h.Orders.Checkout(ctx, userID)
	if errors.Is(err, service.ErrEmptyCart) {
		return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
	}
	if err != nil {
		l.Error("checkout_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusCreated, order)
}
