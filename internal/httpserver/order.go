package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vogue_nest/internal/logging"
	"github.com/Skotchmaster/vogue_nest/internal/repo"
	"github.com/Skotchmaster/vogue_nest/internal/service"
)

type OrderHTTP struct {
	Svc   *service.OrderService
	Store *repo.Store
}

func (h *OrderHTTP) BuyNow(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.buy_now")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req struct {
		Color    string `json:"color"`
		Size     string `json:"size"`
		Quantity int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("buy_now_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be greater than zero")
	}

	product, err := lookupProduct(c, h.Store, productID)
	if err != nil {
		return err
	}

	order, err := h.Svc.BuyNow(ctx, userID, product, req.Color, req.Size, req.Quantity)
	if err != nil {
		l.Error("buy_now_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.ListByUser(ctx, userID)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, orders)
}
