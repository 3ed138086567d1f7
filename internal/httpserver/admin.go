package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vogue_nest/internal/logging"
	"github.com/Skotchmaster/vogue_nest/internal/models"
	"github.com/Skotchmaster/vogue_nest/internal/repo"
	"github.com/Skotchmaster/vogue_nest/internal/service"
)

type AdminHTTP struct {
	Store  *repo.Store
	Orders *service.OrderService
	Auth   *service.AuthService
}

func (h *AdminHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_users")

	users, err := h.Store.Users().All(ctx)
	if err != nil {
		l.Error("list_users_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	q := strings.ToLower(c.QueryParam("q"))
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		if q == "" || strings.Contains(strings.ToLower(u.UserName), q) {
			out = append(out, toUserResponse(u))
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_user")

	var req models.User
	if err := c.Bind(&req); err != nil {
		l.Warn("create_user_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.UserName) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userName, email and password are required")
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	}

	created, err := h.Store.Users().Create(ctx, req)
	if err != nil {
		l.Error("create_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	l.Info("user_created", "user_id", created.ID)
	return c.JSON(http.StatusCreated, toUserResponse(created))
}

func (h *AdminHTTP) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_user")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var patch models.UserUpdate
	if err := c.Bind(&patch); err != nil {
		l.Warn("update_user_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if patch.UserName == nil || strings.TrimSpace(*patch.UserName) == "" ||
		patch.Email == nil || strings.TrimSpace(*patch.Email) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userName and email are required")
	}
	if patch.Role != nil && *patch.Role != models.RoleUser && *patch.Role != models.RoleAdmin {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	}

	updated, ok, err := h.Store.Users().Update(ctx, id, patch)
	if err != nil {
		l.Error("update_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	if h.Auth != nil {
		if err := h.Auth.SyncUser(ctx, updated); err != nil {
			l.Error("update_user_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}
	l.Info("user_updated", "user_id", updated.ID)
	return c.JSON(http.StatusOK, toUserResponse(updated))
}

func (h *AdminHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_user")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if _, err := h.Store.Users().Remove(ctx, id); err != nil {
		l.Error("delete_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if h.Auth != nil {
		if err := h.Auth.UserRemoved(ctx, id); err != nil {
			l.Error("delete_user_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}
	l.Info("user_deleted", "user_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_orders")

	summaries, err := h.Orders.Summaries(ctx, service.SummaryFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("q"),
		Sort:   c.QueryParam("sort"),
	})
	if errors.Is(err, service.ErrValidation) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, summaries)
}

func (h *AdminHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_products")

	products, err := h.Store.Products().All(ctx)
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	out, err := service.QueryProducts(products, service.ProductQuery{
		Search: c.QueryParam("q"),
		Sort:   c.QueryParam("sort"),
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHTTP) Dump(c echo.Context) error {
	ctx := c.Request().Context()

	snap, err := h.Store.Dump(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("dump_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *AdminHTTP) Reset(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.reset")

	if err := h.Store.ResetAll(ctx); err != nil {
		l.Error("reset_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	l.Info("store_reset")
	return c.NoContent(http.StatusNoContent)
}
