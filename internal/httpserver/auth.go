package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vogue_nest/internal/logging"
	"github.com/Skotchmaster/vogue_nest/internal/models"
	"github.com/Skotchmaster/vogue_nest/internal/service"
	"github.com/Skotchmaster/vogue_nest/internal/tokens"
)

const msgUserExists = "Email và tên người dùng đã tồn tại"

type AuthHTTP struct {
	Svc       *service.AuthService
	JWTSecret []byte
	TokenTTL  time.Duration
}

type userResponse struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Role     string `json:"role"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Email:    u.Email,
		UserName: u.UserName,
		Role:     u.Role,
		Address:  u.Address,
		Phone:    u.Phone,
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		UserName string `json:"userName"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.UserName) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email, password and userName are required")
	}

	ok, err := h.Svc.Register(ctx, req.Email, req.Password, req.UserName)
	if err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": msgUserExists})
	}

	user, _ := h.Svc.CurrentUser()
	if err := h.issueToken(c, user); err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "user": toUserResponse(user)})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if !res.Success {
		return c.JSON(http.StatusUnauthorized, res)
	}

	user, _ := h.Svc.CurrentUser()
	if err := h.issueToken(c, user); err != nil {
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, res)
}

// Logout drops the caller's cookie and sends the browser back to the landing
// page. The session is ended only when the caller is the one holding it.
func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	c.SetCookie(DeleteCookie(tokens.CookieName, "/"))
	if _, err := h.sessionUser(c); err != nil {
		l.Info("logout_without_session")
		return c.Redirect(http.StatusSeeOther, "/")
	}
	if err := h.Svc.Logout(ctx); err != nil {
		l.Error("logout_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHTTP) Me(c echo.Context) error {
	user, err := h.sessionUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *AuthHTTP) UpdateMe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_update_me")

	if _, err := h.sessionUser(c); err != nil {
		return err
	}

	var patch models.ProfileUpdate
	if err := c.Bind(&patch); err != nil {
		l.Warn("update_me_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email must not be empty")
	}
	if patch.UserName != nil && strings.TrimSpace(*patch.UserName) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userName must not be empty")
	}

	user, err := h.Svc.UpdateProfile(ctx, patch)
	if err != nil {
		l.Error("update_me_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// sessionUser returns the signed-in user when it is the token holder. A token
// left over from an earlier session is rejected.
func (h *AuthHTTP) sessionUser(c echo.Context) (models.User, error) {
	id, err := currentUserID(c)
	if err != nil {
		return models.User{}, err
	}
	user, ok := h.Svc.CurrentUser()
	if !ok || user.ID != id {
		return models.User{}, echo.NewHTTPError(http.StatusUnauthorized, "session expired")
	}
	return user, nil
}

func (h *AuthHTTP) issueToken(c echo.Context, u models.User) error {
	ttl := h.TokenTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	exp := time.Now().Add(ttl)
	token, err := tokens.SignAccess(u.ID, u.Role, h.JWTSecret, exp)
	if err != nil {
		return err
	}
	c.SetCookie(CreateCookie(tokens.CookieName, token, "/", exp))
	return nil
}
