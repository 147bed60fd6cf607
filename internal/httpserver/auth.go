package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/minishop/internal/logging"
	"github.com/Skotchmaster/minishop/internal/service"
	"github.com/Skotchmaster/minishop/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return badRequest(c, "invalid body")
	}

	if err := h.Svc.Register(ctx, req.Username, req.Password); err != nil {
		return fail(c, l, "register_error", err)
	}

	l.Info("register_success", "status", http.StatusOK, "username", req.Username)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "User registered successfully"})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return badRequest(c, "invalid body")
	}

	userID, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return fail(c, l, "login_error", err)
	}

	l.Info("login_success", "status", http.StatusOK, "user_id", userID)
	return c.JSON(http.StatusOK, transport.LoginResponse{Message: "Login successful", UserID: userID})
}
