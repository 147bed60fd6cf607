package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/minishop/internal/logging"
	"github.com/Skotchmaster/minishop/internal/service"
	"github.com/Skotchmaster/minishop/internal/transport"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout")

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return badRequest(c, "invalid body")
	}

	removed, err := h.Svc.Checkout(ctx, req.UserID, req.CartIDs)
	if err != nil {
		return fail(c, l, "checkout_error", err)
	}

	l.Info("checkout_success", "status", http.StatusOK, "user_id", req.UserID, "removed", removed)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Checkout successful"})
}
