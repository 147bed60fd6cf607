package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/minishop/internal/logging"
	"github.com/Skotchmaster/minishop/internal/service"
	"github.com/Skotchmaster/minishop/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func parseID(s string) (uint, bool) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return badRequest(c, "invalid body")
	}

	if err := h.Svc.AddToCart(ctx, req.UserID, req.ProductID, req.Quantity); err != nil {
		return fail(c, l, "add_to_cart_error", err)
	}

	l.Info("add_to_cart_success", "status", http.StatusOK, "user_id", req.UserID, "product_id", req.ProductID)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Product added to cart successfully"})
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, ok := parseID(c.QueryParam("userId"))
	if !ok {
		l.Warn("get_cart_error", "status", http.StatusBadRequest, "reason", "missing user id")
		return badRequest(c, "User ID is required")
	}

	lines, err := h.Svc.ListCart(ctx, userID)
	if err != nil {
		return fail(c, l, "get_cart_error", err)
	}

	l.Info("get_cart_success", "status", http.StatusOK, "user_id", userID, "lines", len(lines))
	return c.JSON(http.StatusOK, lines)
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_quantity")

	cartID, ok := parseID(c.Param("id"))
	if !ok {
		l.Warn("update_quantity_error", "status", http.StatusBadRequest, "reason", "invalid cart id", "id", c.Param("id"))
		return badRequest(c, "Cart ID, User ID, and Quantity are required")
	}

	var req transport.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_quantity_error", "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return badRequest(c, "invalid body")
	}

	if _, err := h.Svc.UpdateQuantity(ctx, cartID, req.UserID, req.Quantity); err != nil {
		return fail(c, l, "update_quantity_error", err)
	}

	l.Info("update_quantity_success", "status", http.StatusOK, "cart_id", cartID)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Cart item quantity updated successfully"})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	cartID, ok := parseID(c.Param("id"))
	if !ok {
		l.Warn("remove_from_cart_error", "status", http.StatusBadRequest, "reason", "invalid cart id", "id", c.Param("id"))
		return badRequest(c, "Cart ID and User ID are required")
	}

	var req transport.RemoveFromCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_from_cart_error", "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return badRequest(c, "invalid body")
	}

	if _, err := h.Svc.RemoveFromCart(ctx, cartID, req.UserID); err != nil {
		return fail(c, l, "remove_from_cart_error", err)
	}

	l.Info("remove_from_cart_success", "status", http.StatusOK, "cart_id", cartID)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Item removed from cart successfully"})
}
