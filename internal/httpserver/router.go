package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/minishop/internal/db"
	"github.com/Skotchmaster/minishop/internal/logging"
	"github.com/Skotchmaster/minishop/internal/middleware/metrics"
)

const readyTimeout = 2 * time.Second

type Deps struct {
	AuthHandler     *AuthHTTP
	CatalogHandler  *CatalogHTTP
	CartHandler     *CartHTTP
	CheckoutHandler *CheckoutHTTP

	DB              *gorm.DB
	Metrics         *metrics.ServerMetrics
	UploadDir       string
	UploadURLPrefix string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/health/ready", d.ready)
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}
	if d.UploadDir != "" {
		e.Static(d.UploadURLPrefix, d.UploadDir)
	}

	e.POST("/register", d.AuthHandler.Register)
	e.PUT("/login", d.AuthHandler.Login)

	e.GET("/product", d.CatalogHandler.GetProducts)
	e.GET("/product/search", d.CatalogHandler.SearchProducts)
	e.POST("/product", d.CatalogHandler.CreateProduct)

	e.GET("/cart", d.CartHandler.GetCart)
	e.POST("/cart", d.CartHandler.AddToCart)
	e.PATCH("/cart/:id", d.CartHandler.UpdateQuantity)
	e.DELETE("/cart/:id", d.CartHandler.RemoveFromCart)

	e.POST("/checkout", d.CheckoutHandler.Checkout)
}

func (d *Deps) ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readyTimeout)
	defer cancel()

	if err := db.Ping(ctx, d.DB); err != nil {
		logging.FromContext(ctx).Error("readiness_failed", "status", http.StatusServiceUnavailable, "error", err)
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusNoContent)
}
