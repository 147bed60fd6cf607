package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/minishop/internal/logging"
	"github.com/Skotchmaster/minishop/internal/service"
	"github.com/Skotchmaster/minishop/internal/transport"
	"github.com/Skotchmaster/minishop/internal/util"
)

type CatalogHTTP struct {
	Svc            *service.CatalogService
	CurrencySymbol string
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	items, err := h.Svc.ListProducts(ctx)
	if err != nil {
		return fail(c, l, "get_products_error", err)
	}

	l.Info("get_products_success", "status", http.StatusOK, "count", len(items))
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)
	if page < 1 {
		page = 1
	}

	total, items, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return fail(c, l, "search_products_error", err)
	}

	l.Info("search_products_success", "status", http.StatusOK, "total", total)
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": transport.SearchMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
			HasPrev:    page > 1,
			HasNext:    int64(offset+limit) < total,
		},
	})
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return badRequest(c, "invalid body")
	}

	fh, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// left empty; the service reports the missing field
	case err != nil:
		l.Warn("product_create_error", "status", http.StatusBadRequest, "reason", "invalid image part", "error", err)
		return badRequest(c, "invalid body")
	default:
		f, err := fh.Open()
		if err != nil {
			return fail(c, l, "product_create_error", err)
		}
		defer f.Close()

		req.Image, err = io.ReadAll(f)
		if err != nil {
			return fail(c, l, "product_create_error", err)
		}
		req.ImageName = fh.Filename
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return fail(c, l, "product_create_error", err)
	}

	l.Info("product_create_success", "status", http.StatusOK, "product_id", prod.ID)
	return c.JSON(http.StatusOK, transport.CreateProductResponse{
		Success: "Product added successfully",
		Price:   transport.FormatPrice(h.CurrencySymbol, prod.Price),
	})
}
