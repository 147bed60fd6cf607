package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/minishop/internal/assets"
	"github.com/Skotchmaster/minishop/internal/events"
	"github.com/Skotchmaster/minishop/internal/logging"
	"github.com/Skotchmaster/minishop/internal/models"
	"github.com/Skotchmaster/minishop/internal/repo"
	"github.com/Skotchmaster/minishop/internal/search"
	"github.com/Skotchmaster/minishop/internal/transport"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Assets assets.Store
	Search search.Index
	Events events.Publisher
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_product")

	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	category := strings.TrimSpace(req.Category)
	if name == "" || description == "" || category == "" || len(req.Image) == 0 {
		return nil, fmt.Errorf("all fields are required: %w", ErrValidation)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		return nil, fmt.Errorf("price is not a number: %w", ErrValidation)
	}
	price = price.Round(2)
	if !price.IsPositive() {
		return nil, fmt.Errorf("price must be greater than zero: %w", ErrValidation)
	}

	imagePath, err := s.Assets.Store(ctx, req.Image, req.ImageName)
	if err != nil {
		if errors.Is(err, assets.ErrUnsupportedType) || errors.Is(err, assets.ErrEmpty) {
			return nil, fmt.Errorf("image: %v: %w", err, ErrValidation)
		}
		return nil, fmt.Errorf("store image: %w", err)
	}

	prod := models.Product{
		Name:        name,
		Price:       price,
		Description: description,
		Category:    category,
		ImagePath:   imagePath,
	}
	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		// cleanup runs even if the request was cancelled
		if derr := s.Assets.Delete(context.WithoutCancel(ctx), imagePath); derr != nil {
			l.Error("orphan_image_cleanup_error", "image", imagePath, "error", derr)
		}
		return nil, err
	}

	if s.Search != nil {
		if err := s.Search.IndexProduct(ctx, &prod); err != nil {
			l.Error("index_product_error", "product_id", prod.ID, "error", err)
		}
	}

	publish(ctx, s.Events, events.TopicProduct, prod.ID, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return &prod, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

// SearchProducts queries the search index when one is configured and falls
// back to the relational store otherwise or when the index fails.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, fmt.Errorf("query is required: %w", ErrValidation)
	}

	if s.Search != nil {
		total, items, err := s.Search.Search(ctx, q, offset, limit)
		if err == nil {
			return total, items, nil
		}
		logging.FromContext(ctx).Warn("search_index_error", "svc", "catalog.search", "error", err)
	}

	return s.Repo.SearchProducts(ctx, q, offset, limit)
}
