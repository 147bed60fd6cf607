package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/minishop/internal/events"
	"github.com/Skotchmaster/minishop/internal/logging"
	"github.com/Skotchmaster/minishop/internal/models"
	"github.com/Skotchmaster/minishop/internal/repo"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

// AddToCart accumulates quantity onto an existing (user, product) row or
// creates one.
func (s *CartService) AddToCart(ctx context.Context, userID, productID uint, quantity int) error {
	l := logging.FromContext(ctx).With("svc", "cart.add", "user_id", userID, "product_id", productID)

	if userID == 0 || productID == 0 || quantity < 1 {
		return fmt.Errorf("user id, product id and quantity are required: %w", ErrValidation)
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.Repo.AddToCart(ctx, &item); err != nil {
		if errors.Is(err, repo.ErrUnknownReference) {
			l.Warn("add_to_cart_error", "reason", "unknown user or product")
			return fmt.Errorf("%v: %w", err, ErrValidation)
		}
		return err
	}

	publish(ctx, s.Events, events.TopicCart, userID, map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": productID,
		"quantity":  quantity,
	})
	return nil
}

func (s *CartService) ListCart(ctx context.Context, userID uint) ([]models.CartLine, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user id is required: %w", ErrValidation)
	}
	return s.Repo.ListCart(ctx, userID)
}

// UpdateQuantity reports whether a row owned by userID was changed. A nil
// quantity means the field was absent from the request.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, userID uint, quantity *int) (bool, error) {
	if cartID == 0 || userID == 0 {
		return false, fmt.Errorf("cart id and user id are required: %w", ErrValidation)
	}
	if quantity == nil || *quantity < 1 {
		return false, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	n, err := s.Repo.UpdateQuantity(ctx, cartID, userID, *quantity)
	if err != nil {
		return false, err
	}
	if n == 0 {
		logging.FromContext(ctx).Info("update_quantity_noop", "svc", "cart.update", "cart_id", cartID, "user_id", userID)
		return false, nil
	}

	publish(ctx, s.Events, events.TopicCart, userID, map[string]any{
		"type":     "cart_item_updated",
		"userID":   userID,
		"cartID":   cartID,
		"quantity": *quantity,
	})
	return true, nil
}

// RemoveFromCart is idempotent: removing a missing or foreign row succeeds
// and reports false.
func (s *CartService) RemoveFromCart(ctx context.Context, cartID, userID uint) (bool, error) {
	if cartID == 0 || userID == 0 {
		return false, fmt.Errorf("cart id and user id are required: %w", ErrValidation)
	}

	n, err := s.Repo.RemoveFromCart(ctx, cartID, userID)
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	publish(ctx, s.Events, events.TopicCart, userID, map[string]any{
		"type":   "cart_item_removed",
		"userID": userID,
		"cartID": cartID,
	})
	return true, nil
}
