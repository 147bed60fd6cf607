package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/minishop/internal/events"
	"github.com/Skotchmaster/minishop/internal/logging"
	"github.com/Skotchmaster/minishop/internal/repo"
)

type CheckoutService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

// Checkout removes the selected cart rows owned by userID and returns how many
// were removed. Ids that are missing or belong to another user are skipped.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint, cartIDs []uint) (int64, error) {
	l := logging.FromContext(ctx).With("svc", "checkout", "user_id", userID)

	if userID == 0 {
		return 0, fmt.Errorf("user id is required: %w", ErrValidation)
	}
	if len(cartIDs) == 0 {
		return 0, fmt.Errorf("user id and selected cart items are required: %w", ErrValidation)
	}

	seen := make(map[uint]struct{}, len(cartIDs))
	ids := make([]uint, 0, len(cartIDs))
	for _, id := range cartIDs {
		if id == 0 {
			return 0, fmt.Errorf("cart ids must be positive: %w", ErrValidation)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	removed, err := s.Repo.Checkout(ctx, userID, ids)
	if err != nil {
		l.Error("checkout_error", "error", err)
		return 0, err
	}
	if removed < int64(len(ids)) {
		l.Warn("checkout_partial", "requested", len(ids), "removed", removed)
	}

	publish(ctx, s.Events, events.TopicCart, userID, map[string]any{
		"type":    "checkout_completed",
		"userID":  userID,
		"cartIDs": ids,
		"removed": removed,
	})
	return removed, nil
}
