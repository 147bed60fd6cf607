package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/minishop/internal/models"
)

func intPtr(v int) *int { return &v }

func TestCartService_AddToCart_Accumulates(t *testing.T) {
	r := newTestRepo(t)
	pub := &fakePublisher{}
	svc := &CartService{Repo: r, Events: pub}
	ctx := context.Background()

	u := seedUser(t, r, "alice")
	p := seedProduct(t, r, "mug", "9.99")

	require.NoError(t, svc.AddToCart(ctx, u.ID, p.ID, 2))
	require.NoError(t, svc.AddToCart(ctx, u.ID, p.ID, 3))

	lines, err := svc.ListCart(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, p.ID, lines[0].ProductID)
	assert.Equal(t, "mug", lines[0].Name)
	assert.True(t, lines[0].Price.Equal(decimal.RequireFromString("9.99")))

	assert.Equal(t, []string{"cart_item_added", "cart_item_added"}, pub.types())
}

func TestCartService_AddToCart_Validation(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()
	u := seedUser(t, r, "alice")
	p := seedProduct(t, r, "mug", "9.99")

	assert.ErrorIs(t, svc.AddToCart(ctx, 0, p.ID, 1), ErrValidation)
	assert.ErrorIs(t, svc.AddToCart(ctx, u.ID, 0, 1), ErrValidation)
	assert.ErrorIs(t, svc.AddToCart(ctx, u.ID, p.ID, 0), ErrValidation)
	assert.ErrorIs(t, svc.AddToCart(ctx, u.ID, p.ID, -2), ErrValidation)
}

func TestCartService_AddToCart_UnknownProduct(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	u := seedUser(t, r, "alice")

	err := svc.AddToCart(context.Background(), u.ID, 999, 1)
	require.Error(t, err)

	lines, err := svc.ListCart(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartService_ListCart_EmptyIsNotNil(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}

	lines, err := svc.ListCart(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)

	_, err = svc.ListCart(context.Background(), 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	r := newTestRepo(t)
	pub := &fakePublisher{}
	svc := &CartService{Repo: r, Events: pub}
	ctx := context.Background()

	alice := seedUser(t, r, "alice")
	bob := seedUser(t, r, "bob")
	p := seedProduct(t, r, "mug", "9.99")
	require.NoError(t, svc.AddToCart(ctx, alice.ID, p.ID, 1))
	item, err := getCartItem(ctx, r.DB, alice.ID, p.ID)
	require.NoError(t, err)

	changed, err := svc.UpdateQuantity(ctx, item.ID, alice.ID, intPtr(4))
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = svc.UpdateQuantity(ctx, item.ID, bob.ID, intPtr(9))
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = svc.UpdateQuantity(ctx, item.ID, alice.ID, intPtr(0))
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.UpdateQuantity(ctx, item.ID, alice.ID, nil)
	assert.ErrorIs(t, err, ErrValidation)

	stored, err := getCartItem(ctx, r.DB, alice.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Quantity)

	assert.Equal(t, []string{"cart_item_added", "cart_item_updated"}, pub.types())
}

func TestCartService_RemoveFromCart_Idempotent(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	alice := seedUser(t, r, "alice")
	bob := seedUser(t, r, "bob")
	p := seedProduct(t, r, "mug", "9.99")
	require.NoError(t, svc.AddToCart(ctx, alice.ID, p.ID, 1))
	item, err := getCartItem(ctx, r.DB, alice.ID, p.ID)
	require.NoError(t, err)

	removed, err := svc.RemoveFromCart(ctx, item.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = svc.RemoveFromCart(ctx, item.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemoveFromCart(ctx, item.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	var count int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCartService_AddToCart_ConcurrentSamePair(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	ctx := context.Background()

	u := seedUser(t, r, "alice")
	p := seedProduct(t, r, "mug", "9.99")

	const workers = 50
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.AddToCart(ctx, u.ID, p.ID, 1)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var items []models.CartItem
	require.NoError(t, r.DB.Where("user_id = ? AND product_id = ?", u.ID, p.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, workers, items[0].Quantity)
}
