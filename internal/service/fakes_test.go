package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/minishop/internal/assets"
	"github.com/Skotchmaster/minishop/internal/dbtest"
	"github.com/Skotchmaster/minishop/internal/models"
	"github.com/Skotchmaster/minishop/internal/repo"
)

type sentEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []sentEvent
	err  error
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic, key string, event map[string]any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, sentEvent{Topic: topic, Key: key, Event: event})
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.sent))
	for _, e := range p.sent {
		out = append(out, e.Event["type"].(string))
	}
	return out
}

type fakeAssets struct {
	path    string
	err     error
	got     []byte
	deleted []string
}

func (a *fakeAssets) Store(_ context.Context, data []byte, _ string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	if len(data) == 0 {
		return "", assets.ErrEmpty
	}
	a.got = data
	return a.path, nil
}

func (a *fakeAssets) Delete(_ context.Context, publicPath string) error {
	a.deleted = append(a.deleted, publicPath)
	return nil
}

type fakeIndex struct {
	indexed   []uint
	indexErr  error
	searchErr error
	total     int64
	items     []models.Product
}

func (f *fakeIndex) IndexProduct(_ context.Context, p *models.Product) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.indexed = append(f.indexed, p.ID)
	return nil
}

func (f *fakeIndex) Search(context.Context, string, int, int) (int64, []models.Product, error) {
	if f.searchErr != nil {
		return 0, nil, f.searchErr
	}
	return f.total, f.items, nil
}

var errBoom = errors.New("boom")

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return &repo.GormRepo{DB: dbtest.Open(t)}
}

func seedUser(t *testing.T, r *repo.GormRepo, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, r.DB.Create(u).Error)
	return u
}

func seedProduct(t *testing.T, r *repo.GormRepo, name, price string) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Description: name + " description",
		Category:    "misc",
		ImagePath:   "/uploads/" + name + ".png",
	}
	require.NoError(t, r.DB.Create(p).Error)
	return p
}

func getCartItem(ctx context.Context, db *gorm.DB, userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
