package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/minishop/internal/events"
	"github.com/Skotchmaster/minishop/internal/hash"
)

func TestAuthService_Register(t *testing.T) {
	r := newTestRepo(t)
	pub := &fakePublisher{}
	svc := &AuthService{Repo: r, Events: pub}
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "pw1"))

	err := svc.Register(ctx, "alice", "pw2")
	assert.ErrorIs(t, err, ErrConflict)

	stored, err := r.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", stored.PasswordHash)
	assert.True(t, hash.CheckPassword(stored.PasswordHash, "pw1"))
	assert.False(t, hash.CheckPassword(stored.PasswordHash, "pw2"))

	require.Len(t, pub.sent, 1)
	assert.Equal(t, events.TopicUser, pub.sent[0].Topic)
	assert.Equal(t, "user_registered", pub.sent[0].Event["type"])
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := &AuthService{Repo: newTestRepo(t)}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "pw"},
		{"empty password", "bob", ""},
		{"both empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	r := newTestRepo(t)
	pub := &fakePublisher{}
	svc := &AuthService{Repo: r, Events: pub}
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "bob", "secret"))
	bob, err := r.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)

	id, err := svc.Login(ctx, "bob", "secret")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, id)

	_, err = svc.Login(ctx, "bob", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "bob", "")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, []string{"user_registered", "user_logged_in"}, pub.types())
}

func TestAuthService_PublishFailureDoesNotFailRequest(t *testing.T) {
	svc := &AuthService{Repo: newTestRepo(t), Events: &fakePublisher{err: errBoom}}

	require.NoError(t, svc.Register(context.Background(), "carol", "pw"))
	_, err := svc.Login(context.Background(), "carol", "pw")
	require.NoError(t, err)
}
