package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/minishop/internal/events"
	"github.com/Skotchmaster/minishop/internal/hash"
	"github.com/Skotchmaster/minishop/internal/logging"
	"github.com/Skotchmaster/minishop/internal/models"
	"github.com/Skotchmaster/minishop/internal/repo"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *AuthService) Register(ctx context.Context, username, password string) error {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" || password == "" {
		return fmt.Errorf("username and password are required: %w", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return err
	}

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_error", "reason", "user already exist", "username", username)
			return fmt.Errorf("username already exists: %w", ErrConflict)
		}
		return err
	}

	publish(ctx, s.Events, events.TopicUser, user.ID, map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})
	return nil
}

// Login returns the user id. Unknown user and wrong password both yield
// ErrInvalidCredentials; only the log line tells them apart.
func (s *AuthService) Login(ctx context.Context, username, password string) (uint, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		return 0, fmt.Errorf("username and password are required: %w", ErrValidation)
	}

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "no such user")
			return 0, ErrInvalidCredentials
		}
		return 0, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "password mismatch")
		return 0, ErrInvalidCredentials
	}

	publish(ctx, s.Events, events.TopicUser, user.ID, map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})
	return user.ID, nil
}
