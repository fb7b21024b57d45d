package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"fittrack/internal/application/apperr"
	"fittrack/internal/domain/user"
)

// UserStoreForLogin defines the store interface needed by Login.
type UserStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries the identity a session is created for.
type LoginResult struct {
	UserID string
	Email  string
	Role   string
	Name   string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	UserStore UserStoreForLogin
}

// ErrInvalidCredentials is the single failure for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ExecuteLogin verifies credentials and returns the identity for session creation.
// PRE: none
// POST: Returns the user's identity, or Unauthenticated without revealing which field was wrong
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return LoginResult{}, apperr.Unauthenticated(ErrInvalidCredentials.Error())
	}

	u, err := deps.UserStore.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "not_found")
		return LoginResult{}, apperr.Unauthenticated(ErrInvalidCredentials.Error())
	}
	if err != nil {
		return LoginResult{}, apperr.Storage(err)
	}

	if err := u.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "wrong_password")
		return LoginResult{}, apperr.Unauthenticated(ErrInvalidCredentials.Error())
	}

	slog.Info("auth_event", "event", "login_success", "user_id", u.ID, "role", u.Role)
	return LoginResult{UserID: u.ID, Email: u.Email, Role: u.Role, Name: u.Name}, nil
}
