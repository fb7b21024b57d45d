package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"fittrack/internal/application/apperr"
	"fittrack/internal/application/validation"
	"fittrack/internal/domain/user"
)

// UserStoreForRegister defines the store interface needed by Register.
type UserStoreForRegister interface {
	Create(ctx context.Context, u user.User) error
}

// RegisterInput carries input for the register orchestrator.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role" validate:"required,oneof=user trainer"`
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	UserStore  UserStoreForRegister
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteRegister creates a user account. It is public and does not start a session.
// PRE: none; the caller need not be authenticated
// POST: User persisted with a bcrypt hash and Name defaulted from the email
// INVARIANT: Email is unique; a duplicate yields Conflict and writes nothing
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (user.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Role = strings.TrimSpace(input.Role)
	if err := validation.Struct(input); err != nil {
		return user.User{}, err
	}

	u := user.User{
		ID:        deps.GenerateID(),
		Email:     input.Email,
		Role:      input.Role,
		Name:      user.NameFromEmail(input.Email),
		CreatedAt: deps.Now(),
	}
	if err := u.Validate(); err != nil {
		return user.User{}, registerField(err)
	}
	if err := u.SetPassword(input.Password); err != nil {
		if errors.Is(err, user.ErrEmptyPassword) || errors.Is(err, user.ErrPasswordTooLong) {
			return user.User{}, invalid("password", err)
		}
		return user.User{}, apperr.Storage(err)
	}

	if err := deps.UserStore.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			slog.Info("auth_event", "event", "register_rejected", "email", u.Email, "reason", "duplicate_email")
			return user.User{}, apperr.Conflict(err)
		}
		return user.User{}, apperr.Storage(err)
	}

	slog.Info("auth_event", "event", "user_registered", "user_id", u.ID, "email", u.Email, "role", u.Role)
	return u, nil
}

func registerField(err error) error {
	if errors.Is(err, user.ErrInvalidRole) {
		return invalid("role", err)
	}
	return invalid("email", err)
}
