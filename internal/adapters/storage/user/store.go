package user

import (
	"context"

	domain "fittrack/internal/domain/user"
)

// Store persists User state.
type Store interface {
	Create(ctx context.Context, u domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}
