package workout

import (
	"context"

	domain "fittrack/internal/domain/workout"
)

// Store persists Workout state.
type Store interface {
	Create(ctx context.Context, w domain.Workout) error
	GetByID(ctx context.Context, id string) (domain.Workout, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Workout, error)
	Update(ctx context.Context, w domain.Workout) error
	Delete(ctx context.Context, id string) error
	CountByUser(ctx context.Context, userID string) (int, error)
	TopTypes(ctx context.Context, userID string, limit int) ([]domain.TypeCount, error)
}
