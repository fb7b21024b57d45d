package assignment

import (
	"context"

	domain "fittrack/internal/domain/assignment"
)

// Store persists Assignment state.
type Store interface {
	Assign(ctx context.Context, a domain.Assignment) error
	Exists(ctx context.Context, userID, programID string) (bool, error)
	CountActiveByUser(ctx context.Context, userID string) (int, error)
	CountByTrainer(ctx context.Context, trainerID string) (int, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Assignment, error)
}
