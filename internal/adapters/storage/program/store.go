package program

import (
	"context"

	domain "fittrack/internal/domain/program"
)

// Store persists Program state.
type Store interface {
	Create(ctx context.Context, p domain.Program) error
	GetByID(ctx context.Context, id string) (domain.Program, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]domain.Summary, error)
	ListAll(ctx context.Context) ([]domain.CatalogEntry, error)
	Update(ctx context.Context, p domain.Program) error
	Delete(ctx context.Context, id string) error
	CountByTrainer(ctx context.Context, trainerID string) (int, error)
	CountByFreeFlag(ctx context.Context, trainerID string) (free int, paid int, err error)
}
