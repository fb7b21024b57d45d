package trainercv

import (
	"context"

	domain "fittrack/internal/domain/trainercv"
)

// Store persists TrainerCV state.
type Store interface {
	Upsert(ctx context.Context, cv domain.CV) (domain.CV, error)
	GetByTrainer(ctx context.Context, trainerID string) (domain.CV, error)
	GetListing(ctx context.Context, trainerID string) (domain.Listing, error)
	ListAll(ctx context.Context) ([]domain.Listing, error)
}
