package projections

import (
	"context"
	"errors"

	"fittrack/internal/application/apperr"
	"fittrack/internal/application/authz"
	"fittrack/internal/domain/trainercv"
)

// MyTrainerCVStore defines the store interface needed by QueryMyTrainerCV.
type MyTrainerCVStore interface {
	GetByTrainer(ctx context.Context, trainerID string) (trainercv.CV, error)
}

// MyTrainerCVDeps holds dependencies for QueryMyTrainerCV.
type MyTrainerCVDeps struct {
	CVStore MyTrainerCVStore
}

// QueryMyTrainerCV returns the caller's own CV, or nil if none exists yet.
// PRE: Caller is authenticated with role trainer
func QueryMyTrainerCV(ctx context.Context, deps MyTrainerCVDeps) (*trainercv.CV, error) {
	caller, err := authz.Begin(ctx, authz.For(authz.ActionCVGetMine))
	if err != nil {
		return nil, err
	}
	cv, err := deps.CVStore.GetByTrainer(ctx, caller.ID)
	if errors.Is(err, trainercv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &cv, nil
}

// TrainerCVStore defines the store interface needed by the public CV projections.
type TrainerCVStore interface {
	GetListing(ctx context.Context, trainerID string) (trainercv.Listing, error)
	ListAll(ctx context.Context) ([]trainercv.Listing, error)
}

// TrainerCVDeps holds dependencies for QueryTrainerCV and QueryTrainerDirectory.
type TrainerCVDeps struct {
	CVStore TrainerCVStore
}

// TrainerProfile is a CV as presented publicly, with the bio rendered to HTML.
type TrainerProfile struct {
	trainercv.Listing
	BioHTML string
}

// TrainerCVQuery identifies the trainer whose CV is requested.
type TrainerCVQuery struct {
	TrainerID string
}

// QueryTrainerCV returns one trainer's public CV.
// PRE: Caller is authenticated (any role)
// POST: Forbidden when the trainer has no CV
func QueryTrainerCV(ctx context.Context, query TrainerCVQuery, deps TrainerCVDeps) (TrainerProfile, error) {
	if _, err := authz.Begin(ctx, authz.For(authz.ActionCVGet)); err != nil {
		return TrainerProfile{}, err
	}
	l, err := deps.CVStore.GetListing(ctx, query.TrainerID)
	if errors.Is(err, trainercv.ErrNotFound) {
		return TrainerProfile{}, apperr.Forbidden("Trainer CV not found or unauthorized")
	}
	if err != nil {
		return TrainerProfile{}, apperr.Storage(err)
	}
	return TrainerProfile{Listing: l, BioHTML: renderMarkdown(l.Bio)}, nil
}

// QueryTrainerDirectory returns every trainer CV, most recently updated first.
// PRE: Caller is authenticated (any role)
// POST: never nil
func QueryTrainerDirectory(ctx context.Context, deps TrainerCVDeps) ([]TrainerProfile, error) {
	if _, err := authz.Begin(ctx, authz.For(authz.ActionCVListAll)); err != nil {
		return nil, err
	}
	listings, err := deps.CVStore.ListAll(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	profiles := make([]TrainerProfile, 0, len(listings))
	for _, l := range listings {
		profiles = append(profiles, TrainerProfile{Listing: l, BioHTML: renderMarkdown(l.Bio)})
	}
	return profiles, nil
}
