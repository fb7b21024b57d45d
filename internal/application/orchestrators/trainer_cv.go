package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"fittrack/internal/application/apperr"
	"fittrack/internal/application/authz"
	"fittrack/internal/application/validation"
	"fittrack/internal/domain/trainercv"
)

// TrainerCVStoreForUpsert defines the store interface needed by UpsertTrainerCV.
type TrainerCVStoreForUpsert interface {
	Upsert(ctx context.Context, cv trainercv.CV) (trainercv.CV, error)
}

// UpsertTrainerCVInput carries input for the CV orchestrator.
type UpsertTrainerCVInput struct {
	Bio        string `json:"bio" validate:"max=5000"`
	Experience string `json:"experience" validate:"required,max=5000"`
	Skills     string `json:"skills" validate:"required,max=2000"`
}

// UpsertTrainerCVDeps holds dependencies for UpsertTrainerCV.
type UpsertTrainerCVDeps struct {
	CVStore    TrainerCVStoreForUpsert
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteUpsertTrainerCV creates the caller's CV or replaces its content.
// PRE: Caller is authenticated with role trainer
// POST: Exactly one CV for the caller, holding the latest values; empty bio stored as NULL
func ExecuteUpsertTrainerCV(ctx context.Context, input UpsertTrainerCVInput, deps UpsertTrainerCVDeps) (trainercv.CV, error) {
	caller, err := authz.Begin(ctx, authz.For(authz.ActionCVUpsert))
	if err != nil {
		return trainercv.CV{}, err
	}
	input.Bio = strings.TrimSpace(input.Bio)
	input.Experience = strings.TrimSpace(input.Experience)
	input.Skills = strings.TrimSpace(input.Skills)
	if err := validation.Struct(input); err != nil {
		return trainercv.CV{}, err
	}

	now := deps.Now()
	cv := trainercv.CV{
		ID:         deps.GenerateID(),
		TrainerID:  caller.ID,
		Bio:        input.Bio,
		Experience: input.Experience,
		Skills:     input.Skills,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := cv.Validate(); err != nil {
		return trainercv.CV{}, invalid(cvField(err), err)
	}

	stored, err := deps.CVStore.Upsert(ctx, cv)
	if err != nil {
		return trainercv.CV{}, apperr.Storage(err)
	}

	slog.Info("cv_event", "event", "cv_saved", "cv_id", stored.ID, "trainer_id", caller.ID)
	return stored, nil
}

func cvField(err error) string {
	switch {
	case errors.Is(err, trainercv.ErrEmptyExperience), errors.Is(err, trainercv.ErrExperienceTooLong):
		return "experience"
	case errors.Is(err, trainercv.ErrEmptySkills), errors.Is(err, trainercv.ErrSkillsTooLong):
		return "skills"
	case errors.Is(err, trainercv.ErrBioTooLong):
		return "bio"
	default:
		return ""
	}
}
