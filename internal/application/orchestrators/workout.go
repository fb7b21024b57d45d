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
	"fittrack/internal/domain/workout"
)

// WorkoutStoreForOrchestrator defines the store interface needed by workout orchestrators.
type WorkoutStoreForOrchestrator interface {
	Create(ctx context.Context, w workout.Workout) error
	GetByID(ctx context.Context, id string) (workout.Workout, error)
	Update(ctx context.Context, w workout.Workout) error
	Delete(ctx context.Context, id string) error
}

// WorkoutInput carries the editable fields of a workout.
type WorkoutInput struct {
	Date     string `json:"date" validate:"required"`
	Type     string `json:"type" validate:"required,max=100"`
	Duration int    `json:"duration" validate:"required,gt=0"`
	Notes    string `json:"notes" validate:"max=2000"`
}

func (in WorkoutInput) trimmed() WorkoutInput {
	in.Date = strings.TrimSpace(in.Date)
	in.Type = strings.TrimSpace(in.Type)
	in.Notes = strings.TrimSpace(in.Notes)
	return in
}

// apply validates in and copies it onto w.
func (in WorkoutInput) apply(w *workout.Workout) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	date, err := workout.ParseDate(in.Date)
	if err != nil {
		return invalid("date", err)
	}
	w.Date = date
	w.Type = in.Type
	w.Duration = in.Duration
	w.Notes = in.Notes
	if err := w.Validate(); err != nil {
		return invalid(workoutField(err), err)
	}
	return nil
}

// WorkoutDeps holds dependencies for the workout orchestrators.
type WorkoutDeps struct {
	WorkoutStore WorkoutStoreForOrchestrator
	GenerateID   func() string
	Now          func() time.Time
}

// --- Create Workout ---

// ExecuteCreateWorkout logs a workout for the calling user.
// PRE: Caller is authenticated with role user
// POST: Workout persisted, owned by the caller
func ExecuteCreateWorkout(ctx context.Context, input WorkoutInput, deps WorkoutDeps) (workout.Workout, error) {
	caller, err := authz.Begin(ctx, authz.For(authz.ActionWorkoutCreate))
	if err != nil {
		return workout.Workout{}, err
	}

	now := deps.Now()
	w := workout.Workout{ID: deps.GenerateID(), UserID: caller.ID, CreatedAt: now, UpdatedAt: now}
	if err := input.trimmed().apply(&w); err != nil {
		return workout.Workout{}, err
	}
	if err := deps.WorkoutStore.Create(ctx, w); err != nil {
		return workout.Workout{}, apperr.Storage(err)
	}

	slog.Info("workout_event", "event", "workout_created", "workout_id", w.ID, "user_id", caller.ID, "type", w.Type)
	return w, nil
}

// --- Update Workout ---

// UpdateWorkoutInput identifies the workout to change and its new fields.
type UpdateWorkoutInput struct {
	ID string `json:"-"`
	WorkoutInput
}

// ExecuteUpdateWorkout replaces the fields of one of the caller's workouts.
// PRE: Caller is authenticated with role user
// POST: Workout updated; a missing or foreign workout yields Forbidden before any input check
func ExecuteUpdateWorkout(ctx context.Context, input UpdateWorkoutInput, deps WorkoutDeps) (workout.Workout, error) {
	caller, err := authz.Begin(ctx, authz.For(authz.ActionWorkoutUpdate))
	if err != nil {
		return workout.Workout{}, err
	}
	w, err := authz.RequireOwner(ctx, caller.ID, input.ID,
		ownedFetch(deps.WorkoutStore.GetByID, workout.ErrNotFound),
		func(w workout.Workout) string { return w.UserID }, "Workout")
	if err != nil {
		return workout.Workout{}, err
	}

	if err := input.WorkoutInput.trimmed().apply(&w); err != nil {
		return workout.Workout{}, err
	}
	w.UpdatedAt = deps.Now()
	if err := deps.WorkoutStore.Update(ctx, w); err != nil {
		if errors.Is(err, workout.ErrNotFound) {
			return workout.Workout{}, apperr.Forbidden("Workout not found or unauthorized")
		}
		return workout.Workout{}, apperr.Storage(err)
	}

	slog.Info("workout_event", "event", "workout_updated", "workout_id", w.ID, "user_id", caller.ID)
	return w, nil
}

// --- Delete Workout ---

// DeleteWorkoutInput identifies the workout to remove.
type DeleteWorkoutInput struct {
	ID string
}

// ExecuteDeleteWorkout removes one of the caller's workouts.
// PRE: Caller is authenticated with role user
// POST: Workout removed; a missing or foreign workout yields Forbidden
func ExecuteDeleteWorkout(ctx context.Context, input DeleteWorkoutInput, deps WorkoutDeps) error {
	caller, err := authz.Begin(ctx, authz.For(authz.ActionWorkoutDelete))
	if err != nil {
		return err
	}
	if _, err := authz.RequireOwner(ctx, caller.ID, input.ID,
		ownedFetch(deps.WorkoutStore.GetByID, workout.ErrNotFound),
		func(w workout.Workout) string { return w.UserID }, "Workout"); err != nil {
		return err
	}
	if err := deps.WorkoutStore.Delete(ctx, input.ID); err != nil {
		if errors.Is(err, workout.ErrNotFound) {
			return apperr.Forbidden("Workout not found or unauthorized")
		}
		return apperr.Storage(err)
	}

	slog.Info("workout_event", "event", "workout_deleted", "workout_id", input.ID, "user_id", caller.ID)
	return nil
}

func workoutField(err error) string {
	switch {
	case errors.Is(err, workout.ErrEmptyDate):
		return "date"
	case errors.Is(err, workout.ErrEmptyType), errors.Is(err, workout.ErrTypeTooLong):
		return "type"
	case errors.Is(err, workout.ErrNonPositive):
		return "duration"
	case errors.Is(err, workout.ErrNotesTooLong):
		return "notes"
	default:
		return ""
	}
}
