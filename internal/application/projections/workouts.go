package projections

import (
	"context"

	"fittrack/internal/application/apperr"
	"fittrack/internal/application/authz"
	"fittrack/internal/domain/workout"
)

// ListWorkoutsStore defines the store interface needed by QueryListWorkouts.
type ListWorkoutsStore interface {
	ListByUser(ctx context.Context, userID string) ([]workout.Workout, error)
}

// ListWorkoutsDeps holds dependencies for QueryListWorkouts.
type ListWorkoutsDeps struct {
	WorkoutStore ListWorkoutsStore
}

// QueryListWorkouts returns the caller's workouts, newest date first.
// PRE: Caller is authenticated with role user
// POST: Only workouts owned by the caller; never nil
func QueryListWorkouts(ctx context.Context, deps ListWorkoutsDeps) ([]workout.Workout, error) {
	caller, err := authz.Begin(ctx, authz.For(authz.ActionWorkoutList))
	if err != nil {
		return nil, err
	}
	list, err := deps.WorkoutStore.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if list == nil {
		list = []workout.Workout{}
	}
	return list, nil
}
