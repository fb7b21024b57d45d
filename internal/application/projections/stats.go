package projections

import (
	"context"

	"fittrack/internal/application/apperr"
	"fittrack/internal/application/authz"
	"fittrack/internal/domain/workout"
)

// TopWorkoutTypesLimit caps the per-type tally on the user dashboard.
const TopWorkoutTypesLimit = 3

// UserStatsWorkoutStore defines the workout store interface needed by QueryUserStats.
type UserStatsWorkoutStore interface {
	CountByUser(ctx context.Context, userID string) (int, error)
	TopTypes(ctx context.Context, userID string, limit int) ([]workout.TypeCount, error)
}

// UserStatsAssignmentStore defines the assignment store interface needed by QueryUserStats.
type UserStatsAssignmentStore interface {
	CountActiveByUser(ctx context.Context, userID string) (int, error)
}

// UserStatsDeps holds dependencies for QueryUserStats.
type UserStatsDeps struct {
	WorkoutStore    UserStatsWorkoutStore
	AssignmentStore UserStatsAssignmentStore
}

// UserStats summarises a user's activity.
type UserStats struct {
	TotalWorkouts   int
	ActivePrograms  int
	TopWorkoutTypes []workout.TypeCount
}

// QueryUserStats returns the caller's workout and enrollment totals.
// PRE: Caller is authenticated with role user
// POST: TopWorkoutTypes holds at most three entries, most frequent first
func QueryUserStats(ctx context.Context, deps UserStatsDeps) (UserStats, error) {
	caller, err := authz.Begin(ctx, authz.For(authz.ActionStatsUser))
	if err != nil {
		return UserStats{}, err
	}
	return userStats(ctx, caller.ID, deps)
}

func userStats(ctx context.Context, userID string, deps UserStatsDeps) (UserStats, error) {
	total, err := deps.WorkoutStore.CountByUser(ctx, userID)
	if err != nil {
		return UserStats{}, apperr.Storage(err)
	}
	active, err := deps.AssignmentStore.CountActiveByUser(ctx, userID)
	if err != nil {
		return UserStats{}, apperr.Storage(err)
	}
	top, err := deps.WorkoutStore.TopTypes(ctx, userID, TopWorkoutTypesLimit)
	if err != nil {
		return UserStats{}, apperr.Storage(err)
	}
	if top == nil {
		top = []workout.TypeCount{}
	}
	if len(top) > TopWorkoutTypesLimit {
		top = top[:TopWorkoutTypesLimit]
	}
	return UserStats{TotalWorkouts: total, ActivePrograms: active, TopWorkoutTypes: top}, nil
}

// TrainerStatsProgramStore defines the program store interface needed by QueryTrainerStats.
type TrainerStatsProgramStore interface {
	CountByTrainer(ctx context.Context, trainerID string) (int, error)
	CountByFreeFlag(ctx context.Context, trainerID string) (int, int, error)
}

// TrainerStatsAssignmentStore defines the assignment store interface needed by QueryTrainerStats.
type TrainerStatsAssignmentStore interface {
	CountByTrainer(ctx context.Context, trainerID string) (int, error)
}

// TrainerStatsDeps holds dependencies for QueryTrainerStats.
type TrainerStatsDeps struct {
	ProgramStore    TrainerStatsProgramStore
	AssignmentStore TrainerStatsAssignmentStore
}

// TrainerStats summarises a trainer's catalogue.
// EnrolledUsers counts enrollments, so one user in two programs counts twice.
type TrainerStats struct {
	TotalPrograms int
	EnrolledUsers int
	FreePrograms  int
	PaidPrograms  int
}

// QueryTrainerStats returns the caller's program and enrollment totals.
// PRE: Caller is authenticated with role trainer
func QueryTrainerStats(ctx context.Context, deps TrainerStatsDeps) (TrainerStats, error) {
	caller, err := authz.Begin(ctx, authz.For(authz.ActionStatsTrainer))
	if err != nil {
		return TrainerStats{}, err
	}
	return trainerStats(ctx, caller.ID, deps)
}

func trainerStats(ctx context.Context, trainerID string, deps TrainerStatsDeps) (TrainerStats, error) {
	total, err := deps.ProgramStore.CountByTrainer(ctx, trainerID)
	if err != nil {
		return TrainerStats{}, apperr.Storage(err)
	}
	enrolled, err := deps.AssignmentStore.CountByTrainer(ctx, trainerID)
	if err != nil {
		return TrainerStats{}, apperr.Storage(err)
	}
	free, paid, err := deps.ProgramStore.CountByFreeFlag(ctx, trainerID)
	if err != nil {
		return TrainerStats{}, apperr.Storage(err)
	}
	return TrainerStats{TotalPrograms: total, EnrolledUsers: enrolled, FreePrograms: free, PaidPrograms: paid}, nil
}

// DashboardDeps holds dependencies for QueryDashboard.
type DashboardDeps struct {
	User    UserStatsDeps
	Trainer TrainerStatsDeps
}

// Dashboard is the role-specific landing summary. Exactly one of User and Trainer is set.
type Dashboard struct {
	Role    string
	Name    string
	User    *UserStats
	Trainer *TrainerStats
}

// QueryDashboard returns user or trainer stats depending on the caller's role.
// PRE: Caller is authenticated (any role)
func QueryDashboard(ctx context.Context, deps DashboardDeps) (Dashboard, error) {
	caller, err := authz.Begin(ctx, authz.For(authz.ActionDashboard))
	if err != nil {
		return Dashboard{}, err
	}
	d := Dashboard{Role: caller.Role, Name: caller.Name}
	switch caller.Role {
	case authz.RoleTrainer:
		s, err := trainerStats(ctx, caller.ID, deps.Trainer)
		if err != nil {
			return Dashboard{}, err
		}
		d.Trainer = &s
	default:
		s, err := userStats(ctx, caller.ID, deps.User)
		if err != nil {
			return Dashboard{}, err
		}
		d.User = &s
	}
	return d, nil
}
