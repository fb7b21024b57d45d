package projections

import (
	"context"
	"errors"
	"sort"

	"fittrack/internal/application/authz"
	"fittrack/internal/domain/program"
	"fittrack/internal/domain/trainercv"
	"fittrack/internal/domain/workout"
)

var (
	alice     = authz.Identity{ID: "user-alice", Email: "alice@example.com", Role: authz.RoleUser, Name: "alice"}
	bob       = authz.Identity{ID: "user-bob", Email: "bob@example.com", Role: authz.RoleUser, Name: "bob"}
	coach     = authz.Identity{ID: "trainer-coach", Email: "coach@example.com", Role: authz.RoleTrainer, Name: "coach"}
	errBroken = errors.New("database is locked")
)

func as(id authz.Identity) context.Context {
	return authz.WithIdentity(context.Background(), id)
}

type mockWorkoutStore struct {
	workouts []workout.Workout
	err      error
}

func (m *mockWorkoutStore) ListByUser(_ context.Context, userID string) ([]workout.Workout, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []workout.Workout
	for _, w := range m.workouts {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *mockWorkoutStore) CountByUser(ctx context.Context, userID string) (int, error) {
	list, err := m.ListByUser(ctx, userID)
	return len(list), err
}

func (m *mockWorkoutStore) TopTypes(ctx context.Context, userID string, limit int) ([]workout.TypeCount, error) {
	list, err := m.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, w := range list {
		counts[w.Type]++
	}
	var out []workout.TypeCount
	for typ, n := range counts {
		out = append(out, workout.TypeCount{Type: typ, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type mockProgramStore struct {
	summaries map[string][]program.Summary
	catalog   []program.CatalogEntry
	free      int
	paid      int
}

func (m *mockProgramStore) ListByTrainer(_ context.Context, trainerID string) ([]program.Summary, error) {
	return m.summaries[trainerID], nil
}

func (m *mockProgramStore) ListAll(_ context.Context) ([]program.CatalogEntry, error) {
	return m.catalog, nil
}

func (m *mockProgramStore) CountByTrainer(_ context.Context, trainerID string) (int, error) {
	return m.free + m.paid, nil
}

func (m *mockProgramStore) CountByFreeFlag(_ context.Context, trainerID string) (int, int, error) {
	return m.free, m.paid, nil
}

type mockAssignmentStore struct {
	activeByUser      map[string]int
	enrolledByTrainer map[string]int
}

func (m *mockAssignmentStore) CountActiveByUser(_ context.Context, userID string) (int, error) {
	return m.activeByUser[userID], nil
}

func (m *mockAssignmentStore) CountByTrainer(_ context.Context, trainerID string) (int, error) {
	return m.enrolledByTrainer[trainerID], nil
}

type mockCVStore struct {
	listings []trainercv.Listing
}

func (m *mockCVStore) GetByTrainer(_ context.Context, trainerID string) (trainercv.CV, error) {
	for _, l := range m.listings {
		if l.TrainerID == trainerID {
			return l.CV, nil
		}
	}
	return trainercv.CV{}, trainercv.ErrNotFound
}

func (m *mockCVStore) GetListing(_ context.Context, trainerID string) (trainercv.Listing, error) {
	for _, l := range m.listings {
		if l.TrainerID == trainerID {
			return l, nil
		}
	}
	return trainercv.Listing{}, trainercv.ErrNotFound
}

func (m *mockCVStore) ListAll(_ context.Context) ([]trainercv.Listing, error) {
	return m.listings, nil
}
