package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fittrack/internal/application/authz"
	"fittrack/internal/domain/assignment"
	"fittrack/internal/domain/program"
	"fittrack/internal/domain/trainercv"
	"fittrack/internal/domain/user"
	"fittrack/internal/domain/workout"
)

var fixedTime = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

// sequentialIDs returns a generator yielding id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

var (
	aliceID   = authz.Identity{ID: "user-alice", Email: "alice@example.com", Role: authz.RoleUser, Name: "alice"}
	bobID     = authz.Identity{ID: "user-bob", Email: "bob@example.com", Role: authz.RoleUser, Name: "bob"}
	coachID   = authz.Identity{ID: "trainer-coach", Email: "coach@example.com", Role: authz.RoleTrainer, Name: "coach"}
	rivalID   = authz.Identity{ID: "trainer-rival", Email: "rival@example.com", Role: authz.RoleTrainer, Name: "rival"}
	errBroken = errors.New("database is locked")
)

func as(id authz.Identity) context.Context {
	return authz.WithIdentity(context.Background(), id)
}

// --- users ---

type mockUserStore struct {
	byEmail map[string]user.User
	err     error
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{byEmail: make(map[string]user.User)}
}

func (m *mockUserStore) Create(_ context.Context, u user.User) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byEmail[u.Email]; ok {
		return user.ErrDuplicateEmail
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

// --- workouts ---

type mockWorkoutStore struct {
	workouts map[string]workout.Workout
	calls    int
	err      error
}

func newMockWorkoutStore() *mockWorkoutStore {
	return &mockWorkoutStore{workouts: make(map[string]workout.Workout)}
}

func (m *mockWorkoutStore) Create(_ context.Context, w workout.Workout) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.workouts[w.ID] = w
	return nil
}

func (m *mockWorkoutStore) GetByID(_ context.Context, id string) (workout.Workout, error) {
	m.calls++
	if m.err != nil {
		return workout.Workout{}, m.err
	}
	w, ok := m.workouts[id]
	if !ok {
		return workout.Workout{}, workout.ErrNotFound
	}
	return w, nil
}

func (m *mockWorkoutStore) Update(_ context.Context, w workout.Workout) error {
	m.calls++
	if _, ok := m.workouts[w.ID]; !ok {
		return workout.ErrNotFound
	}
	m.workouts[w.ID] = w
	return nil
}

func (m *mockWorkoutStore) Delete(_ context.Context, id string) error {
	m.calls++
	if _, ok := m.workouts[id]; !ok {
		return workout.ErrNotFound
	}
	delete(m.workouts, id)
	return nil
}

// --- programs ---

type mockProgramStore struct {
	programs map[string]program.Program
	calls    int
}

func newMockProgramStore() *mockProgramStore {
	return &mockProgramStore{programs: make(map[string]program.Program)}
}

func (m *mockProgramStore) Create(_ context.Context, p program.Program) error {
	m.calls++
	m.programs[p.ID] = p
	return nil
}

func (m *mockProgramStore) GetByID(_ context.Context, id string) (program.Program, error) {
	m.calls++
	p, ok := m.programs[id]
	if !ok {
		return program.Program{}, program.ErrNotFound
	}
	return p, nil
}

func (m *mockProgramStore) Update(_ context.Context, p program.Program) error {
	m.calls++
	if _, ok := m.programs[p.ID]; !ok {
		return program.ErrNotFound
	}
	m.programs[p.ID] = p
	return nil
}

func (m *mockProgramStore) Delete(_ context.Context, id string) error {
	m.calls++
	if _, ok := m.programs[id]; !ok {
		return program.ErrNotFound
	}
	delete(m.programs, id)
	return nil
}

// --- assignments ---

type mockAssignmentStore struct {
	programs    map[string]program.Program
	assignments []assignment.Assignment
	calls       int
	err         error
}

func (m *mockAssignmentStore) Assign(_ context.Context, a assignment.Assignment) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	p, ok := m.programs[a.ProgramID]
	if !ok {
		return assignment.ErrProgramNotFound
	}
	if !p.IsFree {
		return assignment.ErrProgramNotFree
	}
	for _, existing := range m.assignments {
		if existing.UserID == a.UserID && existing.ProgramID == a.ProgramID {
			return assignment.ErrAlreadyAssigned
		}
	}
	m.assignments = append(m.assignments, a)
	return nil
}

// --- trainer CVs ---

type mockCVStore struct {
	byTrainer map[string]trainercv.CV
	calls     int
}

func newMockCVStore() *mockCVStore {
	return &mockCVStore{byTrainer: make(map[string]trainercv.CV)}
}

func (m *mockCVStore) Upsert(_ context.Context, cv trainercv.CV) (trainercv.CV, error) {
	m.calls++
	if existing, ok := m.byTrainer[cv.TrainerID]; ok {
		cv.ID = existing.ID
		cv.CreatedAt = existing.CreatedAt
	}
	m.byTrainer[cv.TrainerID] = cv
	return cv, nil
}
