package program

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"fittrack/internal/adapters/storage"
	domain "fittrack/internal/domain/program"
)

var day = time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	db    *sql.DB
	store *SQLiteStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.MigrateDB(db, ":memory:"))

	users := []struct{ id, role, name string }{
		{"t-1", "trainer", "coach"},
		{"t-2", "trainer", "other"},
		{"u-1", "user", "alice"},
		{"u-2", "user", "bob"},
	}
	for _, u := range users {
		_, err := db.Exec("INSERT INTO users (id, email, password_hash, role, name, created_at) VALUES (?, ?, 'h', ?, ?, ?)",
			u.id, u.id+"@x.com", u.role, u.name, storage.FormatTime(day))
		require.NoError(t, err)
	}
	return fixture{db: db, store: NewSQLiteStore(db)}
}

func (f fixture) enroll(t *testing.T, id, userID, programID string) {
	t.Helper()
	_, err := f.db.Exec("INSERT INTO user_program (id, user_id, program_id, start_date, is_active) VALUES (?, ?, ?, ?, 1)",
		id, userID, programID, storage.FormatTime(day))
	require.NoError(t, err)
}

func newProgram(id, trainerID string, free bool, created time.Time) domain.Program {
	return domain.Program{ID: id, TrainerID: trainerID, Title: "Plan " + id, Description: "desc", IsFree: free, CreatedAt: created, UpdatedAt: created}
}

func TestSQLiteStore_CreateGetUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := newProgram("p-1", "t-1", true, day)
	require.NoError(t, f.store.Create(ctx, p))

	got, err := f.store.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	got.Title = "5K Plan"
	got.IsFree = false
	got.UpdatedAt = day.Add(time.Hour)
	require.NoError(t, f.store.Update(ctx, got))

	updated, err := f.store.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "5K Plan", updated.Title)
	assert.False(t, updated.IsFree)

	_, err = f.store.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.store.Update(ctx, newProgram("missing", "t-1", true, day)), domain.ErrNotFound)
}

func TestSQLiteStore_ListByTrainer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Create(ctx, newProgram("p-old", "t-1", true, day)))
	require.NoError(t, f.store.Create(ctx, newProgram("p-new", "t-1", false, day.Add(time.Hour))))
	require.NoError(t, f.store.Create(ctx, newProgram("p-other", "t-2", true, day)))
	f.enroll(t, "a-1", "u-1", "p-old")
	f.enroll(t, "a-2", "u-2", "p-old")

	list, err := f.store.ListByTrainer(ctx, "t-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p-new", list[0].ID)
	assert.Equal(t, 0, list[0].EnrollmentCount)
	assert.Equal(t, "p-old", list[1].ID)
	assert.Equal(t, 2, list[1].EnrollmentCount)
}

func TestSQLiteStore_ListAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Create(ctx, newProgram("p-1", "t-1", true, day)))
	require.NoError(t, f.store.Create(ctx, newProgram("p-2", "t-2", false, day.Add(time.Hour))))
	f.enroll(t, "a-1", "u-1", "p-1")
	f.enroll(t, "a-2", "u-2", "p-1")

	all, err := f.store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "p-2", all[0].ID)
	assert.Equal(t, "other", all[0].TrainerName)
	assert.Empty(t, all[0].EnrolledUserIDs)
	assert.Equal(t, "coach", all[1].TrainerName)
	assert.ElementsMatch(t, []string{"u-1", "u-2"}, all[1].EnrolledUserIDs)
}

func TestSQLiteStore_DeleteRemovesAssignments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Create(ctx, newProgram("p-1", "t-1", true, day)))
	f.enroll(t, "a-1", "u-1", "p-1")

	require.NoError(t, f.store.Delete(ctx, "p-1"))

	var n int
	require.NoError(t, f.db.QueryRow("SELECT COUNT(*) FROM user_program WHERE program_id = 'p-1'").Scan(&n))
	assert.Zero(t, n)
	_, err := f.store.GetByID(ctx, "p-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.store.Delete(ctx, "p-1"), domain.ErrNotFound)
}

func TestSQLiteStore_Counts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Create(ctx, newProgram("p-1", "t-1", true, day)))
	require.NoError(t, f.store.Create(ctx, newProgram("p-2", "t-1", true, day)))
	require.NoError(t, f.store.Create(ctx, newProgram("p-3", "t-1", false, day)))

	total, err := f.store.CountByTrainer(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	free, paid, err := f.store.CountByFreeFlag(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, 2, free)
	assert.Equal(t, 1, paid)

	free, paid, err = f.store.CountByFreeFlag(ctx, "t-2")
	require.NoError(t, err)
	assert.Zero(t, free)
	assert.Zero(t, paid)
}
