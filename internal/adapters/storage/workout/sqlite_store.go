package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fittrack/internal/adapters/storage"
	domain "fittrack/internal/domain/workout"
)

const selectColumns = "SELECT id, user_id, date, type, duration, notes, created_at, updated_at FROM workout"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new workout store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a workout.
// PRE: w has been validated
// POST: Row inserted
func (s *SQLiteStore) Create(ctx context.Context, w domain.Workout) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO workout (id, user_id, date, type, duration, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.UserID, storage.FormatTime(w.Date), w.Type, w.Duration, storage.NullString(w.Notes),
		storage.FormatTime(w.CreatedAt), storage.FormatTime(w.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}
	return nil
}

// GetByID retrieves a Workout by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Workout, error) {
	w, err := scanWorkout(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Workout{}, domain.ErrNotFound
	}
	return w, err
}

// ListByUser returns a user's workouts, newest date first.
// Workouts on the same date are ordered by creation time, newest first.
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]domain.Workout, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+" WHERE user_id = ? ORDER BY date DESC, created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Workout
	for rows.Next() {
		w, err := scanWorkout(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, w)
	}
	return results, rows.Err()
}

// Update overwrites the editable fields of a workout.
// PRE: w has been validated and ownership checked
// POST: Row updated, or domain.ErrNotFound if it no longer exists
func (s *SQLiteStore) Update(ctx context.Context, w domain.Workout) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE workout SET date = ?, type = ?, duration = ?, notes = ?, updated_at = ? WHERE id = ?",
		storage.FormatTime(w.Date), w.Type, w.Duration, storage.NullString(w.Notes),
		storage.FormatTime(w.UpdatedAt), w.ID,
	)
	if err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	return requireRow(res)
}

// Delete removes a workout.
// PRE: id is non-empty and ownership checked
// POST: Row removed, or domain.ErrNotFound if it was already gone
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM workout WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return requireRow(res)
}

// CountByUser returns how many workouts a user has logged.
func (s *SQLiteStore) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM workout WHERE user_id = ?", userID).Scan(&n)
	return n, err
}

// TopTypes returns the user's most frequent workout types, most frequent first.
// Ties are broken by type name ascending.
// PRE: limit > 0
func (s *SQLiteStore) TopTypes(ctx context.Context, userID string, limit int) ([]domain.TypeCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type, COUNT(*) AS n FROM workout WHERE user_id = ?
		GROUP BY type ORDER BY n DESC, type ASC LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.TypeCount
	for rows.Next() {
		var tc domain.TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, err
		}
		results = append(results, tc)
	}
	return results, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanWorkout extracts a Workout from a row scanner function.
func scanWorkout(scan func(dest ...any) error) (domain.Workout, error) {
	var w domain.Workout
	var date, createdAt, updatedAt string
	var notes sql.NullString
	if err := scan(&w.ID, &w.UserID, &date, &w.Type, &w.Duration, &notes, &createdAt, &updatedAt); err != nil {
		return domain.Workout{}, err
	}
	w.Notes = notes.String
	w.Date, _ = storage.ParseTime(date)
	w.CreatedAt, _ = storage.ParseTime(createdAt)
	w.UpdatedAt, _ = storage.ParseTime(updatedAt)
	return w, nil
}
