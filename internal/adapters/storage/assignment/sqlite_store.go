package assignment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fittrack/internal/adapters/storage"
	domain "fittrack/internal/domain/assignment"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new assignment store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Assign enrolls a user in a program.
// PRE: a has been validated
// POST: Row inserted, or one of domain.ErrProgramNotFound, domain.ErrProgramNotFree,
// domain.ErrAlreadyAssigned with nothing written
// INVARIANT: at most one row per (user_id, program_id), enforced by the UNIQUE index
// when two requests race past the existence check
func (s *SQLiteStore) Assign(ctx context.Context, a domain.Assignment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var isFree bool
	err = tx.QueryRowContext(ctx, "SELECT is_free FROM trainer_program WHERE id = ?", a.ProgramID).Scan(&isFree)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProgramNotFound
	}
	if err != nil {
		return fmt.Errorf("load program: %w", err)
	}
	if !isFree {
		return domain.ErrProgramNotFree
	}

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_program WHERE user_id = ? AND program_id = ?",
		a.UserID, a.ProgramID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check assignment: %w", err)
	}
	if exists > 0 {
		return domain.ErrAlreadyAssigned
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO user_program (id, user_id, program_id, start_date, is_active) VALUES (?, ?, ?, ?, ?)",
		a.ID, a.UserID, a.ProgramID, storage.FormatTime(a.StartDate), a.IsActive,
	)
	if storage.IsUniqueViolation(err) {
		return domain.ErrAlreadyAssigned
	}
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return tx.Commit()
}

// Exists reports whether the user is enrolled in the program.
func (s *SQLiteStore) Exists(ctx context.Context, userID, programID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_program WHERE user_id = ? AND program_id = ?",
		userID, programID).Scan(&n)
	return n > 0, err
}

// CountActiveByUser returns how many active enrollments a user has.
func (s *SQLiteStore) CountActiveByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_program WHERE user_id = ? AND is_active = 1", userID).Scan(&n)
	return n, err
}

// CountByTrainer counts enrollment rows across all of a trainer's programs.
// A user enrolled in two of the trainer's programs counts twice.
func (s *SQLiteStore) CountByTrainer(ctx context.Context, trainerID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_program up
		JOIN trainer_program p ON p.id = up.program_id
		WHERE p.trainer_id = ?`, trainerID).Scan(&n)
	return n, err
}

// ListByUser returns a user's enrollments, most recent first.
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]domain.Assignment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, program_id, start_date, is_active FROM user_program
		WHERE user_id = ? ORDER BY start_date DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		var start string
		if err := rows.Scan(&a.ID, &a.UserID, &a.ProgramID, &start, &a.IsActive); err != nil {
			return nil, err
		}
		a.StartDate, _ = storage.ParseTime(start)
		results = append(results, a)
	}
	return results, rows.Err()
}
