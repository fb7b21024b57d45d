package program

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fittrack/internal/adapters/storage"
	domain "fittrack/internal/domain/program"
)

const programColumns = "p.id, p.trainer_id, p.title, p.description, p.is_free, p.created_at, p.updated_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new program store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a program.
// PRE: p has been validated
// POST: Row inserted
func (s *SQLiteStore) Create(ctx context.Context, p domain.Program) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trainer_program (id, trainer_id, title, description, is_free, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TrainerID, p.Title, p.Description, p.IsFree,
		storage.FormatTime(p.CreatedAt), storage.FormatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert program: %w", err)
	}
	return nil
}

// GetByID retrieves a Program by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Program, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+programColumns+" FROM trainer_program p WHERE p.id = ?", id)
	p, err := scanProgram(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Program{}, domain.ErrNotFound
	}
	return p, err
}

// ListByTrainer returns a trainer's programs, newest first, each with its enrollment count.
func (s *SQLiteStore) ListByTrainer(ctx context.Context, trainerID string) ([]domain.Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+programColumns+`, COUNT(up.id)
		FROM trainer_program p
		LEFT JOIN user_program up ON up.program_id = p.id
		WHERE p.trainer_id = ?
		GROUP BY p.id
		ORDER BY p.created_at DESC, p.id DESC`, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Summary
	for rows.Next() {
		var sum domain.Summary
		var count int
		p, err := scanProgram(func(dest ...any) error {
			return rows.Scan(append(dest, &count)...)
		})
		if err != nil {
			return nil, err
		}
		sum.Program = p
		sum.EnrollmentCount = count
		results = append(results, sum)
	}
	return results, rows.Err()
}

// ListAll returns every program, newest first, with its trainer's name and
// the ids of the users enrolled in it.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]domain.CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+programColumns+`, u.name
		FROM trainer_program p
		JOIN users u ON u.id = p.trainer_id
		ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	var results []domain.CatalogEntry
	index := make(map[string]int)
	for rows.Next() {
		var entry domain.CatalogEntry
		var trainerName string
		p, err := scanProgram(func(dest ...any) error {
			return rows.Scan(append(dest, &trainerName)...)
		})
		if err != nil {
			rows.Close()
			return nil, err
		}
		entry.Program = p
		entry.TrainerName = trainerName
		entry.EnrolledUserIDs = []string{}
		index[p.ID] = len(results)
		results = append(results, entry)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	enrolled, err := s.db.QueryContext(ctx, "SELECT program_id, user_id FROM user_program ORDER BY start_date, id")
	if err != nil {
		return nil, err
	}
	defer enrolled.Close()
	for enrolled.Next() {
		var programID, userID string
		if err := enrolled.Scan(&programID, &userID); err != nil {
			return nil, err
		}
		if i, ok := index[programID]; ok {
			results[i].EnrolledUserIDs = append(results[i].EnrolledUserIDs, userID)
		}
	}
	return results, enrolled.Err()
}

// Update overwrites the editable fields of a program.
// PRE: p has been validated and ownership checked
// POST: Row updated, or domain.ErrNotFound if it no longer exists
func (s *SQLiteStore) Update(ctx context.Context, p domain.Program) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE trainer_program SET title = ?, description = ?, is_free = ?, updated_at = ? WHERE id = ?",
		p.Title, p.Description, p.IsFree, storage.FormatTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update program: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a program and every enrollment in it, atomically.
// PRE: id is non-empty and ownership checked
// POST: Program and its assignments removed, or domain.ErrNotFound
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM user_program WHERE program_id = ?", id); err != nil {
		return fmt.Errorf("delete program assignments: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM trainer_program WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete program: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

// CountByTrainer returns how many programs a trainer has published.
func (s *SQLiteStore) CountByTrainer(ctx context.Context, trainerID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trainer_program WHERE trainer_id = ?", trainerID).Scan(&n)
	return n, err
}

// CountByFreeFlag splits a trainer's programs into free and paid counts.
func (s *SQLiteStore) CountByFreeFlag(ctx context.Context, trainerID string) (int, int, error) {
	var free, paid int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(CASE WHEN is_free = 1 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN is_free = 0 THEN 1 ELSE 0 END), 0)
		FROM trainer_program WHERE trainer_id = ?`, trainerID).Scan(&free, &paid)
	return free, paid, err
}

// scanProgram extracts a Program from a row scanner function.
func scanProgram(scan func(dest ...any) error) (domain.Program, error) {
	var p domain.Program
	var createdAt, updatedAt string
	if err := scan(&p.ID, &p.TrainerID, &p.Title, &p.Description, &p.IsFree, &createdAt, &updatedAt); err != nil {
		return domain.Program{}, err
	}
	p.CreatedAt, _ = storage.ParseTime(createdAt)
	p.UpdatedAt, _ = storage.ParseTime(updatedAt)
	return p, nil
}
