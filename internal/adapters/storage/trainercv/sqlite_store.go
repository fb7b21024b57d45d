package trainercv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fittrack/internal/adapters/storage"
	domain "fittrack/internal/domain/trainercv"
)

const (
	cvColumns     = "c.id, c.trainer_id, c.bio, c.experience, c.skills, c.created_at, c.updated_at"
	listingSelect = "SELECT " + cvColumns + ", u.name, u.email FROM trainer_cv c JOIN users u ON u.id = c.trainer_id"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new trainer CV store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Upsert creates the trainer's CV or replaces its content.
// PRE: cv has been validated
// POST: Exactly one row for cv.TrainerID holding the latest values; the stored row is returned
// INVARIANT: id and created_at of an existing CV are preserved
func (s *SQLiteStore) Upsert(ctx context.Context, cv domain.CV) (domain.CV, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trainer_cv (id, trainer_id, bio, experience, skills, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(trainer_id) DO UPDATE SET
			bio = excluded.bio,
			experience = excluded.experience,
			skills = excluded.skills,
			updated_at = excluded.updated_at`,
		cv.ID, cv.TrainerID, storage.NullString(cv.Bio), cv.Experience, cv.Skills,
		storage.FormatTime(cv.CreatedAt), storage.FormatTime(cv.UpdatedAt),
	)
	if err != nil {
		return domain.CV{}, fmt.Errorf("upsert trainer cv: %w", err)
	}
	return s.GetByTrainer(ctx, cv.TrainerID)
}

// GetByTrainer retrieves the CV owned by trainerID.
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByTrainer(ctx context.Context, trainerID string) (domain.CV, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+cvColumns+" FROM trainer_cv c WHERE c.trainer_id = ?", trainerID)
	cv, err := scanCV(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CV{}, domain.ErrNotFound
	}
	return cv, err
}

// GetListing retrieves one CV together with its trainer's name and email.
// POST: Returns the listing or domain.ErrNotFound
func (s *SQLiteStore) GetListing(ctx context.Context, trainerID string) (domain.Listing, error) {
	row := s.db.QueryRowContext(ctx, listingSelect+" WHERE c.trainer_id = ?", trainerID)
	l, err := scanListing(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Listing{}, domain.ErrNotFound
	}
	return l, err
}

// ListAll returns every CV with trainer name and email, most recently updated first.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]domain.Listing, error) {
	rows, err := s.db.QueryContext(ctx, listingSelect+" ORDER BY c.updated_at DESC, c.id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, l)
	}
	return results, rows.Err()
}

func scanListing(scan func(dest ...any) error) (domain.Listing, error) {
	var l domain.Listing
	cv, err := scanCV(func(dest ...any) error {
		return scan(append(dest, &l.TrainerName, &l.TrainerEmail)...)
	})
	if err != nil {
		return domain.Listing{}, err
	}
	l.CV = cv
	return l, nil
}

// scanCV extracts a CV from a row scanner function.
func scanCV(scan func(dest ...any) error) (domain.CV, error) {
	var cv domain.CV
	var bio sql.NullString
	var createdAt, updatedAt string
	if err := scan(&cv.ID, &cv.TrainerID, &bio, &cv.Experience, &cv.Skills, &createdAt, &updatedAt); err != nil {
		return domain.CV{}, err
	}
	cv.Bio = bio.String
	cv.CreatedAt, _ = storage.ParseTime(createdAt)
	cv.UpdatedAt, _ = storage.ParseTime(updatedAt)
	return cv, nil
}
