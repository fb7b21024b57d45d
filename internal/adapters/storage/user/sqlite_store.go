package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fittrack/internal/adapters/storage"
	domain "fittrack/internal/domain/user"
)

const selectColumns = "SELECT id, email, password_hash, role, name, created_at FROM users"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new user store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a new user.
// PRE: u has been validated and carries a password hash
// POST: Row inserted, or domain.ErrDuplicateEmail if the email is taken
func (s *SQLiteStore) Create(ctx context.Context, u domain.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, role, name, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		u.ID, u.Email, u.PasswordHash, u.Role, u.Name, storage.FormatTime(u.CreatedAt),
	)
	if storage.IsUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID retrieves a User by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	return s.getOne(ctx, selectColumns+" WHERE id = ?", id)
}

// GetByEmail retrieves a User by email.
// PRE: email is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.getOne(ctx, selectColumns+" WHERE email = ?", email)
}

func (s *SQLiteStore) getOne(ctx context.Context, query string, arg string) (domain.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, query, arg).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	return u, err
}

// scanUser extracts a User from a row scanner function.
func scanUser(scan func(dest ...any) error) (domain.User, error) {
	var u domain.User
	var createdAt string
	if err := scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &createdAt); err != nil {
		return domain.User{}, err
	}
	u.CreatedAt, _ = storage.ParseTime(createdAt)
	return u, nil
}
