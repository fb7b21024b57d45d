package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fittrack/internal/application/apperr"
	"fittrack/internal/domain/user"
)

// UserStoreForSeed defines the store interface needed by SeedAccounts.
type UserStoreForSeed interface {
	Create(ctx context.Context, u user.User) error
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

// SeedAccount is one account to ensure at start-up.
type SeedAccount struct {
	Email    string
	Password string
	Role     string
}

// SeedAccountsDeps holds dependencies for SeedAccounts.
type SeedAccountsDeps struct {
	UserStore  UserStoreForSeed
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteSeedAccounts creates each configured account that does not exist yet.
// Entries with an empty email or password are skipped.
// PRE: Database is migrated
// POST: Every complete entry exists; returns the number created
// INVARIANT: Idempotent; existing accounts are never modified
func ExecuteSeedAccounts(ctx context.Context, accounts []SeedAccount, deps SeedAccountsDeps) (int, error) {
	created := 0
	for _, acct := range accounts {
		if acct.Email == "" || acct.Password == "" {
			continue
		}
		_, err := deps.UserStore.GetByEmail(ctx, acct.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, user.ErrNotFound) {
			return created, fmt.Errorf("seed %s: %w", acct.Email, err)
		}

		_, err = ExecuteRegister(ctx, RegisterInput{Email: acct.Email, Password: acct.Password, Role: acct.Role},
			RegisterDeps{UserStore: deps.UserStore, GenerateID: deps.GenerateID, Now: deps.Now})
		if errors.Is(err, apperr.ErrConflict) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed %s: %w", acct.Email, err)
		}
		created++
		slog.Info("seed_event", "event", "account_seeded", "email", acct.Email, "role", acct.Role)
	}
	return created, nil
}
