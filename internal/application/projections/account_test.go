package projections

import (
	"context"
	"errors"
	"testing"

	"fittrack/internal/application/apperr"
	"fittrack/internal/domain/user"
)

type mockUserStore struct {
	users map[string]user.User
	err   error
}

func (m *mockUserStore) GetByID(_ context.Context, id string) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

// TestQueryAccount tests the caller's stored account is returned and gone accounts are unauthenticated.
func TestQueryAccount(t *testing.T) {
	stored := user.User{ID: alice.ID, Email: alice.Email, PasswordHash: "h", Role: user.RoleUser, Name: "Alice A."}
	store := &mockUserStore{users: map[string]user.User{alice.ID: stored}}

	tests := []struct {
		name     string
		ctx      context.Context
		store    *mockUserStore
		wantKind apperr.Kind
	}{
		{"own account", as(alice), store, ""},
		{"anonymous", context.Background(), store, apperr.KindUnauthenticated},
		{"account gone", as(bob), store, apperr.KindUnauthenticated},
		{"storage failure", as(alice), &mockUserStore{err: errBroken}, apperr.KindStorage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QueryAccount(tt.ctx, AccountDeps{UserStore: tt.store})
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.Name != "Alice A." {
					t.Errorf("Name = %q, want the stored name", got.Name)
				}
				return
			}
			var ae *apperr.Error
			if !errors.As(err, &ae) || ae.Kind != tt.wantKind {
				t.Fatalf("err = %v, want kind %s", err, tt.wantKind)
			}
		})
	}
}
