package projections

import (
	"context"
	"errors"

	"fittrack/internal/application/apperr"
	"fittrack/internal/application/authz"
	"fittrack/internal/domain/user"
)

// AccountStore defines the store interface needed by QueryAccount.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

// AccountDeps holds dependencies for QueryAccount.
type AccountDeps struct {
	UserStore AccountStore
}

// QueryAccount returns the caller's stored account.
// PRE: Caller is authenticated
// POST: An identity whose account no longer exists is Unauthenticated
func QueryAccount(ctx context.Context, deps AccountDeps) (user.User, error) {
	caller, err := authz.Begin(ctx, authz.For(authz.ActionAccountGet))
	if err != nil {
		return user.User{}, err
	}
	u, err := deps.UserStore.GetByID(ctx, caller.ID)
	if errors.Is(err, user.ErrNotFound) {
		return user.User{}, apperr.Unauthenticated("not authenticated")
	}
	if err != nil {
		return user.User{}, apperr.Storage(err)
	}
	return u, nil
}
