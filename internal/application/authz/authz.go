// Package authz resolves the caller's identity from a request context and
// decides whether that identity may run a given action.
package authz

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"fittrack/internal/application/apperr"
	"fittrack/internal/domain/user"
)

// Role constants
const (
	RoleUser    = user.RoleUser
	RoleTrainer = user.RoleTrainer
)

// Identity is the resolved caller of an action.
type Identity struct {
	ID    string
	Email string
	Role  string
	Name  string
}

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// FromContext returns the identity in ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(Identity)
	if !ok || id.ID == "" {
		return Identity{}, false
	}
	return id, true
}

// Resolve returns the caller identity or an Unauthenticated failure.
// POST: no side effects
func Resolve(ctx context.Context) (Identity, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return Identity{}, apperr.Unauthenticated("not authenticated")
	}
	return id, nil
}

// Policy declares who may run an action. Empty Roles admits any authenticated caller.
type Policy struct {
	Action string
	Roles  []string
}

// Authorize checks id against p. Roles match exactly; there is no hierarchy.
func Authorize(id Identity, p Policy) error {
	if len(p.Roles) == 0 || slices.Contains(p.Roles, id.Role) {
		return nil
	}
	slog.Warn("auth_denied", "action", p.Action, "account_id", id.ID, "role", id.Role, "required", p.Roles)
	return apperr.Forbidden("forbidden: " + p.Action + " requires role " + strings.Join(p.Roles, " or "))
}

// Begin resolves the caller and checks p in one step. Every action starts here.
func Begin(ctx context.Context, p Policy) (Identity, error) {
	id, err := Resolve(ctx)
	if err != nil {
		return Identity{}, err
	}
	if err := Authorize(id, p); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// RequireOwner fetches an entity and checks that callerID owns it.
// A missing entity and an owner mismatch produce the same Forbidden failure,
// so callers cannot discover the existence of other users' records.
// A fetch error already classified as a storage failure is returned as is.
func RequireOwner[T any](
	ctx context.Context,
	callerID string,
	id string,
	fetch func(ctx context.Context, id string) (T, error),
	ownerOf func(T) string,
	what string,
) (T, error) {
	var zero T
	entity, err := fetch(ctx, id)
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Kind == apperr.KindStorage {
		return zero, err
	}
	if err != nil || ownerOf(entity) != callerID {
		slog.Info("auth_denied", "reason", "not_owner_or_missing", "entity", what, "id", id, "account_id", callerID)
		return zero, apperr.Forbidden(what + " not found or unauthorized")
	}
	return entity, nil
}
