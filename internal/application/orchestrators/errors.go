package orchestrators

import (
	"context"
	"errors"

	"fittrack/internal/application/apperr"
)

// invalid reports a domain validation failure against a single input field.
func invalid(field string, err error) error {
	return apperr.InvalidInput(field, err.Error())
}

// ownedFetch adapts a store getter for authz.RequireOwner: notFound stays
// unclassified so it reads as "not found or unauthorized", anything else is
// classified, defaulting to a storage failure.
func ownedFetch[T any](get func(ctx context.Context, id string) (T, error), notFound error) func(context.Context, string) (T, error) {
	return func(ctx context.Context, id string) (T, error) {
		v, err := get(ctx, id)
		if err != nil && !errors.Is(err, notFound) {
			return v, apperr.Classify(err)
		}
		return v, err
	}
}
