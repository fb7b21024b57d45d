package projections

import (
	"context"
	"slices"

	"fittrack/internal/application/apperr"
	"fittrack/internal/application/authz"
	"fittrack/internal/domain/program"
)

// TrainerProgramsStore defines the store interface needed by QueryTrainerPrograms.
type TrainerProgramsStore interface {
	ListByTrainer(ctx context.Context, trainerID string) ([]program.Summary, error)
}

// TrainerProgramsDeps holds dependencies for QueryTrainerPrograms.
type TrainerProgramsDeps struct {
	ProgramStore TrainerProgramsStore
}

// QueryTrainerPrograms returns the caller's programs with their enrollment counts.
// PRE: Caller is authenticated with role trainer
// POST: Newest first; never nil
func QueryTrainerPrograms(ctx context.Context, deps TrainerProgramsDeps) ([]program.Summary, error) {
	caller, err := authz.Begin(ctx, authz.For(authz.ActionProgramListMine))
	if err != nil {
		return nil, err
	}
	list, err := deps.ProgramStore.ListByTrainer(ctx, caller.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if list == nil {
		list = []program.Summary{}
	}
	return list, nil
}

// ProgramCatalogStore defines the store interface needed by QueryProgramCatalog.
type ProgramCatalogStore interface {
	ListAll(ctx context.Context) ([]program.CatalogEntry, error)
}

// ProgramCatalogDeps holds dependencies for QueryProgramCatalog.
type ProgramCatalogDeps struct {
	ProgramStore ProgramCatalogStore
}

// CatalogItem is one program as presented to the caller.
type CatalogItem struct {
	program.CatalogEntry
	DescriptionHTML  string
	AssignedToCaller bool
}

// QueryProgramCatalog returns every program with its trainer's name and enrolled users,
// flagging the ones the caller is already assigned to.
// PRE: Caller is authenticated (any role)
// POST: Newest first; never nil
func QueryProgramCatalog(ctx context.Context, deps ProgramCatalogDeps) ([]CatalogItem, error) {
	caller, err := authz.Begin(ctx, authz.For(authz.ActionProgramListAll))
	if err != nil {
		return nil, err
	}
	entries, err := deps.ProgramStore.ListAll(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	items := make([]CatalogItem, 0, len(entries))
	for _, e := range entries {
		if e.EnrolledUserIDs == nil {
			e.EnrolledUserIDs = []string{}
		}
		items = append(items, CatalogItem{
			CatalogEntry:     e,
			DescriptionHTML:  renderMarkdown(e.Description),
			AssignedToCaller: slices.Contains(e.EnrolledUserIDs, caller.ID),
		})
	}
	return items, nil
}
