package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"fittrack/internal/application/apperr"
	"fittrack/internal/application/authz"
	"fittrack/internal/application/validation"
	"fittrack/internal/domain/program"
)

// ProgramStoreForOrchestrator defines the store interface needed by program orchestrators.
type ProgramStoreForOrchestrator interface {
	Create(ctx context.Context, p program.Program) error
	GetByID(ctx context.Context, id string) (program.Program, error)
	Update(ctx context.Context, p program.Program) error
	Delete(ctx context.Context, id string) error
}

// ProgramInput carries the editable fields of a program.
type ProgramInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=10000"`
	IsFree      bool   `json:"isFree"`
}

func (in ProgramInput) apply(p *program.Program) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Struct(in); err != nil {
		return err
	}
	p.Title = in.Title
	p.Description = in.Description
	p.IsFree = in.IsFree
	if err := p.Validate(); err != nil {
		return invalid(programField(err), err)
	}
	return nil
}

// ProgramDeps holds dependencies for the program orchestrators.
type ProgramDeps struct {
	ProgramStore ProgramStoreForOrchestrator
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteCreateProgram publishes a program authored by the calling trainer.
// PRE: Caller is authenticated with role trainer
// POST: Program persisted, owned by the caller
func ExecuteCreateProgram(ctx context.Context, input ProgramInput, deps ProgramDeps) (program.Program, error) {
	caller, err := authz.Begin(ctx, authz.For(authz.ActionProgramCreate))
	if err != nil {
		return program.Program{}, err
	}

	now := deps.Now()
	p := program.Program{ID: deps.GenerateID(), TrainerID: caller.ID, CreatedAt: now, UpdatedAt: now}
	if err := input.apply(&p); err != nil {
		return program.Program{}, err
	}
	if err := deps.ProgramStore.Create(ctx, p); err != nil {
		return program.Program{}, apperr.Storage(err)
	}

	slog.Info("program_event", "event", "program_created", "program_id", p.ID, "trainer_id", caller.ID, "is_free", p.IsFree)
	return p, nil
}

// UpdateProgramInput identifies the program to change and its new fields.
type UpdateProgramInput struct {
	ID string `json:"-"`
	ProgramInput
}

// ExecuteUpdateProgram replaces the fields of one of the caller's programs.
// PRE: Caller is authenticated with role trainer
// POST: Program updated; a missing or foreign program yields Forbidden
func ExecuteUpdateProgram(ctx context.Context, input UpdateProgramInput, deps ProgramDeps) (program.Program, error) {
	caller, err := authz.Begin(ctx, authz.For(authz.ActionProgramUpdate))
	if err != nil {
		return program.Program{}, err
	}
	p, err := requireOwnProgram(ctx, caller.ID, input.ID, deps.ProgramStore)
	if err != nil {
		return program.Program{}, err
	}

	if err := input.ProgramInput.apply(&p); err != nil {
		return program.Program{}, err
	}
	p.UpdatedAt = deps.Now()
	if err := deps.ProgramStore.Update(ctx, p); err != nil {
		if errors.Is(err, program.ErrNotFound) {
			return program.Program{}, apperr.Forbidden("Program not found or unauthorized")
		}
		return program.Program{}, apperr.Storage(err)
	}

	slog.Info("program_event", "event", "program_updated", "program_id", p.ID, "trainer_id", caller.ID)
	return p, nil
}

// DeleteProgramInput identifies the program to remove.
type DeleteProgramInput struct {
	ID string
}

// ExecuteDeleteProgram removes one of the caller's programs together with its enrollments.
// PRE: Caller is authenticated with role trainer
// POST: Program and its assignments removed; a missing or foreign program yields Forbidden
func ExecuteDeleteProgram(ctx context.Context, input DeleteProgramInput, deps ProgramDeps) error {
	caller, err := authz.Begin(ctx, authz.For(authz.ActionProgramDelete))
	if err != nil {
		return err
	}
	if _, err := requireOwnProgram(ctx, caller.ID, input.ID, deps.ProgramStore); err != nil {
		return err
	}
	if err := deps.ProgramStore.Delete(ctx, input.ID); err != nil {
		if errors.Is(err, program.ErrNotFound) {
			return apperr.Forbidden("Program not found or unauthorized")
		}
		return apperr.Storage(err)
	}

	slog.Info("program_event", "event", "program_deleted", "program_id", input.ID, "trainer_id", caller.ID)
	return nil
}

func requireOwnProgram(ctx context.Context, callerID, id string, store ProgramStoreForOrchestrator) (program.Program, error) {
	return authz.RequireOwner(ctx, callerID, id,
		ownedFetch(store.GetByID, program.ErrNotFound),
		func(p program.Program) string { return p.TrainerID }, "Program")
}

func programField(err error) string {
	switch {
	case errors.Is(err, program.ErrEmptyTitle), errors.Is(err, program.ErrTitleTooLong):
		return "title"
	case errors.Is(err, program.ErrEmptyDescription), errors.Is(err, program.ErrDescriptionTooLong):
		return "description"
	default:
		return ""
	}
}
