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
	"fittrack/internal/domain/assignment"
)

// AssignmentStoreForAssign defines the store interface needed by AssignProgram.
type AssignmentStoreForAssign interface {
	Assign(ctx context.Context, a assignment.Assignment) error
}

// AssignProgramInput carries input for the assign orchestrator.
type AssignProgramInput struct {
	ProgramID string `json:"program_id" validate:"required"`
}

// AssignProgramDeps holds dependencies for AssignProgram.
type AssignProgramDeps struct {
	AssignmentStore AssignmentStoreForAssign
	GenerateID      func() string
	Now             func() time.Time
}

// ExecuteAssignProgram enrolls the calling user in a free program.
// PRE: Caller is authenticated with role user
// POST: Active assignment starting now
// INVARIANT: Only free programs; at most one assignment per (user, program)
func ExecuteAssignProgram(ctx context.Context, input AssignProgramInput, deps AssignProgramDeps) (assignment.Assignment, error) {
	caller, err := authz.Begin(ctx, authz.For(authz.ActionProgramAssign))
	if err != nil {
		return assignment.Assignment{}, err
	}
	input.ProgramID = strings.TrimSpace(input.ProgramID)
	if err := validation.Struct(input); err != nil {
		return assignment.Assignment{}, err
	}

	a := assignment.Assignment{ID: deps.GenerateID(), UserID: caller.ID, ProgramID: input.ProgramID}
	if err := a.Validate(); err != nil {
		return assignment.Assignment{}, invalid("program_id", err)
	}
	a.Start(deps.Now())

	if err := deps.AssignmentStore.Assign(ctx, a); err != nil {
		slog.Info("program_event", "event", "assign_rejected", "program_id", a.ProgramID, "user_id", caller.ID, "reason", err.Error())
		switch {
		case errors.Is(err, assignment.ErrProgramNotFound):
			return assignment.Assignment{}, invalid("program_id", err)
		case errors.Is(err, assignment.ErrProgramNotFree), errors.Is(err, assignment.ErrAlreadyAssigned):
			return assignment.Assignment{}, apperr.Conflict(err)
		default:
			return assignment.Assignment{}, apperr.Storage(err)
		}
	}

	slog.Info("program_event", "event", "program_assigned", "program_id", a.ProgramID, "user_id", caller.ID)
	return a, nil
}
