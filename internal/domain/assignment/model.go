package assignment

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrEmptyUserID     = errors.New("user ID is required")
	ErrEmptyProgramID  = errors.New("program ID is required")
	ErrProgramNotFound = errors.New("program not found")
	ErrProgramNotFree  = errors.New("only free programs can be assigned")
	ErrAlreadyAssigned = errors.New("you are already assigned to this program")
)

// Assignment records a user's enrollment in a program.
// At most one exists per (UserID, ProgramID).
type Assignment struct {
	ID        string
	UserID    string
	ProgramID string
	StartDate time.Time
	IsActive  bool
}

// Validate checks if the Assignment has valid data.
// PRE: Assignment struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Assignment) Validate() error {
	if a.UserID == "" {
		return ErrEmptyUserID
	}
	if a.ProgramID == "" {
		return ErrEmptyProgramID
	}
	return nil
}

// Start marks the assignment active from now.
// POST: StartDate is now, IsActive is true
func (a *Assignment) Start(now time.Time) {
	a.StartDate = now
	a.IsActive = true
}
