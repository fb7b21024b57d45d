package program

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Max length constants for user-editable fields.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 10000
)

// Domain errors
var (
	ErrEmptyTrainerID     = errors.New("trainer ID is required")
	ErrEmptyTitle         = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title cannot exceed 200 characters")
	ErrEmptyDescription   = errors.New("description is required")
	ErrDescriptionTooLong = errors.New("description cannot exceed 10000 characters")
	ErrNotFound           = errors.New("program not found")
)

// Program is a trainer-authored training plan that users can enroll in.
type Program struct {
	ID          string
	TrainerID   string
	Title       string
	Description string // Markdown
	IsFree      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks if the Program has valid data.
// PRE: Program struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Program) Validate() error {
	if p.TrainerID == "" {
		return ErrEmptyTrainerID
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(p.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(p.Description) == "" {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(p.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// Summary is a program as its trainer sees it, with the number of enrollments.
type Summary struct {
	Program
	EnrollmentCount int
}

// CatalogEntry is a program as any caller sees it in the catalog.
type CatalogEntry struct {
	Program
	TrainerName     string
	EnrolledUserIDs []string
}
