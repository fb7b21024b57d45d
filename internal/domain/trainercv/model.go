package trainercv

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Max length constants for user-editable fields.
const (
	MaxBioLength        = 5000
	MaxExperienceLength = 5000
	MaxSkillsLength     = 2000
)

// Domain errors
var (
	ErrEmptyTrainerID    = errors.New("trainer ID is required")
	ErrEmptyExperience   = errors.New("experience is required")
	ErrEmptySkills       = errors.New("skills are required")
	ErrBioTooLong        = errors.New("bio cannot exceed 5000 characters")
	ErrExperienceTooLong = errors.New("experience cannot exceed 5000 characters")
	ErrSkillsTooLong     = errors.New("skills cannot exceed 2000 characters")
	ErrNotFound          = errors.New("trainer CV not found")
)

// CV is a trainer's public profile. Each trainer has at most one.
type CV struct {
	ID         string
	TrainerID  string
	Bio        string // optional, Markdown; empty is stored as NULL
	Experience string
	Skills     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks if the CV has valid data.
// PRE: CV struct is populated
// POST: Returns nil if valid, error otherwise
func (c *CV) Validate() error {
	if c.TrainerID == "" {
		return ErrEmptyTrainerID
	}
	if strings.TrimSpace(c.Experience) == "" {
		return ErrEmptyExperience
	}
	if strings.TrimSpace(c.Skills) == "" {
		return ErrEmptySkills
	}
	if utf8.RuneCountInString(c.Bio) > MaxBioLength {
		return ErrBioTooLong
	}
	if utf8.RuneCountInString(c.Experience) > MaxExperienceLength {
		return ErrExperienceTooLong
	}
	if utf8.RuneCountInString(c.Skills) > MaxSkillsLength {
		return ErrSkillsTooLong
	}
	return nil
}

// Listing is a CV together with the trainer's name and email.
type Listing struct {
	CV
	TrainerName  string
	TrainerEmail string
}
