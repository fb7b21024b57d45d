package workout

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Max length constants for user-editable fields.
const (
	MaxTypeLength  = 100
	MaxNotesLength = 2000
)

// Domain errors
var (
	ErrEmptyUserID  = errors.New("user ID is required")
	ErrEmptyDate    = errors.New("date is required")
	ErrEmptyType    = errors.New("type is required")
	ErrTypeTooLong  = errors.New("type cannot exceed 100 characters")
	ErrNonPositive  = errors.New("duration must be a positive number")
	ErrNotesTooLong = errors.New("notes cannot exceed 2000 characters")
	ErrNotFound     = errors.New("workout not found")
	ErrInvalidDate  = errors.New("date must be a valid date or date-time")
)

// DateLayouts are the accepted input formats for a workout date, tried in order.
var DateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Workout is a single logged training session owned by one user.
type Workout struct {
	ID        string
	UserID    string
	Date      time.Time
	Type      string // free text, e.g. "Running"
	Duration  int    // minutes
	Notes     string // optional
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks if the Workout has valid data.
// PRE: Workout struct is populated
// POST: Returns nil if valid, error otherwise
func (w *Workout) Validate() error {
	if w.UserID == "" {
		return ErrEmptyUserID
	}
	if w.Date.IsZero() {
		return ErrEmptyDate
	}
	if strings.TrimSpace(w.Type) == "" {
		return ErrEmptyType
	}
	if utf8.RuneCountInString(w.Type) > MaxTypeLength {
		return ErrTypeTooLong
	}
	if w.Duration <= 0 {
		return ErrNonPositive
	}
	if utf8.RuneCountInString(w.Notes) > MaxNotesLength {
		return ErrNotesTooLong
	}
	return nil
}

// ParseDate parses s with the first matching layout in DateLayouts.
// Layouts without a zone are read as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// TypeCount is one row of a per-type workout tally.
type TypeCount struct {
	Type  string
	Count int
}
