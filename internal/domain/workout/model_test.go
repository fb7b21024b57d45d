package workout_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"fittrack/internal/domain/workout"
)

// TestWorkout_Validate tests validation of Workout.
func TestWorkout_Validate(t *testing.T) {
	day := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	valid := workout.Workout{UserID: "u-1", Date: day, Type: "Running", Duration: 30}

	tests := []struct {
		name    string
		mutate  func(w *workout.Workout)
		wantErr error
	}{
		{"valid", func(w *workout.Workout) {}, nil},
		{"valid with notes", func(w *workout.Workout) { w.Notes = "easy pace" }, nil},
		{"missing user", func(w *workout.Workout) { w.UserID = "" }, workout.ErrEmptyUserID},
		{"missing date", func(w *workout.Workout) { w.Date = time.Time{} }, workout.ErrEmptyDate},
		{"blank type", func(w *workout.Workout) { w.Type = "   " }, workout.ErrEmptyType},
		{"long type", func(w *workout.Workout) { w.Type = strings.Repeat("x", 101) }, workout.ErrTypeTooLong},
		{"zero duration", func(w *workout.Workout) { w.Duration = 0 }, workout.ErrNonPositive},
		{"negative duration", func(w *workout.Workout) { w.Duration = -10 }, workout.ErrNonPositive},
		{"long notes", func(w *workout.Workout) { w.Notes = strings.Repeat("n", 2001) }, workout.ErrNotesTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := valid
			tt.mutate(&w)
			if err := w.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestParseDate tests the accepted date formats.
func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2025-01-01T08:00", time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC), false},
		{"2025-01-01T08:00:30", time.Date(2025, 1, 1, 8, 0, 30, 0, time.UTC), false},
		{"2025-01-01", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"2025-01-01T08:00:00+02:00", time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC), false},
		{" 2025-03-04 ", time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), false},
		{"01/01/2025", time.Time{}, true},
		{"", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := workout.ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
