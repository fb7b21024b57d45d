package validation

import (
	"errors"
	"testing"

	"fittrack/internal/application/apperr"
)

type sample struct {
	Date     string `json:"date" validate:"required"`
	Duration int    `json:"duration" validate:"required,gt=0"`
	Role     string `json:"role" validate:"required,oneof=user trainer"`
	Notes    string `json:"notes"`
}

// TestStruct tests field-level reasons for each rule.
func TestStruct(t *testing.T) {
	tests := []struct {
		name      string
		in        sample
		wantField string
		wantMsg   string
	}{
		{"valid", sample{Date: "2025-01-01", Duration: 30, Role: "user"}, "", ""},
		{"missing date", sample{Duration: 30, Role: "user"}, "date", "date is required"},
		{"zero duration", sample{Date: "2025-01-01", Role: "user"}, "duration", "duration is required"},
		{"negative duration", sample{Date: "2025-01-01", Duration: -5, Role: "user"}, "duration", "duration must be a positive number"},
		{"unknown role", sample{Date: "2025-01-01", Duration: 30, Role: "admin"}, "role", "role must be one of: user, trainer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ae *apperr.Error
			if !errors.As(err, &ae) {
				t.Fatalf("expected *apperr.Error, got %v", err)
			}
			if ae.Kind != apperr.KindInvalidInput {
				t.Errorf("Kind = %s, want %s", ae.Kind, apperr.KindInvalidInput)
			}
			if ae.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ae.Field, tt.wantField)
			}
			if ae.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", ae.Message, tt.wantMsg)
			}
		})
	}
}
