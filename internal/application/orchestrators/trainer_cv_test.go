package orchestrators

import (
	"errors"
	"testing"

	"fittrack/internal/application/apperr"
)

// TestExecuteUpsertTrainerCV tests create then replace keeps one CV with the latest values.
func TestExecuteUpsertTrainerCV(t *testing.T) {
	store := newMockCVStore()
	deps := UpsertTrainerCVDeps{CVStore: store, GenerateID: sequentialIDs(), Now: fixedNow}
	in := UpsertTrainerCVInput{Bio: "  ", Experience: "10 years", Skills: "Running"}

	first, err := ExecuteUpsertTrainerCV(as(coachID), in, deps)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.Bio != "" {
		t.Errorf("blank bio should be empty, got %q", first.Bio)
	}
	second, err := ExecuteUpsertTrainerCV(as(coachID), in, deps)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("ID changed from %q to %q", first.ID, second.ID)
	}
	if len(store.byTrainer) != 1 {
		t.Errorf("CVs = %d, want 1", len(store.byTrainer))
	}
}

// TestExecuteUpsertTrainerCV_Guards tests role and required fields.
func TestExecuteUpsertTrainerCV_Guards(t *testing.T) {
	store := newMockCVStore()
	deps := UpsertTrainerCVDeps{CVStore: store, GenerateID: fixedID, Now: fixedNow}

	if _, err := ExecuteUpsertTrainerCV(as(aliceID), UpsertTrainerCVInput{Experience: "e", Skills: "s"}, deps); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected Forbidden for user, got %v", err)
	}

	tests := []struct {
		name      string
		in        UpsertTrainerCVInput
		wantField string
	}{
		{"missing experience", UpsertTrainerCVInput{Skills: "s"}, "experience"},
		{"missing skills", UpsertTrainerCVInput{Experience: "e"}, "skills"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExecuteUpsertTrainerCV(as(coachID), tt.in, deps)
			var ae *apperr.Error
			if !errors.As(err, &ae) || ae.Field != tt.wantField {
				t.Fatalf("expected InvalidInput on %s, got %v", tt.wantField, err)
			}
		})
	}
	if store.calls != 0 {
		t.Error("store must not be called on rejected input")
	}
}
