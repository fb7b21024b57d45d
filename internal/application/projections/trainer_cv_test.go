package projections

import (
	"errors"
	"strings"
	"testing"

	"fittrack/internal/application/apperr"
	"fittrack/internal/domain/trainercv"
)

func cvListing(trainerID, name, bio string) trainercv.Listing {
	return trainercv.Listing{
		CV:           trainercv.CV{ID: "cv-" + trainerID, TrainerID: trainerID, Bio: bio, Experience: "e", Skills: "s"},
		TrainerName:  name,
		TrainerEmail: trainerID + "@example.com",
	}
}

// TestQueryMyTrainerCV tests a trainer without a CV gets nil and no error.
func TestQueryMyTrainerCV(t *testing.T) {
	deps := MyTrainerCVDeps{CVStore: &mockCVStore{}}
	cv, err := QueryMyTrainerCV(as(coach), deps)
	if err != nil || cv != nil {
		t.Fatalf("expected nil CV and nil error, got %+v, %v", cv, err)
	}

	deps = MyTrainerCVDeps{CVStore: &mockCVStore{listings: []trainercv.Listing{cvListing(coach.ID, "coach", "")}}}
	cv, err = QueryMyTrainerCV(as(coach), deps)
	if err != nil || cv == nil || cv.TrainerID != coach.ID {
		t.Fatalf("expected own CV, got %+v, %v", cv, err)
	}
	if _, err := QueryMyTrainerCV(as(alice), deps); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("expected Forbidden for user, got %v", err)
	}
}

// TestQueryTrainerCV tests public lookup and the not-found failure.
func TestQueryTrainerCV(t *testing.T) {
	deps := TrainerCVDeps{CVStore: &mockCVStore{listings: []trainercv.Listing{cvListing(coach.ID, "coach", "Runs *daily*")}}}

	got, err := QueryTrainerCV(as(alice), TrainerCVQuery{TrainerID: coach.ID}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TrainerName != "coach" || !strings.Contains(got.BioHTML, "<em>daily</em>") {
		t.Errorf("unexpected profile: %+v", got)
	}

	_, err = QueryTrainerCV(as(alice), TrainerCVQuery{TrainerID: "nobody"}, deps)
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindForbidden {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	if ae.Message != "Trainer CV not found or unauthorized" {
		t.Errorf("Message = %q", ae.Message)
	}
}

// TestQueryTrainerDirectory tests the listing keeps store order and renders bios.
func TestQueryTrainerDirectory(t *testing.T) {
	deps := TrainerCVDeps{CVStore: &mockCVStore{listings: []trainercv.Listing{
		cvListing("t-2", "newest", ""),
		cvListing("t-1", "older", "# Hi"),
	}}}
	profiles, err := QueryTrainerDirectory(as(coach), deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 2 || profiles[0].TrainerName != "newest" {
		t.Fatalf("unexpected order: %+v", profiles)
	}
	if profiles[0].BioHTML != "" {
		t.Errorf("empty bio should render empty, got %q", profiles[0].BioHTML)
	}
	if !strings.Contains(profiles[1].BioHTML, "<h1>Hi</h1>") {
		t.Errorf("BioHTML = %q", profiles[1].BioHTML)
	}
}
