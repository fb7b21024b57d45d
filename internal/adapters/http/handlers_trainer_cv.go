package web

import (
	"net/http"

	"fittrack/internal/application/orchestrators"
	"fittrack/internal/application/projections"
)

// handleMyTrainerCV handles GET /api/trainer/cv. A trainer without a CV gets null.
func handleMyTrainerCV(w http.ResponseWriter, r *http.Request) {
	cv, err := projections.QueryMyTrainerCV(r.Context(), projections.MyTrainerCVDeps{CVStore: stores.TrainerCVStore})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cv)
}

// handleUpsertTrainerCV handles PUT /api/trainer/cv
func handleUpsertTrainerCV(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.UpsertTrainerCVInput
	if err := strictDecode(r, &input); err != nil {
		badJSON(w)
		return
	}
	cv, err := orchestrators.ExecuteUpsertTrainerCV(r.Context(), input, orchestrators.UpsertTrainerCVDeps{
		CVStore:    stores.TrainerCVStore,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cv)
}

func trainerCVDeps() projections.TrainerCVDeps {
	return projections.TrainerCVDeps{CVStore: stores.TrainerCVStore}
}

// handleTrainerDirectory handles GET /api/trainers
func handleTrainerDirectory(w http.ResponseWriter, r *http.Request) {
	profiles, err := projections.QueryTrainerDirectory(r.Context(), trainerCVDeps())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// handleTrainerCV handles GET /api/trainers/{id}/cv
func handleTrainerCV(w http.ResponseWriter, r *http.Request) {
	profile, err := projections.QueryTrainerCV(r.Context(), projections.TrainerCVQuery{TrainerID: r.PathValue("id")}, trainerCVDeps())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
