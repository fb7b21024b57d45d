package web

import (
	"net/http"

	"fittrack/internal/application/projections"
)

func dashboardDeps() projections.DashboardDeps {
	return projections.DashboardDeps{
		User: projections.UserStatsDeps{
			WorkoutStore:    stores.WorkoutStore,
			AssignmentStore: stores.AssignmentStore,
		},
		Trainer: projections.TrainerStatsDeps{
			ProgramStore:    stores.ProgramStore,
			AssignmentStore: stores.AssignmentStore,
		},
	}
}

// handleDashboard handles GET /api/dashboard
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := projections.QueryDashboard(r.Context(), dashboardDeps())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// handleUserStats handles GET /api/stats/user
func handleUserStats(w http.ResponseWriter, r *http.Request) {
	s, err := projections.QueryUserStats(r.Context(), dashboardDeps().User)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// handleTrainerStats handles GET /api/stats/trainer
func handleTrainerStats(w http.ResponseWriter, r *http.Request) {
	s, err := projections.QueryTrainerStats(r.Context(), dashboardDeps().Trainer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
