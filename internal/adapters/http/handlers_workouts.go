package web

import (
	"net/http"

	"fittrack/internal/application/orchestrators"
	"fittrack/internal/application/projections"
)

func workoutDeps() orchestrators.WorkoutDeps {
	return orchestrators.WorkoutDeps{
		WorkoutStore: stores.WorkoutStore,
		GenerateID:   generateID,
		Now:          timeNow,
	}
}

// handleListWorkouts handles GET /api/workouts
func handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	list, err := projections.QueryListWorkouts(r.Context(), projections.ListWorkoutsDeps{WorkoutStore: stores.WorkoutStore})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleCreateWorkout handles POST /api/workouts
func handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.WorkoutInput
	if err := strictDecode(r, &input); err != nil {
		badJSON(w)
		return
	}
	wo, err := orchestrators.ExecuteCreateWorkout(r.Context(), input, workoutDeps())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, wo)
}

// handleUpdateWorkout handles PUT /api/workouts/{id}
func handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.UpdateWorkoutInput
	if err := strictDecode(r, &input.WorkoutInput); err != nil {
		badJSON(w)
		return
	}
	input.ID = r.PathValue("id")
	wo, err := orchestrators.ExecuteUpdateWorkout(r.Context(), input, workoutDeps())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wo)
}

// handleDeleteWorkout handles DELETE /api/workouts/{id}
func handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteWorkout(r.Context(), orchestrators.DeleteWorkoutInput{ID: r.PathValue("id")}, workoutDeps())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Workout deleted"})
}
