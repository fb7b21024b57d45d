package web

import (
	"net/http"

	"fittrack/internal/application/orchestrators"
	"fittrack/internal/application/projections"
)

func programDeps() orchestrators.ProgramDeps {
	return orchestrators.ProgramDeps{
		ProgramStore: stores.ProgramStore,
		GenerateID:   generateID,
		Now:          timeNow,
	}
}

// handleProgramCatalog handles GET /api/programs
func handleProgramCatalog(w http.ResponseWriter, r *http.Request) {
	items, err := projections.QueryProgramCatalog(r.Context(), projections.ProgramCatalogDeps{ProgramStore: stores.ProgramStore})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// handleMyPrograms handles GET /api/programs/mine
func handleMyPrograms(w http.ResponseWriter, r *http.Request) {
	list, err := projections.QueryTrainerPrograms(r.Context(), projections.TrainerProgramsDeps{ProgramStore: stores.ProgramStore})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleCreateProgram handles POST /api/programs
func handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.ProgramInput
	if err := strictDecode(r, &input); err != nil {
		badJSON(w)
		return
	}
	p, err := orchestrators.ExecuteCreateProgram(r.Context(), input, programDeps())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// handleUpdateProgram handles PUT /api/programs/{id}
func handleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.UpdateProgramInput
	if err := strictDecode(r, &input.ProgramInput); err != nil {
		badJSON(w)
		return
	}
	input.ID = r.PathValue("id")
	p, err := orchestrators.ExecuteUpdateProgram(r.Context(), input, programDeps())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleDeleteProgram handles DELETE /api/programs/{id}
func handleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteProgram(r.Context(), orchestrators.DeleteProgramInput{ID: r.PathValue("id")}, programDeps())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Program deleted"})
}

// handleAssignProgram handles POST /api/programs/{id}/assign
func handleAssignProgram(w http.ResponseWriter, r *http.Request) {
	a, err := orchestrators.ExecuteAssignProgram(r.Context(),
		orchestrators.AssignProgramInput{ProgramID: r.PathValue("id")},
		orchestrators.AssignProgramDeps{
			AssignmentStore: stores.AssignmentStore,
			GenerateID:      generateID,
			Now:             timeNow,
		})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}
