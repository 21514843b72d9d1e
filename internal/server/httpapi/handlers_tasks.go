package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Anandrajbgp/Noteflow/internal/server/models"
)

func (s *Server) handleUpsertTask(w http.ResponseWriter, r *http.Request) {
	var t models.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	t.ID = mux.Vars(r)["id"]
	if t.ID == "" {
		writeError(w, http.StatusBadRequest, "missing record id")
		return
	}
	if t.UpdatedAt.IsZero() {
		writeError(w, http.StatusBadRequest, "missing updated_at")
		return
	}
	t.OwnerKey = userIDFrom(r.Context())

	if err := s.taskRepo.Upsert(r.Context(), &t); err != nil {
		s.logger.Error(r.Context(), "task upsert failed", "id", t.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	owner := userIDFrom(r.Context())
	if !checkOwnerParam(w, r, owner) {
		return
	}

	list, err := s.taskRepo.ListByOwner(r.Context(), owner)
	if err != nil {
		s.logger.Error(r.Context(), "task list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if list == nil {
		list = []models.Task{}
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	owner := userIDFrom(r.Context())

	if err := s.taskRepo.Delete(r.Context(), owner, mux.Vars(r)["id"]); err != nil {
		s.logger.Error(r.Context(), "task delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
