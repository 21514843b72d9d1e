package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Anandrajbgp/Noteflow/internal/server/models"
)

func (s *Server) handleUpsertNote(w http.ResponseWriter, r *http.Request) {
	var n models.Note
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	n.ID = mux.Vars(r)["id"]
	if n.ID == "" {
		writeError(w, http.StatusBadRequest, "missing record id")
		return
	}
	if n.UpdatedAt.IsZero() {
		writeError(w, http.StatusBadRequest, "missing updated_at")
		return
	}
	// The token decides ownership, whatever the payload claims.
	n.OwnerKey = userIDFrom(r.Context())

	if err := s.noteRepo.Upsert(r.Context(), &n); err != nil {
		s.logger.Error(r.Context(), "note upsert failed", "id", n.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	owner := userIDFrom(r.Context())
	if !checkOwnerParam(w, r, owner) {
		return
	}

	list, err := s.noteRepo.ListByOwner(r.Context(), owner)
	if err != nil {
		s.logger.Error(r.Context(), "note list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if list == nil {
		list = []models.Note{}
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	owner := userIDFrom(r.Context())

	if err := s.noteRepo.Delete(r.Context(), owner, mux.Vars(r)["id"]); err != nil {
		s.logger.Error(r.Context(), "note delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
