package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Anandrajbgp/Noteflow/internal/common"
)

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if _, err := s.users.Register(r.Context(), c.Login, c.Password); err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, common.ErrLoginAlreadyExists):
			writeError(w, http.StatusConflict, "login already taken")
		default:
			s.logger.Error(r.Context(), "register failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	res, err := s.users.Login(r.Context(), c.Login, c.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "wrong login or password")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{UserID: res.UserID, AccessToken: res.AccessToken})
}
