package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Anandrajbgp/Noteflow/internal/logging"
	"github.com/Anandrajbgp/Noteflow/internal/server/repositories/notes"
	"github.com/Anandrajbgp/Noteflow/internal/server/repositories/tasks"
	"github.com/Anandrajbgp/Noteflow/internal/server/users"
)

// Server holds the handler dependencies.
type Server struct {
	logger    logging.Logger
	users     *users.Service
	noteRepo  notes.Repository
	taskRepo  tasks.Repository
	jwtSecret []byte
}

func NewServer(logger logging.Logger, userSvc *users.Service, noteRepo notes.Repository, taskRepo tasks.Repository, jwtSecret []byte) *Server {
	return &Server{
		logger:    logger,
		users:     userSvc,
		noteRepo:  noteRepo,
		taskRepo:  taskRepo,
		jwtSecret: jwtSecret,
	}
}

// Router builds the full route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logMiddleware)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/ping", s.handlePing).Methods(http.MethodGet)
	api.HandleFunc("/users/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/users/login", s.handleLogin).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.authMiddleware)
	authed.HandleFunc("/notes", s.handleListNotes).Methods(http.MethodGet)
	authed.HandleFunc("/notes/{id}", s.handleUpsertNote).Methods(http.MethodPut)
	authed.HandleFunc("/notes/{id}", s.handleDeleteNote).Methods(http.MethodDelete)
	authed.HandleFunc("/tasks", s.handleListTasks).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/{id}", s.handleUpsertTask).Methods(http.MethodPut)
	authed.HandleFunc("/tasks/{id}", s.handleDeleteTask).Methods(http.MethodDelete)

	return r
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
