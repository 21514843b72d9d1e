package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anandrajbgp/Noteflow/internal/common"
	"github.com/Anandrajbgp/Noteflow/internal/logging"
)

func newTestClient(t *testing.T, handler http.Handler) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 5*time.Second, logging.NewNop()), srv
}

func TestLoginStoresToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/users/login", func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		assert.Equal(t, "alice", c.Login)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(loginResponse{UserID: "user-1", AccessToken: "tok-123"})
	})
	mux.HandleFunc("GET /api/v1/notes", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "user-1", r.URL.Query().Get("owner_key"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]NotePayload{})
	})

	c, _ := newTestClient(t, mux)
	ctx := context.Background()

	res, err := c.Login(ctx, "alice", "pass")
	require.NoError(t, err)
	assert.Equal(t, "user-1", res.UserID)

	notes, err := c.QueryNotes(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestRegisterConflict(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))

	err := c.Register(context.Background(), "alice", "pass")
	require.ErrorIs(t, err, common.ErrLoginAlreadyExists)
}

func TestUnauthorizedMapped(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.QueryTasks(context.Background(), "user-1")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestUnreachableServerMapped(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second, logging.NewNop())
	err := c.Ping(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestUpsertNoteSendsPayload(t *testing.T) {
	var got NotePayload
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/v1/notes/n1", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	c, _ := newTestClient(t, mux)
	p := NotePayload{ID: "n1", OwnerKey: "user-1", Title: "hello", Labels: []string{}}
	require.NoError(t, c.UpsertNote(context.Background(), p))
	assert.Equal(t, p, got)
}

func TestServerErrorMessageSurfaced(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errorResponse{Error: "db down"})
	}))

	err := c.DeleteTask(context.Background(), "t1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
