package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anandrajbgp/Noteflow/internal/logging"
	"github.com/Anandrajbgp/Noteflow/internal/server/models"
	"github.com/Anandrajbgp/Noteflow/internal/server/repositories/notes"
	"github.com/Anandrajbgp/Noteflow/internal/server/repositories/tasks"
	userrepo "github.com/Anandrajbgp/Noteflow/internal/server/repositories/users"
	"github.com/Anandrajbgp/Noteflow/internal/server/users"
)

var secret = []byte("test-secret")

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := NewServer(
		logging.NewNop(),
		users.NewService(userrepo.NewMemoryRepository(), secret, time.Hour),
		notes.NewMemoryRepository(),
		tasks.NewMemoryRepository(),
		secret,
	)
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func registerAndLogin(t *testing.T, srv *httptest.Server, login string) (userID, token string) {
	t.Helper()
	creds := map[string]string{"login": login, "password": "correct horse"}

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/users/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/users/login", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lr loginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&lr))
	return lr.UserID, lr.AccessToken
}

func TestPing(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/v1/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterConflict(t *testing.T) {
	srv := newTestServer(t)
	creds := map[string]string{"login": "alice", "password": "correct horse"}

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/users/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/users/register", "", creds)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginRejected(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv, "alice")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/users/login", "",
		map[string]string{"login": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRecordsRequireToken(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/notes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/notes", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNoteUpsertAndList(t *testing.T) {
	srv := newTestServer(t)
	userID, token := registerAndLogin(t, srv, "alice")

	now := time.Now().UTC().Truncate(time.Second)
	note := models.Note{
		ID:        "n1",
		OwnerKey:  "claimed-by-somebody-else",
		Title:     "hello",
		Labels:    []string{"inbox"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/notes/n1", token, note)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/notes", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []models.Note
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "hello", list[0].Title)
	assert.Equal(t, userID, list[0].OwnerKey, "ownership comes from the token, not the payload")
}

func TestNoteStaleUpsertDropped(t *testing.T) {
	srv := newTestServer(t)
	_, token := registerAndLogin(t, srv, "alice")

	now := time.Now().UTC().Truncate(time.Second)
	current := models.Note{ID: "n1", Title: "current", CreatedAt: now, UpdatedAt: now}
	stale := models.Note{ID: "n1", Title: "stale", CreatedAt: now, UpdatedAt: now.Add(-time.Hour)}

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/notes/n1", token, current)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/notes/n1", token, stale)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/notes", token, nil)
	var list []models.Note
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "current", list[0].Title)
}

func TestNoteUpsertRequiresTimestamp(t *testing.T) {
	srv := newTestServer(t)
	_, token := registerAndLogin(t, srv, "alice")

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/notes/n1", token, models.Note{ID: "n1", Title: "no stamp"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListRejectsForeignOwnerParam(t *testing.T) {
	srv := newTestServer(t)
	userID, token := registerAndLogin(t, srv, "alice")

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/notes?owner_key=somebody-else", token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/tasks?owner_key=somebody-else", token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The owner's own key passes.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/notes?owner_key="+userID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOwnersDoNotSeeEachOther(t *testing.T) {
	srv := newTestServer(t)
	_, aliceToken := registerAndLogin(t, srv, "alice")
	_, bobToken := registerAndLogin(t, srv, "bob")

	now := time.Now().UTC()
	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/notes/n1", aliceToken,
		models.Note{ID: "n1", Title: "alice's", CreatedAt: now, UpdatedAt: now})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/notes", bobToken, nil)
	var list []models.Note
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Empty(t, list)
}

func TestNoteDelete(t *testing.T) {
	srv := newTestServer(t)
	_, token := registerAndLogin(t, srv, "alice")

	now := time.Now().UTC()
	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/notes/n1", token,
		models.Note{ID: "n1", CreatedAt: now, UpdatedAt: now})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/notes/n1", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/notes", token, nil)
	var list []models.Note
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Empty(t, list)
}

func TestTaskUpsertAndList(t *testing.T) {
	srv := newTestServer(t)
	_, token := registerAndLogin(t, srv, "alice")

	now := time.Now().UTC()
	listID := int64(2)
	task := models.Task{
		ID:        "t1",
		Title:     "water plants",
		Date:      "2026-03-02",
		Time:      "09:30",
		Frequency: "weekly",
		ListID:    &listID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/v1/tasks/t1", token, task)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/tasks", token, nil)
	var list []models.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "water plants", list[0].Title)
	require.NotNil(t, list[0].ListID)
	assert.Equal(t, int64(2), *list[0].ListID)
}
