package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Anandrajbgp/Noteflow/internal/common"
	"github.com/Anandrajbgp/Noteflow/internal/logging"
)

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPClient implements Client over the backend's REST API.
type HTTPClient struct {
	rc     *resty.Client
	logger logging.Logger

	mu    sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the backend at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &HTTPClient{rc: rc, logger: logger}
}

// SetToken installs the bearer token used on record operations.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) request(ctx context.Context) *resty.Request {
	r := c.rc.R().SetContext(ctx)
	c.mu.RLock()
	if c.token != "" {
		r.SetAuthToken(c.token)
	}
	c.mu.RUnlock()
	return r
}

// checkResponse folds a resty result into the gateway error taxonomy.
func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsSuccess() {
		return nil
	}
	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusConflict:
		return common.ErrLoginAlreadyExists
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusBadRequest:
		return common.ErrValidation
	default:
		var e errorResponse
		if uerr := json.Unmarshal(resp.Body(), &e); uerr == nil && e.Error != "" {
			return fmt.Errorf("server returned %s: %s", resp.Status(), e.Error)
		}
		return fmt.Errorf("server returned %s", resp.Status())
	}
}

func (c *HTTPClient) Close() error {
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.request(ctx).Get("/api/v1/ping")
	return checkResponse(resp, err)
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	resp, err := c.request(ctx).
		SetBody(credentials{Login: username, Password: password}).
		Post("/api/v1/users/register")
	return checkResponse(resp, err)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	var body loginResponse
	resp, err := c.request(ctx).
		SetBody(credentials{Login: username, Password: password}).
		SetResult(&body).
		Post("/api/v1/users/login")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	c.SetToken(body.AccessToken)
	c.logger.Debug(ctx, "logged in", "user_id", body.UserID)
	return &AuthResult{UserID: body.UserID, Token: body.AccessToken}, nil
}

func (c *HTTPClient) UpsertNote(ctx context.Context, p NotePayload) error {
	resp, err := c.request(ctx).SetBody(p).Put("/api/v1/notes/" + p.ID)
	return checkResponse(resp, err)
}

func (c *HTTPClient) UpsertTask(ctx context.Context, p TaskPayload) error {
	resp, err := c.request(ctx).SetBody(p).Put("/api/v1/tasks/" + p.ID)
	return checkResponse(resp, err)
}

func (c *HTTPClient) QueryNotes(ctx context.Context, ownerKey string) ([]NotePayload, error) {
	var out []NotePayload
	resp, err := c.request(ctx).
		SetQueryParam("owner_key", ownerKey).
		SetResult(&out).
		Get("/api/v1/notes")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) QueryTasks(ctx context.Context, ownerKey string) ([]TaskPayload, error) {
	var out []TaskPayload
	resp, err := c.request(ctx).
		SetQueryParam("owner_key", ownerKey).
		SetResult(&out).
		Get("/api/v1/tasks")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) DeleteNote(ctx context.Context, id string) error {
	resp, err := c.request(ctx).Delete("/api/v1/notes/" + id)
	return checkResponse(resp, err)
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id string) error {
	resp, err := c.request(ctx).Delete("/api/v1/tasks/" + id)
	return checkResponse(resp, err)
}
