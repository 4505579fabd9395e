package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/config"
	"github.com/pollhive/pollhive/internal/db/models"
	"github.com/pollhive/pollhive/internal/outcome"
	"github.com/pollhive/pollhive/internal/web/session"
)

// setupService builds a full service backed by an in-memory database and
// an in-memory session store.
func setupService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Membership{},
		&models.InviteLink{},
		&models.JoinGroupRequest{},
		&models.Poll{},
		&models.PollAccess{},
		&models.PollMember{},
		&models.Vote{},
		&models.Comment{},
		&models.SharePollLink{},
		&models.JoinPollInvite{},
	)
	require.NoError(t, err, "failed to migrate test database")

	session.Init(nil)

	cfg := &config.Config{
		Title: "test",
		Webserver: config.Webserver{
			Session: config.Session{ExpiryTime: time.Hour},
		},
	}

	return New(cfg, db)
}

// request performs a JSON request against the service, optionally carrying
// a session cookie, and decodes the response body into out when non-nil.
func request(t *testing.T, svc *Service, method, target, cookie string, body, out any) *http.Response {
	t.Helper()

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}

	resp, err := svc.App.Test(req, -1)
	require.NoError(t, err)

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	require.NoError(t, resp.Body.Close())

	return resp
}

// registerAndLogin creates an account and returns its session cookie.
func registerAndLogin(t *testing.T, svc *Service, username string) string {
	t.Helper()

	resp := request(t, svc, http.MethodPost, "/users/create", "", map[string]any{
		"username": username,
		"password": "hunter2hunter2",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = request(t, svc, http.MethodPost, "/users/login", "", map[string]any{
		"username": username,
		"password": "hunter2hunter2",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c.Value
		}
	}
	t.Fatal("login response carries no session cookie")

	return ""
}

func TestCheckAlive(t *testing.T) {
	svc := setupService(t)

	resp := request(t, svc, http.MethodGet, CheckAlivePath, "", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	svc := setupService(t)

	resp := request(t, svc, http.MethodGet, "/users/me", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = request(t, svc, http.MethodGet, "/users/me", "bogus-session", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginAndMe(t *testing.T) {
	svc := setupService(t)
	cookie := registerAndLogin(t, svc, "alice")

	var me struct {
		Username string `json:"username"`
		Image    string `json:"image"`
	}
	resp := request(t, svc, http.MethodGet, "/users/me", cookie, nil, &me)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", me.Username)
	assert.NotEmpty(t, me.Image)

	// logging out invalidates the session
	resp = request(t, svc, http.MethodPost, "/users/logout", cookie, nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = request(t, svc, http.MethodGet, "/users/me", cookie, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWrongCredentials(t *testing.T) {
	svc := setupService(t)
	registerAndLogin(t, svc, "alice")

	resp := request(t, svc, http.MethodPost, "/users/login", "", map[string]any{
		"username": "alice",
		"password": "wrong-password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// errorBody is the JSON error contract of the API.
type errorBody struct {
	ExceptionID int    `json:"exception_id"`
	Message     string `json:"message"`
}

func TestErrorContract(t *testing.T) {
	svc := setupService(t)
	cookie := registerAndLogin(t, svc, "alice")

	var body errorBody
	resp := request(t, svc, http.MethodGet, "/polls/999", cookie, nil, &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, outcome.NotFound.ID, body.ExceptionID)
	assert.NotEmpty(t, body.Message)

	// a poll without any terminating bound is rejected
	body = errorBody{}
	resp = request(t, svc, http.MethodPost, "/polls", cookie, map[string]any{
		"title": "never ends",
	}, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, outcome.NoNeededConstraints.ID, body.ExceptionID)
}

func TestInviteFlowOverHTTP(t *testing.T) {
	svc := setupService(t)
	owner := registerAndLogin(t, svc, "alice")
	joiner := registerAndLogin(t, svc, "bob")

	var group struct {
		ID uint64 `json:"ID"`
	}
	resp := request(t, svc, http.MethodPost, "/groups", owner, map[string]any{
		"name": "book-club",
	}, &group)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotZero(t, group.ID)

	groupPath := "/groups/" + strconv.FormatUint(group.ID, 10)

	var link struct {
		Code string `json:"Code"`
	}
	resp = request(t, svc, http.MethodPost, groupPath+"/invites", owner, map[string]any{
		"role": "viewer",
	}, &link)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, link.Code)

	resp = request(t, svc, http.MethodPost, "/invites/"+link.Code+"/join", joiner, nil, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// the fresh viewer cannot issue invites
	var body errorBody
	resp = request(t, svc, http.MethodPost, groupPath+"/invites", joiner, map[string]any{
		"role": "viewer",
	}, &body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, outcome.Forbidden.ID, body.ExceptionID)
}
