package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/auth"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/config"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    testSecret,
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	us := services.NewUserService(nil, repomanager.NewMemoryRepositoryManager(), cfg)
	ts := httptest.NewServer(NewServer("", logging.Nop(), us).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp, readJSON(t, resp)
}

func get(t *testing.T, ts *httptest.Server, path, token string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp, readJSON(t, resp)
}

func readJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	out := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func registerAndLogin(t *testing.T, ts *httptest.Server) (string, string) {
	t.Helper()
	resp, _ := post(t, ts, "/auth/register", map[string]any{"username": "alice", "email": "alice@example.com", "password": "pw"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := post(t, ts, "/auth/login", map[string]any{"username": "alice", "password": "pw"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return body["access_token"].(string), body["refresh_token"].(string)
}

func TestRoot(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello World!", body["message"])
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	resp, body := post(t, ts, "/auth/register", map[string]any{
		"username": "alice", "email": "alice@example.com", "password": "pw", "housing_size": 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, true, body["is_active"])
	assert.Equal(t, 3.0, body["housing_size"])
	assert.NotEmpty(t, body["id"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "hashed_password")

	resp, body = post(t, ts, "/auth/register", map[string]any{"username": "alice", "email": "other@example.com", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username already registered", body["detail"])

	resp, body = post(t, ts, "/auth/register", map[string]any{"username": "bob", "email": "alice@example.com", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already registered", body["detail"])

	resp, _ = post(t, ts, "/auth/register", map[string]any{"username": "carol", "email": "nope", "password": "pw"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRegister_InvalidBody(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/auth/register", "application/json", bytes.NewBufferString("{"))
	require.NoError(t, err)
	body := readJSON(t, resp)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Invalid request body", body["detail"])
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	access, refresh := registerAndLogin(t, ts)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	resp, body := post(t, ts, "/auth/login", map[string]any{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Incorrect username or password", body["detail"])
}

func TestMe(t *testing.T) {
	ts := newTestServer(t)
	access, refresh := registerAndLogin(t, ts)

	resp, body := get(t, ts, "/auth/users/me", access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice@example.com", body["email"])

	resp, body = get(t, ts, "/auth/users/me", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Not authenticated", body["detail"])
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))

	resp, _ = get(t, ts, "/auth/users/me", refresh)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	expired, err := auth.GenerateToken("alice", common.TokenTypeAccess, []byte(testSecret), -time.Minute)
	require.NoError(t, err)
	resp, body = get(t, ts, "/auth/users/me", expired)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token has expired", body["detail"])
}

func TestRefreshAndLogout(t *testing.T) {
	ts := newTestServer(t)
	access, refresh := registerAndLogin(t, ts)

	resp, body := post(t, ts, "/auth/refresh", map[string]any{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, refresh, body["refresh_token"])
	assert.Equal(t, "bearer", body["token_type"])

	resp, _ = post(t, ts, "/auth/refresh", map[string]any{"refresh_token": access})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = post(t, ts, "/auth/logout", map[string]any{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Successfully logged out", body["detail"])

	resp, body = post(t, ts, "/auth/refresh", map[string]any{"refresh_token": refresh})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token has been revoked", body["detail"])

	resp, _ = post(t, ts, "/auth/logout", map[string]any{"refresh_token": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequestIDIsEchoedThroughMiddleware(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/", nil)
	require.NoError(t, err)
	req.Header.Set(common.RequestIDHeader, "req-1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
