package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRoutesMe(t *testing.T) {
	app := newTestApp(t)
	userID, token := registerUser(t, app, "alice", "alice@example.com")

	status, resp := request(t, app, http.MethodGet, "/api/user/me", token, nil)
	require.Equal(t, http.StatusOK, status)

	profile := resp["data"].(map[string]any)
	assert.Equal(t, userID, profile["id"])
	assert.Equal(t, "alice", profile["name"])
	assert.Equal(t, "alice@example.com", profile["email"])
	assert.NotContains(t, profile, "password")

	status, resp = request(t, app, http.MethodGet, "/api/user/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestUserRoutesUpdateSelfOnly(t *testing.T) {
	app := newTestApp(t)
	aliceID, aliceToken := registerUser(t, app, "alice", "alice@example.com")
	_, bobToken := registerUser(t, app, "bob", "bob@example.com")

	status, resp := request(t, app, http.MethodPut, "/api/user/"+aliceID, bobToken,
		map[string]any{"name": "mallory"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))

	status, resp = request(t, app, http.MethodPut, "/api/user/"+aliceID, aliceToken,
		map[string]any{"name": "alice m"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice m", resp["data"].(map[string]any)["name"])
}

func TestUserRoutesDeleteSelfOnly(t *testing.T) {
	app := newTestApp(t)
	aliceID, aliceToken := registerUser(t, app, "alice", "alice@example.com")
	_, bobToken := registerUser(t, app, "bob", "bob@example.com")

	status, resp := request(t, app, http.MethodDelete, "/api/user/"+aliceID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))

	status, _ = request(t, app, http.MethodDelete, "/api/user/"+aliceID, aliceToken, nil)
	require.Equal(t, http.StatusOK, status)

	// A token whose subject no longer exists stops authenticating.
	status, resp = request(t, app, http.MethodGet, "/api/user/me", aliceToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestAuthRoutesLoginFlow(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "alice", "alice@example.com")

	status, resp := request(t, app, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "Secret1",
	})
	require.Equal(t, http.StatusOK, status)
	token := resp["data"].(map[string]any)["auth"].(map[string]any)["token"].(string)
	assert.NotEmpty(t, token)

	status, resp = request(t, app, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "WrongPass1",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))

	status, resp = request(t, app, http.MethodPost, "/auth/register", "", map[string]any{
		"name":     "alice again",
		"email":    "alice@example.com",
		"password": "Secret1",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", errorCode(t, resp))
}
