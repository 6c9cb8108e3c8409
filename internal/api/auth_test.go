package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrichef/nutrichef/backend/internal/types"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.performRequest(http.MethodPost, "/api/auth/register", "", types.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var registered struct {
		Token string `json:"token"`
	}
	decodeData(t, w, &registered)
	require.NotEmpty(t, registered.Token)

	// The token from registration works against a protected route
	w = env.performRequest(http.MethodGet, "/api/stats", registered.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.performRequest(http.MethodPost, "/api/auth/login", "", types.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var loggedIn struct {
		Token string `json:"token"`
	}
	decodeData(t, w, &loggedIn)
	assert.NotEmpty(t, loggedIn.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t, nil)

	req := types.RegisterRequest{Name: "Ada", Email: "dup@example.com", Password: "hunter2hunter2"}
	w := env.performRequest(http.MethodPost, "/api/auth/register", "", req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.performRequest(http.MethodPost, "/api/auth/register", "", req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, decodeEnvelope(t, w).Success)
}

func TestRegisterValidation(t *testing.T) {
	env := setupTestEnv(t, nil)

	// Bad email
	w := env.performRequest(http.MethodPost, "/api/auth/register", "", types.RegisterRequest{
		Email: "not-an-email", Password: "hunter2hunter2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Short password
	w = env.performRequest(http.MethodPost, "/api/auth/register", "", types.RegisterRequest{
		Email: "short@example.com", Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.performRequest(http.MethodPost, "/api/auth/register", "", types.RegisterRequest{
		Name: "Ada", Email: "ada2@example.com", Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.performRequest(http.MethodPost, "/api/auth/login", "", types.LoginRequest{
		Email:    "ada2@example.com",
		Password: "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", decodeEnvelope(t, w).Message)
}

func TestLoginUnknownUser(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.performRequest(http.MethodPost, "/api/auth/login", "", types.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter2hunter2",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
