package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"nimbusBackend/domain/user"
	"nimbusBackend/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginNative_Success(t *testing.T) {
	t.Setenv("NB_NATIVE_USERNAME", "admin")
	t.Setenv("NB_NATIVE_PASSWORD", "hunter2")

	router, _, _ := SetupTestServer(t)

	payload, _ := json.Marshal(user.CredentialsIn{Username: "admin", Password: "hunter2"})

	req := httptest.NewRequest("POST", "/users/login/native", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	cookieNames := make([]string, 0)
	for _, cookie := range resp.Result().Cookies() {
		cookieNames = append(cookieNames, cookie.Name)
	}
	assert.Contains(t, cookieNames, "authToken")
	assert.Contains(t, cookieNames, "accessToken")
}

func TestLoginNative_WrongPassword(t *testing.T) {
	t.Setenv("NB_NATIVE_USERNAME", "admin")
	t.Setenv("NB_NATIVE_PASSWORD", "hunter2")

	router, _, _ := SetupTestServer(t)

	payload, _ := json.Marshal(user.CredentialsIn{Username: "admin", Password: "wrong"})

	req := httptest.NewRequest("POST", "/users/login/native", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestLoginNative_MissingCredentials(t *testing.T) {
	router, _, _ := SetupTestServer(t)

	req := httptest.NewRequest("POST", "/users/login/native", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAuthConfig_Success(t *testing.T) {
	router, _, _ := SetupTestServer(t)

	req := httptest.NewRequest("GET", "/users/login/config", nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body utils.OkResponse[user.AuthConfigOut]
	err := json.NewDecoder(resp.Body).Decode(&body)
	require.NoError(t, err)
	assert.True(t, body.Payload.EnableNative)
	assert.False(t, body.Payload.EnableOpenId)
}

func TestRefreshToken_Success(t *testing.T) {
	t.Setenv("NB_NATIVE_USERNAME", "admin")
	t.Setenv("NB_NATIVE_PASSWORD", "hunter2")

	router, _, _ := SetupTestServer(t)

	payload, _ := json.Marshal(user.CredentialsIn{Username: "admin", Password: "hunter2"})

	loginReq := httptest.NewRequest("POST", "/users/login/native", bytes.NewReader(payload))
	loginReq.Header.Set("Content-Type", "application/json")
	loginResp := httptest.NewRecorder()

	router.ServeHTTP(loginResp, loginReq)
	require.Equal(t, http.StatusOK, loginResp.Code)

	var authToken string
	for _, cookie := range loginResp.Result().Cookies() {
		if cookie.Name == "authToken" {
			authToken = cookie.Value
		}
	}
	require.NotEmpty(t, authToken)

	req := httptest.NewRequest("GET", "/users/login/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "authToken", Value: authToken})
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body utils.OkResponse[string]
	err := json.NewDecoder(resp.Body).Decode(&body)
	require.NoError(t, err)
	assert.NotEmpty(t, body.Payload)
}

func TestRefreshToken_MissingCookie(t *testing.T) {
	router, _, _ := SetupTestServer(t)

	req := httptest.NewRequest("GET", "/users/login/refresh", nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogout_ClearsCookies(t *testing.T) {
	router, _, _ := SetupTestServer(t)

	req := httptest.NewRequest("POST", "/users/logout", nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	for _, cookie := range resp.Result().Cookies() {
		assert.Empty(t, cookie.Value)
	}
}
