package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"nimbusBackend/domain/profile"
	"nimbusBackend/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfiles_Success(t *testing.T) {
	router, authManager, _ := SetupTestServer(t)
	token := getValidAccessToken(authManager, "test-user-id2")

	req := httptest.NewRequest("GET", "/profiles", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body utils.OkResponse[[]profile.ProfileOut]
	err := json.NewDecoder(resp.Body).Decode(&body)
	require.NoError(t, err)
	require.Len(t, body.Payload, 1)
	assert.Equal(t, "webserver", body.Payload[0].Name)
	assert.Equal(t, "ami-0webserver", body.Payload[0].Defaults.Ami)
}

func TestGetProfile_NotFound(t *testing.T) {
	router, authManager, _ := SetupTestServer(t)
	token := getValidAccessToken(authManager, "test-user-id2")

	req := httptest.NewRequest("GET", "/profiles/ghost", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestPutProfile_AdminSuccess(t *testing.T) {
	router, authManager, _ := SetupTestServer(t)
	token := getValidAccessToken(authManager, "test-user-id1")

	payload, _ := json.Marshal(profile.ProfileIn{
		Defaults: profile.ProfileDefaults{
			Ami:          "ami-0database",
			InstanceType: "r5.large",
			VolumeSize:   100,
			Tags:         map[string]string{"role": "database"},
		},
		UserData: "#!/bin/sh\napt-get install -y postgresql",
	})

	req := httptest.NewRequest("PUT", "/profiles/database", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	getReq := httptest.NewRequest("GET", "/profiles/database", nil)
	getReq.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	getResp := httptest.NewRecorder()

	router.ServeHTTP(getResp, getReq)

	assert.Equal(t, http.StatusOK, getResp.Code)
	var body utils.OkResponse[profile.ProfileOut]
	err := json.NewDecoder(getResp.Body).Decode(&body)
	require.NoError(t, err)
	assert.Equal(t, "ami-0database", body.Payload.Defaults.Ami)
	assert.Contains(t, body.Payload.UserData, "postgresql")
}

func TestPutProfile_SchemaViolation(t *testing.T) {
	router, authManager, _ := SetupTestServer(t)
	token := getValidAccessToken(authManager, "test-user-id1")

	// A negative volume size fails schema validation
	payload, _ := json.Marshal(profile.ProfileIn{
		Defaults: profile.ProfileDefaults{VolumeSize: -5},
	})

	req := httptest.NewRequest("PUT", "/profiles/broken", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestPutProfile_NonAdminForbidden(t *testing.T) {
	router, authManager, _ := SetupTestServer(t)
	token := getValidAccessToken(authManager, "test-user-id2")

	payload, _ := json.Marshal(profile.ProfileIn{
		Defaults: profile.ProfileDefaults{Ami: "ami-0database"},
	})

	req := httptest.NewRequest("PUT", "/profiles/database", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestDeleteProfile_AdminSuccess(t *testing.T) {
	router, authManager, _ := SetupTestServer(t)
	token := getValidAccessToken(authManager, "test-user-id1")

	req := httptest.NewRequest("DELETE", "/profiles/webserver", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	getReq := httptest.NewRequest("GET", "/profiles/webserver", nil)
	getReq.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	getResp := httptest.NewRecorder()

	router.ServeHTTP(getResp, getReq)

	assert.Equal(t, http.StatusNotFound, getResp.Code)
}

func TestDeleteProfile_NonAdminForbidden(t *testing.T) {
	router, authManager, _ := SetupTestServer(t)
	token := getValidAccessToken(authManager, "test-user-id2")

	req := httptest.NewRequest("DELETE", "/profiles/webserver", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}
