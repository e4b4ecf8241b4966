package test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"nimbusBackend/cloud"
	"nimbusBackend/domain/chat"
	"nimbusBackend/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postChatCommand(router http.Handler, token string, text string) (*httptest.ResponseRecorder, chat.CommandResult) {
	payload, _ := json.Marshal(chat.CommandIn{
		Channel: "#ops",
		Sender:  "alice",
		Text:    text,
	})

	req := httptest.NewRequest("POST", "/chat/commands", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Nimbus-Token", token)
	}
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	var body utils.OkResponse[chat.CommandResult]
	_ = json.NewDecoder(resp.Body).Decode(&body)

	return resp, body.Payload
}

func TestChatCreate_Success(t *testing.T) {
	router, _, mockProvider := SetupTestServer(t)

	var calls []cloud.InstanceSpec
	mockProvider.CreateFunc = func(ctx context.Context, spec cloud.InstanceSpec) (*cloud.InstanceDetails, error) {
		calls = append(calls, spec)
		return &cloud.InstanceDetails{Id: "i-0new", Name: spec.Name, State: cloud.StatePending}, nil
	}

	resp, result := postChatCommand(router, testWebhookToken,
		`!aws create --ami=ami-123 --size=20 --instance_type=t3.large --tags="env=prod,team=core" web03`)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "web03")
	assert.Contains(t, result.Message, "i-0new")

	require.Len(t, calls, 1)
	assert.Equal(t, "web03", calls[0].Name)
	assert.Equal(t, "ami-123", calls[0].Ami)
	assert.Equal(t, "t3.large", calls[0].InstanceType)
	assert.Equal(t, 20, calls[0].VolumeSize)
	assert.Equal(t, "prod", calls[0].Tags["env"])
	assert.Equal(t, "core", calls[0].Tags["team"])
	assert.Equal(t, "web03", calls[0].Tags["Name"])
}

func TestChatCreate_ConfigDefaultsApply(t *testing.T) {
	router, _, mockProvider := SetupTestServer(t)

	var calls []cloud.InstanceSpec
	mockProvider.CreateFunc = func(ctx context.Context, spec cloud.InstanceSpec) (*cloud.InstanceDetails, error) {
		calls = append(calls, spec)
		return &cloud.InstanceDetails{Id: "i-0new", Name: spec.Name, State: cloud.StatePending}, nil
	}

	_, result := postChatCommand(router, testWebhookToken, "!aws create web03")

	assert.True(t, result.Success)
	require.Len(t, calls, 1)
	assert.Equal(t, "ami-0default", calls[0].Ami)
	assert.Equal(t, "t2.medium", calls[0].InstanceType)
	assert.Equal(t, "default-key", calls[0].Keypair)
	assert.Equal(t, 15, calls[0].VolumeSize)
}

func TestChatCreate_ProfileOverridesDefaults(t *testing.T) {
	router, _, mockProvider := SetupTestServer(t)

	var calls []cloud.InstanceSpec
	mockProvider.CreateFunc = func(ctx context.Context, spec cloud.InstanceSpec) (*cloud.InstanceDetails, error) {
		calls = append(calls, spec)
		return &cloud.InstanceDetails{Id: "i-0new", Name: spec.Name, State: cloud.StatePending}, nil
	}

	_, result := postChatCommand(router, testWebhookToken, "!aws create --profile=webserver --ami=ami-fromchat web03")

	assert.True(t, result.Success)
	require.Len(t, calls, 1)

	// Command options beat the profile, the profile beats the config
	assert.Equal(t, "ami-fromchat", calls[0].Ami)
	assert.Equal(t, "t3.medium", calls[0].InstanceType)
	assert.Equal(t, "web-key", calls[0].Keypair)
	assert.Equal(t, 20, calls[0].VolumeSize)
	assert.Equal(t, "webserver", calls[0].Tags["role"])
}

func TestChatCreate_MissingName(t *testing.T) {
	router, _, mockProvider := SetupTestServer(t)

	callCount := 0
	mockProvider.CreateFunc = func(ctx context.Context, spec cloud.InstanceSpec) (*cloud.InstanceDetails, error) {
		callCount++
		return nil, nil
	}

	resp, result := postChatCommand(router, testWebhookToken, "!aws create --ami=ami-123")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, utils.ErrorMissingArgument.Error())
	assert.Zero(t, callCount)
}

func TestChatCommand_UnsupportedAction(t *testing.T) {
	router, _, mockProvider := SetupTestServer(t)

	callCount := 0
	mockProvider.TerminateFunc = func(ctx context.Context, name string) (*cloud.InstanceDetails, error) {
		callCount++
		return nil, nil
	}

	_, result := postChatCommand(router, testWebhookToken, "!aws delete web01")

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, utils.ErrorUnsupportedAction.Error())
	assert.Zero(t, callCount)
}

func TestChatCreate_DuplicateName(t *testing.T) {
	router, _, mockProvider := SetupTestServer(t)

	callCount := 0
	mockProvider.CreateFunc = func(ctx context.Context, spec cloud.InstanceSpec) (*cloud.InstanceDetails, error) {
		callCount++
		return nil, nil
	}

	_, result := postChatCommand(router, testWebhookToken, "!aws create web01")

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, utils.ErrorInstanceExists.Error())
	assert.Zero(t, callCount)
}

func TestChatCreate_RecreateAfterTerminate(t *testing.T) {
	router, _, mockProvider := SetupTestServer(t)

	createCalls := 0
	mockProvider.CreateFunc = func(ctx context.Context, spec cloud.InstanceSpec) (*cloud.InstanceDetails, error) {
		createCalls++
		return &cloud.InstanceDetails{Id: "i-0dup", Name: spec.Name, State: cloud.StatePending}, nil
	}
	mockProvider.TerminateFunc = func(ctx context.Context, name string) (*cloud.InstanceDetails, error) {
		return &cloud.InstanceDetails{Id: "i-0dup", Name: name, State: cloud.StateTerminated}, nil
	}

	_, result := postChatCommand(router, testWebhookToken, "!aws create dup01")
	require.True(t, result.Success)

	_, result = postChatCommand(router, testWebhookToken, "!aws terminate dup01")
	require.True(t, result.Success)

	// The name is free again after termination
	_, result = postChatCommand(router, testWebhookToken, "!aws create dup01")
	require.True(t, result.Success)

	// A terminated record for the same name must not mask the live one
	_, result = postChatCommand(router, testWebhookToken, "!aws create dup01")
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, utils.ErrorInstanceExists.Error())
	assert.Equal(t, 2, createCalls)
}

func TestChatReboot_Success(t *testing.T) {
	router, _, mockProvider := SetupTestServer(t)

	var calls []string
	mockProvider.RebootFunc = func(ctx context.Context, name string) (*cloud.InstanceDetails, error) {
		calls = append(calls, name)
		return &cloud.InstanceDetails{Id: "i-0aa11bb22cc33dd44", Name: name, State: cloud.StateRunning}, nil
	}

	_, result := postChatCommand(router, testWebhookToken, "!aws reboot web01")

	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "web01")
	assert.Equal(t, []string{"web01"}, calls)
}

func TestChatReboot_UpstreamFailureKeepsDetail(t *testing.T) {
	router, _, mockProvider := SetupTestServer(t)

	mockProvider.RebootFunc = func(ctx context.Context, name string) (*cloud.InstanceDetails, error) {
		return nil, errors.New("RequestLimitExceeded: request rate too high")
	}

	_, result := postChatCommand(router, testWebhookToken, "!aws reboot web01")

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, utils.ErrorUpstreamFailure.Error())
	assert.Contains(t, result.Message, "RequestLimitExceeded")
}

func TestChatInfo_Success(t *testing.T) {
	router, _, mockProvider := SetupTestServer(t)

	mockProvider.DescribeFunc = func(ctx context.Context, name string) (*cloud.InstanceDetails, error) {
		return &cloud.InstanceDetails{
			Id:           "i-0aa11bb22cc33dd44",
			Name:         name,
			State:        cloud.StateRunning,
			InstanceType: "t2.medium",
			Keypair:      "ops-key",
			PrivateIps:   []string{"10.0.1.5"},
			PublicIps:    []string{"203.0.113.10"},
		}, nil
	}

	_, result := postChatCommand(router, testWebhookToken, "!aws info web01")

	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "i-0aa11bb22cc33dd44")
	assert.Contains(t, result.Message, "10.0.1.5")
	assert.Contains(t, result.Message, "203.0.113.10")
}

func TestChatList_Success(t *testing.T) {
	router, _, mockProvider := SetupTestServer(t)

	mockProvider.ListFunc = func(ctx context.Context) ([]cloud.InstanceDetails, error) {
		return []cloud.InstanceDetails{
			{Id: "i-0aa11bb22cc33dd44", Name: "web01", State: cloud.StateRunning},
			{Id: "i-0ee55ff66aa77bb88", Name: "batch02", State: cloud.StateStopped},
		}, nil
	}

	_, result := postChatCommand(router, testWebhookToken, "!aws list")

	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "web01")
	assert.Contains(t, result.Message, "batch02")
}

func TestChatTerminate_Success(t *testing.T) {
	router, _, mockProvider := SetupTestServer(t)

	var calls []string
	mockProvider.TerminateFunc = func(ctx context.Context, name string) (*cloud.InstanceDetails, error) {
		calls = append(calls, name)
		return &cloud.InstanceDetails{Id: "i-0ee55ff66aa77bb88", Name: name, State: cloud.StateTerminated}, nil
	}

	_, result := postChatCommand(router, testWebhookToken, "!aws terminate batch02")

	assert.True(t, result.Success)
	assert.Equal(t, []string{"batch02"}, calls)
}

func TestChatCommand_InvalidWebhookToken(t *testing.T) {
	router, _, _ := SetupTestServer(t)

	resp, _ := postChatCommand(router, "wrong-token", "!aws list")

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestChatCommand_MissingWebhookToken(t *testing.T) {
	router, _, _ := SetupTestServer(t)

	resp, _ := postChatCommand(router, "", "!aws list")

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestChatHistory_Success(t *testing.T) {
	router, authManager, _ := SetupTestServer(t)
	token := getValidAccessToken(authManager, "test-user-id1")

	_, result := postChatCommand(router, testWebhookToken, "!aws list")
	require.True(t, result.Success)

	req := httptest.NewRequest("GET", "/chat/history?limit=10&offset=0", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body utils.OkResponse[[]chat.ChatCommandOut]
	err := json.NewDecoder(resp.Body).Decode(&body)
	require.NoError(t, err)
	require.Len(t, body.Payload, 1)
	assert.Equal(t, "list", body.Payload[0].Action)
	assert.Equal(t, "#ops", body.Payload[0].Channel)
	assert.Equal(t, "alice", body.Payload[0].Sender)
}

func TestChatHistory_Unauthorized(t *testing.T) {
	router, _, _ := SetupTestServer(t)

	req := httptest.NewRequest("GET", "/chat/history", nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
