package test

import (
	"nimbusBackend/auth"
	"nimbusBackend/cloud"
	"nimbusBackend/config"
	"nimbusBackend/domain/chat"
	"nimbusBackend/domain/instance"
	"nimbusBackend/domain/profile"
	"nimbusBackend/domain/statusMessage"
	"nimbusBackend/domain/user"
	"nimbusBackend/events"
	"nimbusBackend/socket"
	"nimbusBackend/storage"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testWebhookToken = "test-webhook-token"

// SetupTestServer Builds a fully wired web server against an in-memory database
// and a mocked cloud provider. Individual tests override the mock's functions to
// steer and observe provider calls.
func SetupTestServer(t *testing.T) (*gin.Engine, auth.AuthManager, *cloud.MockProvider) {
	t.Helper()

	testConfig := testConfig(t)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %s", err.Error())
	}

	authManager := auth.CreateAuthManager(testConfig)
	storageManager := storage.CreateStorageManager(testConfig)

	GenerateTestData(db, storageManager)

	mockProvider := &cloud.MockProvider{}

	socketManager := socket.CreateSocketManager(authManager)
	statusMessageNamespace := socket.CreateNamespace[statusMessage.StatusMessageOut](socketManager, false, true, "status-messages")

	notificationEvent := events.CreateEvent[events.NotificationEventData]()

	var (
		userRepository = user.CreateRepository(db)
		userService    = user.CreateService(testConfig, userRepository, authManager)
		userHandler    = user.CreateHandler(userService)

		statusMessageRepository = statusMessage.CreateRepository(db)
		statusMessageService    = statusMessage.CreateService(statusMessageRepository, notificationEvent, statusMessageNamespace)
		statusMessageHandler    = statusMessage.CreateHandler(statusMessageService)

		profileService = profile.CreateService(testConfig, storageManager)
		profileHandler = profile.CreateHandler(profileService)

		instanceRepository = instance.CreateRepository(db)
		instanceService    = instance.CreateService(testConfig, instanceRepository, userRepository, profileService, mockProvider, storageManager, notificationEvent)
		instanceHandler    = instance.CreateHandler(instanceService)

		chatRepository = chat.CreateRepository(db)
		chatService    = chat.CreateService(testConfig, chatRepository, instanceService)
		chatHandler    = chat.CreateHandler(chatService)
	)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	user.RegisterRoutes(router, userHandler)
	instance.RegisterRoutes(router, instanceHandler, authManager)
	profile.RegisterRoutes(router, profileHandler, authManager)
	statusMessage.RegisterRoutes(router, statusMessageHandler, authManager)
	chat.RegisterRoutes(router, chatHandler, authManager, testWebhookToken)

	return router, authManager, mockProvider
}

func testConfig(t *testing.T) *config.NimbusConfig {
	t.Helper()
	baseDir := t.TempDir()

	return &config.NimbusConfig{
		General: config.GeneralConfig{
			Provider: "ec2",
		},
		Aws: config.AwsConfig{
			Region: "us-east-1",
			Defaults: config.CreateDefaults{
				Ami:          "ami-0default",
				Keypair:      "default-key",
				InstanceType: "t2.medium",
				VolumeSize:   15,
				BaseTags: map[string]string{
					"team": "systems",
				},
			},
		},
		Chat: config.ChatConfig{
			CommandPrefix: "!aws",
		},
		FileSystem: config.FilesystemConfig{
			Profiles:      filepath.Join(baseDir, "profiles"),
			Run:           filepath.Join(baseDir, "run"),
			ProfileSchema: filepath.Join(baseDir, "profile.schema.json"),
		},
		Auth: config.AuthConfig{
			EnableNativeAdmin: true,
			EnableOpenId:      false,
		},
	}
}

func getValidAccessToken(authManager auth.AuthManager, userId string) string {
	authUser := auth.AuthenticatedUser{
		UserId:  userId,
		IsAdmin: userId == "test-user-id1",
		Groups:  make([]string, 0),
	}

	_, _ = authManager.RegisterTestUser(authUser)
	token, _ := authManager.CreateAccessToken(authUser)

	return token
}
