package main

import (
	"context"
	"fmt"
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
	"nimbusBackend/test"
	"nimbusBackend/utils"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables from .env file if present
	_ = godotenv.Load()

	cmdArgs := utils.ParseArguments()
	isDevMode := *cmdArgs.DevelopmentMode

	log.SetTimeFormat("[2006-01-02 15:04:05]")

	if isDevMode {
		log.SetReportCaller(true)
	}

	nimbusConfig := config.Load(*cmdArgs.ConfigFile)
	authManager := auth.CreateAuthManager(nimbusConfig)
	storageManager := storage.CreateStorageManager(nimbusConfig)

	db := connectToDatabase(*cmdArgs.UseLocalDatabase, nimbusConfig)
	migrateDatabase(db)

	if isDevMode {
		test.GenerateTestData(db, storageManager)
	}

	cloudProvider, err := cloud.GetProvider(nimbusConfig)
	if err != nil {
		log.Fatalf("Failed to create the cloud provider: %s", err.Error())
		os.Exit(1)
	}

	socketManager := socket.CreateSocketManager(authManager)
	statusMessageNamespace := socket.CreateNamespace[statusMessage.StatusMessageOut](socketManager, false, true, "status-messages")

	notificationEvent := events.CreateEvent[events.NotificationEventData]()

	var (
		userRepository = user.CreateRepository(db)
		userService    = user.CreateService(nimbusConfig, userRepository, authManager)
		userHandler    = user.CreateHandler(userService)

		statusMessageRepository = statusMessage.CreateRepository(db)
		statusMessageService    = statusMessage.CreateService(statusMessageRepository, notificationEvent, statusMessageNamespace)
		statusMessageHandler    = statusMessage.CreateHandler(statusMessageService)

		profileService = profile.CreateService(nimbusConfig, storageManager)
		profileHandler = profile.CreateHandler(profileService)

		instanceRepository = instance.CreateRepository(db)
		instanceService    = instance.CreateService(nimbusConfig, instanceRepository, userRepository, profileService, cloudProvider, storageManager, notificationEvent)
		instanceHandler    = instance.CreateHandler(instanceService)

		chatRepository = chat.CreateRepository(db)
		chatService    = chat.CreateService(nimbusConfig, chatRepository, instanceService)
		chatHandler    = chat.CreateHandler(chatService)
	)

	go instanceService.RunExpiryWorker(context.Background())

	gin.SetMode(gin.ReleaseMode)
	webServer := gin.Default()

	// Public endpoints
	user.RegisterRoutes(webServer, userHandler)

	// Authenticated endpoints
	instance.RegisterRoutes(webServer, instanceHandler, authManager)
	profile.RegisterRoutes(webServer, profileHandler, authManager)
	statusMessage.RegisterRoutes(webServer, statusMessageHandler, authManager)
	chat.RegisterRoutes(webServer, chatHandler, authManager, os.Getenv("NB_CHAT_TOKEN"))

	// Register Socket.IO endpoints
	socketHandler := gin.WrapH(socketManager.ServeHandler())
	webServer.GET("/socket.io/*any", socketHandler)
	webServer.POST("/socket.io/*any", socketHandler)

	var serverWaitGroup sync.WaitGroup
	connection := fmt.Sprintf("%s:%d", nimbusConfig.Server.Host, nimbusConfig.Server.Port)

	serverWaitGroup.Add(1)
	go startWebServer(webServer, connection, &serverWaitGroup)
	time.Sleep(100)

	log.Info("Nimbus API is ready to serve calls!", "conn", connection)
	serverWaitGroup.Wait()
}

func connectToDatabase(useLocalDatabase bool, config *config.NimbusConfig) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	if useLocalDatabase {
		log.Info("Connecting to local SQLite database", "path", config.Database.LocalFile)

		_ = os.Remove(config.Database.LocalFile)
		db, err = gorm.Open(sqlite.Open(config.Database.LocalFile), &gorm.Config{})
	} else {
		connection := fmt.Sprintf("%s@%s:%d/%s", config.Database.User, config.Database.Host, config.Database.Port, config.Database.Database)
		log.Info("Connecting to remote PostgreSQL database", "conn", connection)

		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d",
			config.Database.Host,
			config.Database.User,
			os.Getenv("NB_DATABASE_PASSWORD"),
			config.Database.Database,
			config.Database.Port,
		)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("Failed to connect to database: %s", err.Error())
		os.Exit(1)
	}

	return db
}

func migrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(
		&user.User{},
		&instance.Instance{},
		&statusMessage.StatusMessage{},
		&chat.ChatCommand{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %s", err.Error())
		os.Exit(1)
	}
}

func startWebServer(server *gin.Engine, socket string, waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()

	if err := server.Run(socket); err != nil {
		log.Fatalf("Failed to start web server on %s: %s", socket, err.Error())
	}
}
