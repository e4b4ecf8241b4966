package test

import (
	"log"
	"nimbusBackend/domain/chat"
	"nimbusBackend/domain/instance"
	"nimbusBackend/domain/statusMessage"
	"nimbusBackend/domain/user"
	"nimbusBackend/storage"
	"nimbusBackend/utils"

	"gorm.io/gorm"
)

func GenerateTestData(db *gorm.DB, storageManager storage.StorageManager) {
	db.Exec("DROP TABLE IF EXISTS chat_commands,instances,status_messages,users")

	err := db.AutoMigrate(&user.User{})
	if err != nil {
		panic("Failed to migrate users")
	}

	err = db.AutoMigrate(&instance.Instance{})
	if err != nil {
		panic("Failed to migrate instances")
	}

	err = db.AutoMigrate(&statusMessage.StatusMessage{})
	if err != nil {
		panic("Failed to migrate status messages")
	}

	err = db.AutoMigrate(&chat.ChatCommand{})
	if err != nil {
		panic("Failed to migrate chat commands")
	}

	user1 := user.User{
		UUID: "test-user-id1",
		Sub:  "admin-sub",
		Name: "admin@nimbus.dev",
	}
	db.Create(&user1)

	user2 := user.User{
		UUID: "test-user-id2",
		Sub:  "member-sub",
		Name: "member@nimbus.dev",
	}
	db.Create(&user2)

	db.Create(&instance.Instance{
		UUID:         utils.GenerateUuid(),
		Name:         "web01",
		InstanceId:   "i-0aa11bb22cc33dd44",
		Ami:          "ami-0f00f00f",
		InstanceType: "t2.medium",
		Keypair:      "ops-key",
		State:        "running",
		Creator:      user1,
	})

	db.Create(&instance.Instance{
		UUID:         utils.GenerateUuid(),
		Name:         "batch02",
		InstanceId:   "i-0ee55ff66aa77bb88",
		Ami:          "ami-0f00f00f",
		InstanceType: "t2.small",
		Keypair:      "ops-key",
		State:        "stopped",
		Creator:      user2,
	})

	writeProfileFile("webserver", webserverProfile, storageManager)
}

const webserverProfile = `defaults:
  ami: ami-0webserver
  instanceType: t3.medium
  keypair: web-key
  volumeSize: 20
  tags:
    role: webserver`

func writeProfileFile(profileName string, content string, storageManager storage.StorageManager) {
	if err := storageManager.WriteProfile(profileName, content); err != nil {
		log.Fatalf("Failed to write test profile: %s", err.Error())
	}
}
