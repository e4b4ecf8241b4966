package chat

import (
	"nimbusBackend/types"

	"gorm.io/gorm"
)

type ChatAction string

const (
	ActionCreate    ChatAction = "create"
	ActionReboot    ChatAction = "reboot"
	ActionTerminate ChatAction = "terminate"
	ActionInfo      ChatAction = "info"
	ActionList      ChatAction = "list"
)

// InstanceRequest The structured form of a single chat command. Built by the
// parser, handed to exactly one provider-backed call and discarded afterwards.
type InstanceRequest struct {
	Action     ChatAction
	Name       string
	Parameters map[string]string
}

// ChatCommand An audit record of a processed chat command.
type ChatCommand struct {
	gorm.Model
	UUID         string `gorm:"uniqueIndex;not null"`
	Channel      string `gorm:"index"`
	Sender       string `gorm:"index"`
	Action       string
	InstanceName string
	Response     string
	Severity     types.Severity
}

type CommandIn struct {
	Channel string `json:"channel"`
	Sender  string `json:"sender"`
	Text    string `json:"text" binding:"required"`
}

type CommandResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ChatCommandOut struct {
	ID           string         `json:"id"`
	Channel      string         `json:"channel"`
	Sender       string         `json:"sender"`
	Action       string         `json:"action"`
	InstanceName string         `json:"instanceName,omitempty"`
	Response     string         `json:"response"`
	Severity     types.Severity `json:"severity"`
}

type HistoryFilter struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}
