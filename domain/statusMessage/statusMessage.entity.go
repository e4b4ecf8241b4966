package statusMessage

import (
	"nimbusBackend/types"
	"nimbusBackend/utils"
	"time"

	"gorm.io/gorm"
)

type StatusMessage struct {
	gorm.Model
	UUID      string `gorm:"uniqueIndex;not null"`
	Source    string `gorm:"index"`
	Content   string
	Severity  types.Severity
	Timestamp time.Time `gorm:"index;not null"`

	// The UUID of the receiving user. Empty for broadcast messages.
	Receiver string `gorm:"index"`
}

type StatusMessageOut struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	Content   string         `json:"content"`
	Severity  types.Severity `json:"severity"`
	Timestamp time.Time      `json:"timestamp"`
}

type StatusMessageFilter struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func newStatusMessage(source string, content string, severity types.Severity) *StatusMessage {
	return &StatusMessage{
		UUID:      utils.GenerateUuid(),
		Source:    source,
		Content:   content,
		Severity:  severity,
		Timestamp: time.Now(),
	}
}
