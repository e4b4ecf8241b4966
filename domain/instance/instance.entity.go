package instance

import (
	"nimbusBackend/domain/user"
	"time"

	"gorm.io/gorm"
)

type Instance struct {
	gorm.Model
	UUID         string `gorm:"uniqueIndex;not null"`
	Name         string `gorm:"index;not null"`
	InstanceId   string `gorm:"index"`
	Ami          string
	InstanceType string
	Keypair      string
	Profile      string
	State        string     `gorm:"index"`
	ExpiresAt    *time.Time `gorm:"index"`
	Creator      user.User
	CreatorID    uint `gorm:"not null"`
}

type InstanceIn struct {
	Name         string            `json:"name" binding:"required"`
	Ami          string            `json:"ami"`
	InstanceType string            `json:"instanceType"`
	Keypair      string            `json:"keypair"`
	SubnetId     string            `json:"subnetId"`
	VolumeSize   int               `json:"volumeSize"`
	Tags         map[string]string `json:"tags"`
	UserData     string            `json:"userData"`
	Profile      string            `json:"profile"`
	Ttl          string            `json:"ttl"`
}

type InstanceOut struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	InstanceId   string       `json:"instanceId"`
	Ami          string       `json:"ami"`
	InstanceType string       `json:"instanceType"`
	Profile      string       `json:"profile,omitempty"`
	State        string       `json:"state"`
	ExpiresAt    *time.Time   `json:"expiresAt,omitempty"`
	Creator      user.UserOut `json:"creator"`
}

type InstanceFilter struct {
	Limit       int      `form:"limit"`
	Offset      int      `form:"offset"`
	SearchQuery string   `form:"searchQuery"`
	StateFilter []string `form:"stateFilter[]"`
}
