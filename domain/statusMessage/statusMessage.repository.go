package statusMessage

import (
	"context"
	"nimbusBackend/utils"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

type (
	Repository interface {
		Create(ctx context.Context, statusMessage *StatusMessage) error
		GetForUser(ctx context.Context, userId string) ([]StatusMessage, error)
	}

	statusMessageRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &statusMessageRepository{
		db: db,
	}
}

func (r *statusMessageRepository) Create(ctx context.Context, statusMessage *StatusMessage) error {
	if err := r.db.WithContext(ctx).Create(statusMessage).Error; err != nil {
		log.Errorf("[DB] Failed to create status message. Error: %s", err.Error())
		return utils.ErrorDatabaseError
	}

	return nil
}

func (r *statusMessageRepository) GetForUser(ctx context.Context, userId string) ([]StatusMessage, error) {
	statusMessages := make([]StatusMessage, 0)
	result := r.db.WithContext(ctx).
		Where("receiver = ? OR receiver = ''", userId).
		Order("status_messages.timestamp DESC").
		Find(&statusMessages)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch status messages. Error: %s", result.Error.Error())
		return nil, utils.ErrorDatabaseError
	}

	return statusMessages, nil
}
