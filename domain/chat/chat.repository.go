package chat

import (
	"context"
	"nimbusBackend/utils"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

type (
	Repository interface {
		GetAll(ctx context.Context, filter *HistoryFilter) ([]ChatCommand, error)
		Create(ctx context.Context, command *ChatCommand) error
	}

	chatRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &chatRepository{
		db: db,
	}
}

func (r *chatRepository) GetAll(ctx context.Context, filter *HistoryFilter) ([]ChatCommand, error) {
	var commands []ChatCommand

	queryCtx := r.db.WithContext(ctx).Order("created_at DESC")
	if filter != nil && filter.Limit > 0 {
		queryCtx = queryCtx.Limit(filter.Limit).Offset(filter.Offset)
	}

	result := queryCtx.Find(&commands)
	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch chat commands: %s", result.Error)
		return nil, utils.ErrorDatabaseError
	}

	return commands, nil
}

func (r *chatRepository) Create(ctx context.Context, command *ChatCommand) error {
	result := r.db.WithContext(ctx).Create(command)
	if result.Error != nil {
		log.Errorf("[DB] Failed to create chat command: %s", result.Error)
		return utils.ErrorDatabaseError
	}

	return nil
}
