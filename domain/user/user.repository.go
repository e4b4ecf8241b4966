package user

import (
	"context"
	"errors"
	"nimbusBackend/utils"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

type (
	Repository interface {
		Create(ctx context.Context, user *User) error
		Update(ctx context.Context, user *User) error
		GetByUuid(ctx context.Context, uuid string) (*User, error)
		GetBySub(ctx context.Context, sub string) (*User, bool, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		log.Errorf("[DB] Failed to create user. Error: %s", err.Error())
		return utils.ErrorDatabaseError
	}

	return nil
}

func (r *userRepository) Update(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		log.Errorf("[DB] Failed to update user. Error: %s", err.Error())
		return utils.ErrorDatabaseError
	}

	return nil
}

func (r *userRepository) GetByUuid(ctx context.Context, userId string) (*User, error) {
	user := &User{}
	result := r.db.WithContext(ctx).Where("uuid = ?", userId).First(user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorUuidNotFound
	}
	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch user by UUID. Error: %s", result.Error.Error())
		return nil, utils.ErrorDatabaseError
	}

	return user, nil
}

func (r *userRepository) GetBySub(ctx context.Context, sub string) (*User, bool, error) {
	user := &User{}
	result := r.db.WithContext(ctx).Where("sub = ?", sub).First(user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch user by sub. Error: %s", result.Error.Error())
		return nil, false, utils.ErrorDatabaseError
	}

	return user, true, nil
}
