package instance

import (
	"context"
	"nimbusBackend/cloud"
	"nimbusBackend/utils"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

type (
	Repository interface {
		GetAll(ctx context.Context, instanceFilter *InstanceFilter) ([]Instance, error)
		GetByName(ctx context.Context, name string) (*Instance, error)
		GetLiveByName(ctx context.Context, name string) (*Instance, error)
		GetByUuid(ctx context.Context, instanceId string) (*Instance, error)

		Create(ctx context.Context, instance *Instance) error
		Update(ctx context.Context, instance *Instance) error
		Delete(ctx context.Context, instance *Instance) error
	}

	instanceRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &instanceRepository{
		db: db,
	}
}

func (r *instanceRepository) GetAll(ctx context.Context, instanceFilter *InstanceFilter) ([]Instance, error) {
	var instances []Instance
	query := r.db.WithContext(ctx).
		Preload("Creator").
		Order("instances.created_at")

	if instanceFilter != nil {
		if len(instanceFilter.StateFilter) > 0 {
			query = query.Where("instances.state IN ?", instanceFilter.StateFilter)
		}
		if len(instanceFilter.SearchQuery) > 0 {
			matchQuery := "%" + instanceFilter.SearchQuery + "%"
			query = query.Where(
				"instances.name LIKE ? OR instances.ami LIKE ? OR instances.instance_id LIKE ?",
				matchQuery, matchQuery, matchQuery,
			)
		}
		if instanceFilter.Limit > 0 {
			query = query.Limit(instanceFilter.Limit).Offset(instanceFilter.Offset)
		}
	}
	result := query.Find(&instances)

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch all instances. Error: %s", result.Error.Error())
		return nil, utils.ErrorDatabaseError
	}

	return instances, nil
}

func (r *instanceRepository) GetByName(ctx context.Context, name string) (*Instance, error) {
	var instance Instance
	result := r.db.WithContext(ctx).
		Preload("Creator").
		Where("name = ?", name).
		Order("created_at DESC").
		Limit(1).
		Find(&instance)

	if result.RowsAffected < 1 {
		return nil, utils.ErrorInstanceNotFound
	}

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch instance by name. Error: %s", result.Error.Error())
		return nil, utils.ErrorDatabaseError
	}

	return &instance, nil
}

// GetLiveByName Fetches the non-terminated record for a name. A name can
// accumulate terminated records over time but only ever has one live one.
func (r *instanceRepository) GetLiveByName(ctx context.Context, name string) (*Instance, error) {
	var instance Instance
	result := r.db.WithContext(ctx).
		Preload("Creator").
		Where("name = ? AND state <> ?", name, cloud.StateTerminated).
		Limit(1).
		Find(&instance)

	if result.RowsAffected < 1 {
		return nil, utils.ErrorInstanceNotFound
	}

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch live instance by name. Error: %s", result.Error.Error())
		return nil, utils.ErrorDatabaseError
	}

	return &instance, nil
}

func (r *instanceRepository) GetByUuid(ctx context.Context, instanceId string) (*Instance, error) {
	var instance Instance
	result := r.db.WithContext(ctx).
		Preload("Creator").
		Where("uuid = ?", instanceId).
		Find(&instance)

	if result.RowsAffected < 1 {
		return nil, utils.ErrorUuidNotFound
	}

	if result.Error != nil {
		log.Errorf("[DB] Failed to fetch instance by UUID. Error: %s", result.Error.Error())
		return nil, utils.ErrorDatabaseError
	}

	return &instance, nil
}

func (r *instanceRepository) Create(ctx context.Context, instance *Instance) error {
	if err := r.db.WithContext(ctx).Create(instance).Error; err != nil {
		log.Errorf("[DB] Failed to create instance. Error: %s", err.Error())
		return utils.ErrorDatabaseError
	}

	return nil
}

func (r *instanceRepository) Update(ctx context.Context, instance *Instance) error {
	if err := r.db.WithContext(ctx).Save(instance).Error; err != nil {
		log.Errorf("[DB] Failed to update instance. Error: %s", err.Error())
		return utils.ErrorDatabaseError
	}

	return nil
}

func (r *instanceRepository) Delete(ctx context.Context, instance *Instance) error {
	if err := r.db.WithContext(ctx).Delete(instance).Error; err != nil {
		log.Errorf("[DB] Failed to delete instance. Error: %s", err.Error())
		return utils.ErrorDatabaseError
	}

	return nil
}
