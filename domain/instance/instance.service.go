package instance

import (
	"context"
	"errors"
	"fmt"
	"nimbusBackend/auth"
	"nimbusBackend/cloud"
	"nimbusBackend/config"
	"nimbusBackend/domain/profile"
	"nimbusBackend/domain/user"
	"nimbusBackend/events"
	"nimbusBackend/storage"
	"nimbusBackend/types"
	"nimbusBackend/utils"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
)

type (
	Service interface {
		Get(ctx context.Context, instanceFilter InstanceFilter) ([]InstanceOut, error)
		GetByName(ctx context.Context, name string) (*InstanceOut, error)

		Create(ctx context.Context, req InstanceIn, authUser auth.AuthenticatedUser) (*cloud.InstanceDetails, error)
		Reboot(ctx context.Context, name string, authUser auth.AuthenticatedUser) (*cloud.InstanceDetails, error)
		Terminate(ctx context.Context, name string, authUser auth.AuthenticatedUser) (*cloud.InstanceDetails, error)
		Describe(ctx context.Context, name string) (*cloud.InstanceDetails, error)
		List(ctx context.Context) ([]cloud.InstanceDetails, error)

		// RunExpiryWorker Periodically terminates instances whose TTL has run out.
		// Blocks until the context is cancelled.
		RunExpiryWorker(ctx context.Context)
	}

	instanceService struct {
		config            *config.NimbusConfig
		instanceRepo      Repository
		userRepo          user.Repository
		profileService    profile.Service
		cloudProvider     cloud.Provider
		storageManager    storage.StorageManager
		notificationEvent events.Event[events.NotificationEventData]
		expirySchedule    utils.Schedule[Instance]
	}
)

func CreateService(
	config *config.NimbusConfig,
	instanceRepo Repository,
	userRepo user.Repository,
	profileService profile.Service,
	cloudProvider cloud.Provider,
	storageManager storage.StorageManager,
	notificationEvent events.Event[events.NotificationEventData],
) Service {
	service := &instanceService{
		config:            config,
		instanceRepo:      instanceRepo,
		userRepo:          userRepo,
		profileService:    profileService,
		cloudProvider:     cloudProvider,
		storageManager:    storageManager,
		notificationEvent: notificationEvent,
		expirySchedule: utils.CreateSchedule[Instance](
			func(instance Instance) string { return instance.UUID },
			func(instance Instance) *time.Time { return instance.ExpiresAt },
		),
	}

	service.restoreExpirySchedule()

	return service
}

func (s *instanceService) Get(ctx context.Context, instanceFilter InstanceFilter) ([]InstanceOut, error) {
	objs, err := s.instanceRepo.GetAll(ctx, &instanceFilter)
	if err != nil {
		return nil, err
	}

	return lo.Map(objs, func(obj Instance, _ int) InstanceOut {
		return toInstanceOut(&obj)
	}), nil
}

func (s *instanceService) GetByName(ctx context.Context, name string) (*InstanceOut, error) {
	obj, err := s.instanceRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	result := toInstanceOut(obj)

	// Refresh the state from the provider if the instance still exists there
	if details, err := s.cloudProvider.Describe(ctx, name); err == nil {
		result.State = details.State
	}

	return &result, nil
}

func (s *instanceService) Create(ctx context.Context, req InstanceIn, authUser auth.AuthenticatedUser) (*cloud.InstanceDetails, error) {
	if req.Name == "" {
		return nil, utils.ErrorMissingArgument
	}

	if _, err := s.instanceRepo.GetLiveByName(ctx, req.Name); err == nil {
		return nil, utils.ErrorInstanceExists
	}

	spec, expiresAt, err := s.resolveSpec(req)
	if err != nil {
		return nil, err
	}

	details, err := s.cloudProvider.Create(ctx, *spec)
	if err != nil {
		return nil, wrapUpstreamError(err)
	}

	creator, err := s.userRepo.GetByUuid(ctx, authUser.UserId)
	if err != nil {
		return nil, err
	}

	newInstance := &Instance{
		UUID:         utils.GenerateUuid(),
		Name:         req.Name,
		InstanceId:   details.Id,
		Ami:          spec.Ami,
		InstanceType: spec.InstanceType,
		Keypair:      spec.Keypair,
		Profile:      req.Profile,
		State:        details.State,
		ExpiresAt:    expiresAt,
		CreatorID:    creator.ID,
	}
	if err := s.instanceRepo.Create(ctx, newInstance); err != nil {
		return nil, err
	}

	if req.Profile != "" {
		if err := s.storageManager.CreateLaunchRecord(req.Profile, newInstance.UUID); err != nil {
			log.Warnf("Failed to snapshot launch profile for instance %s: %s", req.Name, err.Error())
		}
	}

	s.expirySchedule.Schedule(newInstance)
	s.notify(types.Success, fmt.Sprintf("Created instance %s (%s)", req.Name, details.Id), authUser)

	return details, nil
}

func (s *instanceService) Reboot(ctx context.Context, name string, authUser auth.AuthenticatedUser) (*cloud.InstanceDetails, error) {
	details, err := s.cloudProvider.Reboot(ctx, name)
	if err != nil {
		return nil, wrapUpstreamError(err)
	}

	s.syncState(ctx, name, details.State)
	s.notify(types.Info, fmt.Sprintf("Sent reboot request to instance %s", name), authUser)

	return details, nil
}

func (s *instanceService) Terminate(ctx context.Context, name string, authUser auth.AuthenticatedUser) (*cloud.InstanceDetails, error) {
	details, err := s.cloudProvider.Terminate(ctx, name)
	if err != nil {
		return nil, wrapUpstreamError(err)
	}

	if obj, err := s.instanceRepo.GetLiveByName(ctx, name); err == nil {
		obj.State = cloud.StateTerminated
		_ = s.instanceRepo.Update(ctx, obj)

		s.expirySchedule.Remove(obj.UUID)
		_ = s.storageManager.DeleteLaunchRecord(obj.UUID)
	}

	s.notify(types.Info, fmt.Sprintf("Sent terminate request to instance %s", name), authUser)

	return details, nil
}

func (s *instanceService) Describe(ctx context.Context, name string) (*cloud.InstanceDetails, error) {
	details, err := s.cloudProvider.Describe(ctx, name)
	if err != nil {
		return nil, wrapUpstreamError(err)
	}

	return details, nil
}

func (s *instanceService) List(ctx context.Context) ([]cloud.InstanceDetails, error) {
	details, err := s.cloudProvider.List(ctx)
	if err != nil {
		return nil, wrapUpstreamError(err)
	}

	return details, nil
}

func (s *instanceService) RunExpiryWorker(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		for {
			expired := s.expirySchedule.TryPop()
			if expired == nil {
				break
			}

			log.Info("Terminating expired instance", "name", expired.Name, "uuid", expired.UUID)
			if _, err := s.Terminate(ctx, expired.Name, auth.AuthenticatedUser{UserId: auth.NativeUserID, IsAdmin: true}); err != nil {
				log.Warnf("Failed to terminate expired instance %s: %s", expired.Name, err.Error())
			}
		}
	}
}

// resolveSpec Merges the request with the launch profile and the configured
// defaults. Request values win over profile values, profile values win over the
// configuration.
func (s *instanceService) resolveSpec(req InstanceIn) (*cloud.InstanceSpec, *time.Time, error) {
	defaults := s.config.Aws.Defaults

	spec := &cloud.InstanceSpec{
		Name:         req.Name,
		Ami:          defaults.Ami,
		InstanceType: defaults.InstanceType,
		Keypair:      defaults.Keypair,
		SubnetId:     defaults.SubnetId,
		VolumeSize:   defaults.VolumeSize,
		UserData:     req.UserData,
		Tags:         make(map[string]string),
	}

	for key, value := range defaults.BaseTags {
		spec.Tags[key] = value
	}

	if req.Profile != "" {
		launchProfile, userData, err := s.profileService.Resolve(req.Profile)
		if err != nil {
			return nil, nil, err
		}

		overlayProfile(spec, launchProfile)
		if spec.UserData == "" {
			spec.UserData = userData
		}
	}

	overlayRequest(spec, req)
	spec.Tags["Name"] = req.Name

	var expiresAt *time.Time
	if req.Ttl != "" {
		ttl, err := time.ParseDuration(req.Ttl)
		if err != nil || ttl <= 0 {
			return nil, nil, utils.ErrorValidationError
		}
		expiry := time.Now().Add(ttl)
		expiresAt = &expiry
	}

	return spec, expiresAt, nil
}

func (s *instanceService) restoreExpirySchedule() {
	instances, err := s.instanceRepo.GetAll(context.Background(), nil)
	if err != nil {
		log.Warn("Failed to restore instance expiry schedule from database.")
		return
	}

	for _, obj := range instances {
		if obj.State != cloud.StateTerminated && obj.ExpiresAt != nil {
			s.expirySchedule.Schedule(&obj)
		}
	}
}

func (s *instanceService) syncState(ctx context.Context, name string, state string) {
	if obj, err := s.instanceRepo.GetLiveByName(ctx, name); err == nil {
		obj.State = state
		_ = s.instanceRepo.Update(ctx, obj)
	}
}

func (s *instanceService) notify(severity types.Severity, content string, authUser auth.AuthenticatedUser) {
	s.notificationEvent.Dispatch(events.NotificationEventData{
		Source:    "instances",
		Content:   content,
		Timestamp: time.Now(),
		Severity:  severity,
		Receivers: []string{authUser.UserId},
	})
}

func overlayProfile(spec *cloud.InstanceSpec, launchProfile *profile.Profile) {
	if launchProfile.Defaults.Ami != "" {
		spec.Ami = launchProfile.Defaults.Ami
	}
	if launchProfile.Defaults.InstanceType != "" {
		spec.InstanceType = launchProfile.Defaults.InstanceType
	}
	if launchProfile.Defaults.Keypair != "" {
		spec.Keypair = launchProfile.Defaults.Keypair
	}
	if launchProfile.Defaults.SubnetId != "" {
		spec.SubnetId = launchProfile.Defaults.SubnetId
	}
	if launchProfile.Defaults.VolumeSize > 0 {
		spec.VolumeSize = launchProfile.Defaults.VolumeSize
	}
	for key, value := range launchProfile.Defaults.Tags {
		spec.Tags[key] = value
	}
}

func overlayRequest(spec *cloud.InstanceSpec, req InstanceIn) {
	if req.Ami != "" {
		spec.Ami = req.Ami
	}
	if req.InstanceType != "" {
		spec.InstanceType = req.InstanceType
	}
	if req.Keypair != "" {
		spec.Keypair = req.Keypair
	}
	if req.SubnetId != "" {
		spec.SubnetId = req.SubnetId
	}
	if req.VolumeSize > 0 {
		spec.VolumeSize = req.VolumeSize
	}
	for key, value := range req.Tags {
		spec.Tags[key] = value
	}
}

// wrapUpstreamError Surfaces provider failures as upstream errors while keeping
// the original error detail. Lookup misses pass through unchanged.
func wrapUpstreamError(err error) error {
	if errors.Is(err, utils.ErrorInstanceNotFound) {
		return err
	}

	return fmt.Errorf("%w: %s", utils.ErrorUpstreamFailure, err.Error())
}

func toInstanceOut(obj *Instance) InstanceOut {
	return InstanceOut{
		ID:           obj.UUID,
		Name:         obj.Name,
		InstanceId:   obj.InstanceId,
		Ami:          obj.Ami,
		InstanceType: obj.InstanceType,
		Profile:      obj.Profile,
		State:        obj.State,
		ExpiresAt:    obj.ExpiresAt,
		Creator: user.UserOut{
			ID:   obj.Creator.UUID,
			Name: obj.Creator.Name,
		},
	}
}
