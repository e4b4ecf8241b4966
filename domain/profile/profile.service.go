package profile

import (
	"context"
	"encoding/json"
	"nimbusBackend/config"
	"nimbusBackend/storage"
	"nimbusBackend/utils"
	"os"

	"github.com/charmbracelet/log"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

type (
	Service interface {
		Get(ctx context.Context) ([]ProfileOut, error)
		GetByName(ctx context.Context, profileName string) (*ProfileOut, error)
		Put(ctx context.Context, profileName string, req ProfileIn) error
		Delete(ctx context.Context, profileName string) error

		// Resolve Loads a profile and its user data script for an instance create call.
		Resolve(profileName string) (*Profile, string, error)
	}

	profileService struct {
		storageManager storage.StorageManager
		schema         *gojsonschema.Schema
	}
)

func CreateService(config *config.NimbusConfig, storageManager storage.StorageManager) Service {
	return &profileService{
		storageManager: storageManager,
		schema:         loadSchema(config),
	}
}

func (s *profileService) Get(ctx context.Context) ([]ProfileOut, error) {
	profileNames, err := s.storageManager.ListProfiles()
	if err != nil {
		log.Errorf("Failed to list launch profiles: %s", err.Error())
		return nil, utils.ErrorServer
	}

	result := make([]ProfileOut, 0, len(profileNames))
	for _, profileName := range profileNames {
		profile, userData, err := s.Resolve(profileName)
		if err != nil {
			continue
		}

		result = append(result, ProfileOut{
			Name:     profileName,
			Defaults: profile.Defaults,
			UserData: userData,
		})
	}

	return result, nil
}

func (s *profileService) GetByName(ctx context.Context, profileName string) (*ProfileOut, error) {
	profile, userData, err := s.Resolve(profileName)
	if err != nil {
		return nil, err
	}

	return &ProfileOut{
		Name:     profileName,
		Defaults: profile.Defaults,
		UserData: userData,
	}, nil
}

func (s *profileService) Put(ctx context.Context, profileName string, req ProfileIn) error {
	profile := Profile{Defaults: req.Defaults}

	if err := s.validate(&profile); err != nil {
		return err
	}

	content, err := yaml.Marshal(&profile)
	if err != nil {
		return utils.ErrorServer
	}

	if err := s.storageManager.WriteProfile(profileName, string(content)); err != nil {
		log.Errorf("Failed to write launch profile: %s", err.Error())
		return utils.ErrorServer
	}

	if req.UserData != "" {
		if err := s.storageManager.WriteUserData(profileName, req.UserData); err != nil {
			log.Errorf("Failed to write user data script: %s", err.Error())
			return utils.ErrorServer
		}
	}

	return nil
}

func (s *profileService) Delete(ctx context.Context, profileName string) error {
	if _, _, err := s.Resolve(profileName); err != nil {
		return err
	}

	return s.storageManager.DeleteProfile(profileName)
}

func (s *profileService) Resolve(profileName string) (*Profile, string, error) {
	var content string
	if err := s.storageManager.ReadProfile(profileName, &content); err != nil {
		return nil, "", utils.ErrorProfileNotFound
	}

	profile := &Profile{}
	if err := yaml.Unmarshal([]byte(content), profile); err != nil {
		return nil, "", utils.ErrorInvalidProfile
	}

	// The user data script is optional
	var userData string
	_ = s.storageManager.ReadUserData(profileName, &userData)

	return profile, userData, nil
}

func (s *profileService) validate(profile *Profile) error {
	document, err := json.Marshal(profile)
	if err != nil {
		return utils.ErrorInvalidProfile
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil || !result.Valid() {
		return utils.ErrorInvalidProfile
	}

	return nil
}

func loadSchema(config *config.NimbusConfig) *gojsonschema.Schema {
	schemaData, err := os.ReadFile(config.FileSystem.ProfileSchema)
	if err != nil {
		log.Warn("Failed to load profile schema file. Using built-in schema.", "path", config.FileSystem.ProfileSchema)
		schemaData = []byte(defaultProfileSchema)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaData))
	if err != nil {
		log.Fatal("Failed to parse profile schema. Exiting.")
		os.Exit(1)
	}

	return schema
}

const defaultProfileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "defaults": {
      "type": "object",
      "properties": {
        "ami": { "type": "string" },
        "instanceType": { "type": "string" },
        "keypair": { "type": "string" },
        "subnetId": { "type": "string" },
        "volumeSize": { "type": "integer", "minimum": 1 },
        "tags": {
          "type": "object",
          "additionalProperties": { "type": "string" }
        }
      },
      "additionalProperties": false
    }
  },
  "required": ["defaults"],
  "additionalProperties": false
}`
