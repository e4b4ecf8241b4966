package storage

import (
	"nimbusBackend/config"
	"nimbusBackend/utils"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	cp "github.com/otiai10/copy"
)

type (
	// StorageManager Manages the launch profile files on disk. Every profile lives in
	// its own directory containing the profile definition and an optional user data
	// script that is passed to the instance on first boot. When an instance is
	// created from a profile, the profile directory is snapshotted into the run
	// directory so the exact launch input stays available for audits.
	StorageManager interface {
		ListProfiles() ([]string, error)
		ReadProfile(profileName string, content *string) error
		WriteProfile(profileName string, content string) error
		DeleteProfile(profileName string) error

		ReadUserData(profileName string, content *string) error
		WriteUserData(profileName string, content string) error

		CreateLaunchRecord(profileName string, instanceUuid string) error
		DeleteLaunchRecord(instanceUuid string) error
	}

	storageManager struct {
		profilesPath string
		runPath      string
		copyOptions  cp.Options
	}
)

func CreateStorageManager(config *config.NimbusConfig) StorageManager {
	storageManager := &storageManager{
		profilesPath: config.FileSystem.Profiles,
		runPath:      config.FileSystem.Run,
		copyOptions: cp.Options{
			Sync: true,
		},
	}

	storageManager.setupDirectories()

	return storageManager
}

func (s *storageManager) ListProfiles() ([]string, error) {
	entries, err := os.ReadDir(s.profilesPath)
	if err != nil {
		return nil, err
	}

	profileNames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			profileNames = append(profileNames, entry.Name())
		}
	}

	return profileNames, nil
}

func (s *storageManager) ReadProfile(profileName string, content *string) error {
	return s.readProfiles(getProfileFilePath(profileName), content)
}

func (s *storageManager) WriteProfile(profileName string, content string) error {
	return s.writeProfiles(getProfileFilePath(profileName), content)
}

func (s *storageManager) DeleteProfile(profileName string) error {
	return s.delete(filepath.Join(s.profilesPath, profileName))
}

func (s *storageManager) ReadUserData(profileName string, content *string) error {
	return s.readProfiles(getUserDataFilePath(profileName), content)
}

func (s *storageManager) WriteUserData(profileName string, content string) error {
	return s.writeProfiles(getUserDataFilePath(profileName), content)
}

func (s *storageManager) CreateLaunchRecord(profileName string, instanceUuid string) error {
	absoluteProfilePath := filepath.Join(s.profilesPath, profileName)
	absoluteRunPath := filepath.Join(s.runPath, instanceUuid)

	if err := cp.Copy(absoluteProfilePath, absoluteRunPath, s.copyOptions); err != nil {
		log.Errorf("Failed to create launch record for instance: %s", err.Error())
		return err
	}

	return nil
}

func (s *storageManager) DeleteLaunchRecord(instanceUuid string) error {
	return s.delete(filepath.Join(s.runPath, instanceUuid))
}

func (s *storageManager) setupDirectories() {
	if _, err := os.ReadDir(s.profilesPath); err != nil || !utils.IsDirectoryWritable(s.profilesPath) {
		log.Info("Profile directory not found. Creating.", "dir", s.profilesPath)
		if err = os.MkdirAll(s.profilesPath, 0750); err != nil {
			log.Fatal("Profile directory is not accessible. Exiting.", "dir", s.profilesPath)
			return
		}
	}

	if _, err := os.ReadDir(s.runPath); err != nil || !utils.IsDirectoryWritable(s.runPath) {
		log.Info("Run directory not found. Creating.", "dir", s.runPath)
		if err = os.MkdirAll(s.runPath, 0750); err != nil {
			log.Fatal("Run directory is not accessible. Exiting.", "dir", s.runPath)
			return
		}
	}
}

func (s *storageManager) readProfiles(relativeFilePath string, content *string) error {
	return s.read(filepath.Join(s.profilesPath, relativeFilePath), content)
}

func (s *storageManager) writeProfiles(relativeFilePath string, content string) error {
	return s.write(filepath.Join(s.profilesPath, relativeFilePath), content)
}

func (s *storageManager) read(absoluteFilePath string, content *string) error {
	if data, err := os.ReadFile(absoluteFilePath); err != nil {
		return err
	} else {
		*content = string(data)
	}

	return nil
}

func (s *storageManager) write(absoluteFilePath string, content string) error {
	if _, err := os.ReadDir(filepath.Dir(absoluteFilePath)); err != nil {
		if err = os.MkdirAll(filepath.Dir(absoluteFilePath), 0750); err != nil {
			return utils.ErrorServer
		}
	}

	return os.WriteFile(absoluteFilePath, ([]byte)(content), 0750)
}

func (s *storageManager) delete(absolutePath string) error {
	return os.RemoveAll(absolutePath)
}

func getProfileFilePath(profileName string) string {
	return filepath.Join(profileName, "profile.yml")
}

func getUserDataFilePath(profileName string) string {
	return filepath.Join(profileName, "user-data.sh")
}
