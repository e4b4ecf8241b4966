package cloud

import (
	"nimbusBackend/config"

	"github.com/charmbracelet/log"
)

func GetProvider(config *config.NimbusConfig) (Provider, error) {
	if config.General.Provider == "docker" {
		log.Info("Using the Docker development provider.")
		provider, err := CreateDockerProvider()
		if err != nil {
			return nil, err
		}
		return provider, nil
	}

	log.Info("Using the EC2 provider.", "region", config.Aws.Region)
	provider, err := CreateEc2Provider(config)
	if err != nil {
		return nil, err
	}
	return provider, nil
}
