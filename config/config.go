package config

import (
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

type (
	NimbusConfig struct {
		General    GeneralConfig    `yaml:"general"`
		Aws        AwsConfig        `yaml:"aws"`
		Chat       ChatConfig       `yaml:"chat"`
		FileSystem FilesystemConfig `yaml:"fileSystem"`
		Server     ServerConfig     `yaml:"server"`
		Database   DatabaseConfig   `yaml:"database"`
		Auth       AuthConfig       `yaml:"auth"`
	}

	// GeneralConfig Selects the cloud provider implementation. "ec2" talks to AWS,
	// "docker" provisions local containers for development setups.
	GeneralConfig struct {
		Provider string `yaml:"provider"`
	}

	AwsConfig struct {
		Region   string         `yaml:"region"`
		Defaults CreateDefaults `yaml:"defaults"`
	}

	// CreateDefaults Configured fallbacks for create parameters that were not
	// given on the chat command line.
	CreateDefaults struct {
		Ami          string            `yaml:"ami"`
		Keypair      string            `yaml:"keypair"`
		SubnetId     string            `yaml:"subnetId"`
		RouteTableId string            `yaml:"routeTableId"`
		InstanceType string            `yaml:"instanceType"`
		VolumeSize   int               `yaml:"volumeSize"`
		BaseTags     map[string]string `yaml:"baseTags"`
	}

	ChatConfig struct {
		CommandPrefix string `yaml:"commandPrefix"`
	}

	FilesystemConfig struct {
		Profiles      string `yaml:"profiles"`
		Run           string `yaml:"run"`
		ProfileSchema string `yaml:"profileSchema"`
	}

	ServerConfig struct {
		Host string `yaml:"host"`
		Port uint   `yaml:"port"`
	}

	AuthConfig struct {
		EnableNativeAdmin  bool     `yaml:"enableNativeAdmin"`
		EnableOpenId       bool     `yaml:"enableOpenId"`
		OpenIdIssuer       string   `yaml:"openIdIssuer"`
		OpenIdClientId     string   `yaml:"openIdClientId"`
		OpenIdRedirectHost string   `yaml:"openIdRedirectHost"`
		OpenIdAdminGroups  []string `yaml:"openIdAdminGroups"`
	}

	DatabaseConfig struct {
		Host      string `yaml:"host"`
		User      string `yaml:"user"`
		Database  string `yaml:"database"`
		Port      uint   `yaml:"port"`
		LocalFile string `yaml:"localFile"`
	}
)

func Load(fileName string) *NimbusConfig {
	config := defaultConfig()

	if configData, err := os.ReadFile(fileName); err != nil {
		log.Warn("Failed to load configuration file.", "path", fileName)
		data, err := yaml.Marshal(&config)
		err = os.WriteFile(fileName, data, 0755)
		if err != nil {
			log.Error("Failed to write default configuration file.", "path", fileName)
		}
	} else if err := yaml.Unmarshal(configData, &config); err != nil {
		log.Error("Failed to parse configuration file.", "error", err.Error())
	}

	return config
}

func defaultConfig() *NimbusConfig {
	return &NimbusConfig{
		General: GeneralConfig{
			Provider: "ec2",
		},
		Aws: AwsConfig{
			Region: "us-east-1",
			Defaults: CreateDefaults{
				InstanceType: "t2.medium",
				VolumeSize:   15,
				BaseTags: map[string]string{
					"team": "systems",
				},
			},
		},
		Chat: ChatConfig{
			CommandPrefix: "!aws",
		},
		FileSystem: FilesystemConfig{
			Profiles:      "./profiles/",
			Run:           "./run/",
			ProfileSchema: "./data/profile.schema.json",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 3000,
		},
		Database: DatabaseConfig{
			Host:      "127.0.0.1",
			User:      "nimbus",
			Database:  "nimbus",
			Port:      5432,
			LocalFile: "./test.db",
		},
		Auth: AuthConfig{
			EnableNativeAdmin:  true,
			EnableOpenId:       false,
			OpenIdIssuer:       "",
			OpenIdClientId:     "",
			OpenIdRedirectHost: "",
			OpenIdAdminGroups:  make([]string, 0),
		},
	}
}
