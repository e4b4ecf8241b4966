package profile

// Profile A named launch profile. Profiles live as YAML files on disk and provide
// create parameters that sit between the chat command options and the configured
// defaults: command options override the profile, the profile overrides the config.
type Profile struct {
	Defaults ProfileDefaults `yaml:"defaults" json:"defaults"`
}

type ProfileDefaults struct {
	Ami          string            `yaml:"ami,omitempty" json:"ami,omitempty"`
	InstanceType string            `yaml:"instanceType,omitempty" json:"instanceType,omitempty"`
	Keypair      string            `yaml:"keypair,omitempty" json:"keypair,omitempty"`
	SubnetId     string            `yaml:"subnetId,omitempty" json:"subnetId,omitempty"`
	VolumeSize   int               `yaml:"volumeSize,omitempty" json:"volumeSize,omitempty"`
	Tags         map[string]string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

type ProfileIn struct {
	Defaults ProfileDefaults `json:"defaults"`
	UserData string          `json:"userData"`
}

type ProfileOut struct {
	Name     string          `json:"name"`
	Defaults ProfileDefaults `json:"defaults"`
	UserData string          `json:"userData,omitempty"`
}
