package cloud

import (
	"context"
)

type (
	// Provider Abstracts the cloud backend that actually provisions and controls
	// compute instances. All lookups are by instance name, which Nimbus treats as
	// unique among non-terminated instances.
	Provider interface {
		Create(ctx context.Context, spec InstanceSpec) (*InstanceDetails, error)
		Reboot(ctx context.Context, name string) (*InstanceDetails, error)
		Terminate(ctx context.Context, name string) (*InstanceDetails, error)
		Describe(ctx context.Context, name string) (*InstanceDetails, error)
		List(ctx context.Context) ([]InstanceDetails, error)
	}

	// InstanceSpec The fully resolved input of a create call, after command options,
	// launch profile and configured defaults have been merged.
	InstanceSpec struct {
		Name         string
		Ami          string
		InstanceType string
		Keypair      string
		SubnetId     string
		VolumeSize   int
		UserData     string
		Tags         map[string]string
	}

	InstanceDetails struct {
		Id           string            `json:"id"`
		Name         string            `json:"name"`
		State        string            `json:"state"`
		InstanceType string            `json:"instanceType"`
		Keypair      string            `json:"keypair"`
		PrivateIps   []string          `json:"privateIps"`
		PublicIps    []string          `json:"publicIps"`
		Tags         map[string]string `json:"tags"`
	}
)

const (
	StatePending    = "pending"
	StateRunning    = "running"
	StateStopped    = "stopped"
	StateTerminated = "terminated"
)
