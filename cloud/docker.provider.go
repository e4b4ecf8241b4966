package cloud

import (
	"context"
	"nimbusBackend/utils"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

const managedLabel = "nimbus.managed"
const nameLabel = "nimbus.name"

// DockerProvider A development provider that provisions local containers instead of
// EC2 instances. The ami option is interpreted as a container image reference and a
// reboot becomes a container restart.
type DockerProvider struct {
	cli *client.Client
}

func CreateDockerProvider() (*DockerProvider, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, err
	}

	return &DockerProvider{cli: cli}, nil
}

func (p *DockerProvider) Create(ctx context.Context, spec InstanceSpec) (*InstanceDetails, error) {
	labels := map[string]string{
		managedLabel: "true",
		nameLabel:    spec.Name,
	}
	for key, value := range spec.Tags {
		labels["nimbus.tag."+key] = value
	}

	created, err := p.cli.ContainerCreate(
		ctx,
		&container.Config{
			Image:  spec.Ami,
			Labels: labels,
		},
		&container.HostConfig{},
		nil,
		nil,
		spec.Name,
	)
	if err != nil {
		return nil, err
	}

	if err := p.cli.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return nil, err
	}

	return p.describeById(ctx, created.ID, spec.Name)
}

func (p *DockerProvider) Reboot(ctx context.Context, name string) (*InstanceDetails, error) {
	summary, err := p.findByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := p.cli.ContainerRestart(ctx, summary.ID, container.StopOptions{}); err != nil {
		return nil, err
	}

	return p.describeById(ctx, summary.ID, name)
}

func (p *DockerProvider) Terminate(ctx context.Context, name string) (*InstanceDetails, error) {
	summary, err := p.findByName(ctx, name)
	if err != nil {
		return nil, err
	}

	details, err := p.describeById(ctx, summary.ID, name)
	if err != nil {
		return nil, err
	}

	if err := p.cli.ContainerRemove(ctx, summary.ID, container.RemoveOptions{Force: true}); err != nil {
		return nil, err
	}

	details.State = StateTerminated
	return details, nil
}

func (p *DockerProvider) Describe(ctx context.Context, name string) (*InstanceDetails, error) {
	summary, err := p.findByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return p.describeById(ctx, summary.ID, name)
}

func (p *DockerProvider) List(ctx context.Context) ([]InstanceDetails, error) {
	summaries, err := p.cli.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filters.NewArgs(filters.Arg("label", managedLabel+"=true")),
	})
	if err != nil {
		return nil, err
	}

	instances := make([]InstanceDetails, 0, len(summaries))
	for _, summary := range summaries {
		instances = append(instances, InstanceDetails{
			Id:           summary.ID,
			Name:         summary.Labels[nameLabel],
			State:        toInstanceState(summary.State),
			InstanceType: summary.Image,
			Tags:         toInstanceTags(summary.Labels),
			PrivateIps:   make([]string, 0),
			PublicIps:    make([]string, 0),
		})
	}

	return instances, nil
}

func (p *DockerProvider) findByName(ctx context.Context, name string) (*container.Summary, error) {
	summaries, err := p.cli.ContainerList(ctx, container.ListOptions{
		All: true,
		Filters: filters.NewArgs(
			filters.Arg("label", managedLabel+"=true"),
			filters.Arg("label", nameLabel+"="+name),
		),
	})
	if err != nil {
		return nil, err
	}

	if len(summaries) < 1 {
		return nil, utils.ErrorInstanceNotFound
	}

	return &summaries[0], nil
}

func (p *DockerProvider) describeById(ctx context.Context, containerId string, name string) (*InstanceDetails, error) {
	inspect, err := p.cli.ContainerInspect(ctx, containerId)
	if err != nil {
		return nil, err
	}

	details := &InstanceDetails{
		Id:         inspect.ID,
		Name:       name,
		PrivateIps: make([]string, 0),
		PublicIps:  make([]string, 0),
	}

	if inspect.Config != nil {
		details.InstanceType = inspect.Config.Image
		details.Tags = toInstanceTags(inspect.Config.Labels)
	}
	if inspect.State != nil {
		details.State = toInstanceState(inspect.State.Status)
	}
	if inspect.NetworkSettings != nil && inspect.NetworkSettings.IPAddress != "" {
		details.PrivateIps = append(details.PrivateIps, inspect.NetworkSettings.IPAddress)
	}

	return details, nil
}

func toInstanceState(containerState string) string {
	switch containerState {
	case "created", "restarting":
		return StatePending
	case "running":
		return StateRunning
	case "paused", "exited":
		return StateStopped
	case "dead", "removing":
		return StateTerminated
	}

	return containerState
}

func toInstanceTags(labels map[string]string) map[string]string {
	tags := make(map[string]string)
	for key, value := range labels {
		if tagName, found := strings.CutPrefix(key, "nimbus.tag."); found {
			tags[tagName] = value
		}
	}

	return tags
}
