package cloud

import (
	"context"
)

type MockProvider struct {
	CreateFunc    func(ctx context.Context, spec InstanceSpec) (*InstanceDetails, error)
	RebootFunc    func(ctx context.Context, name string) (*InstanceDetails, error)
	TerminateFunc func(ctx context.Context, name string) (*InstanceDetails, error)
	DescribeFunc  func(ctx context.Context, name string) (*InstanceDetails, error)
	ListFunc      func(ctx context.Context) ([]InstanceDetails, error)
}

func (m *MockProvider) Create(ctx context.Context, spec InstanceSpec) (*InstanceDetails, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, spec)
	}
	return &InstanceDetails{
		Id:           "i-0mock",
		Name:         spec.Name,
		State:        StatePending,
		InstanceType: spec.InstanceType,
		Keypair:      spec.Keypair,
		PrivateIps:   make([]string, 0),
		PublicIps:    make([]string, 0),
		Tags:         spec.Tags,
	}, nil
}

func (m *MockProvider) Reboot(ctx context.Context, name string) (*InstanceDetails, error) {
	if m.RebootFunc != nil {
		return m.RebootFunc(ctx, name)
	}
	return &InstanceDetails{Id: "i-0mock", Name: name, State: StateRunning}, nil
}

func (m *MockProvider) Terminate(ctx context.Context, name string) (*InstanceDetails, error) {
	if m.TerminateFunc != nil {
		return m.TerminateFunc(ctx, name)
	}
	return &InstanceDetails{Id: "i-0mock", Name: name, State: StateTerminated}, nil
}

func (m *MockProvider) Describe(ctx context.Context, name string) (*InstanceDetails, error) {
	if m.DescribeFunc != nil {
		return m.DescribeFunc(ctx, name)
	}
	return &InstanceDetails{Id: "i-0mock", Name: name, State: StateRunning}, nil
}

func (m *MockProvider) List(ctx context.Context) ([]InstanceDetails, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return make([]InstanceDetails, 0), nil
}
