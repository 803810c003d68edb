package testing

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/cassandra-ec2/internal/platform/ec2"
)

// MockProvider is a mock implementation of ec2.Provider.
type MockProvider struct {
	mock.Mock
}

var _ ec2.Provider = (*MockProvider)(nil)

// FindSecurityGroup returns the configured group or nil.
func (m *MockProvider) FindSecurityGroup(ctx context.Context, name, vpcID string) (*ec2.SecurityGroup, error) {
	args := m.Called(ctx, name, vpcID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ec2.SecurityGroup), args.Error(1)
}

// CreateSecurityGroup returns the configured group.
func (m *MockProvider) CreateSecurityGroup(ctx context.Context, name, description, vpcID string) (*ec2.SecurityGroup, error) {
	args := m.Called(ctx, name, description, vpcID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ec2.SecurityGroup), args.Error(1)
}

// AuthorizeIngress records the rule set.
func (m *MockProvider) AuthorizeIngress(ctx context.Context, groupID string, rules []ec2.IngressRule) error {
	args := m.Called(ctx, groupID, rules)
	return args.Error(0)
}

// ListClusterInstances returns the configured instances.
func (m *MockProvider) ListClusterInstances(ctx context.Context, groupName string) ([]ec2.Instance, error) {
	args := m.Called(ctx, groupName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ec2.Instance), args.Error(1)
}

// RefreshInstances returns the configured instances.
func (m *MockProvider) RefreshInstances(ctx context.Context, ids []string) ([]ec2.Instance, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ec2.Instance), args.Error(1)
}

// DescribeImage returns the configured image.
func (m *MockProvider) DescribeImage(ctx context.Context, imageID string) (*ec2.Image, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ec2.Image), args.Error(1)
}

// RunInstances returns the configured instances.
func (m *MockProvider) RunInstances(ctx context.Context, req ec2.LaunchRequest) ([]ec2.Instance, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ec2.Instance), args.Error(1)
}

// TagInstance records the tags.
func (m *MockProvider) TagInstance(ctx context.Context, id string, tags map[string]string) error {
	args := m.Called(ctx, id, tags)
	return args.Error(0)
}

// InstanceHealth returns the configured health map.
func (m *MockProvider) InstanceHealth(ctx context.Context, ids []string) (map[string]ec2.Health, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]ec2.Health), args.Error(1)
}

// CallerIdentity returns the configured identity.
func (m *MockProvider) CallerIdentity(ctx context.Context) (*ec2.Identity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ec2.Identity), args.Error(1)
}

// WithIdentity configures the mock to pass the credential preflight.
func (m *MockProvider) WithIdentity() *MockProvider {
	m.On("CallerIdentity", mock.Anything).Return(&ec2.Identity{
		Account: "123456789012",
		ARN:     "arn:aws:iam::123456789012:user/test",
		UserID:  "AIDATEST",
	}, nil)
	return m
}

// MockRemote is a mock implementation of provisioning.RemoteExecutor.
type MockRemote struct {
	mock.Mock
}

// Execute records the command.
func (m *MockRemote) Execute(ctx context.Context, host, command string) error {
	args := m.Called(ctx, host, command)
	return args.Error(0)
}

// Transfer records the transfer.
func (m *MockRemote) Transfer(ctx context.Context, host, localPath string) error {
	args := m.Called(ctx, host, localPath)
	return args.Error(0)
}

// Probe returns the configured reachability.
func (m *MockRemote) Probe(ctx context.Context, host string) bool {
	args := m.Called(ctx, host)
	return args.Bool(0)
}

// MockFetcher is a mock implementation of provisioning.ArtifactFetcher.
type MockFetcher struct {
	mock.Mock
}

// Fetch returns the configured path.
func (m *MockFetcher) Fetch(ctx context.Context, rawURL, stagingDir string) (string, error) {
	args := m.Called(ctx, rawURL, stagingDir)
	return args.String(0), args.Error(1)
}
