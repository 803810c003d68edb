package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/imamik/cassandra-ec2/internal/config"
)

// API is the subset of *ec2.Client this package calls.
type API interface {
	DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
	CreateSecurityGroup(ctx context.Context, params *ec2.CreateSecurityGroupInput, optFns ...func(*ec2.Options)) (*ec2.CreateSecurityGroupOutput, error)
	AuthorizeSecurityGroupIngress(ctx context.Context, params *ec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupIngressOutput, error)
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeImages(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error)
	RunInstances(ctx context.Context, params *ec2.RunInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error)
	CreateTags(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error)
	DescribeInstanceStatus(ctx context.Context, params *ec2.DescribeInstanceStatusInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstanceStatusOutput, error)
}

// IdentityAPI is the subset of *sts.Client this package calls.
type IdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Provider is the cloud boundary consumed by the provisioning phases.
// *Client implements it; tests substitute a mock.
type Provider interface {
	FindSecurityGroup(ctx context.Context, name, vpcID string) (*SecurityGroup, error)
	CreateSecurityGroup(ctx context.Context, name, description, vpcID string) (*SecurityGroup, error)
	AuthorizeIngress(ctx context.Context, groupID string, rules []IngressRule) error
	ListClusterInstances(ctx context.Context, groupName string) ([]Instance, error)
	RefreshInstances(ctx context.Context, ids []string) ([]Instance, error)
	DescribeImage(ctx context.Context, imageID string) (*Image, error)
	RunInstances(ctx context.Context, req LaunchRequest) ([]Instance, error)
	TagInstance(ctx context.Context, id string, tags map[string]string) error
	InstanceHealth(ctx context.Context, ids []string) (map[string]Health, error)
	CallerIdentity(ctx context.Context) (*Identity, error)
}

var _ Provider = (*Client)(nil)

// Client talks to EC2 and STS in one region.
type Client struct {
	ec2    API
	sts    IdentityAPI
	region string
}

// Option customizes client construction.
type Option func(*options)

type options struct {
	endpoint    string
	maxAttempts int
}

// WithEndpoint points both services at a custom endpoint (e.g. LocalStack).
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		o.endpoint = endpoint
	}
}

// WithMaxAttempts sets the SDK-level retry budget for throttled calls.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		o.maxAttempts = n
	}
}

// NewClient builds a client from resolved credentials.
func NewClient(ctx context.Context, creds *config.Credentials, region string, opts ...Option) (*Client, error) {
	if creds == nil {
		return nil, fmt.Errorf("credentials cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if creds.Static() {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken),
		))
	} else {
		loadOpts = append(loadOpts,
			awsconfig.WithSharedConfigProfile(creds.Profile),
			awsconfig.WithSharedCredentialsFiles([]string{creds.File}),
		)
	}
	if o.maxAttempts > 0 {
		loadOpts = append(loadOpts, awsconfig.WithRetryMaxAttempts(o.maxAttempts))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	ec2Client := ec2.NewFromConfig(cfg, func(eo *ec2.Options) {
		if o.endpoint != "" {
			eo.BaseEndpoint = aws.String(o.endpoint)
		}
	})
	stsClient := sts.NewFromConfig(cfg, func(so *sts.Options) {
		if o.endpoint != "" {
			so.BaseEndpoint = aws.String(o.endpoint)
		}
	})

	return &Client{ec2: ec2Client, sts: stsClient, region: region}, nil
}

// NewFromAPI wraps already-constructed service clients.
func NewFromAPI(ec2API API, stsAPI IdentityAPI, region string) *Client {
	return &Client{ec2: ec2API, sts: stsAPI, region: region}
}

// Region returns the region the client operates in.
func (c *Client) Region() string {
	return c.region
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt32(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}
