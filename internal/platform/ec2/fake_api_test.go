package ec2

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// fakeAPI implements API and IdentityAPI. Unset funcs return empty output.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	DescribeSecurityGroupsFunc        func(*ec2.DescribeSecurityGroupsInput) (*ec2.DescribeSecurityGroupsOutput, error)
	CreateSecurityGroupFunc           func(*ec2.CreateSecurityGroupInput) (*ec2.CreateSecurityGroupOutput, error)
	AuthorizeSecurityGroupIngressFunc func(*ec2.AuthorizeSecurityGroupIngressInput) (*ec2.AuthorizeSecurityGroupIngressOutput, error)
	DescribeInstancesFunc             func(*ec2.DescribeInstancesInput) (*ec2.DescribeInstancesOutput, error)
	DescribeImagesFunc                func(*ec2.DescribeImagesInput) (*ec2.DescribeImagesOutput, error)
	RunInstancesFunc                  func(*ec2.RunInstancesInput) (*ec2.RunInstancesOutput, error)
	CreateTagsFunc                    func(*ec2.CreateTagsInput) (*ec2.CreateTagsOutput, error)
	DescribeInstanceStatusFunc        func(*ec2.DescribeInstanceStatusInput) (*ec2.DescribeInstanceStatusOutput, error)
	GetCallerIdentityFunc             func(*sts.GetCallerIdentityInput) (*sts.GetCallerIdentityOutput, error)
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) DescribeSecurityGroups(_ context.Context, in *ec2.DescribeSecurityGroupsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error) {
	f.record("DescribeSecurityGroups")
	if f.DescribeSecurityGroupsFunc != nil {
		return f.DescribeSecurityGroupsFunc(in)
	}
	return &ec2.DescribeSecurityGroupsOutput{}, nil
}

func (f *fakeAPI) CreateSecurityGroup(_ context.Context, in *ec2.CreateSecurityGroupInput, _ ...func(*ec2.Options)) (*ec2.CreateSecurityGroupOutput, error) {
	f.record("CreateSecurityGroup")
	if f.CreateSecurityGroupFunc != nil {
		return f.CreateSecurityGroupFunc(in)
	}
	return &ec2.CreateSecurityGroupOutput{}, nil
}

func (f *fakeAPI) AuthorizeSecurityGroupIngress(_ context.Context, in *ec2.AuthorizeSecurityGroupIngressInput, _ ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupIngressOutput, error) {
	f.record("AuthorizeSecurityGroupIngress")
	if f.AuthorizeSecurityGroupIngressFunc != nil {
		return f.AuthorizeSecurityGroupIngressFunc(in)
	}
	return &ec2.AuthorizeSecurityGroupIngressOutput{}, nil
}

func (f *fakeAPI) DescribeInstances(_ context.Context, in *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	f.record("DescribeInstances")
	if f.DescribeInstancesFunc != nil {
		return f.DescribeInstancesFunc(in)
	}
	return &ec2.DescribeInstancesOutput{}, nil
}

func (f *fakeAPI) DescribeImages(_ context.Context, in *ec2.DescribeImagesInput, _ ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error) {
	f.record("DescribeImages")
	if f.DescribeImagesFunc != nil {
		return f.DescribeImagesFunc(in)
	}
	return &ec2.DescribeImagesOutput{}, nil
}

func (f *fakeAPI) RunInstances(_ context.Context, in *ec2.RunInstancesInput, _ ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error) {
	f.record("RunInstances")
	if f.RunInstancesFunc != nil {
		return f.RunInstancesFunc(in)
	}
	return &ec2.RunInstancesOutput{}, nil
}

func (f *fakeAPI) CreateTags(_ context.Context, in *ec2.CreateTagsInput, _ ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error) {
	f.record("CreateTags")
	if f.CreateTagsFunc != nil {
		return f.CreateTagsFunc(in)
	}
	return &ec2.CreateTagsOutput{}, nil
}

func (f *fakeAPI) DescribeInstanceStatus(_ context.Context, in *ec2.DescribeInstanceStatusInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstanceStatusOutput, error) {
	f.record("DescribeInstanceStatus")
	if f.DescribeInstanceStatusFunc != nil {
		return f.DescribeInstanceStatusFunc(in)
	}
	return &ec2.DescribeInstanceStatusOutput{}, nil
}

func (f *fakeAPI) GetCallerIdentity(_ context.Context, in *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	f.record("GetCallerIdentity")
	if f.GetCallerIdentityFunc != nil {
		return f.GetCallerIdentityFunc(in)
	}
	return &sts.GetCallerIdentityOutput{}, nil
}
