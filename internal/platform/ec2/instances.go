package ec2

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/google/uuid"

	"github.com/imamik/cassandra-ec2/internal/util/labels"
	"github.com/imamik/cassandra-ec2/internal/util/retry"
)

const (
	tagRetries      = 5
	tagInitialDelay = time.Second
)

// ListClusterInstances returns the live instances in the named security
// group, in the order EC2 reports them. Shutting-down and terminated
// instances are dropped.
func (c *Client) ListClusterInstances(ctx context.Context, groupName string) ([]Instance, error) {
	input := &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{Name: aws.String("instance.group-name"), Values: []string{groupName}},
		},
	}

	var instances []Instance
	paginator := ec2.NewDescribeInstancesPaginator(c.ec2, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list instances in group %s: %w", groupName, err)
		}
		for _, r := range page.Reservations {
			for _, i := range r.Instances {
				inst := toInstance(i)
				if inst.State.Live() {
					instances = append(instances, inst)
				}
			}
		}
	}
	return instances, nil
}

// RefreshInstances re-describes instances by id, preserving input order.
func (c *Client) RefreshInstances(ctx context.Context, ids []string) ([]Instance, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	byID := make(map[string]Instance, len(ids))
	paginator := ec2.NewDescribeInstancesPaginator(c.ec2, &ec2.DescribeInstancesInput{InstanceIds: ids})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe instances: %w", err)
		}
		for _, r := range page.Reservations {
			for _, i := range r.Instances {
				inst := toInstance(i)
				byID[inst.ID] = inst
			}
		}
	}

	instances := make([]Instance, 0, len(ids))
	for _, id := range ids {
		inst, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("instance %s not found", id)
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// RunInstances launches exactly req.Count instances or fails.
func (c *Client) RunInstances(ctx context.Context, req LaunchRequest) ([]Instance, error) {
	token := req.ClientToken
	if token == "" {
		token = uuid.NewString()
	}

	input := &ec2.RunInstancesInput{
		ImageId:                           aws.String(req.ImageID),
		InstanceType:                      types.InstanceType(req.InstanceType),
		MinCount:                          aws.Int32(req.Count),
		MaxCount:                          aws.Int32(req.Count),
		InstanceInitiatedShutdownBehavior: types.ShutdownBehaviorStop,
		BlockDeviceMappings:               toBlockDeviceMappings(req.BlockDevices),
		ClientToken:                       aws.String(token),
	}
	if req.KeyPair != "" {
		input.KeyName = aws.String(req.KeyPair)
	}
	if req.SecurityGroupID != "" {
		input.SecurityGroupIds = []string{req.SecurityGroupID}
	}
	if req.Zone != "" {
		input.Placement = &types.Placement{AvailabilityZone: aws.String(req.Zone)}
	}
	if req.SubnetID != "" {
		input.SubnetId = aws.String(req.SubnetID)
	}

	out, err := c.ec2.RunInstances(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to launch %d instances of %s: %w", req.Count, req.ImageID, err)
	}

	instances := make([]Instance, 0, len(out.Instances))
	for _, i := range out.Instances {
		instances = append(instances, toInstance(i))
	}
	return instances, nil
}

// TagInstance sets tags on one instance. Freshly launched instances may not
// be visible yet, so not-found errors are retried briefly.
func (c *Client) TagInstance(ctx context.Context, id string, tags map[string]string) error {
	ec2Tags := make([]types.Tag, 0, len(tags))
	for k, v := range tags {
		ec2Tags = append(ec2Tags, types.Tag{Key: aws.String(k), Value: aws.String(v)})
	}

	err := retry.WithExponentialBackoff(ctx, func() error {
		_, err := c.ec2.CreateTags(ctx, &ec2.CreateTagsInput{
			Resources: []string{id},
			Tags:      ec2Tags,
		})
		if err != nil && !IsNotFound(err) && !IsThrottled(err) {
			return retry.Fatal(err)
		}
		return err
	},
		retry.WithMaxRetries(tagRetries),
		retry.WithInitialDelay(tagInitialDelay),
	)
	if err != nil {
		return fmt.Errorf("failed to tag instance %s: %w", id, err)
	}
	return nil
}

func toInstance(i types.Instance) Instance {
	inst := Instance{
		ID:        deref(i.InstanceId),
		PublicIP:  deref(i.PublicIpAddress),
		PublicDNS: deref(i.PublicDnsName),
		PrivateIP: deref(i.PrivateIpAddress),
		Type:      string(i.InstanceType),
	}
	if i.State != nil {
		inst.State = InstanceState(i.State.Name)
	}
	if i.Placement != nil {
		inst.Zone = deref(i.Placement.AvailabilityZone)
	}
	for _, t := range i.Tags {
		if deref(t.Key) == labels.KeyName {
			inst.Name = deref(t.Value)
		}
	}
	return inst
}

func toBlockDeviceMappings(devices []BlockDevice) []types.BlockDeviceMapping {
	if len(devices) == 0 {
		return nil
	}

	mappings := make([]types.BlockDeviceMapping, 0, len(devices))
	for _, d := range devices {
		m := types.BlockDeviceMapping{DeviceName: aws.String(d.DeviceName)}
		if d.VirtualName != "" {
			m.VirtualName = aws.String(d.VirtualName)
		} else {
			m.Ebs = &types.EbsBlockDevice{
				VolumeSize:          aws.Int32(d.VolumeSizeGB),
				VolumeType:          types.VolumeType(d.VolumeType),
				DeleteOnTermination: aws.Bool(d.DeleteOnTermination),
			}
		}
		mappings = append(mappings, m)
	}
	return mappings
}
