package compute

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imamik/cassandra-ec2/internal/platform/ec2"
	"github.com/imamik/cassandra-ec2/internal/provisioning"
	"github.com/imamik/cassandra-ec2/internal/util/async"
	"github.com/imamik/cassandra-ec2/internal/util/labels"
	"github.com/imamik/cassandra-ec2/internal/util/naming"
	"github.com/imamik/cassandra-ec2/internal/util/retry"
)

const phase = "compute"

// Provisioner discovers or launches the cluster nodes.
type Provisioner struct {
	sleep func(ctx context.Context, d time.Duration) error
}

// NewProvisioner creates a new compute provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{sleep: retry.Sleep}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.State.SecurityGroup == nil {
		return fmt.Errorf("security group not initialized in provisioning state")
	}

	instances, launched, err := p.DiscoverOrLaunch(ctx, ctx.State.SecurityGroup)
	if err != nil {
		return err
	}

	ctx.State.Instances = instances
	ctx.State.Launched = launched
	ctx.Metrics.SetClusterNodes(len(instances))
	return nil
}

// DiscoverOrLaunch returns the live members of the cluster. When the
// cluster has none, NodeCount instances are launched into group first.
// The boolean reports whether a launch happened.
func (p *Provisioner) DiscoverOrLaunch(ctx *provisioning.Context, group *ec2.SecurityGroup) ([]ec2.Instance, bool, error) {
	spec := ctx.Spec

	ctx.Observer.Printf("Checking to see if cluster is already running...")
	existing, err := ctx.EC2.ListClusterInstances(ctx, group.Name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list cluster instances: %w", err)
	}

	if len(existing) > 0 {
		ctx.Observer.Printf("... found %d running instances.", len(existing))
		if len(existing) != spec.NodeCount {
			ctx.Observer.Printf("[%s] WARNING: cluster %s has %d instances but %d were requested; using the existing instances",
				phase, spec.Name, len(existing), spec.NodeCount)
		}
		return existing, false, nil
	}

	instances, err := p.launch(ctx, group)
	if err != nil {
		return nil, false, err
	}
	return instances, true, nil
}

func (p *Provisioner) launch(ctx *provisioning.Context, group *ec2.SecurityGroup) ([]ec2.Instance, error) {
	spec := ctx.Spec
	ctx.Observer.Printf("Launching %d instances for cluster...", spec.NodeCount)

	image, err := ctx.EC2.DescribeImage(ctx, spec.ImageID)
	if err != nil {
		if errors.Is(err, ec2.ErrImageNotFound) {
			return nil, fmt.Errorf("could not find AMI %s: %w", spec.ImageID, err)
		}
		return nil, fmt.Errorf("failed to describe AMI %s: %w", spec.ImageID, err)
	}

	req := ec2.LaunchRequest{
		ImageID:         image.ID,
		InstanceType:    spec.InstanceType,
		Count:           int32(spec.NodeCount), //nolint:gosec // validated >= 1 and small
		KeyPair:         spec.SSH.KeyPair,
		SecurityGroupID: group.ID,
		Zone:            spec.Zone,
		SubnetID:        spec.SubnetID,
		BlockDevices:    BlockDeviceMappings(spec),
	}
	provisioning.LogResourceCreating(ctx.Observer, phase, "instances", spec.Name)
	instances, err := ctx.EC2.RunInstances(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to launch instances: %w", err)
	}

	ctx.Observer.Printf("Waiting for AWS to propagate instance metadata...")
	if err := p.sleep(ctx, ctx.Timeouts.SettleDelay); err != nil {
		return nil, fmt.Errorf("interrupted while waiting for instance metadata: %w", err)
	}

	if err := p.tagInstances(ctx, instances); err != nil {
		return nil, err
	}
	return instances, nil
}

// tagInstances applies the Name and cluster tags to every instance.
func (p *Provisioner) tagInstances(ctx *provisioning.Context, instances []ec2.Instance) error {
	tasks := make([]async.Task, 0, len(instances))
	for i := range instances {
		inst := &instances[i]
		name := naming.Node(ctx.Spec.Name, inst.ID)
		tasks = append(tasks, async.Task{
			Name: inst.ID,
			Func: func(c context.Context) error {
				tags := labels.NewTagBuilder(ctx.Spec.Name).WithName(name).Build()
				if err := ctx.EC2.TagInstance(c, inst.ID, tags); err != nil {
					return fmt.Errorf("failed to tag instance: %w", err)
				}
				inst.Name = name
				provisioning.LogResourceCreated(ctx.Observer, phase, "instance", name, inst.ID)
				return nil
			},
		})
	}
	return async.RunBounded(ctx, tasks, ctx.Spec.Concurrency)
}
