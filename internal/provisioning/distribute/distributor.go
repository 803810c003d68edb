package distribute

import (
	"context"
	"fmt"

	"github.com/imamik/cassandra-ec2/internal/platform/ec2"
	"github.com/imamik/cassandra-ec2/internal/provisioning"
	"github.com/imamik/cassandra-ec2/internal/util/async"
	"github.com/imamik/cassandra-ec2/internal/util/naming"
)

const (
	phase = "distribute"

	opSync      = "sync"
	opConfigure = "configure"
)

// Distributor implements the distribution phase.
type Distributor struct{}

// NewDistributor creates a new distributor.
func NewDistributor() *Distributor {
	return &Distributor{}
}

// Name implements the provisioning.Phase interface.
func (d *Distributor) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (d *Distributor) Provision(ctx *provisioning.Context) error {
	spec := ctx.Spec
	instances := ctx.State.Instances
	if len(instances) == 0 {
		return fmt.Errorf("no instances in provisioning state")
	}
	if _, err := hosts(instances); err != nil {
		return err
	}
	if _, err := privateAddresses(instances); err != nil {
		return err
	}

	ctx.Observer.Printf("Downloading Cassandra version %s", spec.Version)
	url, err := spec.ArtifactURLFor()
	if err != nil {
		return err
	}
	localPath, err := ctx.Artifacts.Fetch(ctx, url, spec.StagingDir)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	ctx.State.ArtifactPath = localPath

	if err := d.SyncArtifact(ctx, instances, localPath); err != nil {
		return err
	}

	ctx.Observer.Printf("Unpacking and editing configuration files.")
	seeds, err := d.ConfigureNodes(ctx, instances)
	if err != nil {
		return err
	}
	ctx.State.Seeds = seeds
	return nil
}

// SyncArtifact copies localPath into the home directory of every node. The
// first failure stops the fan-out.
func (d *Distributor) SyncArtifact(ctx *provisioning.Context, instances []ec2.Instance, localPath string) error {
	addrs, err := hosts(instances)
	if err != nil {
		return err
	}

	tasks := make([]async.Task, 0, len(addrs))
	for _, host := range addrs {
		tasks = append(tasks, async.Task{
			Name: host,
			Func: func(c context.Context) error {
				ctx.Observer.Printf("[%s] Syncing %s to %s", phase, localPath, host)
				err := ctx.Remote.Transfer(c, host, localPath)
				ctx.Metrics.FanoutNode(opSync, err == nil)
				return err
			},
		})
	}

	if err := async.RunFailFast(ctx, tasks, ctx.Spec.Concurrency); err != nil {
		return fmt.Errorf("artifact sync failed: %w", err)
	}
	return nil
}

// ConfigureNodes unpacks the archive and templates the configuration on
// every node. The seed set is computed once and shared by all nodes; it is
// returned for reporting. The first failure stops the fan-out.
func (d *Distributor) ConfigureNodes(ctx *provisioning.Context, instances []ec2.Instance) ([]string, error) {
	spec := ctx.Spec
	addrs, err := hosts(instances)
	if err != nil {
		return nil, err
	}
	binds, err := privateAddresses(instances)
	if err != nil {
		return nil, err
	}

	url, err := spec.ArtifactURLFor()
	if err != nil {
		return nil, err
	}
	artifact := naming.ArtifactFile(url)
	unpacked := naming.UnpackedDir(spec.Version)
	seeds := SeedSet(instances)

	tasks := make([]async.Task, 0, len(instances))
	for i := range instances {
		host := addrs[i]
		command := TemplateCommand(artifact, unpacked, spec.Name, binds[i], seeds)
		tasks = append(tasks, async.Task{
			Name: host,
			Func: func(c context.Context) error {
				err := ctx.Remote.Execute(c, host, command)
				ctx.Metrics.FanoutNode(opConfigure, err == nil)
				return err
			},
		})
	}

	if err := async.RunFailFast(ctx, tasks, spec.Concurrency); err != nil {
		return nil, fmt.Errorf("node configuration failed: %w", err)
	}
	return seeds, nil
}

// hosts resolves the remote address of every instance.
func hosts(instances []ec2.Instance) ([]string, error) {
	out := make([]string, 0, len(instances))
	for _, inst := range instances {
		addr := inst.Address()
		if addr == "" {
			return nil, fmt.Errorf("failed to determine hostname of %s", inst.ID)
		}
		out = append(out, addr)
	}
	return out, nil
}

// privateAddresses returns the bind address of every instance. Seeds are
// taken from the same addresses.
func privateAddresses(instances []ec2.Instance) ([]string, error) {
	out := make([]string, 0, len(instances))
	for _, inst := range instances {
		if inst.PrivateIP == "" {
			return nil, fmt.Errorf("failed to determine private address of %s", inst.ID)
		}
		out = append(out, inst.PrivateIP)
	}
	return out, nil
}
