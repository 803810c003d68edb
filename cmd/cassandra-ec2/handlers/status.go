package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/cassandra-ec2/internal/config"
	"github.com/imamik/cassandra-ec2/internal/metrics"
	"github.com/imamik/cassandra-ec2/internal/provisioning"
	"github.com/imamik/cassandra-ec2/internal/provisioning/readiness"
	"github.com/imamik/cassandra-ec2/internal/ui"
	"github.com/imamik/cassandra-ec2/internal/util/naming"
)

var errReadOnly = errors.New("status is read-only")

// noRemote reports every node as unreachable. It stands in for the remote
// executor when no identity file was given.
type noRemote struct{}

func (noRemote) Execute(context.Context, string, string) error  { return errReadOnly }
func (noRemote) Transfer(context.Context, string, string) error { return errReadOnly }
func (noRemote) Probe(context.Context, string) bool             { return false }

// Status handles the status command. It lists the live members of the
// cluster and runs a single readiness check; nothing is modified.
func Status(ctx context.Context, opts Options) error {
	spec, err := loadSpec(opts)
	if err != nil {
		return err
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	log := newLogger(stderr, opts.Verbose).WithName("cassandra-ec2")

	creds, err := resolveCredentials(spec.Profile)
	if err != nil {
		return err
	}
	provider, err := newEC2Provider(ctx, creds, spec.Region)
	if err != nil {
		return fmt.Errorf("failed to create EC2 client: %w", err)
	}

	timeouts := config.LoadTimeouts()
	var executor provisioning.RemoteExecutor = noRemote{}
	if spec.SSH.IdentityFile != "" {
		executor, err = newRemoteExecutor(spec, timeouts, log.WithName("remote"), metrics.New())
		if err != nil {
			return fmt.Errorf("%w: %v", config.ErrConfig, err)
		}
	} else {
		log.Info("No identity file given, reachability is not probed")
	}

	pCtx := provisioning.NewContext(ctx, spec, provider, executor, nil, log)
	pCtx.Timeouts = timeouts

	if err := provisioning.NewValidationPhase(false).Provision(pCtx); err != nil {
		return err
	}

	instances, err := provider.ListClusterInstances(ctx, naming.SecurityGroup(spec.Name))
	if err != nil {
		return fmt.Errorf("failed to list cluster instances: %w", err)
	}
	if len(instances) == 0 {
		return ui.RenderStatus(stdout, spec.Name, nil, nil, isTerminal())
	}

	refreshed, records, err := readiness.NewPoller().Check(pCtx, instances)
	if err != nil {
		return err
	}
	return ui.RenderStatus(stdout, spec.Name, refreshed, records, isTerminal())
}
