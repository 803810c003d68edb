package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/cassandra-ec2/internal/config"
	"github.com/imamik/cassandra-ec2/internal/metrics"
	"github.com/imamik/cassandra-ec2/internal/provisioning"
	"github.com/imamik/cassandra-ec2/internal/provisioning/compute"
	"github.com/imamik/cassandra-ec2/internal/provisioning/distribute"
	"github.com/imamik/cassandra-ec2/internal/provisioning/infrastructure"
	"github.com/imamik/cassandra-ec2/internal/provisioning/readiness"
	"github.com/imamik/cassandra-ec2/internal/ui"
)

// newCreatePhases returns the bring-up stages in order. Replaced in tests.
var newCreatePhases = func() []provisioning.Phase {
	return []provisioning.Phase{
		provisioning.NewValidationPhase(true),
		infrastructure.NewProvisioner(),
		compute.NewProvisioner(),
		readiness.NewPoller(),
		distribute.NewDistributor(),
	}
}

// Create handles the create command.
//
// Configuration and credential problems are reported before any client is
// built, so they never leave resources behind. Run statistics are written
// to the metrics file on success and on failure.
func Create(ctx context.Context, opts Options) error {
	spec, err := loadSpec(opts)
	if err != nil {
		return err
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	if err := spec.ValidateForLaunch(); err != nil {
		return err
	}

	log := newLogger(stderr, opts.Verbose).WithName("cassandra-ec2")

	creds, err := resolveCredentials(spec.Profile)
	if err != nil {
		return err
	}
	log.V(1).Info("Resolved AWS credentials", "credentials", creds.String())

	provider, err := newEC2Provider(ctx, creds, spec.Region)
	if err != nil {
		return fmt.Errorf("failed to create EC2 client: %w", err)
	}

	timeouts := config.LoadTimeouts()
	collector := metrics.New()

	executor, err := newRemoteExecutor(spec, timeouts, log.WithName("remote"), collector)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrConfig, err)
	}

	fetcher, err := newArtifactFetcher(ctx, creds, spec.Region, log.WithName("artifact"))
	if err != nil {
		return fmt.Errorf("failed to create artifact fetcher: %w", err)
	}

	pCtx := provisioning.NewContext(ctx, spec, provider, executor, fetcher, log)
	pCtx.Timeouts = timeouts
	pCtx.Metrics = collector

	runErr := provisioning.RunPhases(pCtx, newCreatePhases())

	if opts.MetricsFile != "" {
		if err := collector.WriteTextfile(opts.MetricsFile); err != nil {
			log.Error(err, "Failed to write metrics file", "path", opts.MetricsFile)
		}
	}
	if runErr != nil {
		return runErr
	}

	return ui.RenderSummary(stdout, spec.Name, pCtx.State.Instances, pCtx.State.Seeds, isTerminal())
}
