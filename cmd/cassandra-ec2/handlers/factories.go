package handlers

import (
	"context"
	"io"
	"os"

	"github.com/go-logr/logr"

	"github.com/imamik/cassandra-ec2/internal/artifact"
	"github.com/imamik/cassandra-ec2/internal/config"
	"github.com/imamik/cassandra-ec2/internal/metrics"
	"github.com/imamik/cassandra-ec2/internal/platform/ec2"
	"github.com/imamik/cassandra-ec2/internal/platform/s3"
	"github.com/imamik/cassandra-ec2/internal/platform/ssh"
	"github.com/imamik/cassandra-ec2/internal/provisioning"
	"github.com/imamik/cassandra-ec2/internal/remote"
	"github.com/imamik/cassandra-ec2/internal/ui"
	"github.com/imamik/cassandra-ec2/internal/util/logging"
)

// Factory function variables - can be replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	isTerminal = func() bool { return ui.IsTerminal(os.Stdout) }

	newLogger = logging.New

	resolveCredentials = func(profile string) (*config.Credentials, error) {
		home, _ := os.UserHomeDir()
		return config.ResolveCredentials(profile, os.Getenv, home)
	}

	newEC2Provider = func(ctx context.Context, creds *config.Credentials, region string) (ec2.Provider, error) {
		return ec2.NewClient(ctx, creds, region)
	}

	newRemoteExecutor = func(spec *config.ClusterSpec, t *config.Timeouts, log logr.Logger, m *metrics.Collector) (provisioning.RemoteExecutor, error) {
		transport, err := ssh.NewTransportFromFile(spec.SSH.User, spec.SSH.IdentityFile, spec.SSH.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		return remote.New(transport, log,
			remote.WithRetries(t.RemoteMaxRetries, t.RemoteRetryDelay),
			remote.WithProbeTimeout(t.ProbeTimeout),
			remote.WithMetrics(m),
		), nil
	}

	newArtifactFetcher = func(ctx context.Context, creds *config.Credentials, region string, log logr.Logger) (provisioning.ArtifactFetcher, error) {
		client, err := s3.NewClient(ctx, creds, region)
		if err != nil {
			return nil, err
		}
		return artifact.NewFetcher(client, stderr, log), nil
	}
)
