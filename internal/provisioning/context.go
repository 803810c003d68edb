package provisioning

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/imamik/cassandra-ec2/internal/config"
	"github.com/imamik/cassandra-ec2/internal/metrics"
	"github.com/imamik/cassandra-ec2/internal/platform/ec2"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Spec      *config.ClusterSpec
	State     *State
	EC2       ec2.Provider
	Remote    RemoteExecutor
	Artifacts ArtifactFetcher
	Observer  Observer
	Timeouts  *config.Timeouts
	Metrics   *metrics.Collector
}

// NewContext creates a new provisioning context. Metrics may be nil.
func NewContext(
	ctx context.Context,
	spec *config.ClusterSpec,
	provider ec2.Provider,
	remote RemoteExecutor,
	artifacts ArtifactFetcher,
	log logr.Logger,
) *Context {
	return &Context{
		Context:   ctx,
		Spec:      spec,
		State:     NewState(),
		EC2:       provider,
		Remote:    remote,
		Artifacts: artifacts,
		Observer:  NewLogObserver(log),
		Timeouts:  config.LoadTimeouts(),
	}
}
