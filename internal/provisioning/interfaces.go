package provisioning

import "context"

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// RemoteExecutor runs commands and transfers files on cluster nodes.
// Implemented by internal/remote.Executor.
type RemoteExecutor interface {
	// Execute runs command on host, retrying failed attempts.
	Execute(ctx context.Context, host, command string) error

	// Transfer copies a local file into the remote home directory. Not retried.
	Transfer(ctx context.Context, host, localPath string) error

	// Probe reports whether host accepts remote commands right now.
	Probe(ctx context.Context, host string) bool
}

// ArtifactFetcher stages the release archive locally.
// Implemented by internal/artifact.Fetcher.
type ArtifactFetcher interface {
	Fetch(ctx context.Context, rawURL, stagingDir string) (string, error)
}
