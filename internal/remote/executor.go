package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/cassandra-ec2/internal/metrics"
	"github.com/imamik/cassandra-ec2/internal/platform/ssh"
	"github.com/imamik/cassandra-ec2/internal/util/retry"
)

const (
	defaultMaxRetries   = 5
	defaultRetryDelay   = 30 * time.Second
	defaultProbeTimeout = 5 * time.Second

	probeCommand = "true"
)

// Runner is the transport used by the executor. *ssh.Transport implements it.
type Runner interface {
	Run(ctx context.Context, host, command string) (ssh.Result, error)
	RunWithTimeout(ctx context.Context, host, command string, connectTimeout time.Duration) (ssh.Result, error)
	Copy(ctx context.Context, host, localPath string) (ssh.Result, error)
}

// Executor runs remote operations with the retry policy of each operation.
type Executor struct {
	runner       Runner
	log          logr.Logger
	metrics      *metrics.Collector
	maxRetries   int
	retryDelay   time.Duration
	probeTimeout time.Duration
}

// Option configures an Executor.
type Option func(*Executor)

// WithRetries sets how often and how long apart failed commands are retried.
func WithRetries(maxRetries int, delay time.Duration) Option {
	return func(e *Executor) {
		e.maxRetries = maxRetries
		e.retryDelay = delay
	}
}

// WithProbeTimeout sets the connect timeout of Probe.
func WithProbeTimeout(d time.Duration) Option {
	return func(e *Executor) {
		e.probeTimeout = d
	}
}

// WithMetrics records every attempt in c.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Executor) {
		e.metrics = c
	}
}

// New creates an executor. Defaults: 5 retries 30s apart, 5s probe timeout.
func New(runner Runner, log logr.Logger, opts ...Option) *Executor {
	e := &Executor{
		runner:       runner,
		log:          log,
		maxRetries:   defaultMaxRetries,
		retryDelay:   defaultRetryDelay,
		probeTimeout: defaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs command on host. Every non-zero exit is retried; after the
// last attempt an *ExecutionError describes the final exit.
func (e *Executor) Execute(ctx context.Context, host, command string) error {
	var last ssh.Result
	attempts := 0

	err := retry.WithFixedDelay(ctx, func() error {
		attempts++
		res, err := e.runner.Run(ctx, host, command)
		if err != nil {
			return retry.Fatal(err)
		}
		last = res
		e.metrics.RemoteAttempt(res.Success())
		if res.Success() {
			return nil
		}
		return fmt.Errorf("exit code %d", res.ExitCode)
	}, e.maxRetries, e.retryDelay, retry.WithOnRetry(func(attempt int, _ error, delay time.Duration) {
		e.log.Info("Error executing remote command, retrying",
			"host", host, "attempt", attempt, "returnCode", last.ExitCode, "after", delay, "output", last.Output)
	}))
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("remote command on %s interrupted: %w", host, ctxErr)
	}
	if retry.IsFatal(err) {
		var fatal *retry.FatalError
		if errors.As(err, &fatal) {
			err = fatal.Err
		}
		return fmt.Errorf("remote command on %s: %w", host, err)
	}

	kind := KindCommand
	if last.ExitCode == ssh.GenericFailureCode {
		kind = KindTransport
	}
	return &ExecutionError{
		Host:     host,
		Command:  command,
		ExitCode: last.ExitCode,
		Output:   last.Output,
		Attempts: attempts,
		Kind:     kind,
	}
}

// Transfer copies localPath into the home directory of host. It is not
// retried.
func (e *Executor) Transfer(ctx context.Context, host, localPath string) error {
	res, err := e.runner.Copy(ctx, host, localPath)
	if err != nil {
		return fmt.Errorf("copying %s to %s: %w", localPath, host, err)
	}
	if !res.Success() {
		return &TransferError{Host: host, Path: localPath, ExitCode: res.ExitCode, Output: res.Output}
	}
	return nil
}

// Probe reports whether host accepts a remote no-op command within the
// probe timeout. Failures are logged, never returned.
func (e *Executor) Probe(ctx context.Context, host string) bool {
	res, err := e.runner.RunWithTimeout(ctx, host, probeCommand, e.probeTimeout)
	if err != nil {
		e.log.V(1).Info("Reachability probe interrupted", "host", host, "error", err.Error())
		return false
	}
	if !res.Success() {
		e.log.Info("Node not reachable yet", "host", host, "returnCode", res.ExitCode, "output", res.Output)
		return false
	}
	return true
}
