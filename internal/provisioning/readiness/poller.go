package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imamik/cassandra-ec2/internal/platform/ec2"
	"github.com/imamik/cassandra-ec2/internal/provisioning"
	"github.com/imamik/cassandra-ec2/internal/util/async"
	"github.com/imamik/cassandra-ec2/internal/util/retry"
)

const phase = "readiness"

// ErrNotReady is returned when the optional wait timeout expires.
var ErrNotReady = errors.New("cluster not ready")

// Poller implements the readiness phase.
type Poller struct {
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// NewPoller creates a poller that sleeps on the wall clock.
func NewPoller() *Poller {
	return &Poller{sleep: retry.Sleep, now: time.Now}
}

// Name implements the provisioning.Phase interface.
func (p *Poller) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Poller) Provision(ctx *provisioning.Context) error {
	if len(ctx.State.Instances) == 0 {
		return fmt.Errorf("no instances in provisioning state")
	}

	start := p.now()
	instances, attempts, err := p.Wait(ctx, ctx.State.Instances)
	if err != nil {
		return err
	}

	ctx.State.Instances = instances
	ctx.State.PollAttempts = attempts
	ctx.State.Waited = p.now().Sub(start)
	return nil
}

// Wait polls until every instance is ready and returns the refreshed
// instances together with the number of poll cycles. It waits without
// bound unless the cluster spec sets a wait timeout.
func (p *Poller) Wait(ctx *provisioning.Context, instances []ec2.Instance) ([]ec2.Instance, int, error) {
	ctx.Observer.Printf("Waiting for cluster nodes to be 'ssh-ready'")

	pollCtx := ctx.Context
	if timeout := ctx.Spec.WaitTimeout; timeout > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx.Context, timeout)
		defer cancel()
	}

	ids := make([]string, 0, len(instances))
	for _, inst := range instances {
		ids = append(ids, inst.ID)
	}

	start := p.now()
	current := instances
	attempt := 0
	for {
		if err := p.sleep(pollCtx, time.Duration(attempt)*ctx.Timeouts.PollBackoffStep); err != nil {
			return nil, attempt, p.interrupted(ctx, err, attempt)
		}

		refreshed, records, err := p.check(ctx, pollCtx, ids)
		attempt++
		ctx.Metrics.PollAttempt()
		if err != nil {
			if pollCtx.Err() != nil {
				return nil, attempt, p.interrupted(ctx, pollCtx.Err(), attempt)
			}
			if ec2.IsThrottled(err) {
				ctx.Observer.Printf("[%s] Provider throttled the status query, retrying: %v", phase, err)
				continue
			}
			return nil, attempt, err
		}
		current = refreshed

		ready := countReady(records)
		ctx.Observer.Progress(phase, ready, len(records))
		if FleetReady(records) {
			break
		}
	}

	ctx.Observer.Printf("Cluster is now 'ssh-ready'. Waited %d seconds", int(p.now().Sub(start).Seconds()))
	return current, attempt, nil
}

// Check runs a single poll cycle without waiting. It is used for read-only
// status reports.
func (p *Poller) Check(ctx *provisioning.Context, instances []ec2.Instance) ([]ec2.Instance, []ReadinessRecord, error) {
	ids := make([]string, 0, len(instances))
	for _, inst := range instances {
		ids = append(ids, inst.ID)
	}
	return p.check(ctx, ctx.Context, ids)
}

// check refreshes the instances, reads their health in one call and probes
// every running node with an address. A running node without one is
// reported on every cycle. All probes finish before it returns.
func (p *Poller) check(ctx *provisioning.Context, c context.Context, ids []string) ([]ec2.Instance, []ReadinessRecord, error) {
	refreshed, err := ctx.EC2.RefreshInstances(c, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to refresh instances: %w", err)
	}
	health, err := ctx.EC2.InstanceHealth(c, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read instance status: %w", err)
	}

	records := make([]ReadinessRecord, len(refreshed))
	var probes []async.Task
	for i, inst := range refreshed {
		h := health[inst.ID]
		records[i] = ReadinessRecord{
			InstanceID: inst.ID,
			Host:       inst.Address(),
			Running:    inst.State == ec2.StateRunning,
			SystemOK:   h.System == ec2.HealthOK,
			InstanceOK: h.Instance == ec2.HealthOK,
		}
		if !records[i].Running {
			continue
		}
		if records[i].Host == "" {
			ctx.Observer.Printf("[%s] WARNING: instance %s is running but has no public address yet", phase, inst.ID)
			continue
		}
		rec := &records[i]
		probes = append(probes, async.Task{
			Name: inst.ID,
			Func: func(pc context.Context) error {
				rec.Reachable = ctx.Remote.Probe(pc, rec.Host)
				return nil
			},
		})
	}

	// Probe failures are soft; RunBounded only returns task errors.
	_ = async.RunBounded(c, probes, ctx.Spec.Concurrency)
	return refreshed, records, nil
}

func (p *Poller) interrupted(ctx *provisioning.Context, err error, attempts int) error {
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return fmt.Errorf("%w after %v (%d poll attempts)", ErrNotReady, ctx.Spec.WaitTimeout, attempts)
	}
	return fmt.Errorf("readiness wait interrupted after %d poll attempts: %w", attempts, err)
}
