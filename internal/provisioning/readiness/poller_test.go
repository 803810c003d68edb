package readiness

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/cassandra-ec2/internal/platform/ec2"
	"github.com/imamik/cassandra-ec2/internal/util/retry"
	testkit "github.com/imamik/cassandra-ec2/internal/testing"
)

// fakeClock advances by every requested sleep.
type fakeClock struct {
	mu    sync.Mutex
	t     time.Time
	slept []time.Duration
}

func (c *fakeClock) sleep(_ context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
	return nil
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func newTestPoller() (*Poller, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return &Poller{sleep: clock.sleep, now: clock.now}, clock
}

func ids(instances []ec2.Instance) []string {
	out := make([]string, 0, len(instances))
	for _, inst := range instances {
		out = append(out, inst.ID)
	}
	return out
}

func TestPoller_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "readiness", NewPoller().Name())
}

func TestPoller_PendingPendingHealthy(t *testing.T) {
	t.Parallel()
	running := testkit.RunningInstances(3)
	pending := testkit.WithState(running, ec2.StatePending)

	provider := &testkit.MockProvider{}
	provider.On("RefreshInstances", mock.Anything, ids(running)).Return(pending, nil).Twice()
	provider.On("RefreshInstances", mock.Anything, ids(running)).Return(running, nil).Once()
	provider.On("InstanceHealth", mock.Anything, ids(running)).Return(map[string]ec2.Health{}, nil).Twice()
	provider.On("InstanceHealth", mock.Anything, ids(running)).Return(testkit.HealthyStatus(running), nil).Once()

	remote := &testkit.MockRemote{}
	for _, host := range testkit.Hosts(running) {
		remote.On("Probe", mock.Anything, host).Return(true).Once()
	}

	ctx, observer := testkit.NewContext(t, testkit.NewSpecBuilder().Build(), provider, remote, nil)
	ctx.Timeouts.PollBackoffStep = 5 * time.Second
	ctx.State.Instances = pending
	p, clock := newTestPoller()

	require.NoError(t, p.Provision(ctx))

	assert.Equal(t, 3, ctx.State.PollAttempts)
	assert.Equal(t, running, ctx.State.Instances)
	assert.Equal(t, []time.Duration{0, 5 * time.Second, 10 * time.Second}, clock.slept)
	assert.Equal(t, 15*time.Second, ctx.State.Waited)
	assert.True(t, observer.Contains("Waiting for cluster nodes to be 'ssh-ready'"))
	assert.True(t, observer.Contains("Cluster is now 'ssh-ready'. Waited 15 seconds"))
	provider.AssertExpectations(t)
	remote.AssertExpectations(t)
}

func TestPoller_ProbesEveryRunningNodeBeforeJudging(t *testing.T) {
	t.Parallel()
	running := testkit.RunningInstances(3)

	provider := &testkit.MockProvider{}
	provider.On("RefreshInstances", mock.Anything, mock.Anything).Return(running, nil)
	provider.On("InstanceHealth", mock.Anything, mock.Anything).Return(testkit.HealthyStatus(running), nil)

	// The first node is unreachable on the first cycle; the others must
	// still be probed in that cycle.
	remote := &testkit.MockRemote{}
	remote.On("Probe", mock.Anything, "node1.example.com").Return(false).Once()
	remote.On("Probe", mock.Anything, mock.Anything).Return(true)

	ctx, _ := testkit.NewContext(t, testkit.NewSpecBuilder().WithConcurrency(3).Build(), provider, remote, nil)
	p, _ := newTestPoller()

	_, attempts, err := p.Wait(ctx, running)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	remote.AssertNumberOfCalls(t, "Probe", 6)
}

func TestPoller_SkipsProbeWithoutAddress(t *testing.T) {
	t.Parallel()
	running := testkit.RunningInstances(1)
	noAddress := append([]ec2.Instance(nil), running...)
	noAddress[0].PublicDNS = ""
	noAddress[0].PublicIP = ""

	provider := &testkit.MockProvider{}
	provider.On("RefreshInstances", mock.Anything, mock.Anything).Return(noAddress, nil).Once()
	provider.On("RefreshInstances", mock.Anything, mock.Anything).Return(running, nil)
	provider.On("InstanceHealth", mock.Anything, mock.Anything).Return(testkit.HealthyStatus(running), nil)
	remote := &testkit.MockRemote{}
	remote.On("Probe", mock.Anything, "node1.example.com").Return(true)

	ctx, observer := testkit.NewContext(t, testkit.NewSpecBuilder().Build(), provider, remote, nil)
	p, _ := newTestPoller()

	_, attempts, err := p.Wait(ctx, running)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	remote.AssertNumberOfCalls(t, "Probe", 1)
	assert.True(t, observer.Contains("instance i-0001 is running but has no public address yet"))
}

func TestPoller_ReportsNodeWithoutAddressEveryCycle(t *testing.T) {
	t.Parallel()
	instances := testkit.RunningInstances(1)
	instances[0].PublicDNS = ""
	instances[0].PublicIP = ""

	provider := &testkit.MockProvider{}
	provider.On("RefreshInstances", mock.Anything, mock.Anything).Return(instances, nil)
	provider.On("InstanceHealth", mock.Anything, mock.Anything).Return(testkit.HealthyStatus(instances), nil)
	remote := &testkit.MockRemote{}

	spec := testkit.NewSpecBuilder().Build()
	spec.WaitTimeout = 50 * time.Millisecond
	ctx, observer := testkit.NewContext(t, spec, provider, remote, nil)
	ctx.Timeouts.PollBackoffStep = time.Millisecond
	p := &Poller{sleep: retry.Sleep, now: time.Now}

	_, attempts, err := p.Wait(ctx, instances)
	require.ErrorIs(t, err, ErrNotReady)
	remote.AssertNotCalled(t, "Probe", mock.Anything, mock.Anything)

	warnings := 0
	for _, msg := range observer.Messages() {
		if strings.Contains(msg, "instance i-0001 is running but has no public address yet") {
			warnings++
		}
	}
	assert.Positive(t, warnings)
	// The final interrupted cycle may stop before its status query.
	assert.GreaterOrEqual(t, warnings, attempts-1)
}

func TestPoller_Check(t *testing.T) {
	t.Parallel()
	instances := testkit.RunningInstances(2)
	instances[1].State = ec2.StateStopped

	provider := &testkit.MockProvider{}
	provider.On("RefreshInstances", mock.Anything, ids(instances)).Return(instances, nil)
	provider.On("InstanceHealth", mock.Anything, ids(instances)).Return(map[string]ec2.Health{
		"i-0001": {System: "ok", Instance: "initializing"},
	}, nil)
	remote := &testkit.MockRemote{}
	remote.On("Probe", mock.Anything, "node1.example.com").Return(true)

	ctx, _ := testkit.NewContext(t, testkit.NewSpecBuilder().Build(), provider, remote, nil)

	refreshed, records, err := NewPoller().Check(ctx, instances)
	require.NoError(t, err)
	assert.Equal(t, instances, refreshed)
	assert.Equal(t, []ReadinessRecord{
		{InstanceID: "i-0001", Host: "node1.example.com", Running: true, SystemOK: true, Reachable: true},
		{InstanceID: "i-0002", Host: "node2.example.com"},
	}, records)
	remote.AssertNumberOfCalls(t, "Probe", 1)
}

func TestPoller_ProviderErrorIsFatal(t *testing.T) {
	t.Parallel()
	boom := errors.New("UnauthorizedOperation")
	provider := &testkit.MockProvider{}
	provider.On("RefreshInstances", mock.Anything, mock.Anything).Return(nil, boom)

	ctx, _ := testkit.NewContext(t, testkit.NewSpecBuilder().Build(), provider, &testkit.MockRemote{}, nil)
	p, _ := newTestPoller()

	_, attempts, err := p.Wait(ctx, testkit.RunningInstances(1))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

func TestPoller_WaitTimeout(t *testing.T) {
	t.Parallel()
	pending := testkit.WithState(testkit.RunningInstances(1), ec2.StatePending)
	provider := &testkit.MockProvider{}
	provider.On("RefreshInstances", mock.Anything, mock.Anything).Return(pending, nil)
	provider.On("InstanceHealth", mock.Anything, mock.Anything).Return(map[string]ec2.Health{}, nil)

	spec := testkit.NewSpecBuilder().Build()
	spec.WaitTimeout = 50 * time.Millisecond
	ctx, _ := testkit.NewContext(t, spec, provider, &testkit.MockRemote{}, nil)
	ctx.Timeouts.PollBackoffStep = 10 * time.Millisecond
	p := &Poller{sleep: retry.Sleep, now: time.Now}

	_, attempts, err := p.Wait(ctx, pending)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Positive(t, attempts)
}

func TestPoller_ContextCancelled(t *testing.T) {
	t.Parallel()
	provider := &testkit.MockProvider{}
	ctx, _ := testkit.NewContext(t, testkit.NewSpecBuilder().Build(), provider, &testkit.MockRemote{}, nil)
	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	ctx.Context = cctx
	p := &Poller{sleep: retry.Sleep, now: time.Now}

	_, _, err := p.Wait(ctx, testkit.RunningInstances(1))
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrNotReady)
	provider.AssertNotCalled(t, "RefreshInstances", mock.Anything, mock.Anything)
}

func TestPoller_Provision_RequiresInstances(t *testing.T) {
	t.Parallel()
	ctx, _ := testkit.NewContext(t, testkit.NewSpecBuilder().Build(), &testkit.MockProvider{}, nil, nil)
	require.Error(t, NewPoller().Provision(ctx))
}
