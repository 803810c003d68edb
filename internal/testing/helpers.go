package testing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/imamik/cassandra-ec2/internal/config"
	"github.com/imamik/cassandra-ec2/internal/provisioning"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// RecordingObserver is a provisioning.Observer that keeps every formatted
// line and event. Safe for concurrent use.
type RecordingObserver struct {
	mu       sync.Mutex
	messages []string
	events   []provisioning.Event
}

// NewRecordingObserver creates an empty recorder.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{}
}

// Printf implements provisioning.Observer.
func (o *RecordingObserver) Printf(format string, v ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, fmt.Sprintf(format, v...))
}

// Event implements provisioning.Observer.
func (o *RecordingObserver) Event(event provisioning.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
	o.messages = append(o.messages, event.Message)
}

// Progress implements provisioning.Observer.
func (o *RecordingObserver) Progress(phase string, current, total int) {
	o.Event(provisioning.Event{
		Type:    provisioning.EventProgress,
		Phase:   phase,
		Message: fmt.Sprintf("%d/%d", current, total),
	})
}

// WithFields implements provisioning.Observer. Fields are dropped; lines
// still land in the same recorder.
func (o *RecordingObserver) WithFields(map[string]string) provisioning.Observer {
	return o
}

// Messages returns a copy of every recorded line.
func (o *RecordingObserver) Messages() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.messages...)
}

// Events returns a copy of every recorded event.
func (o *RecordingObserver) Events() []provisioning.Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]provisioning.Event(nil), o.events...)
}

// Contains reports whether any recorded line contains substr.
func (o *RecordingObserver) Contains(substr string) bool {
	for _, m := range o.Messages() {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

// NewContext builds a provisioning context around the given mocks with
// zero delays so tests never sleep. Nil mocks are left unset.
func NewContext(t *testing.T, spec *config.ClusterSpec, provider *MockProvider, remote *MockRemote, fetcher *MockFetcher) (*provisioning.Context, *RecordingObserver) {
	t.Helper()
	observer := NewRecordingObserver()
	pctx := &provisioning.Context{
		Context:  TestContext(t),
		Spec:     spec,
		State:    provisioning.NewState(),
		Observer: observer,
		Timeouts: &config.Timeouts{RemoteMaxRetries: 5},
	}
	if provider != nil {
		pctx.EC2 = provider
	}
	if remote != nil {
		pctx.Remote = remote
	}
	if fetcher != nil {
		pctx.Artifacts = fetcher
	}
	return pctx, observer
}
