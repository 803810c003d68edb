package readiness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadinessRecord_Ready(t *testing.T) {
	t.Parallel()
	ready := ReadinessRecord{Running: true, SystemOK: true, InstanceOK: true, Reachable: true}
	assert.True(t, ready.Ready())

	for name, mutate := range map[string]func(*ReadinessRecord){
		"not running":    func(r *ReadinessRecord) { r.Running = false },
		"system check":   func(r *ReadinessRecord) { r.SystemOK = false },
		"instance check": func(r *ReadinessRecord) { r.InstanceOK = false },
		"not reachable":  func(r *ReadinessRecord) { r.Reachable = false },
	} {
		r := ready
		mutate(&r)
		assert.False(t, r.Ready(), name)
	}
}

func TestFleetReady(t *testing.T) {
	t.Parallel()
	ready := ReadinessRecord{Running: true, SystemOK: true, InstanceOK: true, Reachable: true}

	assert.False(t, FleetReady(nil))
	assert.False(t, FleetReady([]ReadinessRecord{}))
	assert.True(t, FleetReady([]ReadinessRecord{ready, ready}))
	assert.False(t, FleetReady([]ReadinessRecord{ready, {Running: true}}))
	assert.Equal(t, 2, countReady([]ReadinessRecord{ready, {}, ready}))
}
