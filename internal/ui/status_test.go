package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/cassandra-ec2/internal/provisioning/readiness"
	testkit "github.com/imamik/cassandra-ec2/internal/testing"
)

func TestRenderStatus(t *testing.T) {
	t.Parallel()
	instances := testkit.RunningInstances(2)
	records := []readiness.ReadinessRecord{
		{InstanceID: "i-0001", Running: true, SystemOK: true, InstanceOK: true, Reachable: true},
		{InstanceID: "i-0002", Running: true, SystemOK: true},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderStatus(&buf, "demo", instances, records, false))
	out := buf.String()

	assert.Contains(t, out, "Cluster demo: 1/2 nodes ready")
	assert.Contains(t, out, "node1.example.com")
	assert.Contains(t, out, "10.0.0.12")
	assert.Contains(t, out, "READY")
}

func TestRenderStatus_Empty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, RenderStatus(&buf, "demo", nil, nil, false))
	assert.Equal(t, "Cluster demo has no running instances.\n", buf.String())
}

func TestMark(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "yes", mark(true, false))
	assert.Equal(t, "no", mark(false, false))
	assert.Equal(t, checkMark, mark(true, true))
	assert.Contains(t, mark(false, true), crossMark)
}
