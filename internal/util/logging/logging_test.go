package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Info(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Info("Launching instances", "count", 3)
	log.V(1).Info("hidden detail")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "Launching instances")
	assert.Contains(t, out, `"count": 3`)
	assert.NotContains(t, out, "hidden detail")
}

func TestNew_Verbose(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := New(&buf, true)

	log.V(1).Info("probe detail")
	log.Error(errors.New("boom"), "phase failed")

	out := buf.String()
	assert.Contains(t, out, "probe detail")
	assert.Contains(t, out, "phase failed")
	assert.Contains(t, out, "boom")
}
