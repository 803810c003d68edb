package provisioning_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/cassandra-ec2/internal/config"
	"github.com/imamik/cassandra-ec2/internal/provisioning"
	testkit "github.com/imamik/cassandra-ec2/internal/testing"
)

func identityFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, os.WriteFile(path, []byte("key"), 0o600))
	return path
}

func TestValidationPhase_Passes(t *testing.T) {
	t.Parallel()
	spec := testkit.NewSpecBuilder().WithIdentityFile(identityFile(t)).Build()
	provider := (&testkit.MockProvider{}).WithIdentity()
	ctx, observer := testkit.NewContext(t, spec, provider, nil, nil)

	phase := provisioning.NewValidationPhase(true)
	assert.Equal(t, "validation", phase.Name())
	require.NoError(t, phase.Provision(ctx))

	require.NotNil(t, ctx.State.Identity)
	assert.Equal(t, "123456789012", ctx.State.Identity.Account)
	assert.True(t, observer.Contains("Validation passed"))
	provider.AssertExpectations(t)
}

func TestValidationPhase_SpecErrorsStopBeforeProvider(t *testing.T) {
	t.Parallel()
	spec := testkit.NewSpecBuilder().WithName("").WithNodeCount(0).Build()
	provider := &testkit.MockProvider{}
	ctx, _ := testkit.NewContext(t, spec, provider, nil, nil)

	err := provisioning.NewValidationPhase(false).Provision(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfig)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "node_count must be at least 1")
	provider.AssertNotCalled(t, "CallerIdentity", mock.Anything)
}

func TestValidationPhase_LaunchPreconditions(t *testing.T) {
	t.Parallel()
	spec := testkit.NewSpecBuilder().WithIdentityFile("").Build()
	provider := &testkit.MockProvider{}

	ctx, _ := testkit.NewContext(t, spec, provider, nil, nil)
	err := provisioning.NewValidationPhase(true).Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must provide an identity file")

	// Read-only runs do not need the identity file.
	provider.WithIdentity()
	ctx, _ = testkit.NewContext(t, spec, provider, nil, nil)
	assert.NoError(t, provisioning.NewValidationPhase(false).Provision(ctx))
}

func TestValidationPhase_Warnings(t *testing.T) {
	t.Parallel()
	spec := testkit.NewSpecBuilder().
		WithInstanceType("x9.huge").
		WithVolume(0, "standard").
		WithConcurrency(5).
		Build()
	provider := (&testkit.MockProvider{}).WithIdentity()
	ctx, observer := testkit.NewContext(t, spec, provider, nil, nil)

	require.NoError(t, provisioning.NewValidationPhase(false).Provision(ctx))

	var fields []string
	for _, e := range observer.Events() {
		if e.Type == provisioning.EventValidationWarning {
			fields = append(fields, e.Resource)
		}
	}
	assert.Equal(t, []string{"instance_type", "volume.size_gb", "concurrency"}, fields)
}

func TestValidationPhase_UnlistedInstanceStoreSize(t *testing.T) {
	t.Parallel()
	spec := testkit.NewSpecBuilder().WithInstanceType("m3.4xlarge").Build()
	provider := (&testkit.MockProvider{}).WithIdentity()
	ctx, observer := testkit.NewContext(t, spec, provider, nil, nil)

	require.NoError(t, provisioning.NewValidationPhase(false).Provision(ctx))
	assert.True(t, observer.Contains("instance type m3.4xlarge is not in the disk table, assuming 1 instance-store disk(s)"))
}

func TestValidationPhase_CredentialFailure(t *testing.T) {
	t.Parallel()
	spec := testkit.NewSpecBuilder().Build()
	provider := &testkit.MockProvider{}
	provider.On("CallerIdentity", mock.Anything).Return(nil, errors.New("InvalidClientTokenId"))
	ctx, _ := testkit.NewContext(t, spec, provider, nil, nil)

	err := provisioning.NewValidationPhase(false).Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to verify AWS credentials")
	assert.Nil(t, ctx.State.Identity)
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	ve := provisioning.ValidationError{Field: "ssh", Message: "missing", Severity: "error"}
	assert.True(t, ve.IsError())
	assert.Equal(t, "[error] ssh: missing", ve.Error())
	assert.False(t, provisioning.ValidationError{Severity: "warning"}.IsError())
}
