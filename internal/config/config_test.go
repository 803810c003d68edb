package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSpec() *ClusterSpec {
	s := &ClusterSpec{
		Name:    "ring",
		ImageID: "ami-12345678",
		VPCID:   "vpc-1",
	}
	s.ApplyDefaults()
	return s
}

func TestDefault(t *testing.T) {
	t.Parallel()
	s := Default()

	assert.Equal(t, 3, s.NodeCount)
	assert.Equal(t, "m1.large", s.InstanceType)
	assert.Equal(t, "eu-central-1", s.Region)
	assert.Equal(t, "eu-central-1b", s.Zone)
	assert.Equal(t, int32(8), s.Volume.SizeGB)
	assert.Equal(t, "standard", s.Volume.Type)
	assert.Equal(t, "ec2-user", s.SSH.User)
	assert.Equal(t, 5*time.Second, s.SSH.ConnectTimeout)
	assert.Equal(t, "0.0.0.0/0", s.AuthorizedCIDR)
	assert.Equal(t, "3.9", s.Version)
	assert.Equal(t, 1, s.Concurrency)
	assert.Zero(t, s.WaitTimeout)
	assert.NotEmpty(t, s.StagingDir)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	t.Parallel()
	s := &ClusterSpec{NodeCount: 5, InstanceType: "i2.xlarge", Version: "3.11.4", Concurrency: 4}
	s.ApplyDefaults()

	assert.Equal(t, 5, s.NodeCount)
	assert.Equal(t, "i2.xlarge", s.InstanceType)
	assert.Equal(t, "3.11.4", s.Version)
	assert.Equal(t, 4, s.Concurrency)
}

func TestArtifactURLFor(t *testing.T) {
	t.Parallel()

	s := validSpec()
	url, err := s.ArtifactURLFor()
	require.NoError(t, err)
	assert.Equal(t, "https://archive.apache.org/dist/cassandra/3.9/apache-cassandra-3.9-bin.tar.gz", url)

	s.ArtifactURL = "s3://releases/{{.Version}}/c.tgz"
	s.Version = "4.0"
	url, err = s.ArtifactURLFor()
	require.NoError(t, err)
	assert.Equal(t, "s3://releases/4.0/c.tgz", url)

	s.ArtifactURL = "https://x/{{.Nope}}"
	_, err = s.ArtifactURLFor()
	assert.ErrorIs(t, err, ErrConfig)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*ClusterSpec)
		wantErr string
	}{
		{name: "valid", mutate: func(*ClusterSpec) {}},
		{name: "missing name", mutate: func(s *ClusterSpec) { s.Name = "" }, wantErr: "name is required"},
		{name: "missing ami is fine for read-only use", mutate: func(s *ClusterSpec) { s.ImageID = "" }},
		{name: "zero nodes", mutate: func(s *ClusterSpec) { s.NodeCount = -1 }, wantErr: "node_count must be at least 1"},
		{name: "bad cidr", mutate: func(s *ClusterSpec) { s.AuthorizedCIDR = "10.0.0.1" }, wantErr: "not a valid CIDR"},
		{name: "bad concurrency", mutate: func(s *ClusterSpec) { s.Concurrency = -2 }, wantErr: "concurrency must be at least 1"},
		{name: "negative wait", mutate: func(s *ClusterSpec) { s.WaitTimeout = -time.Second }, wantErr: "wait_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := validSpec()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateForLaunch(t *testing.T) {
	t.Parallel()
	key := filepath.Join(t.TempDir(), "id_rsa")
	require.NoError(t, os.WriteFile(key, []byte("key"), 0o600))

	s := validSpec()
	err := s.ValidateForLaunch()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identity file (-i)")

	s.SSH.IdentityFile = key
	err = s.ValidateForLaunch()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key pair name (-k)")

	s.SSH.KeyPair = "ops"
	assert.NoError(t, s.ValidateForLaunch())

	s.SSH.IdentityFile = filepath.Join(t.TempDir(), "missing")
	assert.ErrorIs(t, s.ValidateForLaunch(), ErrConfig)

	s.SSH.IdentityFile = key
	s.ImageID = ""
	assert.ErrorContains(t, s.ValidateForLaunch(), "ami is required")

	s.ImageID = "ami-12345678"
	s.VPCID = ""
	assert.ErrorContains(t, s.ValidateForLaunch(), "vpc_id is required")
}

func TestDiskCount(t *testing.T) {
	t.Parallel()

	n, known := DiskCount("m3.xlarge")
	assert.True(t, known)
	assert.Equal(t, 2, n)

	n, known = DiskCount("t2.micro")
	assert.True(t, known)
	assert.Equal(t, 0, n)

	n, known = DiskCount("m7g.large")
	assert.False(t, known)
	assert.Equal(t, DefaultDiskCount, n)
}

func TestInstanceStoreFamily(t *testing.T) {
	t.Parallel()

	assert.True(t, InstanceStoreFamily("m3.4xlarge"))
	assert.True(t, InstanceStoreFamily("d2.16xlarge"))
	assert.False(t, InstanceStoreFamily("m4.16xlarge"))
	assert.False(t, InstanceStoreFamily("x9.huge"))
	assert.False(t, InstanceStoreFamily("m3"))
	// A family prefix must match up to the dot.
	assert.False(t, InstanceStoreFamily("c.large"))
}
