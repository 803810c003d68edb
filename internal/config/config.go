package config

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
	"time"
)

// Defaults mirror the values operators have been launching clusters with.
const (
	DefaultNodeCount      = 3
	DefaultInstanceType   = "m1.large"
	DefaultRegion         = "eu-central-1"
	DefaultZone           = "eu-central-1b"
	DefaultSSHUser        = "ec2-user"
	DefaultVolumeSizeGB   = 8
	DefaultVolumeType     = "standard"
	DefaultAuthorizedCIDR = "0.0.0.0/0"
	DefaultVersion        = "3.9"
	DefaultConnectTimeout = 5 * time.Second
	DefaultArtifactURL    = "https://archive.apache.org/dist/cassandra/{{.Version}}/apache-cassandra-{{.Version}}-bin.tar.gz"
)

// ClusterSpec is the immutable input of a run.
type ClusterSpec struct {
	Name         string `yaml:"name"`
	NodeCount    int    `yaml:"node_count"`
	InstanceType string `yaml:"instance_type"`
	ImageID      string `yaml:"ami"`
	Region       string `yaml:"region"`
	Zone         string `yaml:"zone"`
	VPCID        string `yaml:"vpc_id"`
	SubnetID     string `yaml:"subnet_id,omitempty"`
	Profile      string `yaml:"profile,omitempty"`

	Volume VolumeSpec `yaml:"volume"`
	SSH    SSHSpec    `yaml:"ssh"`

	AuthorizedCIDR string `yaml:"authorized_cidr"`
	Version        string `yaml:"version"`
	ArtifactURL    string `yaml:"artifact_url"`
	StagingDir     string `yaml:"staging_dir,omitempty"`

	// Concurrency bounds per-node work inside a stage. 1 keeps nodes serial.
	Concurrency int `yaml:"concurrency"`

	// WaitTimeout bounds the readiness wait. Zero waits indefinitely.
	WaitTimeout time.Duration `yaml:"wait_timeout,omitempty"`
}

// VolumeSpec describes the EBS volume attached to each node.
type VolumeSpec struct {
	SizeGB int32  `yaml:"size_gb"`
	Type   string `yaml:"type"`
}

// SSHSpec holds the remote-execution identity.
type SSHSpec struct {
	User           string        `yaml:"user"`
	IdentityFile   string        `yaml:"identity_file"`
	KeyPair        string        `yaml:"key_pair"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// Default returns a spec populated with default values only.
func Default() *ClusterSpec {
	s := &ClusterSpec{}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults fills every unset field with its default.
func (s *ClusterSpec) ApplyDefaults() {
	if s.NodeCount == 0 {
		s.NodeCount = DefaultNodeCount
	}
	if s.InstanceType == "" {
		s.InstanceType = DefaultInstanceType
	}
	if s.Region == "" {
		s.Region = DefaultRegion
	}
	if s.Zone == "" {
		s.Zone = DefaultZone
	}
	if s.Volume.SizeGB == 0 {
		s.Volume.SizeGB = DefaultVolumeSizeGB
	}
	if s.Volume.Type == "" {
		s.Volume.Type = DefaultVolumeType
	}
	if s.SSH.User == "" {
		s.SSH.User = DefaultSSHUser
	}
	if s.SSH.ConnectTimeout == 0 {
		s.SSH.ConnectTimeout = DefaultConnectTimeout
	}
	if s.AuthorizedCIDR == "" {
		s.AuthorizedCIDR = DefaultAuthorizedCIDR
	}
	if s.Version == "" {
		s.Version = DefaultVersion
	}
	if s.ArtifactURL == "" {
		s.ArtifactURL = DefaultArtifactURL
	}
	if s.StagingDir == "" {
		s.StagingDir = os.TempDir()
	}
	if s.Concurrency == 0 {
		s.Concurrency = 1
	}
}

// ArtifactURLFor renders ArtifactURL with the spec's version.
func (s *ClusterSpec) ArtifactURLFor() (string, error) {
	tmpl, err := template.New("artifact").Option("missingkey=error").Parse(s.ArtifactURL)
	if err != nil {
		return "", fmt.Errorf("%w: parsing artifact_url: %v", ErrConfig, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Version string }{Version: s.Version}); err != nil {
		return "", fmt.Errorf("%w: rendering artifact_url: %v", ErrConfig, err)
	}
	return buf.String(), nil
}
