package testing

import "github.com/imamik/cassandra-ec2/internal/config"

// SpecBuilder provides a fluent interface for constructing test specs.
// Each method returns a new builder (immutable) for chaining.
type SpecBuilder struct {
	spec config.ClusterSpec
}

// NewSpecBuilder creates a new SpecBuilder with defaults and the required
// fields filled in.
func NewSpecBuilder() *SpecBuilder {
	spec := config.Default()
	spec.Name = "test-cluster"
	spec.ImageID = "ami-12345678"
	spec.VPCID = "vpc-12345678"
	spec.SSH.KeyPair = "test-key"
	spec.SSH.IdentityFile = "/tmp/test-key.pem"
	spec.StagingDir = "/tmp"
	return &SpecBuilder{spec: *spec}
}

// WithName sets the cluster name.
func (b *SpecBuilder) WithName(name string) *SpecBuilder {
	nb := b.clone()
	nb.spec.Name = name
	return nb
}

// WithNodeCount sets the desired node count.
func (b *SpecBuilder) WithNodeCount(n int) *SpecBuilder {
	nb := b.clone()
	nb.spec.NodeCount = n
	return nb
}

// WithInstanceType sets the instance type.
func (b *SpecBuilder) WithInstanceType(t string) *SpecBuilder {
	nb := b.clone()
	nb.spec.InstanceType = t
	return nb
}

// WithVolume sets the EBS volume size and type.
func (b *SpecBuilder) WithVolume(sizeGB int32, volumeType string) *SpecBuilder {
	nb := b.clone()
	nb.spec.Volume = config.VolumeSpec{SizeGB: sizeGB, Type: volumeType}
	return nb
}

// WithConcurrency sets the per-stage concurrency.
func (b *SpecBuilder) WithConcurrency(n int) *SpecBuilder {
	nb := b.clone()
	nb.spec.Concurrency = n
	return nb
}

// WithVersion sets the release version.
func (b *SpecBuilder) WithVersion(v string) *SpecBuilder {
	nb := b.clone()
	nb.spec.Version = v
	return nb
}

// WithIdentityFile sets the SSH identity file.
func (b *SpecBuilder) WithIdentityFile(path string) *SpecBuilder {
	nb := b.clone()
	nb.spec.SSH.IdentityFile = path
	return nb
}

// Build returns the constructed spec.
func (b *SpecBuilder) Build() *config.ClusterSpec {
	spec := b.spec // copy
	return &spec
}

func (b *SpecBuilder) clone() *SpecBuilder {
	return &SpecBuilder{spec: b.spec}
}
