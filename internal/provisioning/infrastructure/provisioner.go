package infrastructure

import "github.com/imamik/cassandra-ec2/internal/provisioning"

const phase = "infrastructure"

// Provisioner handles the security group of the cluster.
type Provisioner struct{}

// NewProvisioner creates a new infrastructure provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	ctx.Observer.Printf("Creating cluster ... %s in region %s", ctx.Spec.Name, ctx.Spec.Region)
	return p.ProvisionSecurityGroup(ctx)
}
