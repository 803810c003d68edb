package infrastructure

import (
	"fmt"

	"github.com/imamik/cassandra-ec2/internal/platform/ec2"
	"github.com/imamik/cassandra-ec2/internal/provisioning"
	"github.com/imamik/cassandra-ec2/internal/util/naming"
)

const groupDescription = "Cluster group"

// clusterPorts are the TCP ports opened to the authorized CIDR: SSH,
// OpsCenter, inter-node, inter-node TLS, JMX, CQL and Thrift.
var clusterPorts = []int32{22, 8888, 7000, 7001, 7199, 9042, 9160}

// ClusterIngressRules returns the ingress rule set of a cluster group.
func ClusterIngressRules(cidr string) []ec2.IngressRule {
	rules := make([]ec2.IngressRule, 0, len(clusterPorts))
	for _, port := range clusterPorts {
		rules = append(rules, ec2.IngressRule{
			Protocol: "tcp",
			FromPort: port,
			ToPort:   port,
			CIDR:     cidr,
		})
	}
	return rules
}

// ProvisionSecurityGroup ensures the cluster group and stores it in state.
func (p *Provisioner) ProvisionSecurityGroup(ctx *provisioning.Context) error {
	spec := ctx.Spec
	group, err := p.EnsureSecurityGroup(ctx, naming.SecurityGroup(spec.Name), spec.VPCID, spec.AuthorizedCIDR)
	if err != nil {
		return err
	}
	ctx.State.SecurityGroup = group
	return nil
}

// EnsureSecurityGroup finds or creates the named group in vpcID. The
// cluster rule set is authorized only when the group has no rules yet;
// a group with any rules is returned unchanged.
func (p *Provisioner) EnsureSecurityGroup(ctx *provisioning.Context, name, vpcID, cidr string) (*ec2.SecurityGroup, error) {
	group, err := ctx.EC2.FindSecurityGroup(ctx, name, vpcID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up security group %s: %w", name, err)
	}

	if group == nil {
		ctx.Observer.Printf("Creating security group %s", name)
		provisioning.LogResourceCreating(ctx.Observer, phase, "security group", name)
		group, err = ctx.EC2.CreateSecurityGroup(ctx, name, groupDescription, vpcID)
		if err != nil {
			return nil, fmt.Errorf("failed to create security group %s: %w", name, err)
		}
		provisioning.LogResourceCreated(ctx.Observer, phase, "security group", name, group.ID)
	}

	if len(group.Rules) > 0 {
		ctx.Observer.Printf("Security group already exists, skipping creation.")
		provisioning.LogResourceExists(ctx.Observer, phase, "security group", name, group.ID)
		return group, nil
	}

	rules := ClusterIngressRules(cidr)
	if err := ctx.EC2.AuthorizeIngress(ctx, group.ID, rules); err != nil {
		return nil, fmt.Errorf("failed to authorize ingress on security group %s: %w", name, err)
	}
	group.Rules = rules
	ctx.Observer.Printf("[%s] Authorized %d ingress rules from %s on %s", phase, len(rules), cidr, group.ID)
	return group, nil
}
