package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// FindSecurityGroup returns the group with the given name, or nil if none
// exists. vpcID narrows the lookup when set.
func (c *Client) FindSecurityGroup(ctx context.Context, name, vpcID string) (*SecurityGroup, error) {
	filters := []types.Filter{
		{Name: aws.String("group-name"), Values: []string{name}},
	}
	if vpcID != "" {
		filters = append(filters, types.Filter{Name: aws.String("vpc-id"), Values: []string{vpcID}})
	}

	out, err := c.ec2.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{Filters: filters})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe security group %s: %w", name, err)
	}

	for _, g := range out.SecurityGroups {
		if deref(g.GroupName) == name {
			sg := toSecurityGroup(g)
			return &sg, nil
		}
	}
	return nil, nil
}

// CreateSecurityGroup creates an empty group. If a concurrent run created it
// first, the existing group is returned.
func (c *Client) CreateSecurityGroup(ctx context.Context, name, description, vpcID string) (*SecurityGroup, error) {
	input := &ec2.CreateSecurityGroupInput{
		GroupName:   aws.String(name),
		Description: aws.String(description),
	}
	if vpcID != "" {
		input.VpcId = aws.String(vpcID)
	}

	out, err := c.ec2.CreateSecurityGroup(ctx, input)
	if err != nil {
		if IsDuplicate(err) {
			existing, findErr := c.FindSecurityGroup(ctx, name, vpcID)
			if findErr != nil {
				return nil, findErr
			}
			if existing != nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("failed to create security group %s: %w", name, err)
	}

	return &SecurityGroup{
		ID:    deref(out.GroupId),
		Name:  name,
		VPCID: vpcID,
	}, nil
}

// AuthorizeIngress adds all rules to the group in a single API call.
func (c *Client) AuthorizeIngress(ctx context.Context, groupID string, rules []IngressRule) error {
	if len(rules) == 0 {
		return nil
	}

	perms := make([]types.IpPermission, 0, len(rules))
	for _, r := range rules {
		perms = append(perms, types.IpPermission{
			IpProtocol: aws.String(r.Protocol),
			FromPort:   aws.Int32(r.FromPort),
			ToPort:     aws.Int32(r.ToPort),
			IpRanges:   []types.IpRange{{CidrIp: aws.String(r.CIDR)}},
		})
	}

	_, err := c.ec2.AuthorizeSecurityGroupIngress(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
		GroupId:       aws.String(groupID),
		IpPermissions: perms,
	})
	if err != nil && !IsDuplicate(err) {
		return fmt.Errorf("failed to authorize ingress on %s: %w", groupID, err)
	}
	return nil
}

// toSecurityGroup flattens IP permissions into one rule per CIDR.
func toSecurityGroup(g types.SecurityGroup) SecurityGroup {
	sg := SecurityGroup{
		ID:    deref(g.GroupId),
		Name:  deref(g.GroupName),
		VPCID: deref(g.VpcId),
	}
	for _, p := range g.IpPermissions {
		for _, r := range p.IpRanges {
			sg.Rules = append(sg.Rules, IngressRule{
				Protocol: deref(p.IpProtocol),
				FromPort: derefInt32(p.FromPort),
				ToPort:   derefInt32(p.ToPort),
				CIDR:     deref(r.CidrIp),
			})
		}
		// Rules granting access to other groups carry no ranges.
		if len(p.IpRanges) == 0 {
			sg.Rules = append(sg.Rules, IngressRule{
				Protocol: deref(p.IpProtocol),
				FromPort: derefInt32(p.FromPort),
				ToPort:   derefInt32(p.ToPort),
			})
		}
	}
	return sg
}
