package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// InstanceHealth fetches the status checks of all ids in one batched query.
// Instances EC2 reports no status for are absent from the result.
func (c *Client) InstanceHealth(ctx context.Context, ids []string) (map[string]Health, error) {
	health := make(map[string]Health, len(ids))
	if len(ids) == 0 {
		return health, nil
	}

	paginator := ec2.NewDescribeInstanceStatusPaginator(c.ec2, &ec2.DescribeInstanceStatusInput{
		InstanceIds:         ids,
		IncludeAllInstances: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe instance status: %w", err)
		}
		for _, s := range page.InstanceStatuses {
			var h Health
			if s.SystemStatus != nil {
				h.System = string(s.SystemStatus.Status)
			}
			if s.InstanceStatus != nil {
				h.Instance = string(s.InstanceStatus.Status)
			}
			health[deref(s.InstanceId)] = h
		}
	}
	return health, nil
}
