package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// CallerIdentity returns the account and principal behind the credentials.
func (c *Client) CallerIdentity(ctx context.Context) (*Identity, error) {
	if c.sts == nil {
		return nil, fmt.Errorf("identity client not configured")
	}

	out, err := c.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to get caller identity: %w", err)
	}

	return &Identity{
		Account: deref(out.Account),
		ARN:     deref(out.Arn),
		UserID:  deref(out.UserId),
	}, nil
}
