package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// DescribeImage looks up an AMI. Any failure wraps ErrImageNotFound:
// launching without a resolvable image is never attempted.
func (c *Client) DescribeImage(ctx context.Context, imageID string) (*Image, error) {
	out, err := c.ec2.DescribeImages(ctx, &ec2.DescribeImagesInput{
		ImageIds: []string{imageID},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageNotFound, imageID, err)
	}
	if len(out.Images) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrImageNotFound, imageID)
	}

	img := out.Images[0]
	return &Image{
		ID:             deref(img.ImageId),
		Name:           deref(img.Name),
		Architecture:   string(img.Architecture),
		RootDeviceType: string(img.RootDeviceType),
	}, nil
}
