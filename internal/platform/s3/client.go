package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/imamik/cassandra-ec2/internal/config"
)

// ErrObjectNotFound is returned when the bucket or key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// API is the subset of *s3.Client this package calls.
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Client wraps the S3 client.
type Client struct {
	s3 API
}

// NewClient creates an S3 client from resolved credentials.
func NewClient(ctx context.Context, creds *config.Credentials, region string) (*Client, error) {
	if creds == nil {
		return nil, fmt.Errorf("credentials cannot be nil")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if creds.Static() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken),
		))
	} else {
		opts = append(opts,
			awsconfig.WithSharedConfigProfile(creds.Profile),
			awsconfig.WithSharedCredentialsFiles([]string{creds.File}),
		)
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Client{s3: s3.NewFromConfig(cfg)}, nil
}

// NewFromAPI wraps an existing S3 API implementation.
func NewFromAPI(api API) *Client {
	return &Client{s3: api}
}

// Object is an open object body and its size. Size is -1 when unknown.
type Object struct {
	Body io.ReadCloser
	Size int64
}

// Open starts streaming an object. The caller closes Body.
func (c *Client) Open(ctx context.Context, bucket, key string) (*Object, error) {
	result, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("%w: s3://%s/%s", ErrObjectNotFound, bucket, key)
		}
		return nil, fmt.Errorf("failed to get object %s from bucket %s: %w", key, bucket, err)
	}

	size := int64(-1)
	if result.ContentLength != nil {
		size = *result.ContentLength
	}
	return &Object{Body: result.Body, Size: size}, nil
}

// ParseURL splits s3://bucket/key into its parts.
func ParseURL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid S3 URL %q: %w", raw, err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("invalid S3 URL %q: scheme must be s3", raw)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 URL %q: expected s3://bucket/key", raw)
	}
	return u.Host, key, nil
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	// Fall back to API error code checking for S3-compatible services
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchKey" || code == "NoSuchBucket" || code == "404"
	}

	return false
}
