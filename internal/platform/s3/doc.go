// Package s3 reads release artifacts from S3 buckets.
//
// Artifacts referenced as s3://bucket/key are streamed with GetObject using
// the same credentials as the EC2 client.
package s3
