// Package artifact downloads the release tarball that is later distributed
// to every node. Sources are http(s):// URLs and s3://bucket/key objects.
package artifact
