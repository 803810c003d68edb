package naming

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// SecurityGroup returns the security group name for a cluster.
func SecurityGroup(cluster string) string {
	return cluster
}

// Node returns the Name tag value for a cluster node.
func Node(cluster, instanceID string) string {
	return fmt.Sprintf("%s-node-%s", cluster, instanceID)
}

// UnpackedDir returns the directory a release tarball unpacks into.
func UnpackedDir(version string) string {
	return fmt.Sprintf("apache-cassandra-%s", version)
}

// ArtifactFile returns the last path element of an artifact URL, which is
// also the file name used in the staging directory and on every node.
func ArtifactFile(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	if i := strings.LastIndex(rawURL, "/"); i >= 0 {
		return rawURL[i+1:]
	}
	return rawURL
}
