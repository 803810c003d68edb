package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
)

// ErrConfig marks configuration errors. They are reported before any
// resource is created or modified.
var ErrConfig = errors.New("configuration error")

// Validate checks the cluster spec for missing or malformed values.
func (s *ClusterSpec) Validate() error {
	var problems []string

	if s.Name == "" {
		problems = append(problems, "name is required (-n)")
	}
	if s.NodeCount < 1 {
		problems = append(problems, fmt.Sprintf("node_count must be at least 1, got %d", s.NodeCount))
	}
	if s.Volume.SizeGB < 0 {
		problems = append(problems, fmt.Sprintf("volume size must not be negative, got %d", s.Volume.SizeGB))
	}
	if s.Version == "" {
		problems = append(problems, "version is required")
	}
	if s.Concurrency < 1 {
		problems = append(problems, fmt.Sprintf("concurrency must be at least 1, got %d", s.Concurrency))
	}
	if s.WaitTimeout < 0 {
		problems = append(problems, "wait_timeout must not be negative")
	}
	if _, _, err := net.ParseCIDR(s.AuthorizedCIDR); err != nil {
		problems = append(problems, fmt.Sprintf("authorized_cidr %q is not a valid CIDR", s.AuthorizedCIDR))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrConfig, strings.Join(problems, "\n  "))
	}
	return nil
}

// ValidateForLaunch checks the preconditions for creating a cluster: the
// image and VPC must be named, and nodes must be launched with a key pair
// and reachable with an identity file.
func (s *ClusterSpec) ValidateForLaunch() error {
	if s.ImageID == "" {
		return fmt.Errorf("%w: ami is required (-m)", ErrConfig)
	}
	if s.VPCID == "" {
		return fmt.Errorf("%w: vpc_id is required (-v)", ErrConfig)
	}
	if s.SSH.IdentityFile == "" {
		return fmt.Errorf("%w: must provide an identity file (-i) for ssh connections", ErrConfig)
	}
	if s.SSH.KeyPair == "" {
		return fmt.Errorf("%w: must provide a key pair name (-k) to use on instances", ErrConfig)
	}
	info, err := os.Stat(s.SSH.IdentityFile)
	if err != nil {
		return fmt.Errorf("%w: identity file %s: %v", ErrConfig, s.SSH.IdentityFile, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: identity file %s is a directory", ErrConfig, s.SSH.IdentityFile)
	}
	return nil
}
